package manager

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swal-project/swal-go/internal/halsim"
	"github.com/swal-project/swal-go/pkg/hal"
)

func TestTableQueueWiring(t *testing.T) {
	sim := halsim.New()
	table := NewTable(sim, nil, testSwitchID)

	portID, err := table.Ports().Create(PortConfig{Lanes: []uint32{0}, Speed: 10000})
	require.NoError(t, err)

	queueID, err := table.Queues().CreateForPort(portID, 0)
	require.NoError(t, err)
	assert.NotEqual(t, hal.NullObjectID, queueID)

	// A handle the port manager never issued must be rejected before the
	// adapter sees anything.
	before := sim.ObjectCount()
	_, err = table.Queues().CreateForPort(hal.ObjectID(0xdead), 0)
	require.Error(t, err)
	assert.Equal(t, before, sim.ObjectCount())
}

func TestQueueStatsReadAndClear(t *testing.T) {
	sim := halsim.New()
	table := NewTable(sim, nil, testSwitchID)

	portID, err := table.Ports().Create(PortConfig{Lanes: []uint32{0}, Speed: 10000})
	require.NoError(t, err)
	queueID, err := table.Queues().CreateForPort(portID, 3)
	require.NoError(t, err)

	sim.AddCounter(queueID, hal.QueueStatDroppedPackets, 42)

	values, err := table.Queues().Stats(queueID)
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Equal(t, uint64(42), values[2])

	// Queue counters clear on read: the next interval starts at zero.
	values, err = table.Queues().Stats(queueID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), values[2])
}

func TestBridgeLifecycle(t *testing.T) {
	sim := halsim.New()
	table := NewTable(sim, nil, testSwitchID)

	id, err := table.Bridges().Create(hal.BridgeType1Q)
	require.NoError(t, err)

	// No learned-address cap programmed yet: zero means unlimited.
	maxAddrs, err := table.Bridges().MaxLearnedAddresses(id)
	require.NoError(t, err)
	assert.Zero(t, maxAddrs)

	status := sim.Set(hal.ObjectTypeBridge, id, hal.Attr{
		ID:    hal.BridgeAttrMaxLearnedAddresses,
		Value: hal.Uint32Value(4096),
	})
	require.True(t, status.IsSuccess())
	maxAddrs, err = table.Bridges().MaxLearnedAddresses(id)
	require.NoError(t, err)
	assert.Equal(t, uint32(4096), maxAddrs)

	require.NoError(t, table.Bridges().Remove(id))
	assert.Empty(t, table.Bridges().Handles())
}

func TestTableTeardownEmptiesHardware(t *testing.T) {
	sim := halsim.New()
	table := NewTable(sim, nil, testSwitchID)

	portID, err := table.Ports().Create(PortConfig{Lanes: []uint32{0, 1}, Speed: 40000})
	require.NoError(t, err)
	_, err = table.Queues().CreateForPort(portID, 0)
	require.NoError(t, err)
	_, err = table.Bridges().Create(hal.BridgeType1D)
	require.NoError(t, err)
	_, err = table.Vlans().Create(100)
	require.NoError(t, err)
	require.NoError(t, table.Routes().AddDrop(hal.RouteEntry{
		SwitchID: testSwitchID,
		VrID:     hal.ObjectID(0x3000),
		Dest:     netip.MustParsePrefix("10.0.0.0/8"),
	}))
	require.NoError(t, table.Neighbors().Add(hal.NeighborEntry{
		SwitchID:    testSwitchID,
		InterfaceID: hal.ObjectID(0x5001),
		IP:          netip.MustParseAddr("10.0.0.1"),
	}, hal.MAC{0x02, 0, 0, 0, 0, 2}))

	require.NoError(t, table.Teardown())
	assert.Zero(t, sim.ObjectCount(), "teardown must leave no hardware objects behind")

	// Teardown is idempotent once everything is gone.
	require.NoError(t, table.Teardown())
}

// portDropper drops a port from its manager while a queue create is in
// flight, reopening the window between the ownership check and the
// hardware call.
type portDropper struct {
	*halsim.Sim
	ports  *PortManager
	portID hal.ObjectID
}

func (a *portDropper) Create(typ hal.ObjectType, switchID hal.ObjectID, attrs []hal.Attr) (hal.ObjectID, hal.Status) {
	if typ == hal.ObjectTypeQueue {
		a.ports.forget(a.portID)
	}
	return a.Sim.Create(typ, switchID, attrs)
}

func TestQueueCreateBacksOutWhenPortRemoved(t *testing.T) {
	sim := halsim.New()
	ports := NewPortManager(sim, nil, testSwitchID)
	portID, err := ports.Create(PortConfig{Lanes: []uint32{0}, Speed: 10000})
	require.NoError(t, err)

	adapter := &portDropper{Sim: sim, ports: ports, portID: portID}
	queues := NewQueueManager(adapter, nil, testSwitchID)
	queues.wire(ports)

	_, err = queues.CreateForPort(portID, 0)
	require.Error(t, err)
	assert.Empty(t, queues.Handles())

	// The queue object created mid-race was backed out; only the port's
	// hardware object remains.
	assert.Equal(t, 1, sim.ObjectCount())
}
