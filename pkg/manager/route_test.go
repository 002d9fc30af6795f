package manager

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swal-project/swal-go/internal/halsim"
	"github.com/swal-project/swal-go/pkg/hal"
)

func testRoute(prefix string) hal.RouteEntry {
	return hal.RouteEntry{
		SwitchID: testSwitchID,
		VrID:     hal.ObjectID(0x3000),
		Dest:     netip.MustParsePrefix(prefix),
	}
}

func TestRouteAddAndRepoint(t *testing.T) {
	sim := halsim.New()
	routes := NewRouteManager(sim, nil)

	entry := testRoute("192.168.0.0/24")
	require.NoError(t, routes.Add(entry, hal.ObjectID(0x4001)))

	nh, err := routes.NextHop(entry)
	require.NoError(t, err)
	assert.Equal(t, hal.ObjectID(0x4001), nh)

	require.NoError(t, routes.SetNextHop(entry, hal.ObjectID(0x4002)))
	nh, err = routes.NextHop(entry)
	require.NoError(t, err)
	assert.Equal(t, hal.ObjectID(0x4002), nh)
}

func TestRouteDuplicateEntryRejected(t *testing.T) {
	sim := halsim.New()
	routes := NewRouteManager(sim, nil)

	entry := testRoute("10.0.0.0/8")
	require.NoError(t, routes.AddDrop(entry))
	require.Error(t, routes.Add(entry, hal.ObjectID(0x4001)))
	assert.Len(t, routes.Entries(), 1)
}

func TestRouteRemoveAndTeardown(t *testing.T) {
	sim := halsim.New()
	routes := NewRouteManager(sim, nil)

	v4 := testRoute("10.0.0.0/8")
	v6 := hal.RouteEntry{
		SwitchID: testSwitchID,
		VrID:     hal.ObjectID(0x3000),
		Dest:     netip.MustParsePrefix("2001:db8::/32"),
	}
	require.NoError(t, routes.AddDrop(v4))
	require.NoError(t, routes.Add(v6, hal.ObjectID(0x4001)))
	assert.Equal(t, []hal.RouteEntry{v4, v6}, routes.Entries())

	require.NoError(t, routes.Remove(v4))
	require.Error(t, routes.Remove(v4), "a removed entry key is gone")

	require.NoError(t, routes.Teardown())
	assert.Zero(t, sim.ObjectCount())
	assert.Empty(t, routes.Entries())
}

func TestNeighborLifecycle(t *testing.T) {
	sim := halsim.New()
	neighbors := NewNeighborManager(sim, nil)

	entry := hal.NeighborEntry{
		SwitchID:    testSwitchID,
		InterfaceID: hal.ObjectID(0x5001),
		IP:          netip.MustParseAddr("10.0.0.7"),
	}
	mac := hal.MAC{0x02, 0xaa, 0xbb, 0xcc, 0xdd, 0xee}
	require.NoError(t, neighbors.Add(entry, mac))

	got, err := neighbors.DstMAC(entry)
	require.NoError(t, err)
	assert.Equal(t, mac, got)

	rewritten := hal.MAC{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	require.NoError(t, neighbors.SetDstMAC(entry, rewritten))
	got, err = neighbors.DstMAC(entry)
	require.NoError(t, err)
	assert.Equal(t, rewritten, got)

	require.NoError(t, neighbors.Remove(entry))
	assert.Empty(t, neighbors.Entries())
	assert.Zero(t, sim.ObjectCount())
}
