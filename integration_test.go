package swal_test

import (
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swal-project/swal-go/internal/halsim"
	"github.com/swal-project/swal-go/pkg/config"
	"github.com/swal-project/swal-go/pkg/hal"
	"github.com/swal-project/swal-go/pkg/manager"
	"github.com/swal-project/swal-go/pkg/oplog"
	"github.com/swal-project/swal-go/pkg/warmboot"
)

const agentConfig = `
agent:
  name: it-sw1
  log_level: debug
startup:
  ports:
    - lanes: [0, 1, 2, 3]
      speed: 100000
      admin_up: true
    - lanes: [4, 5]
      speed: 50000
  vlans: [100, 200]
`

// TestAgentLifecycle drives the full path an agent run takes: parse config,
// initialize the switch, provision the startup inventory, exercise reads
// and stats, snapshot for warm restart, and tear everything down - all
// against the simulator, with every hardware call traced.
func TestAgentLifecycle(t *testing.T) {
	cfg, err := config.Parse([]byte(agentConfig))
	require.NoError(t, err)

	tracePath := filepath.Join(t.TempDir(), "trace.swlog")
	traceLog, err := oplog.NewFileLogger(tracePath)
	require.NoError(t, err)
	logger := oplog.WithAgentID(traceLog, "it-run-1")

	sim := halsim.New()

	switches := manager.NewSwitchManager(sim, logger)
	switchID, err := switches.Create(hal.MAC{0x02, 0, 0, 0, 0, 1})
	require.NoError(t, err)

	table := manager.NewTable(sim, logger, switchID)

	// Provision the startup inventory.
	var portIDs []hal.ObjectID
	for _, spec := range cfg.Startup.Ports {
		id, err := table.Ports().Create(manager.PortConfig{
			Lanes:   spec.Lanes,
			Speed:   spec.Speed,
			MTU:     spec.MTU,
			AdminUp: spec.AdminUp,
		})
		require.NoError(t, err)
		portIDs = append(portIDs, id)
	}
	for _, vid := range cfg.Startup.Vlans {
		_, err := table.Vlans().Create(vid)
		require.NoError(t, err)
	}

	// Reload re-reads from hardware; the four-lane port starts from a
	// one-element buffer and grows through the overflow retry.
	state, err := table.Ports().Reload(portIDs[0])
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 3}, state.Lanes)
	assert.Equal(t, uint32(100000), state.Speed)
	assert.Equal(t, uint32(manager.DefaultMTU), state.MTU)
	assert.True(t, state.AdminUp)

	sim.AddCounter(portIDs[0], hal.PortStatIfInOctets, 12345)
	stats, err := table.Ports().Stats(portIDs[0])
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), stats[0])

	// Warm-restart snapshot and round trip through the state store.
	store := warmboot.NewStore(filepath.Join(t.TempDir(), "state.json"))
	snap, err := warmboot.Snapshot(table, "it-run-1")
	require.NoError(t, err)
	require.NoError(t, store.Save(snap))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Len(t, loaded.Ports, 2)
	assert.Len(t, loaded.Vlans, 2)
	assert.Equal(t, uint32(100000), loaded.Ports[0].Speed)

	// Shutdown: table first, then the switch object.
	require.NoError(t, table.Teardown())
	require.NoError(t, switches.Remove())
	assert.Zero(t, sim.ObjectCount())

	// The trace file replays the whole run.
	require.NoError(t, traceLog.Close())
	events := readTrace(t, tracePath)
	require.NotEmpty(t, events)

	var creates, removes, retries int
	for _, e := range events {
		assert.Equal(t, "it-run-1", e.AgentID)
		switch e.Op {
		case oplog.OpCreate:
			creates++
		case oplog.OpRemove:
			removes++
		}
		if e.Retried {
			retries++
		}
	}
	assert.Equal(t, creates, removes, "every created object was removed")
	assert.NotZero(t, retries, "the lane-list reload retried")
}

// TestConcurrentManagersSerializeHardware runs several managers against one
// simulator from many goroutines and asserts no two adapter calls ever
// overlapped.
func TestConcurrentManagersSerializeHardware(t *testing.T) {
	sim := halsim.New()
	sim.CallDelay = 50 * time.Microsecond
	table := manager.NewTable(sim, nil, hal.ObjectID(0x100))

	var wg sync.WaitGroup
	for w := 0; w < 6; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				id, err := table.Ports().Create(manager.PortConfig{
					Lanes: []uint32{uint32(worker*100 + i)},
					Speed: 25000,
				})
				if err != nil {
					t.Error(err)
					return
				}
				if _, err := table.Ports().Reload(id); err != nil {
					t.Error(err)
					return
				}
				if err := table.Ports().Remove(id); err != nil {
					t.Error(err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	assert.Zero(t, sim.Violations())
	assert.Zero(t, sim.ObjectCount())
}

func readTrace(t *testing.T, path string) []oplog.Event {
	t.Helper()
	reader, err := oplog.NewReader(path)
	require.NoError(t, err)
	defer reader.Close()

	var events []oplog.Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, event)
	}
}
