package halsim

import (
	"sync"
	"testing"
	"time"

	"github.com/swal-project/swal-go/pkg/hal"
)

func TestCreateGetRemove(t *testing.T) {
	sim := New()

	id, status := sim.Create(hal.ObjectTypePort, hal.NullObjectID, []hal.Attr{
		{ID: hal.PortAttrSpeed, Value: hal.Uint32Value(100000)},
	})
	if !status.IsSuccess() {
		t.Fatalf("create: %s", status)
	}
	if id == hal.NullObjectID {
		t.Fatal("create returned the null handle")
	}
	if got := sim.ObjectCount(); got != 1 {
		t.Fatalf("object count = %d, want 1", got)
	}

	attrs := []hal.Attr{{ID: hal.PortAttrSpeed, Value: hal.Uint32Value(0)}}
	if status := sim.Get(hal.ObjectTypePort, id, attrs); !status.IsSuccess() {
		t.Fatalf("get: %s", status)
	}
	if attrs[0].Value != hal.Uint32Value(100000) {
		t.Fatalf("get value = %v", attrs[0].Value)
	}

	if status := sim.Remove(hal.ObjectTypePort, id); !status.IsSuccess() {
		t.Fatalf("remove: %s", status)
	}
	if status := sim.Remove(hal.ObjectTypePort, id); status != hal.StatusItemNotFound {
		t.Fatalf("second remove = %s, want ITEM_NOT_FOUND", status)
	}
}

func TestGetListOverflowWriteback(t *testing.T) {
	sim := New()

	id, status := sim.Create(hal.ObjectTypePort, hal.NullObjectID, []hal.Attr{
		{ID: hal.PortAttrHwLaneList, Value: hal.Uint32List{List: []uint32{1, 2, 3}}},
	})
	if !status.IsSuccess() {
		t.Fatalf("create: %s", status)
	}

	attrs := []hal.Attr{{ID: hal.PortAttrHwLaneList, Value: hal.NewUint32List(1)}}
	status = sim.Get(hal.ObjectTypePort, id, attrs)
	if status != hal.StatusBufferOverflow {
		t.Fatalf("undersized get = %s, want BUFFER_OVERFLOW", status)
	}
	lv := attrs[0].Value.(hal.Uint32List)
	if lv.Want != 3 {
		t.Fatalf("wanted count = %d, want 3", lv.Want)
	}

	attrs[0].Value = lv.Resized(lv.Want)
	if status := sim.Get(hal.ObjectTypePort, id, attrs); !status.IsSuccess() {
		t.Fatalf("resized get: %s", status)
	}
	got := attrs[0].Value.(hal.Uint32List).List
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("resized get list = %v", got)
	}
}

func TestEntryAlreadyExists(t *testing.T) {
	sim := New()
	entry := hal.FdbEntry{SwitchID: 1, BridgeID: 2, MAC: hal.MAC{0x02, 0, 0, 0, 0, 1}}

	if status := sim.CreateEntry(hal.ObjectTypeFdb, entry, nil); !status.IsSuccess() {
		t.Fatalf("first create: %s", status)
	}
	if status := sim.CreateEntry(hal.ObjectTypeFdb, entry, nil); status != hal.StatusItemAlreadyExists {
		t.Fatalf("second create = %s, want ITEM_ALREADY_EXISTS", status)
	}
}

func TestGetStatsReadAndClear(t *testing.T) {
	sim := New()
	id, _ := sim.Create(hal.ObjectTypeQueue, hal.NullObjectID, nil)
	sim.AddCounter(id, hal.QueueStatDroppedPackets, 7)

	counters := []hal.CounterID{hal.QueueStatDroppedPackets}
	out := make([]uint64, 1)
	if status := sim.GetStats(hal.ObjectTypeQueue, id, counters, hal.StatsModeReadAndClear, out); !status.IsSuccess() {
		t.Fatalf("get stats: %s", status)
	}
	if out[0] != 7 {
		t.Fatalf("counter = %d, want 7", out[0])
	}

	if status := sim.GetStats(hal.ObjectTypeQueue, id, counters, hal.StatsModeReadAndClear, out); !status.IsSuccess() {
		t.Fatalf("second get stats: %s", status)
	}
	if out[0] != 0 {
		t.Fatalf("counter after clear = %d, want 0", out[0])
	}
}

func TestFailureInjection(t *testing.T) {
	sim := New()
	sim.FailWith(hal.StatusNoMemory)

	if _, status := sim.Create(hal.ObjectTypePort, hal.NullObjectID, nil); status != hal.StatusNoMemory {
		t.Fatalf("create = %s, want NO_MEMORY", status)
	}

	sim.ClearFailure()
	if _, status := sim.Create(hal.ObjectTypePort, hal.NullObjectID, nil); !status.IsSuccess() {
		t.Fatalf("create after clear: %s", status)
	}
}

func TestReentrancyDetection(t *testing.T) {
	sim := New()
	sim.CallDelay = 200 * time.Microsecond

	// Unserialized concurrent gets must trip the violation counter: that is
	// what proves the detector works, and why callers need the global lock.
	// Gets on a missing key only read the object map, so the test exercises
	// the detector without racing the simulator's own storage.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				sim.Get(hal.ObjectTypePort, hal.ObjectID(0xdead), nil)
			}
		}()
	}
	wg.Wait()

	if sim.Violations() == 0 {
		t.Fatal("overlapping unserialized calls recorded no violations")
	}
}

func TestSerializedCallsNoViolations(t *testing.T) {
	sim := New()
	sim.CallDelay = 50 * time.Microsecond

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				mu.Lock()
				sim.Create(hal.ObjectTypePort, hal.NullObjectID, nil)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if got := sim.Violations(); got != 0 {
		t.Fatalf("violations = %d, want 0", got)
	}
}
