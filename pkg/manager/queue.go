package manager

import (
	"errors"
	"fmt"
	"sync"

	"github.com/swal-project/swal-go/pkg/hal"
	"github.com/swal-project/swal-go/pkg/object"
	"github.com/swal-project/swal-go/pkg/oplog"
)

// queueTraits is the canonical traits for the queue category. Queue
// counters are read-and-clear: successive reads yield per-interval deltas.
var queueTraits = object.Traits{
	Type: hal.ObjectTypeQueue,
	Name: "queue",
	Stats: &object.StatsTraits{
		CounterIDs: []hal.CounterID{
			hal.QueueStatPackets,
			hal.QueueStatBytes,
			hal.QueueStatDroppedPackets,
		},
		Mode: hal.StatsModeReadAndClear,
	},
}

// QueueManager manages the lifecycle of per-port queue objects.
//
// The port sibling is wired in a second phase after all managers are
// constructed; see Table.
type QueueManager struct {
	api      *object.HandleAPI
	switchID hal.ObjectID

	mu    sync.Mutex
	order []hal.ObjectID
	ports *PortManager
}

// NewQueueManager creates a queue manager over the given adapter.
func NewQueueManager(adapter hal.Adapter, logger oplog.Logger, switchID hal.ObjectID) *QueueManager {
	return &QueueManager{
		api:      object.NewHandleAPI(queueTraits, adapter, logger),
		switchID: switchID,
	}
}

// wire connects sibling managers. Called by Table after construction; the
// constructor must not reach for siblings.
func (m *QueueManager) wire(ports *PortManager) {
	m.ports = ports
}

// CreateForPort creates queue number index on the given port.
func (m *QueueManager) CreateForPort(portID hal.ObjectID, index uint32) (hal.ObjectID, error) {
	if m.ports == nil || !m.ports.Has(portID) {
		return hal.NullObjectID, fmt.Errorf("queue: unknown port %s", portID)
	}

	attrs := object.CreateAttributes{
		{ID: hal.QueueAttrPortID, Value: hal.OIDValue(portID)},
		{ID: hal.QueueAttrIndex, Value: hal.Uint32Value(index)},
	}
	id, err := m.api.Create(m.switchID, attrs)
	if err != nil {
		return hal.NullObjectID, err
	}

	// The port may have been removed while the create was in flight;
	// back the queue out rather than track one attached to nothing.
	if !m.ports.Has(portID) {
		err := fmt.Errorf("queue: unknown port %s", portID)
		if rerr := m.api.Remove(id); rerr != nil {
			return hal.NullObjectID, errors.Join(err, rerr)
		}
		return hal.NullObjectID, err
	}

	m.mu.Lock()
	m.order = append(m.order, id)
	m.mu.Unlock()
	return id, nil
}

// Remove removes a queue.
func (m *QueueManager) Remove(id hal.ObjectID) error {
	if err := m.api.Remove(id); err != nil {
		return err
	}
	m.forget(id)
	return nil
}

// Stats reads the queue's default counter set (read-and-clear).
func (m *QueueManager) Stats(id hal.ObjectID) ([]uint64, error) {
	return m.api.GetStats(id, nil)
}

// StatsFor reads the given counters, returning values in request order.
func (m *QueueManager) StatsFor(id hal.ObjectID, ids []hal.CounterID) ([]uint64, error) {
	return m.api.GetStats(id, ids)
}

// Handles returns the live queue handles in creation order.
func (m *QueueManager) Handles() []hal.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]hal.ObjectID, len(m.order))
	copy(out, m.order)
	return out
}

// Teardown removes every remaining queue in reverse creation order.
func (m *QueueManager) Teardown() error {
	m.mu.Lock()
	handles := make([]hal.ObjectID, len(m.order))
	copy(handles, m.order)
	m.mu.Unlock()

	var errs []error
	for i := len(handles) - 1; i >= 0; i-- {
		// Keep the handle on failure so a later retry can still reach it.
		if err := m.api.Remove(handles[i]); err != nil {
			errs = append(errs, err)
			continue
		}
		m.forget(handles[i])
	}
	return errors.Join(errs...)
}

func (m *QueueManager) forget(id hal.ObjectID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, h := range m.order {
		if h == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
