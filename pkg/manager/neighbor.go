package manager

import (
	"errors"
	"sync"

	"github.com/swal-project/swal-go/pkg/hal"
	"github.com/swal-project/swal-go/pkg/object"
	"github.com/swal-project/swal-go/pkg/oplog"
)

// neighborTraits is the canonical traits for the neighbor category.
var neighborTraits = object.Traits{
	Type: hal.ObjectTypeNeighbor,
	Name: "neighbor",
}

// NeighborManager manages the lifecycle of neighbor entries (entry
// identity).
type NeighborManager struct {
	api *object.EntryAPI[hal.NeighborEntry]

	mu    sync.Mutex
	order []hal.NeighborEntry
}

// NewNeighborManager creates a neighbor manager over the given adapter.
func NewNeighborManager(adapter hal.Adapter, logger oplog.Logger) *NeighborManager {
	return &NeighborManager{
		api: object.NewEntryAPI[hal.NeighborEntry](neighborTraits, adapter, logger),
	}
}

// Add programs a neighbor with its destination MAC.
func (m *NeighborManager) Add(entry hal.NeighborEntry, mac hal.MAC) error {
	attrs := object.CreateAttributes{
		{ID: hal.NeighborAttrDstMAC, Value: hal.MACValue(mac)},
	}
	if err := m.api.Create(entry, attrs); err != nil {
		return err
	}

	m.mu.Lock()
	m.order = append(m.order, entry)
	m.mu.Unlock()
	return nil
}

// DstMAC returns the neighbor's programmed destination MAC.
func (m *NeighborManager) DstMAC(entry hal.NeighborEntry) (hal.MAC, error) {
	req := &object.Single{ID: hal.NeighborAttrDstMAC, Value: hal.MACValue{}}
	if err := m.api.GetAttribute(entry, req); err != nil {
		return hal.MAC{}, err
	}
	return hal.MAC(req.Value.(hal.MACValue)), nil
}

// SetDstMAC rewrites the neighbor's destination MAC.
func (m *NeighborManager) SetDstMAC(entry hal.NeighborEntry, mac hal.MAC) error {
	return m.api.SetAttribute(entry, hal.Attr{ID: hal.NeighborAttrDstMAC, Value: hal.MACValue(mac)})
}

// Remove unprograms a neighbor. The entry key must not be reused afterward.
func (m *NeighborManager) Remove(entry hal.NeighborEntry) error {
	if err := m.api.Remove(entry); err != nil {
		return err
	}
	m.forget(entry)
	return nil
}

// Entries returns the programmed neighbor entries in creation order.
func (m *NeighborManager) Entries() []hal.NeighborEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]hal.NeighborEntry, len(m.order))
	copy(out, m.order)
	return out
}

// Teardown unprograms every remaining neighbor in reverse creation order.
func (m *NeighborManager) Teardown() error {
	m.mu.Lock()
	entries := make([]hal.NeighborEntry, len(m.order))
	copy(entries, m.order)
	m.mu.Unlock()

	var errs []error
	for i := len(entries) - 1; i >= 0; i-- {
		// Keep the entry on failure so a later retry can still reach it.
		if err := m.api.Remove(entries[i]); err != nil {
			errs = append(errs, err)
			continue
		}
		m.forget(entries[i])
	}
	return errors.Join(errs...)
}

func (m *NeighborManager) forget(entry hal.NeighborEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.order {
		if e == entry {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
