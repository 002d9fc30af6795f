package manager

import (
	"errors"
	"sync"

	"github.com/swal-project/swal-go/pkg/hal"
	"github.com/swal-project/swal-go/pkg/object"
	"github.com/swal-project/swal-go/pkg/oplog"
)

// routeTraits is the canonical traits for the route category.
var routeTraits = object.Traits{
	Type: hal.ObjectTypeRoute,
	Name: "route",
}

// RouteManager manages the lifecycle of route entries. Routes use entry
// identity: the caller supplies the key, the adapter never assigns one.
// The routing table itself (prefix store, longest-prefix match) lives
// above this layer.
type RouteManager struct {
	api *object.EntryAPI[hal.RouteEntry]

	mu    sync.Mutex
	order []hal.RouteEntry
}

// NewRouteManager creates a route manager over the given adapter.
func NewRouteManager(adapter hal.Adapter, logger oplog.Logger) *RouteManager {
	return &RouteManager{
		api: object.NewEntryAPI[hal.RouteEntry](routeTraits, adapter, logger),
	}
}

// Add programs a route pointing at the given next hop.
func (m *RouteManager) Add(entry hal.RouteEntry, nextHopID hal.ObjectID) error {
	attrs := object.CreateAttributes{
		{ID: hal.RouteAttrPacketAction, Value: hal.Int32Value(hal.PacketActionForward)},
		{ID: hal.RouteAttrNextHopID, Value: hal.OIDValue(nextHopID)},
	}
	if err := m.api.Create(entry, attrs); err != nil {
		return err
	}

	m.mu.Lock()
	m.order = append(m.order, entry)
	m.mu.Unlock()
	return nil
}

// AddDrop programs a route that drops matching traffic.
func (m *RouteManager) AddDrop(entry hal.RouteEntry) error {
	attrs := object.CreateAttributes{
		{ID: hal.RouteAttrPacketAction, Value: hal.Int32Value(hal.PacketActionDrop)},
	}
	if err := m.api.Create(entry, attrs); err != nil {
		return err
	}

	m.mu.Lock()
	m.order = append(m.order, entry)
	m.mu.Unlock()
	return nil
}

// SetNextHop repoints an existing route at a new next hop.
func (m *RouteManager) SetNextHop(entry hal.RouteEntry, nextHopID hal.ObjectID) error {
	return m.api.SetAttribute(entry, hal.Attr{ID: hal.RouteAttrNextHopID, Value: hal.OIDValue(nextHopID)})
}

// NextHop returns the route's programmed next hop handle.
func (m *RouteManager) NextHop(entry hal.RouteEntry) (hal.ObjectID, error) {
	req := &object.Single{ID: hal.RouteAttrNextHopID, Value: hal.OIDValue(hal.NullObjectID)}
	if err := m.api.GetAttribute(entry, req); err != nil {
		return hal.NullObjectID, err
	}
	return hal.ObjectID(req.Value.(hal.OIDValue)), nil
}

// Remove unprograms a route. The entry key must not be reused afterward.
func (m *RouteManager) Remove(entry hal.RouteEntry) error {
	if err := m.api.Remove(entry); err != nil {
		return err
	}
	m.forget(entry)
	return nil
}

// Entries returns the programmed route entries in creation order.
func (m *RouteManager) Entries() []hal.RouteEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]hal.RouteEntry, len(m.order))
	copy(out, m.order)
	return out
}

// Teardown unprograms every remaining route in reverse creation order.
func (m *RouteManager) Teardown() error {
	m.mu.Lock()
	entries := make([]hal.RouteEntry, len(m.order))
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

func (m *RouteManager) forget(entry hal.RouteEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.order {
		if e == entry {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
