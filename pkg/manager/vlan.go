package manager

import (
	"errors"
	"fmt"
	"sync"

	"github.com/swal-project/swal-go/pkg/hal"
	"github.com/swal-project/swal-go/pkg/object"
	"github.com/swal-project/swal-go/pkg/oplog"
)

// vlanTraits is the canonical traits for the VLAN category.
var vlanTraits = object.Traits{
	Type: hal.ObjectTypeVlan,
	Name: "vlan",
}

// VlanManager manages the lifecycle of VLAN objects, indexed by VLAN ID.
type VlanManager struct {
	api      *object.HandleAPI
	switchID hal.ObjectID

	mu    sync.Mutex
	order []uint16
	vlans map[uint16]hal.ObjectID
}

// NewVlanManager creates a VLAN manager over the given adapter.
func NewVlanManager(adapter hal.Adapter, logger oplog.Logger, switchID hal.ObjectID) *VlanManager {
	return &VlanManager{
		api:      object.NewHandleAPI(vlanTraits, adapter, logger),
		switchID: switchID,
		vlans:    make(map[uint16]hal.ObjectID),
	}
}

// Create creates a VLAN with the given 802.1Q VLAN ID and returns its handle.
func (m *VlanManager) Create(vlanID uint16) (hal.ObjectID, error) {
	if vlanID == 0 || vlanID > 4094 {
		return hal.NullObjectID, fmt.Errorf("vlan: id %d out of range", vlanID)
	}

	// Reserve the ID before touching hardware so a concurrent Create of
	// the same VLAN loses here instead of orphaning a second object.
	m.mu.Lock()
	if _, exists := m.vlans[vlanID]; exists {
		m.mu.Unlock()
		return hal.NullObjectID, fmt.Errorf("vlan: id %d already exists", vlanID)
	}
	m.vlans[vlanID] = hal.NullObjectID
	m.mu.Unlock()

	attrs := object.CreateAttributes{
		{ID: hal.VlanAttrVlanID, Value: hal.Uint32Value(vlanID)},
	}
	id, err := m.api.Create(m.switchID, attrs)

	m.mu.Lock()
	if err != nil {
		delete(m.vlans, vlanID)
		m.mu.Unlock()
		return hal.NullObjectID, err
	}
	m.order = append(m.order, vlanID)
	m.vlans[vlanID] = id
	m.mu.Unlock()
	return id, nil
}

// Lookup returns the handle for a VLAN ID.
func (m *VlanManager) Lookup(vlanID uint16) (hal.ObjectID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.vlans[vlanID]
	return id, ok && id != hal.NullObjectID
}

// Remove removes the VLAN with the given VLAN ID.
func (m *VlanManager) Remove(vlanID uint16) error {
	m.mu.Lock()
	id, ok := m.vlans[vlanID]
	m.mu.Unlock()
	if !ok || id == hal.NullObjectID {
		return fmt.Errorf("vlan: id %d not found", vlanID)
	}

	if err := m.api.Remove(id); err != nil {
		return err
	}
	m.forget(vlanID)
	return nil
}

// Members returns the VLAN's member handles.
func (m *VlanManager) Members(vlanID uint16) ([]hal.ObjectID, error) {
	m.mu.Lock()
	id, ok := m.vlans[vlanID]
	m.mu.Unlock()
	if !ok || id == hal.NullObjectID {
		return nil, fmt.Errorf("vlan: id %d not found", vlanID)
	}

	req := &object.Single{ID: hal.VlanAttrMemberList, Value: hal.NewOIDList(4)}
	if err := m.api.GetAttribute(id, req); err != nil {
		return nil, err
	}
	return req.Value.(hal.OIDList).List, nil
}

// VlanIDs returns the live VLAN IDs in creation order.
func (m *VlanManager) VlanIDs() []uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]uint16, len(m.order))
	copy(out, m.order)
	return out
}

// Teardown removes every remaining VLAN in reverse creation order.
func (m *VlanManager) Teardown() error {
	m.mu.Lock()
	ids := make([]uint16, len(m.order))
	copy(ids, m.order)
	m.mu.Unlock()

	var errs []error
	for i := len(ids) - 1; i >= 0; i-- {
		m.mu.Lock()
		handle, ok := m.vlans[ids[i]]
		m.mu.Unlock()
		if !ok {
			continue
		}
		// Keep the handle on failure so a later retry can still reach it.
		if err := m.api.Remove(handle); err != nil {
			errs = append(errs, err)
			continue
		}
		m.forget(ids[i])
	}
	return errors.Join(errs...)
}

func (m *VlanManager) forget(vlanID uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vlans, vlanID)
	for i, v := range m.order {
		if v == vlanID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
