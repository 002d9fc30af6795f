package manager

import (
	"errors"
	"sync"

	"github.com/swal-project/swal-go/pkg/hal"
	"github.com/swal-project/swal-go/pkg/object"
	"github.com/swal-project/swal-go/pkg/oplog"
)

// bridgeTraits is the canonical traits for the bridge category.
var bridgeTraits = object.Traits{
	Type: hal.ObjectTypeBridge,
	Name: "bridge",
}

// BridgeManager manages the lifecycle of bridge objects.
type BridgeManager struct {
	api      *object.HandleAPI
	switchID hal.ObjectID

	mu    sync.Mutex
	order []hal.ObjectID
}

// NewBridgeManager creates a bridge manager over the given adapter.
func NewBridgeManager(adapter hal.Adapter, logger oplog.Logger, switchID hal.ObjectID) *BridgeManager {
	return &BridgeManager{
		api:      object.NewHandleAPI(bridgeTraits, adapter, logger),
		switchID: switchID,
	}
}

// Create creates a bridge of the given type (hal.BridgeType1Q or
// hal.BridgeType1D) and returns its handle.
func (m *BridgeManager) Create(bridgeType int32) (hal.ObjectID, error) {
	attrs := object.CreateAttributes{
		{ID: hal.BridgeAttrType, Value: hal.Int32Value(bridgeType)},
	}
	id, err := m.api.Create(m.switchID, attrs)
	if err != nil {
		return hal.NullObjectID, err
	}

	m.mu.Lock()
	m.order = append(m.order, id)
	m.mu.Unlock()
	return id, nil
}

// Remove removes a bridge.
func (m *BridgeManager) Remove(id hal.ObjectID) error {
	if err := m.api.Remove(id); err != nil {
		return err
	}
	m.forget(id)
	return nil
}

// Ports returns the bridge's member port handles, growing the list buffer
// through the engine's overflow retry as needed.
func (m *BridgeManager) Ports(id hal.ObjectID) ([]hal.ObjectID, error) {
	req := &object.Single{ID: hal.BridgeAttrPortList, Value: hal.NewOIDList(4)}
	if err := m.api.GetAttribute(id, req); err != nil {
		return nil, err
	}
	return req.Value.(hal.OIDList).List, nil
}

// MaxLearnedAddresses returns the bridge's learning limit, or the hardware
// default when unset.
func (m *BridgeManager) MaxLearnedAddresses(id hal.ObjectID) (uint32, error) {
	req := &object.Optional{ID: hal.BridgeAttrMaxLearnedAddresses, Default: hal.Uint32Value(0)}
	if err := m.api.GetAttribute(id, req); err != nil {
		return 0, err
	}
	return uint32(req.Value.(hal.Uint32Value)), nil
}

// Handles returns the live bridge handles in creation order.
func (m *BridgeManager) Handles() []hal.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]hal.ObjectID, len(m.order))
	copy(out, m.order)
	return out
}

// Teardown removes every remaining bridge in reverse creation order.
func (m *BridgeManager) Teardown() error {
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

func (m *BridgeManager) forget(id hal.ObjectID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, h := range m.order {
		if h == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
