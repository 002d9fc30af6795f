package manager

import (
	"github.com/swal-project/swal-go/pkg/hal"
	"github.com/swal-project/swal-go/pkg/object"
	"github.com/swal-project/swal-go/pkg/oplog"
)

// switchTraits is the canonical traits for the switch category.
var switchTraits = object.Traits{
	Type: hal.ObjectTypeSwitch,
	Name: "switch",
}

// SwitchManager creates the switch object every other category hangs off.
// It exists outside the Table: the switch handle is an input to table
// construction, not something the table owns.
type SwitchManager struct {
	api *object.HandleAPI
	id  hal.ObjectID
}

// NewSwitchManager creates a switch manager over the given adapter.
func NewSwitchManager(adapter hal.Adapter, logger oplog.Logger) *SwitchManager {
	return &SwitchManager{api: object.NewHandleAPI(switchTraits, adapter, logger)}
}

// Create initializes the switch and returns its handle.
func (m *SwitchManager) Create(srcMAC hal.MAC) (hal.ObjectID, error) {
	attrs := object.CreateAttributes{
		{ID: hal.SwitchAttrInitSwitch, Value: hal.BoolValue(true)},
		{ID: hal.SwitchAttrSrcMAC, Value: hal.MACValue(srcMAC)},
	}
	id, err := m.api.Create(hal.NullObjectID, attrs)
	if err != nil {
		return hal.NullObjectID, err
	}
	m.id = id
	return id, nil
}

// ID returns the switch handle, or hal.NullObjectID before Create.
func (m *SwitchManager) ID() hal.ObjectID {
	return m.id
}

// PortList returns the switch's port handles as reported by hardware.
func (m *SwitchManager) PortList() ([]hal.ObjectID, error) {
	req := &object.Single{ID: hal.SwitchAttrPortList, Value: hal.NewOIDList(8)}
	if err := m.api.GetAttribute(m.id, req); err != nil {
		return nil, err
	}
	return req.Value.(hal.OIDList).List, nil
}

// Remove removes the switch object.
func (m *SwitchManager) Remove() error {
	if m.id == hal.NullObjectID {
		return nil
	}
	err := m.api.Remove(m.id)
	if err == nil {
		m.id = hal.NullObjectID
	}
	return err
}
