package manager

import (
	"errors"
	"fmt"
	"sync"

	"github.com/swal-project/swal-go/pkg/hal"
	"github.com/swal-project/swal-go/pkg/object"
	"github.com/swal-project/swal-go/pkg/oplog"
)

// DefaultMTU is applied when a port is created without an explicit MTU.
const DefaultMTU = 9412

// portTraits is the canonical traits for the port category.
var portTraits = object.Traits{
	Type: hal.ObjectTypePort,
	Name: "port",
	Stats: &object.StatsTraits{
		CounterIDs: []hal.CounterID{
			hal.PortStatIfInOctets,
			hal.PortStatIfInUcastPkts,
			hal.PortStatIfInErrors,
			hal.PortStatIfOutOctets,
			hal.PortStatIfOutUcastPkts,
			hal.PortStatIfOutErrors,
		},
		Mode: hal.StatsModeRead,
	},
}

// PortConfig holds the creation attributes for one port.
type PortConfig struct {
	// Lanes are the hardware serdes lanes the port owns.
	Lanes []uint32

	// Speed is the port speed in Mbps.
	Speed uint32

	// MTU is the maximum frame size. Zero means DefaultMTU.
	MTU uint32

	// AdminUp is the initial administrative state.
	AdminUp bool
}

// PortState is a port's live attribute bundle as re-read from hardware.
type PortState struct {
	Lanes   []uint32
	Speed   uint32
	MTU     uint32
	AdminUp bool
	Queues  []hal.ObjectID
}

// PortManager manages the lifecycle of port objects.
type PortManager struct {
	api      *object.HandleAPI
	switchID hal.ObjectID

	mu sync.Mutex
	// order preserves creation order for deterministic teardown.
	order []hal.ObjectID
	ports map[hal.ObjectID]PortConfig
}

// NewPortManager creates a port manager over the given adapter.
func NewPortManager(adapter hal.Adapter, logger oplog.Logger, switchID hal.ObjectID) *PortManager {
	return &PortManager{
		api:      object.NewHandleAPI(portTraits, adapter, logger),
		switchID: switchID,
		ports:    make(map[hal.ObjectID]PortConfig),
	}
}

// Create creates a port and returns its handle.
func (m *PortManager) Create(cfg PortConfig) (hal.ObjectID, error) {
	if len(cfg.Lanes) == 0 {
		return hal.NullObjectID, fmt.Errorf("port: no hardware lanes given")
	}
	mtu := cfg.MTU
	if mtu == 0 {
		mtu = DefaultMTU
	}

	attrs := object.CreateAttributes{
		{ID: hal.PortAttrHwLaneList, Value: hal.Uint32List{List: cfg.Lanes}},
		{ID: hal.PortAttrSpeed, Value: hal.Uint32Value(cfg.Speed)},
		{ID: hal.PortAttrAdminState, Value: hal.BoolValue(cfg.AdminUp)},
		{ID: hal.PortAttrMTU, Value: hal.Uint32Value(mtu)},
	}
	id, err := m.api.Create(m.switchID, attrs)
	if err != nil {
		return hal.NullObjectID, err
	}

	m.mu.Lock()
	m.order = append(m.order, id)
	m.ports[id] = cfg
	m.mu.Unlock()
	return id, nil
}

// Remove removes a port. The handle must not be reused afterward.
func (m *PortManager) Remove(id hal.ObjectID) error {
	if err := m.api.Remove(id); err != nil {
		return err
	}
	m.forget(id)
	return nil
}

// Has reports whether the manager created and still owns the handle.
func (m *PortManager) Has(id hal.ObjectID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.ports[id]
	return ok
}

// Handles returns the live port handles in creation order.
func (m *PortManager) Handles() []hal.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]hal.ObjectID, len(m.order))
	copy(out, m.order)
	return out
}

// SetAdminState sets the administrative state of a port.
func (m *PortManager) SetAdminState(id hal.ObjectID, up bool) error {
	return m.api.SetAttribute(id, hal.Attr{ID: hal.PortAttrAdminState, Value: hal.BoolValue(up)})
}

// SetSpeed sets the port speed in Mbps.
func (m *PortManager) SetSpeed(id hal.ObjectID, speed uint32) error {
	return m.api.SetAttribute(id, hal.Attr{ID: hal.PortAttrSpeed, Value: hal.Uint32Value(speed)})
}

// Reload re-reads the port's full attribute bundle from hardware. Used for
// warm-restart state reconstruction; list buffers start small and grow via
// the engine's overflow retry.
func (m *PortManager) Reload(id hal.ObjectID) (PortState, error) {
	lanes := &object.Single{ID: hal.PortAttrHwLaneList, Value: hal.NewUint32List(1)}
	speed := &object.Single{ID: hal.PortAttrSpeed, Value: hal.Uint32Value(0)}
	admin := &object.Single{ID: hal.PortAttrAdminState, Value: hal.BoolValue(false)}
	mtu := &object.Optional{ID: hal.PortAttrMTU, Default: hal.Uint32Value(DefaultMTU)}
	queues := &object.Optional{ID: hal.PortAttrQueueList, Default: hal.NewOIDList(0)}

	bundle := object.Bundle{lanes, speed, admin, mtu, queues}
	if err := m.api.GetAttribute(id, bundle); err != nil {
		return PortState{}, err
	}

	state := PortState{
		Lanes:   lanes.Value.(hal.Uint32List).List,
		Speed:   uint32(speed.Value.(hal.Uint32Value)),
		MTU:     uint32(mtu.Value.(hal.Uint32Value)),
		AdminUp: bool(admin.Value.(hal.BoolValue)),
	}
	if ql, ok := queues.Value.(hal.OIDList); ok {
		state.Queues = ql.List
	}
	return state, nil
}

// Stats reads the port's default counter set.
func (m *PortManager) Stats(id hal.ObjectID) ([]uint64, error) {
	return m.api.GetStats(id, nil)
}

// StatsFor reads the given counters, returning values in request order.
func (m *PortManager) StatsFor(id hal.ObjectID, ids []hal.CounterID) ([]uint64, error) {
	return m.api.GetStats(id, ids)
}

// Teardown removes every remaining port in reverse creation order.
func (m *PortManager) Teardown() error {
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

func (m *PortManager) forget(id hal.ObjectID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ports, id)
	for i, h := range m.order {
		if h == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
