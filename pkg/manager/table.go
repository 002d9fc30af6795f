package manager

import (
	"errors"

	"github.com/swal-project/swal-go/pkg/hal"
	"github.com/swal-project/swal-go/pkg/oplog"
)

// Table is the composition root: it owns exactly one manager per category
// and wires them to the shared adapter. The table contains no
// hardware-facing logic of its own.
//
// Construction is two-phase: first every manager is built with no
// cross-references, then siblings are wired. Managers must not reach for a
// sibling inside their constructor. Teardown runs in reverse construction
// order.
type Table struct {
	ports     *PortManager
	bridges   *BridgeManager
	vlans     *VlanManager
	queues    *QueueManager
	routes    *RouteManager
	neighbors *NeighborManager
}

// NewTable builds every manager over the shared adapter and wires siblings.
func NewTable(adapter hal.Adapter, logger oplog.Logger, switchID hal.ObjectID) *Table {
	// Phase 1: construct, no cross-references.
	t := &Table{
		ports:     NewPortManager(adapter, logger, switchID),
		bridges:   NewBridgeManager(adapter, logger, switchID),
		vlans:     NewVlanManager(adapter, logger, switchID),
		queues:    NewQueueManager(adapter, logger, switchID),
		routes:    NewRouteManager(adapter, logger),
		neighbors: NewNeighborManager(adapter, logger),
	}

	// Phase 2: wire siblings.
	t.queues.wire(t.ports)

	return t
}

// Ports returns the port manager.
func (t *Table) Ports() *PortManager { return t.ports }

// Bridges returns the bridge manager.
func (t *Table) Bridges() *BridgeManager { return t.bridges }

// Vlans returns the VLAN manager.
func (t *Table) Vlans() *VlanManager { return t.vlans }

// Queues returns the queue manager.
func (t *Table) Queues() *QueueManager { return t.queues }

// Routes returns the route manager.
func (t *Table) Routes() *RouteManager { return t.routes }

// Neighbors returns the neighbor manager.
func (t *Table) Neighbors() *NeighborManager { return t.neighbors }

// Teardown removes everything the managers still own, in reverse
// construction order: dependents before the objects they reference.
func (t *Table) Teardown() error {
	return errors.Join(
		t.neighbors.Teardown(),
		t.routes.Teardown(),
		t.queues.Teardown(),
		t.vlans.Teardown(),
		t.bridges.Teardown(),
		t.ports.Teardown(),
	)
}
