package warmboot

import (
	"github.com/swal-project/swal-go/pkg/hal"
	"github.com/swal-project/swal-go/pkg/manager"
)

// Snapshot assembles the persisted inventory from the manager table.
//
// Port state is re-read from hardware through the engine's attribute
// bundles rather than taken from cached configuration, so the snapshot
// reflects what the ASIC actually holds. Any read failure aborts the
// snapshot; a partial inventory is worse than none.
func Snapshot(table *manager.Table, agentID string) (*State, error) {
	state := &State{AgentID: agentID}

	for _, id := range table.Ports().Handles() {
		ps, err := table.Ports().Reload(id)
		if err != nil {
			return nil, err
		}
		state.Ports = append(state.Ports, PortRecord{
			OID:     uint64(id),
			Lanes:   ps.Lanes,
			Speed:   ps.Speed,
			MTU:     ps.MTU,
			AdminUp: ps.AdminUp,
		})
	}

	for _, id := range table.Bridges().Handles() {
		state.Bridges = append(state.Bridges, uint64(id))
	}

	for _, vlanID := range table.Vlans().VlanIDs() {
		oid, ok := table.Vlans().Lookup(vlanID)
		if !ok {
			continue
		}
		state.Vlans = append(state.Vlans, VlanRecord{VlanID: vlanID, OID: uint64(oid)})
	}

	for _, id := range table.Queues().Handles() {
		state.Queues = append(state.Queues, uint64(id))
	}

	for _, entry := range table.Routes().Entries() {
		state.Routes = append(state.Routes, RouteRecord{
			SwitchID: uint64(entry.SwitchID),
			VrID:     uint64(entry.VrID),
			Dest:     entry.Dest.String(),
		})
	}

	for _, entry := range table.Neighbors().Entries() {
		state.Neighbors = append(state.Neighbors, NeighborRecord{
			SwitchID:    uint64(entry.SwitchID),
			InterfaceID: uint64(entry.InterfaceID),
			IP:          entry.IP.String(),
		})
	}

	return state, nil
}

// RouteEntries converts persisted route records back to entry keys.
func (s *State) RouteEntries() ([]hal.RouteEntry, error) {
	out := make([]hal.RouteEntry, 0, len(s.Routes))
	for _, r := range s.Routes {
		entry, err := routeEntryFromRecord(r)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}
