package warmboot

import (
	"fmt"
	"net/netip"

	"github.com/swal-project/swal-go/pkg/hal"
)

func routeEntryFromRecord(r RouteRecord) (hal.RouteEntry, error) {
	dest, err := netip.ParsePrefix(r.Dest)
	if err != nil {
		return hal.RouteEntry{}, fmt.Errorf("warmboot: route dest %q: %w", r.Dest, err)
	}
	return hal.RouteEntry{
		SwitchID: hal.ObjectID(r.SwitchID),
		VrID:     hal.ObjectID(r.VrID),
		Dest:     dest,
	}, nil
}

// NeighborEntries converts persisted neighbor records back to entry keys.
func (s *State) NeighborEntries() ([]hal.NeighborEntry, error) {
	out := make([]hal.NeighborEntry, 0, len(s.Neighbors))
	for _, n := range s.Neighbors {
		ip, err := netip.ParseAddr(n.IP)
		if err != nil {
			return nil, fmt.Errorf("warmboot: neighbor ip %q: %w", n.IP, err)
		}
		out = append(out, hal.NeighborEntry{
			SwitchID:    hal.ObjectID(n.SwitchID),
			InterfaceID: hal.ObjectID(n.InterfaceID),
			IP:          ip,
		})
	}
	return out, nil
}
