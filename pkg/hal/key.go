package hal

import (
	"fmt"
	"net/netip"
)

// Key is a hardware object identity: either an adapter-assigned ObjectID
// handle or a caller-supplied entry key. Exactly one variant applies to a
// given object category.
type Key interface {
	fmt.Stringer
	isKey()
}

// ObjectID is an opaque handle assigned by the adapter at creation time.
// It identifies the object for all subsequent calls until removed.
type ObjectID uint64

// NullObjectID is the reserved null handle.
const NullObjectID ObjectID = 0

// String returns the handle in "oid:0x..." form.
func (o ObjectID) String() string {
	return fmt.Sprintf("oid:0x%x", uint64(o))
}

func (ObjectID) isKey() {}

// EntryKey is a composite identity supplied by the caller rather than
// assigned by the adapter. Entry-identity categories pass it to create,
// remove, get, and set alike; it is never reassigned.
type EntryKey interface {
	Key
	isEntryKey()
}

// RouteEntry identifies a route by switch, virtual router, and destination
// prefix.
type RouteEntry struct {
	SwitchID ObjectID
	VrID     ObjectID
	Dest     netip.Prefix
}

// String returns the entry as "route{switch, vr, dest}".
func (e RouteEntry) String() string {
	return fmt.Sprintf("route{%s, vr:%s, %s}", e.SwitchID, e.VrID, e.Dest)
}

func (RouteEntry) isKey()      {}
func (RouteEntry) isEntryKey() {}

// NeighborEntry identifies a neighbor by switch, router interface, and IP
// address.
type NeighborEntry struct {
	SwitchID    ObjectID
	InterfaceID ObjectID
	IP          netip.Addr
}

// String returns the entry as "neighbor{switch, rif, ip}".
func (e NeighborEntry) String() string {
	return fmt.Sprintf("neighbor{%s, rif:%s, %s}", e.SwitchID, e.InterfaceID, e.IP)
}

func (NeighborEntry) isKey()      {}
func (NeighborEntry) isEntryKey() {}

// FdbEntry identifies a forwarding-database entry by switch, bridge, and
// MAC address.
type FdbEntry struct {
	SwitchID ObjectID
	BridgeID ObjectID
	MAC      MAC
}

// String returns the entry as "fdb{switch, bridge, mac}".
func (e FdbEntry) String() string {
	return fmt.Sprintf("fdb{%s, bridge:%s, %s}", e.SwitchID, e.BridgeID, e.MAC)
}

func (FdbEntry) isKey()      {}
func (FdbEntry) isEntryKey() {}
