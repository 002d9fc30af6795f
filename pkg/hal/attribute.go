package hal

import (
	"fmt"
	"net/netip"
	"strings"
)

// AttrID identifies one attribute within an object category.
type AttrID uint32

// Attr is one (identifier, value) pair as exchanged with the adapter.
// The get primitive overwrites Value in place; all other primitives read it.
type Attr struct {
	ID    AttrID
	Value Value
}

// String returns the attribute as "id=value".
func (a Attr) String() string {
	if a.Value == nil {
		return fmt.Sprintf("%d=<nil>", a.ID)
	}
	return fmt.Sprintf("%d=%s", a.ID, a.Value)
}

// Value is one attribute value. The set of implementations is closed:
// adapters and the object engine switch over these concrete types.
type Value interface {
	fmt.Stringer
	isValue()
}

// ListValue is a Value with list shape. The caller's value doubles as the
// receive buffer for gets: Count is the buffer size on the way in and the
// valid element count on the way out. When the adapter signals
// StatusBufferOverflow it returns a value whose Want field holds the true
// element count so the caller can resize and retry.
type ListValue interface {
	Value

	// Count returns the number of element slots.
	Count() int

	// Wanted returns the adapter-reported true element count after a
	// buffer-overflow get, zero otherwise.
	Wanted() int

	// Resized returns a list value of the same kind with n element slots.
	Resized(n int) ListValue
}

// BoolValue is a boolean attribute value.
type BoolValue bool

func (v BoolValue) String() string { return fmt.Sprintf("%t", bool(v)) }
func (BoolValue) isValue()         {}

// Uint32Value is an unsigned 32-bit attribute value.
type Uint32Value uint32

func (v Uint32Value) String() string { return fmt.Sprintf("%d", uint32(v)) }
func (Uint32Value) isValue()         {}

// Uint64Value is an unsigned 64-bit attribute value.
type Uint64Value uint64

func (v Uint64Value) String() string { return fmt.Sprintf("%d", uint64(v)) }
func (Uint64Value) isValue()         {}

// Int32Value is a signed 32-bit attribute value, used for enum-typed
// attributes.
type Int32Value int32

func (v Int32Value) String() string { return fmt.Sprintf("%d", int32(v)) }
func (Int32Value) isValue()         {}

// OIDValue is an object-handle attribute value.
type OIDValue ObjectID

func (v OIDValue) String() string { return ObjectID(v).String() }
func (OIDValue) isValue()         {}

// MAC is a 48-bit hardware address.
type MAC [6]byte

// String returns the address in colon-separated hex form.
func (m MAC) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		m[0], m[1], m[2], m[3], m[4], m[5])
}

// MACValue is a hardware-address attribute value.
type MACValue MAC

func (v MACValue) String() string { return MAC(v).String() }
func (MACValue) isValue()         {}

// IPValue is an IP-address attribute value.
type IPValue netip.Addr

func (v IPValue) String() string { return netip.Addr(v).String() }
func (IPValue) isValue()         {}

// OIDList is a list of object handles.
type OIDList struct {
	List []ObjectID
	Want int
}

// NewOIDList returns an OIDList with n element slots.
func NewOIDList(n int) OIDList {
	return OIDList{List: make([]ObjectID, n)}
}

// String returns the list as "[oid, oid, ...]".
func (v OIDList) String() string {
	parts := make([]string, len(v.List))
	for i, id := range v.List {
		parts[i] = id.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (OIDList) isValue() {}

// Count returns the number of element slots.
func (v OIDList) Count() int { return len(v.List) }

// Wanted returns the adapter-reported true element count.
func (v OIDList) Wanted() int { return v.Want }

// Resized returns an OIDList with n element slots.
func (v OIDList) Resized(n int) ListValue { return NewOIDList(n) }

// Uint32List is a list of unsigned 32-bit values.
type Uint32List struct {
	List []uint32
	Want int
}

// NewUint32List returns a Uint32List with n element slots.
func NewUint32List(n int) Uint32List {
	return Uint32List{List: make([]uint32, n)}
}

// String returns the list as "[n, n, ...]".
func (v Uint32List) String() string {
	parts := make([]string, len(v.List))
	for i, n := range v.List {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (Uint32List) isValue() {}

// Count returns the number of element slots.
func (v Uint32List) Count() int { return len(v.List) }

// Wanted returns the adapter-reported true element count.
func (v Uint32List) Wanted() int { return v.Want }

// Resized returns a Uint32List with n element slots.
func (v Uint32List) Resized(n int) ListValue { return NewUint32List(n) }
