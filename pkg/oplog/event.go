package oplog

import (
	"time"

	"github.com/swal-project/swal-go/pkg/hal"
)

// Event represents one hardware-adapter operation.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the operation completed (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// AgentID uniquely identifies the agent run (UUID).
	AgentID string `cbor:"2,keyasint,omitempty"`

	// Object is the hardware object category.
	Object hal.ObjectType `cbor:"3,keyasint"`

	// Op is the operation performed.
	Op Op `cbor:"4,keyasint"`

	// Key is the string form of the object identity. For handle creates it
	// holds the adapter-assigned handle, the null handle on failure.
	Key string `cbor:"5,keyasint,omitempty"`

	// Status is the adapter status the operation finished with.
	Status hal.Status `cbor:"6,keyasint"`

	// Attrs holds the attributes exchanged with the adapter, if any.
	Attrs []AttrDump `cbor:"7,keyasint,omitempty"`

	// Duration is the wall time spent in the adapter, including a
	// buffer-overflow retry round trip.
	Duration time.Duration `cbor:"8,keyasint,omitempty"`

	// Retried indicates the get was reissued after a buffer overflow.
	Retried bool `cbor:"9,keyasint,omitempty"`
}

// AttrDump is the loggable form of one attribute.
type AttrDump struct {
	// ID is the attribute identifier.
	ID uint32 `cbor:"1,keyasint"`

	// Value is the string form of the attribute value.
	Value string `cbor:"2,keyasint,omitempty"`
}

// DumpAttrs converts an attribute slice to its loggable form.
func DumpAttrs(attrs []hal.Attr) []AttrDump {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]AttrDump, len(attrs))
	for i, a := range attrs {
		d := AttrDump{ID: uint32(a.ID)}
		if a.Value != nil {
			d.Value = a.Value.String()
		}
		out[i] = d
	}
	return out
}

// Op identifies the operation an event records.
type Op uint8

const (
	// OpCreate is a create call (either identity variant).
	OpCreate Op = 0
	// OpRemove is a remove call.
	OpRemove Op = 1
	// OpGet is a get-attribute call.
	OpGet Op = 2
	// OpSet is a set-attribute call.
	OpSet Op = 3
	// OpGetStats is a stats read.
	OpGetStats Op = 4
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpCreate:
		return "CREATE"
	case OpRemove:
		return "REMOVE"
	case OpGet:
		return "GET"
	case OpSet:
		return "SET"
	case OpGetStats:
		return "GET_STATS"
	default:
		return "UNKNOWN"
	}
}
