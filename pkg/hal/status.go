package hal

// Status represents a hardware adapter status code.
//
// Zero is the single success value. StatusBufferOverflow is special: it is
// returned only from the get-attribute primitive when a list-valued
// attribute's buffer is too small, with the true element count written back
// into the list value. Every other value is a plain failure.
type Status int32

const (
	// StatusSuccess indicates the call completed successfully.
	StatusSuccess Status = 0

	// StatusFailure indicates a generic, unclassified failure.
	StatusFailure Status = -1

	// StatusNotSupported indicates the primitive is not supported by the
	// adapter for this object category.
	StatusNotSupported Status = -2

	// StatusNoMemory indicates the adapter ran out of resources.
	StatusNoMemory Status = -3

	// StatusInvalidParameter indicates a malformed attribute or identity.
	StatusInvalidParameter Status = -5

	// StatusItemAlreadyExists indicates a create collided with an existing
	// object or entry.
	StatusItemAlreadyExists Status = -6

	// StatusItemNotFound indicates the identity or attribute does not exist.
	StatusItemNotFound Status = -7

	// StatusBufferOverflow indicates a list-valued get was issued with a
	// buffer smaller than the true element count. The adapter writes the
	// true count back into the list value's Want field.
	StatusBufferOverflow Status = -8

	// StatusTableFull indicates a hardware table has no free slots.
	StatusTableFull Status = -10

	// StatusUninitialized indicates the adapter has not been initialized.
	StatusUninitialized Status = -11
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailure:
		return "FAILURE"
	case StatusNotSupported:
		return "NOT_SUPPORTED"
	case StatusNoMemory:
		return "NO_MEMORY"
	case StatusInvalidParameter:
		return "INVALID_PARAMETER"
	case StatusItemAlreadyExists:
		return "ITEM_ALREADY_EXISTS"
	case StatusItemNotFound:
		return "ITEM_NOT_FOUND"
	case StatusBufferOverflow:
		return "BUFFER_OVERFLOW"
	case StatusTableFull:
		return "TABLE_FULL"
	case StatusUninitialized:
		return "UNINITIALIZED"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess returns true if the status indicates success.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}

// IsError returns true if the status indicates an error.
func (s Status) IsError() bool {
	return s != StatusSuccess
}
