package object

import (
	"errors"
	"fmt"

	"github.com/swal-project/swal-go/pkg/hal"
)

// ErrStatsUnsupported is returned when stats are requested on a category
// whose traits declare no counter set.
var ErrStatsUnsupported = errors.New("object: category does not support stats")

// Error is the typed failure for a non-success adapter status. It carries
// the object category, the operation that failed, and the underlying status
// code for diagnosis.
type Error struct {
	// Object is the hardware object category.
	Object hal.ObjectType

	// Op describes the failed operation.
	Op string

	// Status is the adapter status code.
	Status hal.Status
}

// Error returns the failure as "category: failed to op: STATUS (code)".
func (e *Error) Error() string {
	return fmt.Sprintf("%s: failed to %s: %s (%d)", e.Object, e.Op, e.Status, int32(e.Status))
}

// newError builds the typed failure for a non-success status.
func newError(typ hal.ObjectType, op string, status hal.Status) *Error {
	return &Error{Object: typ, Op: op, Status: status}
}
