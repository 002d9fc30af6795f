package object

import (
	"errors"

	"github.com/swal-project/swal-go/pkg/hal"
)

// Request is one gettable shape. The set of implementations is closed:
// Single, Bundle, and Optional. Bundles may nest any of the three, so
// aggregations of attributes (full object state for warm restart, for
// example) compose out of the single-attribute rule.
type Request interface {
	fetch(c *core, key hal.Key) error
}

// Single requests one attribute. Value supplies the attribute's value shape;
// for list-valued attributes its element count is the initial buffer size.
// After a successful fetch Value holds the decoded result, with list storage
// holding exactly the element count the adapter reported.
type Single struct {
	ID    hal.AttrID
	Value hal.Value

	// Retried reports whether the buffer-overflow retry fired on the last
	// fetch.
	Retried bool
}

func (s *Single) fetch(c *core, key hal.Key) error {
	attr := hal.Attr{ID: s.ID, Value: s.Value}
	retried, err := c.getAttr(key, &attr)
	s.Retried = retried
	if err != nil {
		return err
	}
	s.Value = attr.Value
	return nil
}

// Bundle requests an ordered, fixed set of members. Members are fetched in
// declared order, each under its own lock acquisition; a member failure
// stops the fetch and surfaces that member's error.
type Bundle []Request

func (b Bundle) fetch(c *core, key hal.Key) error {
	for _, member := range b {
		if err := member.fetch(c, key); err != nil {
			return err
		}
	}
	return nil
}

// Optional requests an attribute that may be unset in hardware. The declared
// Default seeds the get; if the adapter reports the attribute as not found,
// the default stands. Either way the result is wrapped as present.
//
// The caller cannot distinguish "hardware default happens to equal the
// declared default" from "explicitly unset"; do not rely on a stronger
// contract.
type Optional struct {
	ID      hal.AttrID
	Default hal.Value

	// Value holds the result after a successful fetch.
	Value hal.Value

	// Present is true after any successful fetch.
	Present bool
}

func (o *Optional) fetch(c *core, key hal.Key) error {
	attr := hal.Attr{ID: o.ID, Value: o.Default}
	_, err := c.getAttr(key, &attr)
	if err != nil {
		var halErr *Error
		if errors.As(err, &halErr) && halErr.Status == hal.StatusItemNotFound {
			o.Value = o.Default
			o.Present = true
			return nil
		}
		return err
	}
	o.Value = attr.Value
	o.Present = true
	return nil
}
