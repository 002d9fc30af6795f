package object

import "github.com/swal-project/swal-go/pkg/hal"

// Traits describes one object category to the engine: its adapter category,
// a human-readable name for diagnostics, and the category's stats
// configuration, if it has one. Each manager declares the canonical Traits
// for its category and passes it to exactly one API instantiation.
type Traits struct {
	// Type is the adapter object category.
	Type hal.ObjectType

	// Name is the category name used in diagnostics.
	Name string

	// Stats is the category's counter configuration. Nil means the
	// category does not support stats and GetStats fails with
	// ErrStatsUnsupported.
	Stats *StatsTraits
}

// StatsTraits declares a category's counter set and read semantics.
type StatsTraits struct {
	// CounterIDs is the default counter set, in the order stats queries
	// without explicit IDs return values.
	CounterIDs []hal.CounterID

	// Mode selects cumulative or read-and-clear counter semantics.
	Mode hal.StatsMode
}
