package hal

// CounterID identifies one hardware counter within an object category.
type CounterID uint32

// StatsMode selects the counter read semantics for a stats query.
type StatsMode int

const (
	// StatsModeRead reads cumulative counter values.
	StatsModeRead StatsMode = iota

	// StatsModeReadAndClear reads counter values and resets them, yielding
	// per-interval deltas across successive reads.
	StatsModeReadAndClear
)

// String returns the mode name.
func (m StatsMode) String() string {
	switch m {
	case StatsModeRead:
		return "READ"
	case StatsModeReadAndClear:
		return "READ_AND_CLEAR"
	default:
		return "UNKNOWN"
	}
}
