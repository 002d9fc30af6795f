package hal

// Adapter is the vendor hardware interface the agent drives. It mirrors the
// underlying C function tables: one primitive per verb, flat attribute
// arrays, status-code returns.
//
// Adapters are assumed non-reentrant: callers must never issue two calls
// concurrently. Package object enforces this with a process-wide lock;
// nothing below that layer may be called directly.
//
// Contract for Get: the adapter overwrites each attrs[i].Value with the
// decoded value. For a list-valued attribute whose buffer (the value's
// Count) is smaller than the true element count, the adapter stores the true
// count in the value's Want field and returns StatusBufferOverflow without
// filling elements. On success a list value holds exactly the true count.
type Adapter interface {
	// Create creates a handle-identity object and returns its new handle.
	Create(typ ObjectType, switchID ObjectID, attrs []Attr) (ObjectID, Status)

	// CreateEntry creates an entry-identity object under the caller's key.
	CreateEntry(typ ObjectType, entry EntryKey, attrs []Attr) Status

	// Remove removes the object addressed by key (either identity variant).
	Remove(typ ObjectType, key Key) Status

	// Get reads the attributes named by attrs, writing values in place.
	Get(typ ObjectType, key Key, attrs []Attr) Status

	// Set writes one fully specified attribute.
	Set(typ ObjectType, key Key, attr Attr) Status

	// GetStats reads one value per counter ID into out, which the caller
	// sizes to len(counters). Mode selects the counter read semantics.
	GetStats(typ ObjectType, key Key, counters []CounterID, mode StatsMode, out []uint64) Status
}
