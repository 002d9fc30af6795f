// Package halsim provides an in-memory hal.Adapter for tests and for the
// agent's lab mode.
//
// The simulator honors the adapter contract package hal documents,
// including the list-value buffer-overflow writeback, and additionally
// detects reentrant use: hal adapters are non-reentrant, so any two
// overlapping primitive invocations are recorded as violations for tests to
// assert on.
package halsim

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/swal-project/swal-go/pkg/hal"
)

// simObject is one live hardware object: its category and attribute store.
type simObject struct {
	typ   hal.ObjectType
	attrs map[hal.AttrID]hal.Value
}

// Sim is an in-memory hal.Adapter.
//
// Sim relies on the caller for serialization, exactly like a real vendor
// driver: its internal maps are guarded only by the reentrancy check. The
// object engine's global lock is what makes it safe.
type Sim struct {
	// CallDelay, when non-zero, is slept inside every primitive to widen
	// the race window in concurrency tests.
	CallDelay time.Duration

	inCall     atomic.Int32
	violations atomic.Int64

	nextOID uint64
	objects map[string]*simObject
	entries map[string]bool // entry-identity keys, for already-exists checks
	stats   map[string]map[hal.CounterID]uint64

	failMu   sync.Mutex
	failWith hal.Status
}

// New creates an empty simulator.
func New() *Sim {
	return &Sim{
		nextOID: 0x1000,
		objects: make(map[string]*simObject),
		entries: make(map[string]bool),
		stats:   make(map[string]map[hal.CounterID]uint64),
	}
}

// enter flags the start of a primitive, recording a violation if another
// primitive is already in flight.
func (s *Sim) enter() {
	if !s.inCall.CompareAndSwap(0, 1) {
		s.violations.Add(1)
	}
	if s.CallDelay > 0 {
		time.Sleep(s.CallDelay)
	}
}

// exit flags the end of a primitive.
func (s *Sim) exit() {
	s.inCall.Store(0)
}

// Violations returns how many reentrant invocations were detected.
func (s *Sim) Violations() int64 {
	return s.violations.Load()
}

// FailWith makes every primitive return status until ClearFailure.
func (s *Sim) FailWith(status hal.Status) {
	s.failMu.Lock()
	s.failWith = status
	s.failMu.Unlock()
}

// ClearFailure restores normal operation.
func (s *Sim) ClearFailure() {
	s.failMu.Lock()
	s.failWith = hal.StatusSuccess
	s.failMu.Unlock()
}

func (s *Sim) injected() (hal.Status, bool) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	if s.failWith.IsError() {
		return s.failWith, true
	}
	return hal.StatusSuccess, false
}

// ObjectCount returns the number of live objects.
func (s *Sim) ObjectCount() int {
	return len(s.objects)
}

// Objects returns a snapshot of live object identities and their categories.
func (s *Sim) Objects() map[string]hal.ObjectType {
	out := make(map[string]hal.ObjectType, len(s.objects))
	for key, obj := range s.objects {
		out[key] = obj.typ
	}
	return out
}

// AddCounter adds delta to one counter of the object addressed by key.
// Test hook; not part of the adapter surface.
func (s *Sim) AddCounter(key hal.Key, id hal.CounterID, delta uint64) {
	ks := key.String()
	if s.stats[ks] == nil {
		s.stats[ks] = make(map[hal.CounterID]uint64)
	}
	s.stats[ks][id] += delta
}

// Create implements hal.Adapter.
func (s *Sim) Create(typ hal.ObjectType, switchID hal.ObjectID, attrs []hal.Attr) (hal.ObjectID, hal.Status) {
	s.enter()
	defer s.exit()

	if st, ok := s.injected(); ok {
		return hal.NullObjectID, st
	}

	s.nextOID++
	id := hal.ObjectID(s.nextOID)
	obj := &simObject{typ: typ, attrs: make(map[hal.AttrID]hal.Value, len(attrs))}
	for _, a := range attrs {
		obj.attrs[a.ID] = storedCopy(a.Value)
	}
	s.objects[id.String()] = obj
	return id, hal.StatusSuccess
}

// CreateEntry implements hal.Adapter.
func (s *Sim) CreateEntry(typ hal.ObjectType, entry hal.EntryKey, attrs []hal.Attr) hal.Status {
	s.enter()
	defer s.exit()

	if st, ok := s.injected(); ok {
		return st
	}

	key := entry.String()
	if s.entries[key] {
		return hal.StatusItemAlreadyExists
	}
	obj := &simObject{typ: typ, attrs: make(map[hal.AttrID]hal.Value, len(attrs))}
	for _, a := range attrs {
		obj.attrs[a.ID] = storedCopy(a.Value)
	}
	s.objects[key] = obj
	s.entries[key] = true
	return hal.StatusSuccess
}

// Remove implements hal.Adapter.
func (s *Sim) Remove(typ hal.ObjectType, key hal.Key) hal.Status {
	s.enter()
	defer s.exit()

	if st, ok := s.injected(); ok {
		return st
	}

	ks := key.String()
	if _, ok := s.objects[ks]; !ok {
		return hal.StatusItemNotFound
	}
	delete(s.objects, ks)
	delete(s.entries, ks)
	delete(s.stats, ks)
	return hal.StatusSuccess
}

// Get implements hal.Adapter, including the buffer-overflow writeback for
// list values.
func (s *Sim) Get(typ hal.ObjectType, key hal.Key, attrs []hal.Attr) hal.Status {
	s.enter()
	defer s.exit()

	if st, ok := s.injected(); ok {
		return st
	}

	obj, ok := s.objects[key.String()]
	if !ok {
		return hal.StatusItemNotFound
	}

	for i := range attrs {
		stored, ok := obj.attrs[attrs[i].ID]
		if !ok {
			return hal.StatusItemNotFound
		}

		storedList, isList := stored.(hal.ListValue)
		if !isList {
			attrs[i].Value = stored
			continue
		}

		buf, ok := attrs[i].Value.(hal.ListValue)
		if !ok || buf.Count() < storedList.Count() {
			attrs[i].Value = withWanted(attrs[i].Value, storedList.Count())
			return hal.StatusBufferOverflow
		}
		attrs[i].Value = storedCopy(stored)
	}
	return hal.StatusSuccess
}

// Set implements hal.Adapter.
func (s *Sim) Set(typ hal.ObjectType, key hal.Key, attr hal.Attr) hal.Status {
	s.enter()
	defer s.exit()

	if st, ok := s.injected(); ok {
		return st
	}

	obj, ok := s.objects[key.String()]
	if !ok {
		return hal.StatusItemNotFound
	}
	obj.attrs[attr.ID] = storedCopy(attr.Value)
	return hal.StatusSuccess
}

// GetStats implements hal.Adapter.
func (s *Sim) GetStats(typ hal.ObjectType, key hal.Key, counters []hal.CounterID, mode hal.StatsMode, out []uint64) hal.Status {
	s.enter()
	defer s.exit()

	if st, ok := s.injected(); ok {
		return st
	}

	ks := key.String()
	if _, ok := s.objects[ks]; !ok {
		return hal.StatusItemNotFound
	}
	if len(out) < len(counters) {
		return hal.StatusInvalidParameter
	}

	values := s.stats[ks]
	for i, id := range counters {
		out[i] = values[id]
		if mode == hal.StatsModeReadAndClear && values != nil {
			values[id] = 0
		}
	}
	return hal.StatusSuccess
}

// storedCopy returns a value safe to retain or hand out: list values get
// their backing slices copied at exact length.
func storedCopy(v hal.Value) hal.Value {
	switch lv := v.(type) {
	case hal.OIDList:
		out := hal.OIDList{List: make([]hal.ObjectID, len(lv.List))}
		copy(out.List, lv.List)
		return out
	case hal.Uint32List:
		out := hal.Uint32List{List: make([]uint32, len(lv.List))}
		copy(out.List, lv.List)
		return out
	default:
		return v
	}
}

// withWanted returns the caller's list value with the true count written
// into its Want field, matching what a C adapter does with the count field.
func withWanted(v hal.Value, want int) hal.Value {
	switch lv := v.(type) {
	case hal.OIDList:
		lv.Want = want
		return lv
	case hal.Uint32List:
		lv.Want = want
		return lv
	default:
		// Caller supplied a non-list buffer for a list attribute; nothing
		// to write back. The overflow status alone reaches the engine.
		return v
	}
}

// Compile-time interface satisfaction check.
var _ hal.Adapter = (*Sim)(nil)
