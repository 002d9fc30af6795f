package object

import (
	"time"

	"github.com/swal-project/swal-go/pkg/hal"
	"github.com/swal-project/swal-go/pkg/oplog"
)

// CreateAttributes is the ordered bundle of attributes required to create an
// object. The engine reads it once per call and retains nothing.
type CreateAttributes []hal.Attr

// core is the engine shared by both identity variants. It owns no state
// beyond its wiring: every call marshals the caller's values, invokes the
// adapter under the global lock, translates the status, and returns.
type core struct {
	traits  Traits
	adapter hal.Adapter
	logger  oplog.Logger
}

func newCore(traits Traits, adapter hal.Adapter, logger oplog.Logger) core {
	if logger == nil {
		logger = oplog.NoopLogger{}
	}
	return core{traits: traits, adapter: adapter, logger: logger}
}

// emit records one completed adapter operation.
func (c *core) emit(op oplog.Op, key string, status hal.Status, attrs []hal.Attr, start time.Time, retried bool) {
	c.logger.Log(oplog.Event{
		Timestamp: time.Now(),
		Object:    c.traits.Type,
		Op:        op,
		Key:       key,
		Status:    status,
		Attrs:     oplog.DumpAttrs(attrs),
		Duration:  time.Since(start),
		Retried:   retried,
	})
}

func (c *core) remove(key hal.Key) error {
	start := time.Now()
	apiMu.Lock()
	status := c.adapter.Remove(c.traits.Type, key)
	apiMu.Unlock()
	c.emit(oplog.OpRemove, key.String(), status, nil, start, false)
	if status.IsError() {
		return newError(c.traits.Type, "remove object", status)
	}
	return nil
}

// getAttr issues one get for one attribute, with the one-shot
// buffer-overflow retry. The lock is held across both round trips so no
// other adapter call can interleave with the resize.
func (c *core) getAttr(key hal.Key, attr *hal.Attr) (retried bool, err error) {
	start := time.Now()
	attrs := []hal.Attr{*attr}

	apiMu.Lock()
	status := c.adapter.Get(c.traits.Type, key, attrs)
	if status == hal.StatusBufferOverflow {
		// The adapter reported the true element count in the list value.
		// Resize to it and reissue exactly once.
		if lv, ok := attrs[0].Value.(hal.ListValue); ok {
			attrs[0].Value = lv.Resized(lv.Wanted())
			status = c.adapter.Get(c.traits.Type, key, attrs)
			retried = true
		}
	}
	apiMu.Unlock()

	c.emit(oplog.OpGet, key.String(), status, attrs, start, retried)
	if status.IsError() {
		return retried, newError(c.traits.Type, "get attribute", status)
	}
	*attr = attrs[0]
	return retried, nil
}

func (c *core) setAttr(key hal.Key, attr hal.Attr) error {
	start := time.Now()
	apiMu.Lock()
	status := c.adapter.Set(c.traits.Type, key, attr)
	apiMu.Unlock()
	c.emit(oplog.OpSet, key.String(), status, []hal.Attr{attr}, start, false)
	if status.IsError() {
		return newError(c.traits.Type, "set attribute", status)
	}
	return nil
}

// getStats reads counters into a freshly sized buffer. With nil ids the
// category's declared default set and order applies.
func (c *core) getStats(key hal.Key, ids []hal.CounterID) ([]uint64, error) {
	st := c.traits.Stats
	if st == nil {
		return nil, ErrStatsUnsupported
	}
	if ids == nil {
		ids = st.CounterIDs
	}

	start := time.Now()
	out := make([]uint64, len(ids))
	apiMu.Lock()
	status := c.adapter.GetStats(c.traits.Type, key, ids, st.Mode, out)
	apiMu.Unlock()
	c.emit(oplog.OpGetStats, key.String(), status, nil, start, false)
	if status.IsError() {
		return nil, newError(c.traits.Type, "get stats", status)
	}
	return out, nil
}

// HandleAPI is the API variant for categories whose identity is an
// adapter-assigned handle: create returns the new hal.ObjectID.
type HandleAPI struct {
	core
}

// NewHandleAPI creates the handle-identity API for one category.
func NewHandleAPI(traits Traits, adapter hal.Adapter, logger oplog.Logger) *HandleAPI {
	return &HandleAPI{core: newCore(traits, adapter, logger)}
}

// Create creates an object on the given switch and returns its new handle.
func (a *HandleAPI) Create(switchID hal.ObjectID, attrs CreateAttributes) (hal.ObjectID, error) {
	start := time.Now()
	apiMu.Lock()
	id, status := a.adapter.Create(a.traits.Type, switchID, attrs)
	apiMu.Unlock()
	a.emit(oplog.OpCreate, id.String(), status, attrs, start, false)
	if status.IsError() {
		return hal.NullObjectID, newError(a.traits.Type, "create object", status)
	}
	return id, nil
}

// Remove removes the object. The handle must not be reused afterward.
func (a *HandleAPI) Remove(id hal.ObjectID) error {
	return a.remove(id)
}

// GetAttribute fetches the request (Single, Bundle, or Optional) for the
// object, writing decoded values into the request.
func (a *HandleAPI) GetAttribute(id hal.ObjectID, req Request) error {
	return req.fetch(&a.core, id)
}

// SetAttribute writes one fully specified attribute. Never retried.
func (a *HandleAPI) SetAttribute(id hal.ObjectID, attr hal.Attr) error {
	return a.setAttr(id, attr)
}

// GetStats reads counters for the object. Explicit ids select counters and
// their order; nil ids means the category's declared default set.
func (a *HandleAPI) GetStats(id hal.ObjectID, ids []hal.CounterID) ([]uint64, error) {
	return a.getStats(id, ids)
}

// Traits returns the category traits the API was built with.
func (a *HandleAPI) Traits() Traits {
	return a.traits
}

// EntryAPI is the API variant for categories addressed by a caller-supplied
// entry key: create takes the key and returns nothing.
type EntryAPI[K hal.EntryKey] struct {
	core
}

// NewEntryAPI creates the entry-identity API for one category.
func NewEntryAPI[K hal.EntryKey](traits Traits, adapter hal.Adapter, logger oplog.Logger) *EntryAPI[K] {
	return &EntryAPI[K]{core: newCore(traits, adapter, logger)}
}

// Create creates the entry under the caller's key.
func (a *EntryAPI[K]) Create(entry K, attrs CreateAttributes) error {
	start := time.Now()
	apiMu.Lock()
	status := a.adapter.CreateEntry(a.traits.Type, entry, attrs)
	apiMu.Unlock()
	a.emit(oplog.OpCreate, entry.String(), status, attrs, start, false)
	if status.IsError() {
		return newError(a.traits.Type, "create entry", status)
	}
	return nil
}

// Remove removes the entry. The key must not be reused afterward.
func (a *EntryAPI[K]) Remove(entry K) error {
	return a.remove(entry)
}

// GetAttribute fetches the request (Single, Bundle, or Optional) for the
// entry, writing decoded values into the request.
func (a *EntryAPI[K]) GetAttribute(entry K, req Request) error {
	return req.fetch(&a.core, entry)
}

// SetAttribute writes one fully specified attribute. Never retried.
func (a *EntryAPI[K]) SetAttribute(entry K, attr hal.Attr) error {
	return a.setAttr(entry, attr)
}

// GetStats reads counters for the entry. Explicit ids select counters and
// their order; nil ids means the category's declared default set.
func (a *EntryAPI[K]) GetStats(entry K, ids []hal.CounterID) ([]uint64, error) {
	return a.getStats(entry, ids)
}

// Traits returns the category traits the API was built with.
func (a *EntryAPI[K]) Traits() Traits {
	return a.traits
}
