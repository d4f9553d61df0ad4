package kernel

import (
	"sync"
	"sync/atomic"
)

// Object is a kernel object addressable through an opaque guest handle.
// The owning table holds the only strong reference; handles are weak,
// lookup-only references.
type Object interface {
	TypeName() string
}

// Handles start above the guest's reserved pseudo-handle range and step
// by 4, matching the shape titles expect.
const (
	handleBase uint32 = 0x100
	handleStep uint32 = 4
)

// ObjectTable maps opaque integer handles to kernel objects. One RWMutex
// guards the whole table; handle generation is atomic so inserts under
// read-heavy lookup traffic stay cheap.
type ObjectTable struct {
	mu      sync.RWMutex
	objects map[uint32]Object
	nextID  atomic.Uint32
}

// NewObjectTable creates an empty handle table.
func NewObjectTable() *ObjectTable {
	return &ObjectTable{
		objects: make(map[uint32]Object),
	}
}

// Insert registers an object and returns its new handle. The table takes
// exclusive ownership of the object.
func (t *ObjectTable) Insert(obj Object) uint32 {
	h := handleBase + (t.nextID.Add(1)-1)*handleStep

	t.mu.Lock()
	t.objects[h] = obj
	t.mu.Unlock()

	return h
}

// Lookup returns the object for a handle, or nil if the handle does not
// resolve. Lookup failure is an ordinary guest-input outcome.
func (t *ObjectTable) Lookup(handle uint32) Object {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.objects[handle]
}

// LookupEnumerator returns the enumerator for a handle. A missing handle
// or a handle to a different object variant both return nil; the table
// never mis-casts.
func (t *ObjectTable) LookupEnumerator(handle uint32) Enumerator {
	e, ok := t.Lookup(handle).(Enumerator)
	if !ok {
		return nil
	}
	return e
}

// Release removes an object from the table. Returns false if the handle
// did not resolve.
func (t *ObjectTable) Release(handle uint32) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.objects[handle]; !ok {
		return false
	}
	delete(t.objects, handle)
	return true
}

// Count returns the number of live objects.
func (t *ObjectTable) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.objects)
}
