package kernel

import (
	"fmt"
	"sync"

	"github.com/chazu/xenon/memory"
)

// Enumerator is a kernel object producing a finite, single-pass sequence
// of fixed-size items across possibly many calls. An exhausted enumerator
// stays exhausted; restarting requires a fresh object.
type Enumerator interface {
	Object

	// ItemSize is the byte size of every produced item.
	ItemSize() uint32
	// ItemsPerEnumerate is the legacy per-call item cap. It no longer
	// limits production; it survives only for the buffer-length
	// compatibility rule in the enumerate shim.
	ItemsPerEnumerate() uint32
	// ItemCount is the total number of items, fixed at creation.
	ItemCount() uint32
	// CurrentItem is the cursor: items produced so far. Monotonically
	// non-decreasing, never exceeding ItemCount.
	CurrentItem() uint32
	// WriteItem serializes the next item into dst (at least ItemSize
	// bytes) and advances the cursor. Returns false without touching dst
	// once the sequence is exhausted.
	WriteItem(dst memory.HostView) bool
}

// StaticEnumerator produces items that were fully serialized up front.
type StaticEnumerator struct {
	itemSize          uint32
	itemsPerEnumerate uint32

	mu     sync.Mutex
	items  [][]byte
	cursor uint32
}

// NewStaticEnumerator creates an enumerator for items of the given fixed
// size. itemsPerEnumerate is the caller-declared legacy per-call cap.
func NewStaticEnumerator(itemSize, itemsPerEnumerate uint32) *StaticEnumerator {
	return &StaticEnumerator{
		itemSize:          itemSize,
		itemsPerEnumerate: itemsPerEnumerate,
	}
}

// TypeName implements Object.
func (e *StaticEnumerator) TypeName() string { return "StaticEnumerator" }

// AppendItem adds one pre-serialized item. The data is copied. Items are
// appended before the enumerator is handed to the guest; the item count
// is fixed from then on.
func (e *StaticEnumerator) AppendItem(data []byte) error {
	if uint32(len(data)) != e.itemSize {
		return fmt.Errorf("kernel: item is %d bytes, enumerator expects %d", len(data), e.itemSize)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = append(e.items, append([]byte(nil), data...))
	return nil
}

func (e *StaticEnumerator) ItemSize() uint32          { return e.itemSize }
func (e *StaticEnumerator) ItemsPerEnumerate() uint32 { return e.itemsPerEnumerate }

func (e *StaticEnumerator) ItemCount() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return uint32(len(e.items))
}

func (e *StaticEnumerator) CurrentItem() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

func (e *StaticEnumerator) WriteItem(dst memory.HostView) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cursor >= uint32(len(e.items)) {
		return false
	}
	copy(dst[:e.itemSize], e.items[e.cursor])
	e.cursor++
	return true
}
