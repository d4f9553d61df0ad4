package memory

import (
	"errors"
	"sync"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("memory")

// GuestAddress identifies a location in the guest's 32-bit address space.
// The zero address is the null sentinel and never maps to backing store.
type GuestAddress uint32

// HostView is a bounds-checked window over the host bytes that back a
// guest range. A view is only valid for the duration of the call that
// obtained it: callers re-translate on every access and never keep a view
// in long-lived state.
type HostView []byte

// ErrNullOrInvalid reports translation of the null address or of an
// address outside the guest-addressable region. Callers treat it like a
// guest null pointer, not a host fault.
var ErrNullOrInvalid = errors.New("memory: null or invalid guest address")

// Memory owns the guest-addressable region [base, base+size) and the
// system heap carved out of it. All heap state sits behind one mutex;
// translation itself is read-only over immutable bounds.
type Memory struct {
	base GuestAddress
	data []byte

	heapMu sync.Mutex
	heap   *heapAllocator
}

// New creates a guest address space of the given size. The base must be
// non-zero so the null address stays untranslatable.
func New(base GuestAddress, size uint32) *Memory {
	if base == 0 {
		panic("memory: guest base address must be non-zero")
	}
	if size == 0 {
		panic("memory: guest region size must be non-zero")
	}
	return &Memory{
		base: base,
		data: make([]byte, size),
		heap: newHeapAllocator(base, size),
	}
}

// Base returns the lowest guest-addressable address.
func (m *Memory) Base() GuestAddress { return m.base }

// Size returns the size of the guest-addressable region in bytes.
func (m *Memory) Size() uint32 { return uint32(len(m.data)) }

// Translate returns a view from addr to the end of the guest region.
func (m *Memory) Translate(addr GuestAddress) (HostView, error) {
	if addr == 0 || addr < m.base {
		return nil, ErrNullOrInvalid
	}
	off := uint64(addr) - uint64(m.base)
	if off >= uint64(len(m.data)) {
		return nil, ErrNullOrInvalid
	}
	return HostView(m.data[off:]), nil
}

// TranslateRange returns a view over exactly [addr, addr+length). A zero
// length is allowed as long as addr itself is translatable.
func (m *Memory) TranslateRange(addr GuestAddress, length uint32) (HostView, error) {
	view, err := m.Translate(addr)
	if err != nil {
		return nil, err
	}
	if uint64(length) > uint64(len(view)) {
		return nil, ErrNullOrInvalid
	}
	return view[:length], nil
}

// SystemHeapAlloc allocates size bytes from the system heap and returns
// the guest address of the zeroed block, or the zero sentinel when the
// heap is exhausted. Callers map the sentinel to a resource error.
func (m *Memory) SystemHeapAlloc(size uint32) GuestAddress {
	m.heapMu.Lock()
	addr, n := m.heap.alloc(size)
	m.heapMu.Unlock()

	if addr == 0 {
		return 0
	}
	view, err := m.TranslateRange(addr, n)
	if err != nil {
		panic("memory: heap returned untranslatable address")
	}
	for i := range view {
		view[i] = 0
	}
	return addr
}

// SystemHeapFree releases a prior allocation. Freeing an address that is
// not currently allocated is undefined behavior owned by the caller; the
// heap logs and ignores it.
func (m *Memory) SystemHeapFree(addr GuestAddress) {
	m.heapMu.Lock()
	released := m.heap.release(addr)
	m.heapMu.Unlock()

	if released == 0 {
		log.Warningf("freeing unallocated guest address %#x", uint32(addr))
	}
}
