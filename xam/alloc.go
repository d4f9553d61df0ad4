package xam

import (
	"github.com/chazu/xenon/kernel"
	"github.com/chazu/xenon/memory"
)

// Alloc services XamAlloc: a plain system-heap allocation. On heap
// exhaustion the returned address is the zero sentinel, never a
// partially-valid block.
func (m *Module) Alloc(size uint32) (memory.GuestAddress, kernel.XError) {
	addr := m.mem.SystemHeapAlloc(size)
	if addr == 0 {
		return 0, kernel.XErrorOutOfMemory
	}
	return addr, kernel.XErrorSuccess
}

// Free services XamFree. Freeing the null address is a caller-input
// error; freeing an address that was never allocated is the caller's
// bug and is absorbed by the heap.
func (m *Module) Free(addr memory.GuestAddress) kernel.XError {
	if addr == 0 {
		return kernel.XErrorInvalidParameter
	}
	m.mem.SystemHeapFree(addr)
	return kernel.XErrorSuccess
}
