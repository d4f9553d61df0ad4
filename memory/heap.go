package memory

import "sort"

const heapAlignment = 16

// freeBlock is one contiguous run of unallocated guest bytes.
type freeBlock struct {
	addr GuestAddress
	size uint32
}

// heapAllocator hands out guest ranges from the system heap. All
// bookkeeping lives host-side so guest writes can never corrupt allocator
// state. First-fit over an address-ordered free list, coalescing on
// release. Callers hold the owning Memory's heap mutex.
type heapAllocator struct {
	free      []freeBlock
	allocated map[GuestAddress]uint32
}

func newHeapAllocator(base GuestAddress, size uint32) *heapAllocator {
	return &heapAllocator{
		free:      []freeBlock{{addr: base, size: size}},
		allocated: make(map[GuestAddress]uint32),
	}
}

// alloc reserves size bytes (rounded up to the heap alignment) and
// returns the block address and its rounded size. Returns the zero
// sentinel on exhaustion; the caller never sees a partially-valid block.
func (h *heapAllocator) alloc(size uint32) (GuestAddress, uint32) {
	if size > ^uint32(0)-heapAlignment+1 {
		return 0, 0
	}
	if size == 0 {
		size = heapAlignment
	}
	size = (size + heapAlignment - 1) &^ (heapAlignment - 1)

	for i := range h.free {
		b := &h.free[i]
		if b.size < size {
			continue
		}
		addr := b.addr
		b.addr += GuestAddress(size)
		b.size -= size
		if b.size == 0 {
			h.free = append(h.free[:i], h.free[i+1:]...)
		}
		h.allocated[addr] = size
		return addr, size
	}
	return 0, 0
}

// release returns a block to the free list, coalescing with adjacent free
// blocks. Returns the released size, or 0 if addr was not allocated.
func (h *heapAllocator) release(addr GuestAddress) uint32 {
	size, ok := h.allocated[addr]
	if !ok {
		return 0
	}
	delete(h.allocated, addr)

	i := sort.Search(len(h.free), func(i int) bool { return h.free[i].addr > addr })
	h.free = append(h.free, freeBlock{})
	copy(h.free[i+1:], h.free[i:])
	h.free[i] = freeBlock{addr: addr, size: size}

	if i+1 < len(h.free) && h.free[i].addr+GuestAddress(h.free[i].size) == h.free[i+1].addr {
		h.free[i].size += h.free[i+1].size
		h.free = append(h.free[:i+1], h.free[i+2:]...)
	}
	if i > 0 && h.free[i-1].addr+GuestAddress(h.free[i-1].size) == h.free[i].addr {
		h.free[i-1].size += h.free[i].size
		h.free = append(h.free[:i], h.free[i+1:]...)
	}
	return size
}

// allocatedCount reports the number of live allocations.
func (h *heapAllocator) allocatedCount() int { return len(h.allocated) }
