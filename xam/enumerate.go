package xam

import (
	"github.com/chazu/xenon/kernel"
	"github.com/chazu/xenon/memory"
)

// effectiveEnumerateLength applies the one documented buffer-length
// compatibility rule: a handful of shipped titles pass the enumerator's
// items-per-enumerate count where a byte length belongs. The rule
// triggers only on exact numeric equality, and the remaining full
// capacity is trusted instead of the declared length. Further per-title
// exceptions belong here, not in the enumerate loop.
func (m *Module) effectiveEnumerateLength(e kernel.Enumerator, bufferLength uint32) uint32 {
	if bufferLength != e.ItemsPerEnumerate() {
		return bufferLength
	}
	full := uint64(e.ItemCount()) * uint64(e.ItemSize())
	effective := uint32(full)
	if full > uint64(^uint32(0)) {
		effective = ^uint32(0)
	}
	if m.cfg.Compat.LogBrokenEnumerate {
		log.Warningf(
			"broken Enumerate usage: buffer length=%#x vs effective length=%#x (item size=%#x, items per enumerate=%d)",
			bufferLength, effective, e.ItemSize(), e.ItemsPerEnumerate())
	}
	return effective
}

// Enumerate services the paginated enumeration call. Exactly one of
// itemsReturned (synchronous) or overlapped (asynchronous) must be a
// non-null guest address; the dispatcher supplying both or neither is a
// host defect. The asynchronous path always returns IO_PENDING to the
// caller, however the completion itself resolved, and the completion is
// written before this function returns.
func (m *Module) Enumerate(handle, flags uint32, buffer memory.GuestAddress, bufferLength uint32, itemsReturned, overlapped memory.GuestAddress) kernel.XError {
	hasSync := itemsReturned != 0
	hasAsync := overlapped != 0
	if hasSync == hasAsync {
		panic("xam: Enumerate needs exactly one of itemsReturned or overlapped")
	}

	var req *kernel.OverlappedRequest
	if hasAsync {
		r, err := kernel.NewOverlappedRequest(m.mem, overlapped)
		if err != nil {
			// The completion structure itself is unaddressable, so
			// there is nowhere to deliver a pending result.
			return kernel.XErrorInvalidParameter
		}
		req = r
	} else if _, err := m.mem.TranslateRange(itemsReturned, 4); err != nil {
		// An unaddressable count destination is a null pointer; it is
		// rejected before any item is produced.
		return kernel.XErrorInvalidParameter
	}

	if flags != 0 {
		return m.deliverEnumerate(kernel.XErrorInvalidParameter, 0, itemsReturned, req)
	}

	e := m.objects.LookupEnumerator(handle)
	if e == nil {
		return m.deliverEnumerate(kernel.XErrorInvalidHandle, 0, itemsReturned, req)
	}

	effectiveLength := m.effectiveEnumerateLength(e, bufferLength)

	var result kernel.XError
	var itemCount uint32

	switch {
	case effectiveLength < e.ItemSize():
		result = kernel.XErrorInsufficientBuffer
	case e.CurrentItem() >= e.ItemCount():
		result = kernel.XErrorNoMoreFiles
	default:
		itemSize := e.ItemSize()
		maxItems := effectiveLength / itemSize
		for i := uint32(0); i < maxItems; i++ {
			slot, err := m.mem.TranslateRange(buffer+memory.GuestAddress(i*itemSize), itemSize)
			if err != nil {
				if i == 0 {
					// Null or unaddressable buffer, nothing written.
					return m.deliverEnumerate(kernel.XErrorInvalidParameter, 0, itemsReturned, req)
				}
				// Items already produced stay produced; nothing rolls
				// back on a partially-addressable buffer.
				break
			}
			if !e.WriteItem(slot) {
				break
			}
			itemCount++
		}
		// The loop ran, so the call succeeded even if the producer was
		// immediately exhausted and wrote zero items.
		result = kernel.XErrorSuccess
	}

	return m.deliverEnumerate(result, itemCount, itemsReturned, req)
}

// deliverEnumerate encodes an enumeration outcome for whichever
// completion path the caller chose. Synchronous: the produced count (zero
// on any non-success status) goes through itemsReturned and the status is
// returned directly. Asynchronous: the status maps onto the three
// overlapped fields and the call reports IO_PENDING regardless.
func (m *Module) deliverEnumerate(result kernel.XError, itemCount uint32, itemsReturned memory.GuestAddress, req *kernel.OverlappedRequest) kernel.XError {
	if result != kernel.XErrorSuccess {
		itemCount = 0
	}

	if req == nil {
		view, err := m.mem.TranslateRange(itemsReturned, 4)
		if err != nil {
			return kernel.XErrorInvalidParameter
		}
		memory.StoreUint32(view, 0, itemCount)
		return result
	}

	primary := kernel.XErrorSuccess
	if result != kernel.XErrorSuccess {
		primary = kernel.XErrorFunctionFailed
	}
	req.Complete(primary, kernel.HResultFromWin32(result), itemCount)
	return kernel.XErrorIOPending
}
