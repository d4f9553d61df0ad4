package kernel

import (
	"sync/atomic"

	"github.com/chazu/xenon/memory"
)

// Guest X_OVERLAPPED layout. All fields are guest-order uint32.
const (
	overlappedResult            = 0x00
	overlappedLength            = 0x04
	overlappedContext           = 0x08
	overlappedEvent             = 0x0C
	overlappedCompletionRoutine = 0x10
	overlappedCompletionContext = 0x14
	overlappedExtendedError     = 0x18

	// OverlappedSize is the guest structure size in bytes.
	OverlappedSize = 0x1C
)

// OverlappedRequest is a single in-flight asynchronous result and its
// delivery into the guest-visible completion structure. A request is
// completed exactly once per logical call; completing it twice is a
// defect in the dispatching layer, never a guest-triggerable condition.
type OverlappedRequest struct {
	mem  *memory.Memory
	addr memory.GuestAddress
	done atomic.Bool
}

// NewOverlappedRequest validates that the guest structure is addressable
// and wraps it. The address, not a translated view, is retained: the
// structure is re-translated at completion time.
func NewOverlappedRequest(mem *memory.Memory, addr memory.GuestAddress) (*OverlappedRequest, error) {
	if _, err := mem.TranslateRange(addr, OverlappedSize); err != nil {
		return nil, err
	}
	return &OverlappedRequest{mem: mem, addr: addr}, nil
}

// Address returns the guest address of the completion structure.
func (r *OverlappedRequest) Address() memory.GuestAddress { return r.addr }

// Complete writes the three completion fields to the guest structure.
// All fields are stored before Complete returns, and the dispatcher
// completes before returning its pending indicator, so a guest poll that
// observes IO_PENDING from the call also observes the completed fields.
// The primary result is stored last.
func (r *OverlappedRequest) Complete(result XError, extended XHResult, length uint32) {
	if r.done.Swap(true) {
		panic("kernel: overlapped request completed twice")
	}

	view, err := r.mem.TranslateRange(r.addr, OverlappedSize)
	if err != nil {
		// Addressability was proven at creation and guest ranges never
		// shrink, so this is unreachable from guest input.
		panic("kernel: overlapped structure no longer addressable")
	}
	memory.StoreUint32(view, overlappedExtendedError, uint32(extended))
	memory.StoreUint32(view, overlappedLength, length)
	memory.StoreUint32(view, overlappedResult, uint32(result))
}

// CompleteImmediate completes with a plain result: the extended status is
// the platform-wrapped form of result and the length is zero.
func (r *OverlappedRequest) CompleteImmediate(result XError) {
	r.Complete(result, HResultFromWin32(result), 0)
}

// Completed reports whether the request has been delivered.
func (r *OverlappedRequest) Completed() bool { return r.done.Load() }
