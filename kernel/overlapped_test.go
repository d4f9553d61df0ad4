package kernel

import (
	"testing"

	"github.com/chazu/xenon/memory"
)

func newOverlappedFixture(t *testing.T) (*memory.Memory, memory.GuestAddress) {
	t.Helper()
	mem := memory.New(0x10000, 0x1000)
	addr := mem.SystemHeapAlloc(OverlappedSize)
	if addr == 0 {
		t.Fatal("failed to allocate overlapped structure")
	}
	return mem, addr
}

func TestOverlappedRequest_RejectsBadAddress(t *testing.T) {
	mem := memory.New(0x10000, 0x1000)

	if _, err := NewOverlappedRequest(mem, 0); err != memory.ErrNullOrInvalid {
		t.Errorf("null overlapped: got %v, want ErrNullOrInvalid", err)
	}
	if _, err := NewOverlappedRequest(mem, 0x20000); err != memory.ErrNullOrInvalid {
		t.Errorf("out-of-range overlapped: got %v, want ErrNullOrInvalid", err)
	}
	// Structure must fit entirely inside the guest region.
	tail := memory.GuestAddress(0x10000 + 0x1000 - 8)
	if _, err := NewOverlappedRequest(mem, tail); err != memory.ErrNullOrInvalid {
		t.Errorf("truncated overlapped: got %v, want ErrNullOrInvalid", err)
	}
}

func TestOverlappedRequest_CompleteWritesGuestFields(t *testing.T) {
	mem, addr := newOverlappedFixture(t)
	req, err := NewOverlappedRequest(mem, addr)
	if err != nil {
		t.Fatalf("NewOverlappedRequest: %v", err)
	}

	req.Complete(XErrorFunctionFailed, HResultFromWin32(XErrorInvalidHandle), 7)

	view, _ := mem.TranslateRange(addr, OverlappedSize)
	if got := memory.LoadUint32(view, overlappedResult); got != uint32(XErrorFunctionFailed) {
		t.Errorf("result field: got %#x, want %#x", got, uint32(XErrorFunctionFailed))
	}
	if got := memory.LoadUint32(view, overlappedLength); got != 7 {
		t.Errorf("length field: got %d, want 7", got)
	}
	if got := memory.LoadUint32(view, overlappedExtendedError); got != 0x80070006 {
		t.Errorf("extended error field: got %#x, want 0x80070006", got)
	}
	if !req.Completed() {
		t.Error("Completed: got false after Complete")
	}
}

func TestOverlappedRequest_CompleteImmediateSuccess(t *testing.T) {
	mem, addr := newOverlappedFixture(t)
	req, _ := NewOverlappedRequest(mem, addr)

	req.CompleteImmediate(XErrorSuccess)

	view, _ := mem.TranslateRange(addr, OverlappedSize)
	if got := memory.LoadUint32(view, overlappedResult); got != 0 {
		t.Errorf("result field: got %#x, want 0", got)
	}
	if got := memory.LoadUint32(view, overlappedExtendedError); got != 0 {
		t.Errorf("extended error for success: got %#x, want 0", got)
	}
}

func TestOverlappedRequest_DoubleCompletePanics(t *testing.T) {
	mem, addr := newOverlappedFixture(t)
	req, _ := NewOverlappedRequest(mem, addr)

	req.CompleteImmediate(XErrorSuccess)

	defer func() {
		if recover() == nil {
			t.Error("second Complete did not panic")
		}
	}()
	req.CompleteImmediate(XErrorSuccess)
}

func TestHResultFromWin32(t *testing.T) {
	tests := []struct {
		in   XError
		want XHResult
	}{
		{XErrorSuccess, 0},
		{XErrorInvalidHandle, 0x80070006},
		{XErrorNoMoreFiles, 0x80070012},
		{XErrorFunctionFailed, 0x8007065B},
	}
	for _, tt := range tests {
		if got := HResultFromWin32(tt.in); got != tt.want {
			t.Errorf("HResultFromWin32(%#x): got %#x, want %#x", uint32(tt.in), got, tt.want)
		}
	}
}
