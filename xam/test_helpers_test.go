package xam

import (
	"testing"

	"github.com/chazu/xenon/config"
	"github.com/chazu/xenon/kernel"
	"github.com/chazu/xenon/memory"
)

const (
	testBase memory.GuestAddress = 0x10000
	testSize uint32              = 0x20000
)

func newTestModule(t *testing.T) *Module {
	t.Helper()
	cfg := config.Default()
	cfg.Compat.LogBrokenEnumerate = false
	return NewModule(memory.New(testBase, testSize), kernel.NewObjectTable(), cfg)
}

// guestAlloc carves a guest buffer out of the system heap.
func guestAlloc(t *testing.T, m *Module, size uint32) memory.GuestAddress {
	t.Helper()
	addr := m.mem.SystemHeapAlloc(size)
	if addr == 0 {
		t.Fatalf("guest allocation of %d bytes failed", size)
	}
	return addr
}

func readGuestU32(t *testing.T, m *Module, addr memory.GuestAddress) uint32 {
	t.Helper()
	view, err := m.mem.TranslateRange(addr, 4)
	if err != nil {
		t.Fatalf("reading guest u32 at %#x: %v", uint32(addr), err)
	}
	return memory.LoadUint32(view, 0)
}

func readGuestBytes(t *testing.T, m *Module, addr memory.GuestAddress, n uint32) []byte {
	t.Helper()
	view, err := m.mem.TranslateRange(addr, n)
	if err != nil {
		t.Fatalf("reading %d guest bytes at %#x: %v", n, uint32(addr), err)
	}
	return append([]byte(nil), view...)
}

// readGuestUTF16 decodes consecutive guest-order UTF-16 units until a NUL
// or the unit limit.
func readGuestUTF16(t *testing.T, m *Module, addr memory.GuestAddress, maxUnits uint32) string {
	t.Helper()
	view, err := m.mem.TranslateRange(addr, maxUnits*2)
	if err != nil {
		t.Fatalf("reading guest UTF-16 at %#x: %v", uint32(addr), err)
	}
	var out []rune
	for i := uint32(0); i < maxUnits; i++ {
		u := memory.LoadUint16(view, 2*i)
		if u == 0 {
			break
		}
		out = append(out, rune(u))
	}
	return string(out)
}

// Guest X_OVERLAPPED field offsets, fixed by the ABI.
const (
	ovlResultOffset        = 0x00
	ovlLengthOffset        = 0x04
	ovlExtendedErrorOffset = 0x18
)

type overlappedFields struct {
	result        uint32
	length        uint32
	extendedError uint32
}

func readOverlapped(t *testing.T, m *Module, addr memory.GuestAddress) overlappedFields {
	t.Helper()
	return overlappedFields{
		result:        readGuestU32(t, m, addr+ovlResultOffset),
		length:        readGuestU32(t, m, addr+ovlLengthOffset),
		extendedError: readGuestU32(t, m, addr+ovlExtendedErrorOffset),
	}
}

// newTestEnumerator registers an enumerator whose item i is itemSize
// bytes with the item's ordinal stored guest-order in the first four
// bytes.
func newTestEnumerator(t *testing.T, m *Module, itemCount, itemSize, itemsPerEnumerate uint32) uint32 {
	t.Helper()
	if itemSize < 4 {
		t.Fatal("test items need at least 4 bytes")
	}
	e := kernel.NewStaticEnumerator(itemSize, itemsPerEnumerate)
	for i := uint32(0); i < itemCount; i++ {
		item := make(memory.HostView, itemSize)
		memory.StoreUint32(item, 0, i)
		if err := e.AppendItem(item); err != nil {
			t.Fatalf("AppendItem: %v", err)
		}
	}
	return m.objects.Insert(e)
}
