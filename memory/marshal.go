package memory

import (
	"encoding/binary"
	"unicode/utf16"
)

// The guest is big-endian. Every store into guest memory goes through
// these helpers so byte order is swapped in exactly one place.
//
// String and blob copies follow a uniform truncate-on-overflow policy:
// copy min(capacity, source length) units, append a terminator only if
// strictly more capacity remains, and never write past the declared
// capacity under any input.

// StoreUint16 writes v at the given byte offset in guest byte order.
func StoreUint16(view HostView, offset uint32, v uint16) {
	binary.BigEndian.PutUint16(view[offset:], v)
}

// StoreUint32 writes v at the given byte offset in guest byte order.
func StoreUint32(view HostView, offset uint32, v uint32) {
	binary.BigEndian.PutUint32(view[offset:], v)
}

// StoreUint64 writes v at the given byte offset in guest byte order.
func StoreUint64(view HostView, offset uint32, v uint64) {
	binary.BigEndian.PutUint64(view[offset:], v)
}

// LoadUint16 reads a guest-order uint16 at the given byte offset.
func LoadUint16(view HostView, offset uint32) uint16 {
	return binary.BigEndian.Uint16(view[offset:])
}

// LoadUint32 reads a guest-order uint32 at the given byte offset.
func LoadUint32(view HostView, offset uint32) uint32 {
	return binary.BigEndian.Uint32(view[offset:])
}

// LoadUint64 reads a guest-order uint64 at the given byte offset.
func LoadUint64(view HostView, offset uint32) uint64 {
	return binary.BigEndian.Uint64(view[offset:])
}

// CopyBytes copies min(capacity, len(src)) bytes of src into view and
// returns the count copied. Raw blobs carry no terminator.
func CopyBytes(view HostView, src []byte, capacity uint32) uint32 {
	n := uint32(len(src))
	if n > capacity {
		n = capacity
	}
	copy(view[:n], src[:n])
	return n
}

// CopyString copies min(capacity, len(s)) bytes of s into view, appending
// a NUL byte only if capacity strictly exceeds the string length. Returns
// the byte count copied, excluding any terminator.
func CopyString(view HostView, s string, capacity uint32) uint32 {
	n := uint32(len(s))
	if n > capacity {
		n = capacity
	}
	copy(view[:n], s[:n])
	if uint32(len(s)) < capacity {
		view[n] = 0
	}
	return n
}

// CopyStringUTF16 encodes s as UTF-16 and stores min(capacity, units)
// code units into view in guest byte order, appending a NUL unit only if
// capacity strictly exceeds the unit count. The view must cover
// capacity*2 bytes. Returns the unit count copied, excluding any
// terminator.
func CopyStringUTF16(view HostView, s string, capacity uint32) uint32 {
	units := utf16.Encode([]rune(s))
	n := uint32(len(units))
	if n > capacity {
		n = capacity
	}
	for i := uint32(0); i < n; i++ {
		binary.BigEndian.PutUint16(view[2*i:], units[i])
	}
	if uint32(len(units)) < capacity {
		binary.BigEndian.PutUint16(view[2*n:], 0)
	}
	return n
}

// ZeroRange clears length bytes starting at the view's origin.
func ZeroRange(view HostView, length uint32) {
	for i := uint32(0); i < length; i++ {
		view[i] = 0
	}
}
