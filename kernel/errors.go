package kernel

// XError is a guest-visible result code. The values are the platform's
// published ABI constants; guest binaries branch on the numeric value,
// not a symbolic name, so they must never change.
type XError uint32

const (
	XErrorSuccess            XError = 0x000
	XErrorInvalidHandle      XError = 0x006
	XErrorOutOfMemory        XError = 0x00E
	XErrorNoMoreFiles        XError = 0x012
	XErrorInvalidParameter   XError = 0x057
	XErrorInsufficientBuffer XError = 0x07A
	XErrorIOPending          XError = 0x3E5
	XErrorNotFound           XError = 0x490
	XErrorFunctionFailed     XError = 0x65B
)

// XHResult is the platform-style wrapped form of an XError, delivered in
// the extended-status field of overlapped completions.
type XHResult uint32

// XStatus is a guest-visible NTSTATUS code. Only the handful of shims
// that returned raw statuses on the console use it.
type XStatus uint32

const (
	XStatusSuccess           XStatus = 0x00000000
	XStatusInvalidParameter1 XStatus = 0xC00000EF
)

// HResultFromWin32 wraps a result code the way the guest OS did: success
// stays zero, anything else gets the WIN32 facility and severity bits.
func HResultFromWin32(err XError) XHResult {
	if err == XErrorSuccess {
		return 0
	}
	return XHResult(uint32(err)&0xFFFF | 0x8007_0000)
}

func (e XError) String() string {
	switch e {
	case XErrorSuccess:
		return "X_ERROR_SUCCESS"
	case XErrorInvalidHandle:
		return "X_ERROR_INVALID_HANDLE"
	case XErrorOutOfMemory:
		return "X_ERROR_OUTOFMEMORY"
	case XErrorNoMoreFiles:
		return "X_ERROR_NO_MORE_FILES"
	case XErrorInvalidParameter:
		return "X_ERROR_INVALID_PARAMETER"
	case XErrorInsufficientBuffer:
		return "X_ERROR_INSUFFICIENT_BUFFER"
	case XErrorIOPending:
		return "X_ERROR_IO_PENDING"
	case XErrorNotFound:
		return "X_ERROR_NOT_FOUND"
	case XErrorFunctionFailed:
		return "X_ERROR_FUNCTION_FAILED"
	}
	return "X_ERROR_UNKNOWN"
}
