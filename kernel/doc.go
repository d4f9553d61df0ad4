// Package kernel implements the guest-visible kernel object model.
//
// This package contains:
//   - The fixed guest error code enumeration
//   - The handle table mapping opaque handles to kernel objects
//   - Enumerators producing fixed-size item sequences
//   - Overlapped (asynchronous) completion delivery
package kernel
