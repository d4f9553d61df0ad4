// Package memory implements the virtualized guest address space.
//
// This package contains:
//   - Guest address translation to transient host-visible views
//   - The system heap that backs kernel-side guest allocations
//   - Byte-order-safe marshaling into guest buffers
package memory
