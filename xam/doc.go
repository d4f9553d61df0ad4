// Package xam implements the XAM syscall surface.
//
// Entry points receive arguments already decoded from the guest calling
// convention by the CPU-side dispatcher and return the exact guest error
// codes titles branch on. Guest pointers arrive as guest addresses and
// are translated per access; host-visible views are never retained.
package xam
