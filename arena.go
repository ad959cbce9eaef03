// SPDX-License-Identifier: Apache-2.0

// Package arena provides the memory pool that backs table formatting:
// many small, short-lived allocations are served out of a handful of
// large buffers drawn from a pluggable host allocator, so the host sees
// few coarse-grained requests instead of one per cell, row or border run.
//
// There is no per-allocation free. Memory is reclaimed in bulk, either
// by Reset (rewind every block, keep the host buffers) or by Release
// (return every buffer to the host).
package arena

import (
	"unsafe"
)

// Arena hands out byte regions carved from large host allocations.
type Arena interface {
	// Alloc returns size bytes backed by the arena, or nil when the
	// host allocator cannot satisfy the request or size is not
	// positive. The returned slice is valid until Reset or Release.
	// No alignment is guaranteed beyond natural byte offsets.
	Alloc(size int) []byte

	// Reset rewinds the arena without releasing host memory. Every
	// slice previously returned by Alloc becomes invalid.
	Reset()

	// Release returns the arena's memory to the host allocator.
	// The arena is unusable afterwards; Alloc returns nil.
	Release()

	// Len returns the number of bytes handed out since creation or
	// the last Reset, including per-block bookkeeping reserves.
	Len() int

	// Cap returns the total capacity of all blocks held by the arena.
	Cap() int

	// Peak returns the high-water mark of Len. It survives Reset,
	// which makes it usable for sizing future arenas.
	Peak() int
}

// Allocate returns a pointer to a zeroed T stored inside the arena.
// If a is nil or exhausted, it falls back to Go's built-in new.
func Allocate[T any](a Arena) *T {
	if a != nil {
		var x T
		if b := allocAligned(a, unsafe.Sizeof(x), unsafe.Alignof(x)); b != nil {
			clear(b)
			return (*T)(unsafe.Pointer(&b[0]))
		}
	}
	return new(T)
}

// allocAligned carves size bytes aligned to align out of the arena.
// The core Alloc guarantees no alignment, so the carve over-allocates
// by align-1 and trims. Returns nil when the arena cannot serve it.
func allocAligned(a Arena, size, align uintptr) []byte {
	if size == 0 {
		return nil
	}
	b := a.Alloc(int(size + align - 1))
	if b == nil {
		return nil
	}
	var off uintptr
	if r := uintptr(unsafe.Pointer(&b[0])) % align; r != 0 {
		off = align - r
	}
	return b[off : off+size : off+size]
}
