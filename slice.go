// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"unsafe"
)

// growThreshold is the slice capacity above which growth switches from
// doubling to 25% steps.
const growThreshold = 256

// AllocateSlice creates a slice of T with the given length and
// capacity inside the arena, zeroed. If a is nil, the arena is
// exhausted or T is zero-sized, it falls back to Go's built-in make.
func AllocateSlice[T any](a Arena, length, capacity int) []T {
	if a != nil && capacity > 0 {
		var x T
		if size := unsafe.Sizeof(x); size > 0 {
			if b := allocAligned(a, size*uintptr(capacity), unsafe.Alignof(x)); b != nil {
				s := unsafe.Slice((*T)(unsafe.Pointer(&b[0])), capacity)
				clear(s)
				return s[:length]
			}
		}
	}
	return make([]T, length, capacity)
}

// SliceAppend appends data to s, moving s into the arena when it has
// to grow. With a nil arena it is plain append.
func SliceAppend[T any](a Arena, s []T, data ...T) []T {
	if a == nil {
		return append(s, data...)
	}
	s = growSlice(a, s, len(data))
	return append(s, data...)
}

// growSlice returns s with capacity for dataLen more elements,
// relocating it into the arena when the current capacity is short.
func growSlice[T any](a Arena, s []T, dataLen int) []T {
	newLen := len(s) + dataLen
	newCap := cap(s)

	if newCap > 0 {
		for newLen > newCap {
			if newCap < growThreshold {
				newCap *= 2
			} else {
				newCap += newCap / 4
			}
		}
	} else {
		newCap = dataLen
	}
	if newCap == cap(s) {
		return s
	}
	s2 := AllocateSlice[T](a, len(s), newCap)
	copy(s2, s)
	return s2
}
