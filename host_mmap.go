// SPDX-License-Identifier: Apache-2.0

//go:build unix

package arena

import (
	"golang.org/x/sys/unix"
)

// MmapHostFuncs returns host functions that draw block buffers straight
// from the operating system as anonymous private mappings, bypassing
// the Go heap. Free unmaps the buffer immediately, so a released arena
// returns its memory to the OS rather than waiting for the collector.
func MmapHostFuncs() HostFuncs {
	return HostFuncs{
		Alloc: func(size int, _ any) []byte {
			buf, err := unix.Mmap(-1, 0, size,
				unix.PROT_READ|unix.PROT_WRITE,
				unix.MAP_ANON|unix.MAP_PRIVATE)
			if err != nil {
				return nil
			}
			return buf
		},
		Free: func(buf []byte, _ any) {
			if buf != nil {
				_ = unix.Munmap(buf)
			}
		},
	}
}
