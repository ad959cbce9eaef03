// SPDX-License-Identifier: Apache-2.0

package arena

// HostFuncs is the pluggable pair of functions an arena draws its block
// buffers from. Opaque is threaded through both calls unchanged, so a
// host can carry its own state without package-level globals.
//
// Alloc must return nil when the host cannot satisfy the request; the
// arena propagates that as a failed allocation, it never retries.
type HostFuncs struct {
	Alloc  func(size int, opaque any) []byte
	Free   func(buf []byte, opaque any)
	Opaque any
}

// GoHostFuncs returns host functions backed by the Go runtime
// allocator. Free is a no-op; the garbage collector reclaims buffers
// once the arena drops them.
func GoHostFuncs() HostFuncs {
	return HostFuncs{
		Alloc: func(size int, _ any) []byte { return make([]byte, size) },
		Free:  func([]byte, any) {},
	}
}

// resolve substitutes the defaults when the record is unusable: a
// missing Alloc or Free selects the Go host pair wholesale.
func (h HostFuncs) resolve() HostFuncs {
	if h.Alloc == nil || h.Free == nil {
		return GoHostFuncs()
	}
	return h
}

func (h HostFuncs) alloc(size int) []byte { return h.Alloc(size, h.Opaque) }

func (h HostFuncs) free(buf []byte) { h.Free(buf, h.Opaque) }
