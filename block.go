// SPDX-License-Identifier: Apache-2.0

package arena

const (
	// defaultBaseBlockSize is the host request for an arena's first
	// block; each later block doubles the target.
	defaultBaseBlockSize = 4096

	// blockOverhead is shaved off every host request so the buffer
	// plus the host's own bookkeeping stays within round sizes.
	blockOverhead = 32

	// blockReserve is the bookkeeping region at the start of every
	// block's buffer; used starts there, never at zero.
	blockReserve = 32

	// minBaseBlockSize bounds configurable base sizes from below so
	// the root block always fits the arena's own reserve.
	minBaseBlockSize = 512

	// maxBlockShift caps the growth doubling to keep the shifted
	// target from overflowing on pathological block counts.
	maxBlockShift = 30
)

// none marks an absent prev/next/head/tail/root index.
const none = -1

// block is one contiguous host buffer subdivided by bump allocation.
// Blocks live in the cache's indexed store; prev and next are indices
// into that store, not pointers, so re-sorting is index arithmetic.
type block struct {
	buf     []byte
	used    int // bytes handed out, monotonically non-decreasing
	avail   int // used + avail == len(buf) for the block's lifetime
	reserve int // bookkeeping bytes at the start of buf, fixed at creation
	prev    int
	next    int
}

// bump hands out the next size bytes of the buffer. The caller must
// have checked avail; a shortfall here means the cache handed back a
// block it should not have, which would corrupt the arena if allowed
// to proceed.
func (b *block) bump(size int) []byte {
	if size > b.avail {
		panic("arena: bump allocation exceeds block capacity")
	}
	p := b.buf[b.used : b.used+size : b.used+size]
	b.used += size
	b.avail -= size
	return p
}

// rewind forgets every bump allocation, leaving only the reserve used.
func (b *block) rewind() {
	b.used = b.reserve
	b.avail = len(b.buf) - b.reserve
}

// blockSize computes the host request for the generation-th block of
// an arena with the given base size. The target doubles once per prior
// block; an oversized request keeps doubling until it fits alongside
// the block reserve, and falls back to exact sizing past the shift cap.
func blockSize(base, generation, minSize int) int {
	target := base << min(generation, maxBlockShift)
	for target-blockOverhead-blockReserve < minSize {
		if target >= base<<maxBlockShift {
			return minSize + blockReserve
		}
		target <<= 1
	}
	return target - blockOverhead
}
