// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"errors"
	"unsafe"
)

// ErrHostExhausted is returned by New when the host allocator cannot
// provide the arena's initial block.
var ErrHostExhausted = errors.New("arena: host allocator exhausted")

// arenaReserve is the footprint of the arena's own control structure.
// The root block's buffer covers it, so one host allocation serves
// both the arena bookkeeping and the first usable block.
var arenaReserve = int(unsafe.Sizeof(BlockArena{}))

// BlockArena is an Arena built on a cache of geometrically growing
// blocks. Allocations are served best-fit from the block with the
// least spare capacity that can still hold them; when none can, a new
// block twice the size of the previous target is drawn from the host.
//
// Not safe for concurrent use; wrap it with NewConcurrentArena when
// multiple goroutines share one arena.
type BlockArena struct {
	cache blockCache
	host  HostFuncs
	base  int
	peak  int
}

var _ Arena = (*BlockArena)(nil)

// Option configures a BlockArena under construction.
type Option func(*config)

type config struct {
	host HostFuncs
	base int
}

// WithHostFuncs selects the host allocator the arena draws blocks
// from. A record missing either function falls back to GoHostFuncs.
func WithHostFuncs(h HostFuncs) Option {
	return func(c *config) { c.host = h }
}

// WithBaseBlockSize sets the host request for the arena's first block;
// later blocks double from there. Non-positive values select the
// default, undersized values are raised to a workable minimum.
func WithBaseBlockSize(size int) Option {
	return func(c *config) { c.base = size }
}

// New creates an arena and its root block with a single host
// allocation: the front of the root buffer holds the arena's
// bookkeeping reserve, the rest is ready for bump allocation.
func New(opts ...Option) (*BlockArena, error) {
	cfg := config{base: defaultBaseBlockSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.base <= 0 {
		cfg.base = defaultBaseBlockSize
	} else if cfg.base < minBaseBlockSize {
		cfg.base = minBaseBlockSize
	}
	host := cfg.host.resolve()

	size := cfg.base - blockOverhead
	reserve := arenaReserve + blockReserve
	if reserve >= size {
		panic("arena: control structure does not fit the initial block")
	}

	buf := host.alloc(size)
	if buf == nil {
		return nil, ErrHostExhausted
	}
	clear(buf[:reserve])

	a := &BlockArena{
		cache: newBlockCache(),
		host:  host,
		base:  cfg.base,
	}
	a.cache.blocks = append(a.cache.blocks, block{
		buf:     buf,
		used:    reserve,
		avail:   size - reserve,
		reserve: reserve,
		prev:    none,
		next:    none,
	})
	a.cache.insert(0)
	a.peak = a.cache.totalUsed
	return a, nil
}

// Alloc satisfies the Arena interface. A nil receiver, a released
// arena and a non-positive size all yield nil; a nil result on a live
// arena means the host allocator refused to grow it.
func (a *BlockArena) Alloc(size int) []byte {
	if a == nil || a.cache.blocks == nil || size <= 0 {
		return nil
	}

	c := &a.cache
	i := c.findBestFit(size)
	if i == none {
		var ok bool
		i, ok = a.createBlock(size)
		if !ok {
			return nil
		}
		c.insert(i)
	}

	p := (&c.blocks[i]).bump(size)
	c.totalUsed += size
	c.totalAvail -= size

	// The block shrank; re-rank it only if it actually fell out of
	// order against a neighbor.
	if !c.inOrder(i) {
		c.remove(i)
		c.insert(i)
	}

	if c.totalUsed > a.peak {
		a.peak = c.totalUsed
	}
	return p
}

// createBlock draws a new block from the host, sized for at least
// minSize on top of the block reserve. It does not touch the list;
// the caller inserts on success, and a host failure leaves the cache
// unchanged.
func (a *BlockArena) createBlock(minSize int) (int, bool) {
	size := blockSize(a.base, len(a.cache.blocks), minSize)
	buf := a.host.alloc(size)
	if buf == nil {
		return none, false
	}
	a.cache.blocks = append(a.cache.blocks, block{
		buf:     buf,
		used:    blockReserve,
		avail:   size - blockReserve,
		reserve: blockReserve,
		prev:    none,
		next:    none,
	})
	return len(a.cache.blocks) - 1, true
}

// Reset rewinds every block to its reserve and rebuilds the list,
// which after a rewind is simply descending capacity order. Host
// memory is kept; Peak is not reset.
func (a *BlockArena) Reset() {
	if a == nil || a.cache.blocks == nil {
		return
	}
	c := &a.cache
	c.head = none
	c.tail = none
	c.numBlocks = 0
	c.totalUsed = 0
	c.totalAvail = 0
	for i := range c.blocks {
		c.blocks[i].rewind()
		c.blocks[i].prev = none
		c.blocks[i].next = none
	}
	for i := range c.blocks {
		c.insert(i)
	}
}

// Release returns every block's buffer to the host allocator and
// leaves the arena inert. The root block goes last: the arena's own
// bookkeeping reserve lives inside it.
func (a *BlockArena) Release() {
	if a == nil || a.cache.blocks == nil {
		return
	}
	c := &a.cache
	for i := range c.blocks {
		if i == c.root {
			continue
		}
		a.host.free(c.blocks[i].buf)
	}
	if c.root != none {
		a.host.free(c.blocks[c.root].buf)
	}
	*c = newBlockCache()
}

// Len returns the bytes handed out since creation or the last Reset,
// including per-block bookkeeping reserves.
func (a *BlockArena) Len() int {
	if a == nil {
		return 0
	}
	return a.cache.totalUsed
}

// Cap returns the total capacity of all blocks held by the arena.
func (a *BlockArena) Cap() int {
	if a == nil {
		return 0
	}
	total := 0
	for i := range a.cache.blocks {
		total += len(a.cache.blocks[i].buf)
	}
	return total
}

// Peak returns the high-water mark of Len. It survives Reset.
func (a *BlockArena) Peak() int {
	if a == nil {
		return 0
	}
	return a.peak
}
