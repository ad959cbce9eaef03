package arena

import (
	"sync"
	"weak"
)

// Pool recycles arenas across table-formatting runs. Items are held as
// weak pointers, so the garbage collector can drop idle arenas at any
// time and the pool shrinks automatically under memory pressure;
// Acquire revives an item by upgrading the weak pointer, Release hands
// it back as weak again.
//
// Per-key peak usage is recorded so that arenas created for a known
// workload start with a base block already sized for it.
type Pool struct {
	pool  []weak.Pointer[PoolItem]
	sizes map[uint64]*poolItemSize
	mu    sync.Mutex
}

// poolItemSize tracks recorded peak usage for one key, averaged over a
// sliding window of releases.
type poolItemSize struct {
	count      int
	totalBytes int
}

// sizeWindow is the number of releases averaged per key before the
// running totals are folded down.
const sizeWindow = 50

// PoolItem is one pooled arena together with the key it was acquired
// under.
type PoolItem struct {
	Arena Arena
	Key   uint64
}

// NewPool creates an empty arena pool.
func NewPool() *Pool {
	return &Pool{
		sizes: make(map[uint64]*poolItemSize),
	}
}

// Acquire returns a reset arena from the pool, or a new one sized from
// the peak usage recorded for key.
func (p *Pool) Acquire(key uint64) *PoolItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.pool) > 0 {
		last := len(p.pool) - 1
		wp := p.pool[last]
		p.pool = p.pool[:last]

		if item := wp.Value(); item != nil {
			item.Key = key
			return item
		}
		// collected under us, keep popping
	}

	a, err := New(WithBaseBlockSize(p.arenaSize(key)))
	if err != nil {
		// the default host draws from the Go heap and does not fail
		panic(err)
	}
	return &PoolItem{Arena: a, Key: key}
}

// Release resets the item's arena, records its peak usage under the
// key it was acquired with, and returns it to the pool.
func (p *Pool) Release(item *PoolItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.release(item)
}

// ReleaseMany releases a batch of items under one lock acquisition.
func (p *Pool) ReleaseMany(items []*PoolItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, item := range items {
		p.release(item)
	}
}

func (p *Pool) release(item *PoolItem) {
	peak := item.Arena.Peak()
	item.Arena.Reset()

	if size, ok := p.sizes[item.Key]; ok {
		if size.count == sizeWindow {
			size.count = 1
			size.totalBytes /= sizeWindow
		}
		size.count++
		size.totalBytes += peak
	} else {
		p.sizes[item.Key] = &poolItemSize{
			count:      1,
			totalBytes: peak,
		}
	}

	item.Key = 0
	p.pool = append(p.pool, weak.Make(item))
}

// arenaSize returns the base block size for a new arena under key:
// the recorded average peak, or a 64KB default for unknown keys.
func (p *Pool) arenaSize(key uint64) int {
	if size, ok := p.sizes[key]; ok {
		return size.totalBytes / size.count
	}
	return 64 * 1024
}
