package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolAcquireRelease(t *testing.T) {
	p := NewPool()

	item := p.Acquire(1)
	require.NotNil(t, item)
	require.Equal(t, uint64(1), item.Key)
	require.NotNil(t, item.Arena.Alloc(100))

	p.Release(item)
	require.Equal(t, uint64(0), item.Key)

	// the strong reference above keeps the weak pointer alive, so the
	// same item comes back reset
	again := p.Acquire(2)
	require.Same(t, item, again)
	require.Equal(t, uint64(2), again.Key)
	require.Equal(t, 0, again.Arena.Len()-againReserve(again))
}

// againReserve returns the bookkeeping floor of the item's arena so the
// reuse assertion can check that no user bytes survived the reset.
func againReserve(item *PoolItem) int {
	a := item.Arena.(*BlockArena)
	total := 0
	for i := range a.cache.blocks {
		total += a.cache.blocks[i].reserve
	}
	return total
}

func TestPoolRecordsPeakSizes(t *testing.T) {
	p := NewPool()

	item := p.Acquire(7)
	require.NotNil(t, item.Arena.Alloc(200_000))
	peak := item.Arena.Peak()
	p.Release(item)

	require.Contains(t, p.sizes, uint64(7))
	require.Equal(t, peak, p.sizes[7].totalBytes)
	require.Equal(t, 1, p.sizes[7].count)

	// a later arena for the same key starts with a base block sized
	// from the recorded peak
	require.Equal(t, peak, p.arenaSize(7))
}

func TestPoolReleaseMany(t *testing.T) {
	p := NewPool()

	items := []*PoolItem{p.Acquire(1), p.Acquire(1), p.Acquire(2)}
	for _, item := range items {
		require.NotNil(t, item.Arena.Alloc(64))
	}
	p.ReleaseMany(items)

	require.Len(t, p.pool, 3)
	require.Equal(t, 2, p.sizes[1].count)
	require.Equal(t, 1, p.sizes[2].count)
}

func TestPoolSizeWindowFoldsDown(t *testing.T) {
	p := NewPool()

	item := p.Acquire(3)
	p.Release(item)
	size := p.sizes[3]
	size.count = sizeWindow
	size.totalBytes = sizeWindow * 1000

	p.Release(p.Acquire(3))
	require.Equal(t, 2, size.count)
	require.GreaterOrEqual(t, size.totalBytes, 1000)
}

func TestPoolUnknownKeyDefaultSize(t *testing.T) {
	p := NewPool()
	require.Equal(t, 64*1024, p.arenaSize(42))
}
