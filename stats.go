package arena

// Stats is a point-in-time snapshot of a BlockArena's bookkeeping.
type Stats struct {
	NumBlocks   int     // blocks currently linked in the cache
	TotalUsed   int     // bytes handed out, including bookkeeping reserves
	TotalAvail  int     // bytes still available across all blocks
	Capacity    int     // total capacity of all host buffers
	Peak        int     // high-water mark of TotalUsed, survives Reset
	Utilization float64 // TotalUsed / Capacity, 0 when empty
}

// Stats returns a snapshot of the arena's counters. A nil or released
// arena reports zeroes.
func (a *BlockArena) Stats() Stats {
	if a == nil {
		return Stats{}
	}
	s := Stats{
		NumBlocks:  a.cache.numBlocks,
		TotalUsed:  a.cache.totalUsed,
		TotalAvail: a.cache.totalAvail,
		Capacity:   a.Cap(),
		Peak:       a.peak,
	}
	if s.Capacity > 0 {
		s.Utilization = float64(s.TotalUsed) / float64(s.Capacity)
	}
	return s
}
