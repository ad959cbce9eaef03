// SPDX-License-Identifier: Apache-2.0

package arena

// blockCache keeps every block of an arena in a doubly linked list
// sorted by descending avail, so the tightest acceptable block for a
// request is the last one of the prefix that can still serve it.
//
// The list nodes live in the indexed blocks store and link by index.
// Blocks are only ever unlinked to be reinserted at their new rank or
// to tear the arena down; the store itself never shrinks.
type blockCache struct {
	blocks []block

	head int
	tail int

	// root is the first block ever created. It also carries the
	// arena's own bookkeeping reserve, so teardown must release it
	// last and nothing may release it on its own.
	root int

	numBlocks  int
	totalUsed  int
	totalAvail int
}

func newBlockCache() blockCache {
	return blockCache{head: none, tail: none, root: none}
}

// insert links block i at its rank. The list stays sorted descending
// by avail: the block is spliced in before the first node holding
// strictly less, so equal-avail entries keep their relative age order.
func (c *blockCache) insert(i int) {
	b := &c.blocks[i]
	b.prev = none
	b.next = none

	switch {
	case c.head == none:
		c.head = i
		c.tail = i
		if c.root == none {
			c.root = i
		}
	default:
		inserted := false
		for node := c.head; node != none; node = c.blocks[node].next {
			if b.avail > c.blocks[node].avail {
				b.prev = c.blocks[node].prev
				b.next = node
				if node == c.head {
					c.head = i
				} else {
					c.blocks[b.prev].next = i
				}
				c.blocks[node].prev = i
				inserted = true
				break
			}
		}
		if !inserted {
			// smaller than everything else, append at the tail
			b.prev = c.tail
			c.blocks[c.tail].next = i
			c.tail = i
		}
	}

	c.numBlocks++
	c.totalUsed += b.used
	c.totalAvail += b.avail
}

// remove unlinks block i, repairing head and tail as needed. The
// aggregate counters come down with it so that a bare removal (the
// teardown path) leaves them consistent; remove followed by insert
// nets out to zero.
func (c *blockCache) remove(i int) {
	b := &c.blocks[i]

	if b.prev != none {
		c.blocks[b.prev].next = b.next
	} else {
		c.head = b.next
	}
	if b.next != none {
		c.blocks[b.next].prev = b.prev
	} else {
		c.tail = b.prev
	}
	b.prev = none
	b.next = none

	c.numBlocks--
	c.totalUsed -= b.used
	c.totalAvail -= b.avail
}

// findBestFit returns the index of the block with the smallest avail
// still >= size, or none. Descending order means every block that can
// serve the request forms a prefix from head; the walk remembers the
// last member of that prefix and stops at the first block that fails.
func (c *blockCache) findBestFit(size int) int {
	best := none
	for node := c.head; node != none; node = c.blocks[node].next {
		if c.blocks[node].avail < size {
			break
		}
		best = node
	}
	return best
}

// inOrder reports whether block i still sits at a valid rank relative
// to both neighbors. Allocations shrink avail, so a block can fall out
// of rank against its successor; the arena re-inserts it only then.
func (c *blockCache) inOrder(i int) bool {
	b := &c.blocks[i]
	if b.prev != none && c.blocks[b.prev].avail < b.avail {
		return false
	}
	if b.next != none && c.blocks[b.next].avail > b.avail {
		return false
	}
	return true
}
