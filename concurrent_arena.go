// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"sync"
)

// concurrentArena serializes access to an inner Arena with a single
// mutex. The block cache is one shared structure, so finer-grained
// locking buys nothing here.
type concurrentArena struct {
	mtx sync.Mutex
	a   Arena
}

// NewConcurrentArena wraps a so that it is safe to use from multiple
// goroutines.
func NewConcurrentArena(a Arena) Arena {
	return &concurrentArena{a: a}
}

// Alloc satisfies the Arena interface.
func (c *concurrentArena) Alloc(size int) []byte {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.a == nil {
		return nil
	}
	return c.a.Alloc(size)
}

// Reset satisfies the Arena interface.
func (c *concurrentArena) Reset() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.a == nil {
		return
	}
	c.a.Reset()
}

// Release satisfies the Arena interface.
func (c *concurrentArena) Release() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.a == nil {
		return
	}
	c.a.Release()
}

// Len satisfies the Arena interface.
func (c *concurrentArena) Len() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.a == nil {
		return 0
	}
	return c.a.Len()
}

// Cap satisfies the Arena interface.
func (c *concurrentArena) Cap() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.a == nil {
		return 0
	}
	return c.a.Cap()
}

// Peak satisfies the Arena interface.
func (c *concurrentArena) Peak() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.a == nil {
		return 0
	}
	return c.a.Peak()
}
