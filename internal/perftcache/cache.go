//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package perftcache is a direct-mapped, fixed-capacity cache of perft
// subtree results keyed by (Zobrist key, depth). Unlike a search
// transposition table it is not thread safe and has no aging: a Cache is
// built at the requested size for one run (the bench command builds one per
// worker goroutine) and discarded at the end of it.
package perftcache

import (
	"fmt"
	"math/bits"
	"unsafe"

	. "github.com/frankkopp/perft960/internal/types"
)

// MinSizeMB and MaxSizeMB bound the configurable cache size in megabytes.
const (
	MinSizeMB = 1
	MaxSizeMB = 1 << 20 // 1 TiB
	mb        = 1 << 20
)

// entry is a single cache slot. Zero value is empty: Put never stores a
// zero node count, so Get treats nodes == 0 as an empty slot and never
// matches it, whatever key and depth it is asked for.
type entry struct {
	key   Key
	nodes uint64
	depth int8
}

// Cache is a direct-mapped, power-of-two capacity perft result cache.
// Not safe for concurrent use.
type Cache struct {
	entries []entry
	mask    uint64
}

// New allocates a cache sized to the largest power-of-two entry count that
// fits within sizeMB megabytes, clamped to [MinSizeMB, MaxSizeMB]. Returns
// an error if the backing allocation fails.
func New(sizeMB int) (cache *Cache, err error) {
	if sizeMB < MinSizeMB {
		sizeMB = MinSizeMB
	}
	if sizeMB > MaxSizeMB {
		sizeMB = MaxSizeMB
	}

	entrySize := uint64(unsafe.Sizeof(entry{}))
	budget := uint64(sizeMB) * mb
	numEntries := budget / entrySize
	if numEntries == 0 {
		numEntries = 1
	}
	// round down to a power of two
	numEntries = uint64(1) << uint(bits.Len64(numEntries)-1)

	defer func() {
		if r := recover(); r != nil {
			cache = nil
			err = fmt.Errorf("%w: %v", ErrCacheAllocFailed, r)
		}
	}()

	return &Cache{
		entries: make([]entry, numEntries),
		mask:    numEntries - 1,
	}, nil
}

// ErrCacheAllocFailed is returned by New when the backing slice allocation
// fails (panics); it is a fatal condition for the caller.
var ErrCacheAllocFailed = fmt.Errorf("perft cache allocation failed")

func (c *Cache) index(key Key) uint64 {
	return uint64(key) & c.mask
}

// Get returns the cached node count for (key, depth), or (0, false) on a
// miss. Depth-0 results are never stored, so a depth-0 lookup always
// misses.
func (c *Cache) Get(key Key, depth int) (uint64, bool) {
	e := &c.entries[c.index(key)]
	if e.nodes != 0 && e.key == key && int(e.depth) == depth {
		return e.nodes, true
	}
	return 0, false
}

// Put stores nodes for (key, depth). Depth-0 writes and zero node counts
// are silently dropped. Otherwise the slot is overwritten unless it
// already holds the same key with a strictly greater node count (which
// implies a deeper, more valuable subtree already occupies the slot).
func (c *Cache) Put(key Key, depth int, nodes uint64) {
	if depth == 0 || nodes == 0 {
		return
	}
	e := &c.entries[c.index(key)]
	if e.key == key && e.nodes > nodes {
		return
	}
	e.key = key
	e.depth = int8(depth)
	e.nodes = nodes
}

// Capacity returns the number of entries the cache holds.
func (c *Cache) Capacity() int {
	return len(c.entries)
}

// SizeBytes returns the cache's actual backing memory usage in bytes.
func (c *Cache) SizeBytes() uint64 {
	return uint64(len(c.entries)) * uint64(unsafe.Sizeof(entry{}))
}
