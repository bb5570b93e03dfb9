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

package movegen

import (
	"github.com/frankkopp/perft960/internal/perftcache"
	. "github.com/frankkopp/perft960/internal/position"
	"github.com/frankkopp/perft960/internal/types"
)

// Perft returns the number of leaf positions reachable from p in exactly
// depth plies. depth <= 0 returns 1 (p itself, the conventional perft(0)
// result).
func Perft(p Position, layout *Layout, depth int, cache *perftcache.Cache) uint64 {
	if depth <= 0 {
		return 1
	}
	return perftSide(p, layout, depth-1, cache)
}

// perftSide counts the leaves depth plies below p, consulting and
// updating cache. At depth == 0 it takes the bulk-counting shortcut:
// the number of legal children is the leaf count, so there is no need to
// recurse one ply further just to count 1 per child.
func perftSide(p Position, layout *Layout, depth int, cache *perftcache.Cache) uint64 {
	key := p.Key()
	if cached, ok := cache.Get(key, depth); ok {
		return cached
	}

	var children [MaxChildren]Position
	var moves [MaxChildren]types.Move
	n := GenerateChildren(&p, layout, &children, &moves)

	if depth == 0 {
		return uint64(n)
	}

	var total uint64
	for i := 0; i < n; i++ {
		total += perftSide(children[i], layout, depth-1, cache)
	}
	cache.Put(key, depth, total)
	return total
}

// SplitEntry is one root move's subtree count, as reported by Split.
type SplitEntry struct {
	Move  types.Move
	Nodes uint64
}

// Split enumerates p's legal moves and reports, for each, the perft count
// of the resulting position at depth-1 plies. The sum across entries
// equals Perft(p, layout, depth, cache).
func Split(p Position, layout *Layout, depth int, cache *perftcache.Cache) ([]SplitEntry, uint64) {
	var children [MaxChildren]Position
	var moves [MaxChildren]types.Move
	n := GenerateChildren(&p, layout, &children, &moves)

	entries := make([]SplitEntry, n)
	var total uint64
	for i := 0; i < n; i++ {
		nodes := Perft(children[i], layout, depth-1, cache)
		entries[i] = SplitEntry{Move: moves[i], Nodes: nodes}
		total += nodes
	}
	return entries, total
}
