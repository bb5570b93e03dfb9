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

// Perft counts from https://www.chessprogramming.org/Perft_Results.
package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/perft960/internal/perftcache"
	"github.com/frankkopp/perft960/internal/position"
	"github.com/frankkopp/perft960/internal/types"
)

func newCache(t *testing.T, mb int) *perftcache.Cache {
	c, err := perftcache.New(mb)
	assert.NoError(t, err)
	return c
}

func TestPerftStartPos(t *testing.T) {
	pos, layout, err := position.ParseFEN(position.StartFen)
	assert.NoError(t, err)
	cache := newCache(t, 16)

	expected := []uint64{1, 20, 400, 8902, 197281, 4865609}
	for depth, want := range expected {
		assert.Equal(t, want, Perft(pos, &layout, depth, cache), "depth %d", depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos, layout, err := position.ParseFEN(fen)
	assert.NoError(t, err)
	cache := newCache(t, 16)

	expected := []uint64{1, 48, 2039, 97862}
	for depth, want := range expected {
		assert.Equal(t, want, Perft(pos, &layout, depth, cache), "depth %d", depth)
	}
}

func TestPerftEndgame(t *testing.T) {
	fen := "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	pos, layout, err := position.ParseFEN(fen)
	assert.NoError(t, err)
	cache := newCache(t, 16)

	expected := []uint64{1, 14, 191, 2812, 43238}
	for depth, want := range expected {
		assert.Equal(t, want, Perft(pos, &layout, depth, cache), "depth %d", depth)
	}
}

func TestPerftPromotionHeavy(t *testing.T) {
	fen := "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	pos, layout, err := position.ParseFEN(fen)
	assert.NoError(t, err)
	cache := newCache(t, 16)
	assert.Equal(t, uint64(422333), Perft(pos, &layout, 4, cache))
}

func TestPerftChess960StartParsesAndRuns(t *testing.T) {
	// Chess960 opening with the king on g1/g8 and rooks on h1/h8 and f1/f8
	// (Shredder castling letters H and F). The per-depth node counts for
	// this exact position are not pinned here; only that intake succeeds
	// and that a perft run to a shallow depth completes without panicking
	// and produces a nonzero count that grows strictly from depth 1 to 2.
	fen := "bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 0 1"
	pos, layout, err := position.ParseFEN(fen)
	assert.NoError(t, err)
	assert.Equal(t, types.SqG1, layout.KingSq[types.White])
	assert.Equal(t, types.SqH1, layout.RookSq[types.White][types.Kingside])
	assert.Equal(t, types.SqF1, layout.RookSq[types.White][types.Queenside])
	cache := newCache(t, 16)

	depth1 := Perft(pos, &layout, 1, cache)
	depth2 := Perft(pos, &layout, 2, cache)
	assert.Greater(t, depth1, uint64(0))
	assert.Greater(t, depth2, depth1)
}

func TestPerftCacheInvariance(t *testing.T) {
	pos, layout, err := position.ParseFEN(position.StartFen)
	assert.NoError(t, err)

	small := newCache(t, 1)
	large := newCache(t, 128)

	for depth := 1; depth <= 5; depth++ {
		want := Perft(pos, &layout, depth, small)
		got := Perft(pos, &layout, depth, large)
		assert.Equal(t, want, got, "depth %d", depth)
	}
	assert.Equal(t, uint64(4865609), Perft(pos, &layout, 5, small))
}

func TestSplitSumsToPerft(t *testing.T) {
	pos, layout, err := position.ParseFEN(position.StartFen)
	assert.NoError(t, err)
	cache := newCache(t, 16)

	entries, total := Split(pos, &layout, 3, cache)
	assert.Equal(t, uint64(8902), total)

	var sum uint64
	for _, e := range entries {
		sum += e.Nodes
	}
	assert.Equal(t, total, sum)
	assert.Equal(t, 20, len(entries))
}
