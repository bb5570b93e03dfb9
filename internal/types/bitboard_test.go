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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitboardPopCount(t *testing.T) {
	tests := []struct {
		value    Bitboard
		expected int
	}{
		{BbZero, 0},
		{BbAll, 64},
		{BbOne, 1},
		{FileA_Bb, 8},
		{Bitboard(7), 3},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, test.value.PopCount())
	}
}

func TestBitboardLsbAndPopLsb(t *testing.T) {
	assert.Equal(t, SqNone, BbZero.Lsb())
	b := SqC3.Bb() | SqA1.Bb() | SqH8.Bb()
	assert.Equal(t, SqA1, b.Lsb())
	first := b.PopLsb()
	assert.Equal(t, SqA1, first)
	assert.Equal(t, SqC3, b.Lsb())
}

func TestBitboardHasAndPopSquare(t *testing.T) {
	b := SqE4.Bb()
	assert.True(t, b.Has(SqE4))
	assert.False(t, b.Has(SqE5))
	b.PopSquare(SqE4)
	assert.False(t, b.Has(SqE4))
}

func TestShiftBitboardStopsAtEdges(t *testing.T) {
	assert.Equal(t, BbZero, ShiftBitboard(FileH_Bb, East))
	assert.Equal(t, BbZero, ShiftBitboard(FileA_Bb, West))
	assert.Equal(t, BbZero, ShiftBitboard(Rank8_Bb, North))
	assert.Equal(t, SqA2.Bb(), ShiftBitboard(SqA1.Bb(), North))
}

func TestFillInclusiveSameRankRange(t *testing.T) {
	assert.Equal(t, SqE1.Bb()|SqF1.Bb()|SqG1.Bb(), Fill(SqE1, SqG1))
	assert.Equal(t, SqG1.Bb()|SqF1.Bb()|SqE1.Bb(), Fill(SqG1, SqE1))
	assert.Equal(t, SqE1.Bb(), Fill(SqE1, SqE1))
}
