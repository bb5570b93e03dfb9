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

func TestCastlingRightsHasAddRemove(t *testing.T) {
	var cr CastlingRights
	cr.Add(CastlingWhiteOO)
	assert.True(t, cr.Has(CastlingWhiteOO))
	assert.False(t, cr.Has(CastlingWhiteOOO))

	cr.Add(CastlingBlack)
	assert.True(t, cr.Has(CastlingBlackOO))
	assert.True(t, cr.Has(CastlingBlackOOO))

	cr.Remove(CastlingWhiteOO)
	assert.False(t, cr.Has(CastlingWhiteOO))
	assert.True(t, cr.Has(CastlingBlackOO))
}

func TestForSide(t *testing.T) {
	assert.Equal(t, CastlingWhite, ForSide(White))
	assert.Equal(t, CastlingBlack, ForSide(Black))
}

func TestBit(t *testing.T) {
	assert.Equal(t, CastlingWhiteOO, Bit(White, Kingside))
	assert.Equal(t, CastlingWhiteOOO, Bit(White, Queenside))
	assert.Equal(t, CastlingBlackOO, Bit(Black, Kingside))
	assert.Equal(t, CastlingBlackOOO, Bit(Black, Queenside))
}

func TestCastlingRightsString(t *testing.T) {
	assert.Equal(t, "-", CastlingNone.String())
	assert.Equal(t, "KQkq", CastlingRights(CastlingAny).String())
	assert.Equal(t, "Kq", (CastlingWhiteOO | CastlingBlackOOO).String())
}
