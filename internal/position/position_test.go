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

package position

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/frankkopp/perft960/internal/types"
)

func TestParseFENStartPos(t *testing.T) {
	pos, layout, err := ParseFEN(StartFen)
	assert.NoError(t, err)
	assert.Equal(t, White, pos.SideToMove)
	assert.Equal(t, SqNone, pos.EpSquare)
	assert.Equal(t, CastlingAny, pos.Castling)
	assert.Equal(t, SqE1, layout.KingSq[White])
	assert.Equal(t, SqE8, layout.KingSq[Black])
	assert.Equal(t, SqA1, layout.RookSq[White][Queenside])
	assert.Equal(t, SqH1, layout.RookSq[White][Kingside])
	assert.Equal(t, SqA8, layout.RookSq[Black][Queenside])
	assert.Equal(t, SqH8, layout.RookSq[Black][Kingside])
	assert.Equal(t, 8, pos.White[Pawn-1].PopCount())
	assert.Equal(t, 8, pos.Black[Pawn-1].PopCount())
	assert.Equal(t, 1, pos.White[King-1].PopCount())
	assert.False(t, pos.InCheck(White))
	assert.False(t, pos.InCheck(Black))
}

func TestParseFENStandardCastlingGeometry(t *testing.T) {
	_, layout, err := ParseFEN(StartFen)
	assert.NoError(t, err)
	assert.Equal(t, SqF1.Bb()|SqG1.Bb(), layout.CastleEmpty[White][Kingside])
	assert.Equal(t, SqB1.Bb()|SqC1.Bb()|SqD1.Bb(), layout.CastleEmpty[White][Queenside])
	assert.Equal(t, SqE1.Bb()|SqF1.Bb()|SqG1.Bb(), layout.CastlePath[White][Kingside])
	assert.Equal(t, SqC1.Bb()|SqD1.Bb()|SqE1.Bb(), layout.CastlePath[White][Queenside])
}

func TestParseFENShredderCastling(t *testing.T) {
	// Chess960 start: king on e, rooks on d and f.
	fen := "nbbrkrqn/pppppppp/8/8/8/8/PPPPPPPP/NBBRKRQN w DFdf - 0 1"
	pos, layout, err := ParseFEN(fen)
	assert.NoError(t, err)
	assert.Equal(t, SqE1, layout.KingSq[White])
	assert.Equal(t, SqD1, layout.RookSq[White][Queenside])
	assert.Equal(t, SqF1, layout.RookSq[White][Kingside])
	assert.True(t, pos.Castling.Has(CastlingWhiteOO))
	assert.True(t, pos.Castling.Has(CastlingWhiteOOO))
}

func TestParseFENBadFenTooFewFields(t *testing.T) {
	_, _, err := ParseFEN("8/8/8/8/8/8/8/8 w")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadFen))
}

func TestParseFENBadBoardMissingKing(t *testing.T) {
	_, _, err := ParseFEN("8/8/8/8/8/8/8/K7 w - - 0 1")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadBoard))
}

func TestParseFENIllegalPositionOppositeKingInCheck(t *testing.T) {
	// Black to move, but white (the side that just moved) is left in check.
	_, _, err := ParseFEN("k3r3/8/8/8/8/8/8/4K3 b - - 0 1")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrIllegalPosition))
}

func TestKeyDiffersOnSideToMove(t *testing.T) {
	white, _, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	black, _, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	assert.NoError(t, err)
	assert.NotEqual(t, white.Key(), black.Key())
}

func TestKeyStableAcrossParses(t *testing.T) {
	a, _, err := ParseFEN(StartFen)
	assert.NoError(t, err)
	b, _, err := ParseFEN(StartFen)
	assert.NoError(t, err)
	assert.Equal(t, a.Key(), b.Key())
}

func TestInCheckDetectsRookCheck(t *testing.T) {
	// It is legal for the side to move to already be in check.
	pos, _, err := ParseFEN("4k3/8/8/8/4r3/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	assert.True(t, pos.InCheck(White))
	assert.False(t, pos.InCheck(Black))
}
