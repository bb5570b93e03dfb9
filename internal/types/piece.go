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

import "strings"

// Piece is a signed piece code. PieceNone is 0; a positive value is a white
// piece, negative is black, and the magnitude is the PieceType. This matches
// the board representation used throughout position and movegen: the sign
// carries color so piece-array lookups need no separate color check.
type Piece int8

// PieceNone is the empty-square code.
const PieceNone Piece = 0

// MakePiece builds the signed piece code for a color and piece type.
func MakePiece(c Color, pt PieceType) Piece {
	if pt == PtNone {
		return PieceNone
	}
	if c == White {
		return Piece(pt)
	}
	return -Piece(pt)
}

// ColorOf returns the color of a non-empty piece. Behavior is undefined for
// PieceNone.
func (p Piece) ColorOf() Color {
	if p > 0 {
		return White
	}
	return Black
}

// TypeOf returns the piece type (magnitude) of p.
func (p Piece) TypeOf() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

// IsValid reports whether p is PieceNone or a well-formed signed piece code.
func (p Piece) IsValid() bool {
	return p.TypeOf() < PtLength
}

var charToPieceType = map[byte]PieceType{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

// PieceFromChar parses a single FEN piece letter (uppercase = white,
// lowercase = black) into a Piece. Returns PieceNone for anything else.
func PieceFromChar(s string) Piece {
	if len(s) != 1 {
		return PieceNone
	}
	lower := s[0] | 0x20
	pt, ok := charToPieceType[lower]
	if !ok {
		return PieceNone
	}
	if s[0] == lower {
		return MakePiece(Black, pt)
	}
	return MakePiece(White, pt)
}

// Char returns the FEN letter for p ("-" for PieceNone).
func (p Piece) Char() string {
	if p == PieceNone {
		return "-"
	}
	c := p.TypeOf().Char()
	if p.ColorOf() == Black {
		return strings.ToLower(c)
	}
	return c
}

// String is an alias for Char, matching the FEN piece-letter convention
// used everywhere else in this package.
func (p Piece) String() string {
	return p.Char()
}
