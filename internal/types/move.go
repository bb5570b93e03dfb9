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
	"fmt"
	"strings"
)

// Move is a 16-bit encoded chess move: 6 bits to-square, 6 bits from-square,
// 2 bits promotion piece type (offset from Knight), 2 bits move type.
//  BITMAP 16-bit
//  1 1 1 1 1 1 0 0 0 0 0 0 0 0 0 0
//  5 4 3 2 1 0 9 8 7 6 5 4 3 2 1 0
//  -------------------------------
//                      1 1 1 1 1 1  to
//          1 1 1 1 1 1              from
//      1 1                          promotion piece type (pt-Knight)
//  1 1                              move type
//
// There is no embedded sort value: this engine only ever counts leaves, it
// never orders moves for search.
type Move uint16

// MoveNone is the zero value, never a legal move.
const MoveNone Move = 0

const (
	fromShift     uint  = 6
	promTypeShift uint  = 12
	typeShift     uint  = 14
	squareMask    Move  = 0x3F
	toMask              = squareMask
	fromMask            = squareMask << fromShift
	promTypeMask  Move  = 3 << promTypeShift
	moveTypeMask  Move  = 3 << typeShift
)

// CreateMove encodes a move. promType is only meaningful when t ==
// Promotion; it is otherwise stored as Knight (0) but ignored on read.
func CreateMove(from Square, to Square, t MoveType, promType PieceType) Move {
	if promType < Knight {
		promType = Knight
	}
	return Move(to) |
		Move(from)<<fromShift |
		Move(promType-Knight)<<promTypeShift |
		Move(t)<<typeShift
}

// MoveType returns the move's type.
func (m Move) MoveType() MoveType {
	return MoveType((m & moveTypeMask) >> typeShift)
}

// PromotionType returns the promotion piece type. Only meaningful when
// MoveType() == Promotion.
func (m Move) PromotionType() PieceType {
	return PieceType((m&promTypeMask)>>promTypeShift) + Knight
}

// To returns the move's destination square.
func (m Move) To() Square {
	return Square(m & toMask)
}

// From returns the move's origin square.
func (m Move) From() Square {
	return Square((m & fromMask) >> fromShift)
}

// IsValid checks that a move's squares, promotion type, and move type are
// all well formed. MoveNone is not valid.
func (m Move) IsValid() bool {
	return m != MoveNone &&
		m.From().IsValid() &&
		m.To().IsValid() &&
		m.PromotionType().IsValid() &&
		m.MoveType().IsValid()
}

// String renders a move in coordinate notation with an optional lowercase
// promotion letter, e.g. "e7e8q". Castling renders as the king's from-to
// squares (the destination file is always c or g and unambiguous).
func (m Move) String() string {
	if m == MoveNone {
		return "0000"
	}
	var os strings.Builder
	os.WriteString(m.From().String())
	os.WriteString(m.To().String())
	if m.MoveType() == Promotion {
		os.WriteString(strings.ToLower(m.PromotionType().Char()))
	}
	return os.String()
}

// StringBits is a debugging aid that prints every field of the encoding.
func (m Move) StringBits() string {
	return fmt.Sprintf(
		"Move{from=%s to=%s promo=%s type=%s raw=%016b}",
		m.From(), m.To(), m.PromotionType().Char(), m.MoveType(), uint16(m))
}
