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

// PieceType is the kind of a piece, independent of color. Values are the
// magnitude of a Piece code: a Piece's piece type is |piece|.
type PieceType uint8

// PieceType constants. Ordered Pawn..King (not the King-first ordering used
// for evaluation-oriented move ordering in other engines) because a signed
// Piece encodes color in its sign and kind in |value|, and the kind values
// here must equal that magnitude.
const (
	PtNone   PieceType = 0
	Pawn     PieceType = 1
	Knight   PieceType = 2
	Bishop   PieceType = 3
	Rook     PieceType = 4
	Queen    PieceType = 5
	King     PieceType = 6
	PtLength PieceType = 7
)

// IsValid checks if pt is a valid piece type.
func (pt PieceType) IsValid() bool {
	return pt < PtLength
}

var pieceTypeToString = [PtLength]string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}

// String returns a human-readable name for the piece type.
func (pt PieceType) String() string {
	return pieceTypeToString[pt]
}

var pieceTypeToChar = "-PNBRQK"

// Char returns the single-letter FEN symbol for the piece type (uppercase).
func (pt PieceType) Char() string {
	return string(pieceTypeToChar[pt])
}

// PromotionPieceTypes lists the four piece types a pawn may promote to, in
// the order the move generator emits them.
var PromotionPieceTypes = [4]PieceType{Queen, Rook, Bishop, Knight}
