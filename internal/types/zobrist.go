/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package types

// Key is a 64-bit Zobrist hash of a position.
type Key uint64

// pieceCodeRange is the number of distinct signed piece codes, -King..King,
// including PieceNone: 2*PtLength - 1.
const pieceCodeRange = 2*int(PtLength) - 1

// zobrist holds the random numbers XORed into a position's key as its
// state changes: one per piece-code/square pair, one per castling-rights
// combination, one per en-passant file, and one for side to move.
type zobrist struct {
	pieces         [pieceCodeRange][SqLength]Key
	castlingRights [CastlingRightsLength]Key
	enPassantFile  [FileLength]Key
	sideToMove     Key
}

var zobristBase zobrist

// random is a xorshift64star pseudo-random generator, seeded once at
// startup so every run of the program produces identical Zobrist keys for
// identical positions.
type random struct {
	s uint64
}

func newRandom(seed uint64) random {
	if seed == 0 {
		panic("zobrist: random seed must not be 0")
	}
	return random{s: seed}
}

func (r *random) rand64() uint64 {
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	r.s ^= r.s >> 12
	return r.s * uint64(2685821657736338717)
}

// pieceIndex maps a signed Piece code to a dense zero-based array index:
// PieceNone -> PtLength-1 (the middle slot), with black pieces below and
// white pieces above.
func pieceIndex(p Piece) int {
	return int(p) + int(PtLength) - 1
}

func init() {
	r := newRandom(1070372)
	for pt := PtNone; pt < PtLength; pt++ {
		for c := White; c <= Black; c++ {
			if pt == PtNone {
				continue
			}
			p := MakePiece(c, pt)
			for sq := SqA1; sq <= SqH8; sq++ {
				zobristBase.pieces[pieceIndex(p)][sq] = Key(r.rand64())
			}
		}
	}
	for cr := CastlingNone; cr <= CastlingAny; cr++ {
		zobristBase.castlingRights[cr] = Key(r.rand64())
	}
	for f := FileA; f <= FileH; f++ {
		zobristBase.enPassantFile[f] = Key(r.rand64())
	}
	zobristBase.sideToMove = Key(r.rand64())
}

// ZobristPiece returns the random key for a piece standing on a square.
// p must not be PieceNone.
func ZobristPiece(p Piece, sq Square) Key {
	return zobristBase.pieces[pieceIndex(p)][sq]
}

// ZobristCastling returns the random key for a full castling-rights state.
func ZobristCastling(cr CastlingRights) Key {
	return zobristBase.castlingRights[cr]
}

// ZobristEnPassant returns the random key for an en-passant target square's
// file.
func ZobristEnPassant(f File) Key {
	return zobristBase.enPassantFile[f]
}

// ZobristSideToMove returns the random key XORed in whenever the side to
// move changes.
func ZobristSideToMove() Key {
	return zobristBase.sideToMove
}
