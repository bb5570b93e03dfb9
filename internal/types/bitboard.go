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

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/frankkopp/perft960/internal/util"
)

// Bitboard is a 64 bit unsigned int with 1 bit for each square on the board.
type Bitboard uint64

// Bb returns a Bitboard of the square by accessing the pre calculated
// square to bitboard array.
func (sq Square) Bb() Bitboard {
	return sqBb[sq]
}

// PushSquare sets the corresponding bit of the bitboard for the square.
func PushSquare(b Bitboard, s Square) Bitboard {
	return b | s.Bb()
}

// PushSquare sets the corresponding bit on the receiver and returns it.
func (b *Bitboard) PushSquare(s Square) Bitboard {
	*b |= s.Bb()
	return *b
}

// PopSquare clears the corresponding bit of the bitboard for the square.
func PopSquare(b Bitboard, s Square) Bitboard {
	return b &^ s.Bb()
}

// PopSquare clears the corresponding bit on the receiver and returns it.
func (b *Bitboard) PopSquare(s Square) Bitboard {
	*b = *b &^ s.Bb()
	return *b
}

// Has reports whether the square's bit is set.
func (b Bitboard) Has(s Square) bool {
	return b&sqBb[s] != 0
}

// ShiftBitboard shifts every set bit of b one square in direction d,
// masking off bits that would otherwise wrap around a board edge.
func ShiftBitboard(b Bitboard, d Direction) Bitboard {
	switch d {
	case North:
		return (Rank8Mask & b) << 8
	case East:
		return (MsbMask & b) << 1 & FileAMask
	case South:
		return b >> 8
	case West:
		return (b >> 1) & FileHMask
	case Northeast:
		return (Rank8Mask & b) << 9 & FileAMask
	case Southeast:
		return (b >> 7) & FileAMask
	case Southwest:
		return (b >> 9) & FileHMask
	case Northwest:
		return (b << 7) & FileHMask
	}
	return b
}

// Lsb returns the square of the least significant set bit, or SqNone if b
// is empty.
func (b Bitboard) Lsb() Square {
	if b == BbZero {
		return SqNone
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Msb returns the square of the most significant set bit, or SqNone if b
// is empty.
func (b Bitboard) Msb() Square {
	if b == BbZero {
		return SqNone
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLsb clears and returns the least significant set bit's square.
func (b *Bitboard) PopLsb() Square {
	if *b == BbZero {
		return SqNone
	}
	lsb := b.Lsb()
	*b &= *b - 1
	return lsb
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// String returns the raw 64 bit pattern, most significant bit first.
func (b Bitboard) String() string {
	return fmt.Sprintf("%-0.64b", uint64(b))
}

// StringBoard renders b as an 8x8 ascii board, rank 8 printed first.
func (b Bitboard) StringBoard() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			if b.Has(SquareOf(f, Rank8-r)) {
				os.WriteString("| X ")
			} else {
				os.WriteString("|   ")
			}
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}

// StringGrouped renders the bit pattern in dot separated groups of eight,
// one group per rank.
func (b Bitboard) StringGrouped() string {
	s := b.String()
	var os strings.Builder
	for i := 0; i < 64; i += 8 {
		if i > 0 {
			os.WriteString(".")
		}
		os.WriteString(s[i : i+8])
	}
	return os.String()
}

// FileDistance returns the absolute distance in files between two files.
func FileDistance(f1 File, f2 File) int {
	return util.Abs(int(f2) - int(f1))
}

// RankDistance returns the absolute distance in ranks between two ranks.
func RankDistance(r1 Rank, r2 Rank) int {
	return util.Abs(int(r2) - int(r1))
}

// SquareDistance returns the Chebyshev (king-move) distance between two
// squares.
func SquareDistance(s1 Square, s2 Square) int {
	if s1 == s2 || !s1.IsValid() || !s2.IsValid() {
		return 0
	}
	return squareDistance[s1][s2]
}

// GetAttacksBb returns the attack bitboard of a sliding or jumping piece
// type (Bishop, Rook, Queen, Knight or King) standing on sq, given the
// current board occupancy. Bishop and Rook use the magic-bitboard tables;
// Queen is their union; Knight and King ignore occupied and return the
// precomputed jump table.
func GetAttacksBb(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Bishop:
		m := &bishopMagics[sq]
		return m.Attacks[m.index(occupied)]
	case Rook:
		m := &rookMagics[sq]
		return m.Attacks[m.index(occupied)]
	case Queen:
		bm := &bishopMagics[sq]
		rm := &rookMagics[sq]
		return bm.Attacks[bm.index(occupied)] | rm.Attacks[rm.index(occupied)]
	case Knight, King:
		return pseudoAttacks[pt][sq]
	default:
		panic(fmt.Sprintf("GetAttacksBb: unsupported piece type %s", pt))
	}
}

// GetPseudoAttacks returns the precomputed jump-table attacks for Knight or
// King (board independent).
func GetPseudoAttacks(pt PieceType, sq Square) Bitboard {
	return pseudoAttacks[pt][sq]
}

// GetPawnAttacks returns the squares a pawn of color c standing on sq
// attacks diagonally (captures only, not pushes).
func GetPawnAttacks(c Color, sq Square) Bitboard {
	return pawnAttacks[c][sq]
}

// NeighbourFilesMask returns the files immediately east and west of sq's
// file, used to locate pawns able to capture en passant onto sq's rank.
func (sq Square) NeighbourFilesMask() Bitboard {
	return neighbourFilesMask[sq]
}

// Fill returns the inclusive bitboard of all squares on the same rank
// between from and to (in either direction), including both endpoints.
// Used to build the Chess960 castling path and empty-square masks from the
// actual king and rook starting squares of a position.
func Fill(from Square, to Square) Bitboard {
	if !from.IsValid() || !to.IsValid() {
		return BbZero
	}
	b := from.Bb()
	if from == to {
		return b
	}
	step := 1
	if from > to {
		step = -1
	}
	for s := from; s != to; s = Square(int(s) + step) {
		b |= s.Bb()
	}
	b |= to.Bb()
	return b
}

// Constant bitboards for files, ranks and common masks.
const (
	BbZero Bitboard = Bitboard(0)
	BbAll  Bitboard = ^BbZero
	BbOne  Bitboard = Bitboard(1)

	FileA_Bb Bitboard = 0x0101010101010101
	FileB_Bb Bitboard = FileA_Bb << 1
	FileC_Bb Bitboard = FileA_Bb << 2
	FileD_Bb Bitboard = FileA_Bb << 3
	FileE_Bb Bitboard = FileA_Bb << 4
	FileF_Bb Bitboard = FileA_Bb << 5
	FileG_Bb Bitboard = FileA_Bb << 6
	FileH_Bb Bitboard = FileA_Bb << 7

	Rank1_Bb Bitboard = 0xFF
	Rank2_Bb Bitboard = Rank1_Bb << (8 * 1)
	Rank3_Bb Bitboard = Rank1_Bb << (8 * 2)
	Rank4_Bb Bitboard = Rank1_Bb << (8 * 3)
	Rank5_Bb Bitboard = Rank1_Bb << (8 * 4)
	Rank6_Bb Bitboard = Rank1_Bb << (8 * 5)
	Rank7_Bb Bitboard = Rank1_Bb << (8 * 6)
	Rank8_Bb Bitboard = Rank1_Bb << (8 * 7)

	MsbMask   Bitboard = ^(Bitboard(1) << 63)
	Rank8Mask Bitboard = ^Rank8_Bb
	FileAMask Bitboard = ^FileA_Bb
	FileHMask Bitboard = ^FileH_Bb

	DiagUpA1H8   Bitboard = 0x8040201008040201
	DiagDownH1A8 Bitboard = 0x0102040810204080
)

// ////////////////////////////////////////////////////////////////////////
// precompute
// ////////////////////////////////////////////////////////////////////////

func (sq Square) bitboard() Bitboard {
	return Bitboard(uint64(1) << uint(sq))
}

var (
	sqBb               [SqLength]Bitboard
	fileBb             [FileLength]Bitboard
	rankBb             [RankLength]Bitboard
	squareDistance     [SqLength][SqLength]int
	neighbourFilesMask [SqLength]Bitboard
	fileWestMask       [SqLength]Bitboard
	fileEastMask       [SqLength]Bitboard

	pseudoAttacks [PtLength][SqLength]Bitboard
	pawnAttacks   [ColorLength][SqLength]Bitboard

	rookMagics   [SqLength]Magic
	bishopMagics [SqLength]Magic
	rookTable    []Bitboard
	bishopTable  []Bitboard
)

var (
	rookDirections   = [4]Direction{North, East, South, West}
	bishopDirections = [4]Direction{Northeast, Southeast, Southwest, Northwest}
)

func initMagicBitboards() {
	rookTable = make([]Bitboard, 0x19000, 0x19000)
	bishopTable = make([]Bitboard, 0x1480, 0x1480)
	initMagics(&rookTable, &rookMagics, &rookDirections)
	initMagics(&bishopTable, &bishopMagics, &bishopDirections)
}

func init() {
	squareBitboardsPreCompute()
	rankFileBbPreCompute()
	squareDistancePreCompute()
	neighbourMasksPreCompute()
	pseudoAttacksPreCompute()
	initMagicBitboards()
}

func squareBitboardsPreCompute() {
	for sq := SqA1; sq < SqNone; sq++ {
		sqBb[sq] = sq.bitboard()
	}
}

func rankFileBbPreCompute() {
	for r := Rank1; r <= Rank8; r++ {
		rankBb[r] = Rank1_Bb << (8 * uint(r))
	}
	for f := FileA; f <= FileH; f++ {
		fileBb[f] = FileA_Bb << uint(f)
	}
}

func squareDistancePreCompute() {
	for s1 := SqA1; s1 <= SqH8; s1++ {
		for s2 := SqA1; s2 <= SqH8; s2++ {
			fd := FileDistance(s1.FileOf(), s2.FileOf())
			rd := RankDistance(s1.RankOf(), s2.RankOf())
			if fd > rd {
				squareDistance[s1][s2] = fd
			} else {
				squareDistance[s1][s2] = rd
			}
		}
	}
}

func neighbourMasksPreCompute() {
	for sq := SqA1; sq <= SqH8; sq++ {
		f := int(sq.FileOf())
		if f > 0 {
			fileWestMask[sq] = FileA_Bb << uint(f-1)
		}
		if f < 7 {
			fileEastMask[sq] = FileA_Bb << uint(f+1)
		}
		neighbourFilesMask[sq] = fileEastMask[sq] | fileWestMask[sq]
	}
}

// pseudoAttacksPreCompute fills the board-independent jump tables for pawn
// captures, knight and king, plus the zero-occupancy sliding attacks for
// bishop, rook and queen (initMagics computes its own masks and does not
// read these).
func pseudoAttacksPreCompute() {
	kingSteps := []Direction{Northwest, North, Northeast, East, Southeast, South, Southwest, West}
	knightSteps := []Direction{
		West + Northwest, East + Northeast, North + Northwest, North + Northeast,
		South + Southwest, South + Southeast, West + Southwest, East + Southeast,
	}
	pawnSteps := []Direction{Northwest, Northeast}

	for c := White; c <= Black; c++ {
		for sq := SqA1; sq <= SqH8; sq++ {
			for _, step := range pawnSteps {
				to := Square(int(sq) + c.Direction()*int(step))
				if to.IsValid() && SquareDistance(sq, to) == 1 {
					pawnAttacks[c][sq] |= sqBb[to]
				}
			}
		}
	}

	for sq := SqA1; sq <= SqH8; sq++ {
		for _, step := range kingSteps {
			to := sq.To(step)
			if to.IsValid() {
				pseudoAttacks[King][sq] |= sqBb[to]
			}
		}
		for _, step := range knightSteps {
			to := Square(int(sq) + int(step))
			if to.IsValid() && SquareDistance(sq, to) == 2 {
				pseudoAttacks[Knight][sq] |= sqBb[to]
			}
		}
		pseudoAttacks[Bishop][sq] = slidingAttack(&bishopDirections, sq, BbZero)
		pseudoAttacks[Rook][sq] = slidingAttack(&rookDirections, sq, BbZero)
		pseudoAttacks[Queen][sq] = pseudoAttacks[Bishop][sq] | pseudoAttacks[Rook][sq]
	}
}
