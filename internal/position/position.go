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

// Package position represents a chess board as a plain, copyable value:
// twelve piece bitboards, a redundant 8x8 piece array, an en-passant
// square, and a castling-rights mask. There is no undo stack: child
// positions are produced by copying a parent and applying a move directly
// to the copy (copy-make), never by mutating a position in place and
// unwinding it later.
package position

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	. "github.com/frankkopp/perft960/internal/types"
)

// StartFen is the FEN of the standard chess starting position.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Sentinel errors for the three fatal intake failure kinds. Wrap with
// fmt.Errorf("%w: ...", ErrX) for a specific diagnostic; callers test with
// errors.Is.
var (
	ErrBadFen          = errors.New("bad fen")
	ErrBadBoard        = errors.New("bad board")
	ErrIllegalPosition = errors.New("illegal position")
)

// Position is the board state that changes from move to move. It is a
// plain value: copying it copies the whole board, and no Position shares
// storage with another.
type Position struct {
	White      [6]Bitboard
	Black      [6]Bitboard
	PieceAt    [64]Piece
	EpSquare   Square
	Castling   CastlingRights
	SideToMove Color
}

// Layout holds the per-game-instance castling geometry established once
// from the starting position's actual king and rook files. It does not
// change from move to move (only the Castling bitmask on each Position
// does) and is never copied per child; every position produced while
// analyzing one starting FEN shares a single Layout.
type Layout struct {
	KingSq      [ColorLength]Square
	RookSq      [ColorLength][2]Square
	CastlePath  [ColorLength][2]Bitboard
	CastleEmpty [ColorLength][2]Bitboard
}

// PieceBb returns the bitboard of color c's pieces of type pt.
func (p *Position) PieceBb(c Color, pt PieceType) Bitboard {
	if c == White {
		return p.White[pt-1]
	}
	return p.Black[pt-1]
}

// OccupiedBb returns the bitboard of all of color c's pieces.
func (p *Position) OccupiedBb(c Color) Bitboard {
	var b Bitboard
	bbs := &p.White
	if c == Black {
		bbs = &p.Black
	}
	for _, pieceBb := range bbs {
		b |= pieceBb
	}
	return b
}

// OccupiedAll returns the bitboard of every occupied square.
func (p *Position) OccupiedAll() Bitboard {
	return p.OccupiedBb(White) | p.OccupiedBb(Black)
}

// KingSquare returns the square of color c's king.
func (p *Position) KingSquare(c Color) Square {
	return p.PieceBb(c, King).Lsb()
}

func (p *Position) putPiece(piece Piece, sq Square) {
	p.PieceAt[sq] = piece
	c := piece.ColorOf()
	pt := piece.TypeOf()
	if c == White {
		p.White[pt-1] |= sq.Bb()
	} else {
		p.Black[pt-1] |= sq.Bb()
	}
}

// IsAttacked reports whether sq is attacked by the opponent of ownColor,
// given the current occupancy. ownColor determines pawn-attack direction
// only; it need not be the color actually standing on sq.
func (p *Position) IsAttacked(sq Square, ownColor Color) bool {
	enemy := ownColor.Flip()
	occ := p.OccupiedAll()

	if GetPawnAttacks(ownColor, sq)&p.PieceBb(enemy, Pawn) != 0 {
		return true
	}
	if GetAttacksBb(Knight, sq, occ)&p.PieceBb(enemy, Knight) != 0 {
		return true
	}
	enemyQueens := p.PieceBb(enemy, Queen)
	if GetAttacksBb(Bishop, sq, occ)&(p.PieceBb(enemy, Bishop)|enemyQueens) != 0 {
		return true
	}
	if GetAttacksBb(Rook, sq, occ)&(p.PieceBb(enemy, Rook)|enemyQueens) != 0 {
		return true
	}
	if GetAttacksBb(King, sq, occ)&p.PieceBb(enemy, King) != 0 {
		return true
	}
	return false
}

// InCheck reports whether c's king is currently attacked.
func (p *Position) InCheck(c Color) bool {
	return p.IsAttacked(p.KingSquare(c), c)
}

// Key computes the position's Zobrist hash from scratch (no incremental
// maintenance).
func (p *Position) Key() Key {
	var k Key
	for sq := SqA1; sq <= SqH8; sq++ {
		if piece := p.PieceAt[sq]; piece != PieceNone {
			k ^= ZobristPiece(piece, sq)
		}
	}
	k ^= ZobristCastling(p.Castling)
	if p.EpSquare.IsValid() {
		k ^= ZobristEnPassant(p.EpSquare.FileOf())
	}
	if p.SideToMove == Black {
		k ^= ZobristSideToMove()
	}
	return k
}

// String renders the board as an 8x8 ascii grid plus the side to move,
// castling rights, and en-passant square.
func (p *Position) String() string {
	var b strings.Builder
	b.WriteString(p.StringBoard())
	b.WriteString(fmt.Sprintf("Side to move: %s  Castling: %s  EP: %s\n",
		p.SideToMove, p.Castling, p.EpSquare))
	return b.String()
}

// StringBoard renders only the 8x8 ascii grid, rank 8 first.
func (p *Position) StringBoard() string {
	var b strings.Builder
	b.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank8; ; r-- {
		for f := FileA; f <= FileH; f++ {
			piece := p.PieceAt[SquareOf(f, r)]
			if piece == PieceNone {
				b.WriteString("|   ")
			} else {
				b.WriteString(fmt.Sprintf("| %s ", piece.Char()))
			}
		}
		b.WriteString(fmt.Sprintf("| %s\n+---+---+---+---+---+---+---+---+\n", r))
		if r == Rank1 {
			break
		}
	}
	return b.String()
}

// ParseFEN parses standard FEN, plus Shredder-style castling file letters
// (A-H / a-h) identifying specific rook files. Only the first four fields
// (placement, side to move, castling, en-passant) are used; halfmove and
// fullmove counters, if present, are parsed for leniency and discarded.
func ParseFEN(fen string) (Position, Layout, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return Position{}, Layout{}, fmt.Errorf("%w: expected at least 4 fields, got %d", ErrBadFen, len(fields))
	}

	var pos Position
	pos.EpSquare = SqNone

	if err := parsePlacement(&pos, fields[0]); err != nil {
		return Position{}, Layout{}, err
	}

	switch fields[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return Position{}, Layout{}, fmt.Errorf("%w: invalid side to move %q", ErrBadFen, fields[1])
	}

	whiteKingBb := pos.White[King-1]
	blackKingBb := pos.Black[King-1]
	if whiteKingBb.PopCount() != 1 || blackKingBb.PopCount() != 1 {
		return Position{}, Layout{}, fmt.Errorf("%w: expected exactly one king per side", ErrBadBoard)
	}

	var layout Layout
	layout.KingSq[White] = whiteKingBb.Lsb()
	layout.KingSq[Black] = blackKingBb.Lsb()
	layout.RookSq[White] = [2]Square{SqNone, SqNone}
	layout.RookSq[Black] = [2]Square{SqNone, SqNone}

	if err := parseCastling(&pos, &layout, fields[2]); err != nil {
		return Position{}, Layout{}, err
	}
	buildCastlingBitboards(&layout, &pos)

	if fields[3] != "-" {
		epSq := MakeSquare(fields[3])
		if epSq == SqNone {
			return Position{}, Layout{}, fmt.Errorf("%w: invalid en-passant square %q", ErrBadFen, fields[3])
		}
		pos.EpSquare = epSq
	}

	if len(fields) >= 5 {
		if _, err := strconv.Atoi(fields[4]); err != nil {
			return Position{}, Layout{}, fmt.Errorf("%w: invalid halfmove clock %q", ErrBadFen, fields[4])
		}
	}
	if len(fields) >= 6 {
		if _, err := strconv.Atoi(fields[5]); err != nil {
			return Position{}, Layout{}, fmt.Errorf("%w: invalid fullmove number %q", ErrBadFen, fields[5])
		}
	}

	if pos.InCheck(pos.SideToMove.Flip()) {
		return Position{}, Layout{}, fmt.Errorf("%w: side not to move is in check", ErrIllegalPosition)
	}

	return pos, layout, nil
}

// parsePlacement reads the first FEN field, placing pieces rank 8 down to
// rank 1. The square cursor deliberately runs unchecked past file H between
// ranks (as the source does): a rank's worth of digits/pieces always
// advances the cursor exactly 8 files, landing one square past file H
// (which is not itself a valid Square), and a "/" steps it down two ranks
// (16 squares) to the start of the next rank below. The cursor is tracked
// as a plain int throughout for this reason, only converted to Square at
// the point a piece is actually placed.
func parsePlacement(pos *Position, field string) error {
	cur := int(SqA8)
	for _, c := range field {
		switch {
		case c >= '1' && c <= '8':
			cur += int(c - '0')
		case c == '/':
			cur -= 16
		default:
			piece := PieceFromChar(string(c))
			if piece == PieceNone {
				return fmt.Errorf("%w: invalid piece character %q", ErrBadFen, string(c))
			}
			if cur < int(SqA1) || cur > int(SqH8) {
				return fmt.Errorf("%w: piece placement field overruns the board", ErrBadFen)
			}
			pos.putPiece(piece, Square(cur))
			cur++
		}
	}
	if cur != int(SqA2) {
		return fmt.Errorf("%w: piece placement field does not cover exactly 64 squares", ErrBadFen)
	}
	return nil
}

// parseCastling resolves the third FEN field into castling rights and the
// Layout's recorded rook starting squares. "K"/"Q"/"k"/"q" denote the
// outermost rook of that color on the named flank (standard dialect);
// "A"-"H" / "a"-"h" name the rook's file directly (Shredder dialect),
// with the flank inferred from the file relative to that color's king.
func parseCastling(pos *Position, layout *Layout, field string) error {
	if field == "-" {
		return nil
	}
	for _, c := range field {
		var color Color
		var flank int
		var rookSq Square

		switch {
		case c == 'K', c == 'Q':
			color = White
			flank = flankFor(c)
			rookSq = findOutermostRook(pos, Rank1, White, flank == Kingside)
		case c == 'k', c == 'q':
			color = Black
			flank = flankFor(c)
			rookSq = findOutermostRook(pos, Rank8, Black, flank == Kingside)
		case c >= 'A' && c <= 'H':
			color = White
			f := File(c - 'A')
			rookSq = SquareOf(f, Rank1)
			flank = Queenside
			if f > layout.KingSq[White].FileOf() {
				flank = Kingside
			}
		case c >= 'a' && c <= 'h':
			color = Black
			f := File(c - 'a')
			rookSq = SquareOf(f, Rank8)
			flank = Queenside
			if f > layout.KingSq[Black].FileOf() {
				flank = Kingside
			}
		default:
			return fmt.Errorf("%w: invalid castling character %q", ErrBadFen, string(c))
		}

		if rookSq == SqNone {
			return fmt.Errorf("%w: no rook found for castling right %q", ErrBadFen, string(c))
		}
		layout.RookSq[color][flank] = rookSq
		pos.Castling.Add(Bit(color, flank))
	}
	return nil
}

func flankFor(c rune) int {
	if c == 'K' || c == 'k' {
		return Kingside
	}
	return Queenside
}

// findOutermostRook scans rank for color's rook starting from the board
// edge named by kingside, returning the first (hence outermost) one found.
func findOutermostRook(pos *Position, rank Rank, color Color, kingside bool) Square {
	rookPiece := MakePiece(color, Rook)
	if kingside {
		for f := FileH; ; f-- {
			if sq := SquareOf(f, rank); pos.PieceAt[sq] == rookPiece {
				return sq
			}
			if f == FileA {
				break
			}
		}
		return SqNone
	}
	for f := FileA; f <= FileH; f++ {
		if sq := SquareOf(f, rank); pos.PieceAt[sq] == rookPiece {
			return sq
		}
	}
	return SqNone
}

// buildCastlingBitboards rebuilds castle_path/castle_empty for every
// castling right still set, from the actual recorded king and rook
// squares. Grounded on the same same-rank Fill() construction the source
// uses when rebuilding its castling bitboards for a non-standard start.
func buildCastlingBitboards(layout *Layout, pos *Position) {
	for c := White; c <= Black; c++ {
		kingSq := layout.KingSq[c]
		rank := kingSq.RankOf()
		for _, flank := range [2]int{Kingside, Queenside} {
			if !pos.Castling.Has(Bit(c, flank)) {
				continue
			}
			rookSq := layout.RookSq[c][flank]
			kingDestFile, rookDestFile := FileC, FileD
			if flank == Kingside {
				kingDestFile, rookDestFile = FileG, FileF
			}
			kingDest := SquareOf(kingDestFile, rank)
			rookDest := SquareOf(rookDestFile, rank)
			path := Fill(kingSq, kingDest)
			empty := (path | Fill(rookSq, rookDest)) &^ (kingSq.Bb() | rookSq.Bb())
			layout.CastlePath[c][flank] = path
			layout.CastleEmpty[c][flank] = empty
		}
	}
}
