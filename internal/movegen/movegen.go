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

// Package movegen generates legal child positions of a Chess960 position by
// copy-make: every candidate move is applied to a fresh copy of the parent,
// and only positions that leave the mover's own king safe are kept. There is
// no separate move-list-then-apply step and no undo stack.
package movegen

import (
	"github.com/frankkopp/perft960/internal/assert"
	. "github.com/frankkopp/perft960/internal/position"
	. "github.com/frankkopp/perft960/internal/types"
)

// MaxChildren bounds the number of legal moves any reachable chess position
// can have. 218 is the documented maximum (a king with every other piece
// able to check it from a different square simultaneously); callers use it
// to size stack-local buffers instead of allocating a slice per node.
const MaxChildren = 218

// addFunc receives one legal child and the move that produced it.
type addFunc func(child Position, m Move)

// GenerateChildren fills children and moves (parallel arrays, same index)
// with every legal child position reachable from p and the move that
// produced it, returning the count. Both arrays must have capacity
// MaxChildren.
func GenerateChildren(p *Position, layout *Layout, children *[MaxChildren]Position, moves *[MaxChildren]Move) int {
	n := 0
	mover := p.SideToMove

	add := func(child Position, m Move) {
		if assert.DEBUG {
			assert.Assert(p.PieceAt[m.From()].ColorOf() == mover,
				"move %s originates from a square not held by the side to move", m)
		}
		if !child.InCheck(mover) {
			children[n] = child
			moves[n] = m
			n++
		}
	}

	generatePawnMoves(p, layout, mover, add)
	generatePieceMoves(p, layout, mover, Knight, add)
	generatePieceMoves(p, layout, mover, Bishop, add)
	generatePieceMoves(p, layout, mover, Rook, add)
	generatePieceMoves(p, layout, mover, Queen, add)
	generateKingMoves(p, layout, mover, add)
	generateCastling(p, layout, mover, add)

	return n
}

func removePiece(p *Position, sq Square) {
	piece := p.PieceAt[sq]
	if piece == PieceNone {
		return
	}
	p.PieceAt[sq] = PieceNone
	bit := sq.Bb()
	if piece.ColorOf() == White {
		p.White[piece.TypeOf()-1] &^= bit
	} else {
		p.Black[piece.TypeOf()-1] &^= bit
	}
}

func putPieceAt(p *Position, piece Piece, sq Square) {
	p.PieceAt[sq] = piece
	bit := sq.Bb()
	if piece.ColorOf() == White {
		p.White[piece.TypeOf()-1] |= bit
	} else {
		p.Black[piece.TypeOf()-1] |= bit
	}
}

// updateCastlingRights clears whichever rights the move just invalidated:
// the mover's own rights if its king or a rook starting on a recorded
// rook-square moved, and the opponent's right if a rook standing on its
// recorded starting square was just captured.
func updateCastlingRights(child *Position, layout *Layout, mover Color, from, to Square) {
	if from == layout.KingSq[mover] {
		child.Castling.Remove(Bit(mover, Kingside))
		child.Castling.Remove(Bit(mover, Queenside))
	}
	if from == layout.RookSq[mover][Kingside] {
		child.Castling.Remove(Bit(mover, Kingside))
	}
	if from == layout.RookSq[mover][Queenside] {
		child.Castling.Remove(Bit(mover, Queenside))
	}
	opp := mover.Flip()
	if to == layout.RookSq[opp][Kingside] {
		child.Castling.Remove(Bit(opp, Kingside))
	}
	if to == layout.RookSq[opp][Queenside] {
		child.Castling.Remove(Bit(opp, Queenside))
	}
}

// applyMove copies p, relocates the piece on `from` to `to` (removing any
// captured piece first, or placing a promoted piece instead of the pawn),
// updates castling rights, and flips the side to move. The en-passant
// square is cleared unconditionally, then set to epSq (SqNone for every
// move except a pawn double push, see applyDoublePush).
func applyMove(p *Position, layout *Layout, mover Color, from, to Square, t MoveType, promo PieceType) Position {
	return applyMoveEp(p, layout, mover, from, to, t, promo, SqNone)
}

func applyMoveEp(p *Position, layout *Layout, mover Color, from, to Square, t MoveType, promo PieceType, epSq Square) Position {
	child := *p
	piece := child.PieceAt[from]

	removePiece(&child, from)
	removePiece(&child, to)

	if t == Promotion {
		putPieceAt(&child, MakePiece(mover, promo), to)
	} else {
		putPieceAt(&child, piece, to)
	}

	updateCastlingRights(&child, layout, mover, from, to)
	child.EpSquare = epSq
	child.SideToMove = mover.Flip()
	return child
}

// applyDoublePush applies a pawn double push and sets the en-passant
// target to the square the pawn skipped over, per spec: clear the
// ep-square unconditionally, set it only when a pawn just made a double
// push.
func applyDoublePush(p *Position, layout *Layout, mover Color, from, to Square) Position {
	epSq := to.To(-mover.MoveDirection())
	if assert.DEBUG {
		assert.Assert(epSq.Bb()&mover.EpTargetRank() != 0,
			"double push ep square %s is not on %s's ep target rank", epSq, mover)
	}
	return applyMoveEp(p, layout, mover, from, to, Normal, PtNone, epSq)
}

func applyEnPassant(p *Position, mover Color, from, to Square) Position {
	child := *p
	removePiece(&child, from)
	capturedSq := to.To(-mover.MoveDirection())
	removePiece(&child, capturedSq)
	putPieceAt(&child, MakePiece(mover, Pawn), to)
	child.EpSquare = SqNone
	child.SideToMove = mover.Flip()
	return child
}

func generatePawnMoves(p *Position, layout *Layout, mover Color, add addFunc) {
	myPawns := p.PieceBb(mover, Pawn)
	occupied := p.OccupiedAll()
	oppPieces := p.OccupiedBb(mover.Flip())
	pushDir := mover.MoveDirection()
	promRank := mover.PromotionRankBb()
	startRank := mover.PawnStartRank()

	single := ShiftBitboard(myPawns, pushDir) &^ occupied
	doubleStart := ShiftBitboard(myPawns&startRank, pushDir) &^ occupied
	double := ShiftBitboard(doubleStart, pushDir) &^ occupied

	pushes := single
	for pushes != 0 {
		to := pushes.PopLsb()
		from := to.To(-pushDir)
		if to.Bb()&promRank != 0 {
			addPromotions(p, layout, mover, from, to, add)
		} else {
			add(applyMove(p, layout, mover, from, to, Normal, PtNone), CreateMove(from, to, Normal, PtNone))
		}
	}
	for double != 0 {
		to := double.PopLsb()
		from := to.To(-pushDir).To(-pushDir)
		add(applyDoublePush(p, layout, mover, from, to), CreateMove(from, to, Normal, PtNone))
	}

	for _, side := range [2]Direction{West, East} {
		capDir := pushDir + side
		caps := ShiftBitboard(myPawns, capDir) & oppPieces
		for caps != 0 {
			to := caps.PopLsb()
			from := to.To(-capDir)
			if to.Bb()&promRank != 0 {
				addPromotions(p, layout, mover, from, to, add)
			} else {
				add(applyMove(p, layout, mover, from, to, Normal, PtNone), CreateMove(from, to, Normal, PtNone))
			}
		}
		if p.EpSquare.IsValid() {
			epCaps := ShiftBitboard(p.EpSquare.Bb(), -capDir) & myPawns
			if epCaps != 0 {
				from := epCaps.Lsb()
				add(applyEnPassant(p, mover, from, p.EpSquare), CreateMove(from, p.EpSquare, EnPassant, PtNone))
			}
		}
	}
}

func addPromotions(p *Position, layout *Layout, mover Color, from, to Square, add addFunc) {
	for _, pt := range PromotionPieceTypes {
		add(applyMove(p, layout, mover, from, to, Promotion, pt), CreateMove(from, to, Promotion, pt))
	}
}

func generatePieceMoves(p *Position, layout *Layout, mover Color, pt PieceType, add addFunc) {
	occupied := p.OccupiedAll()
	ownPieces := p.OccupiedBb(mover)
	bb := p.PieceBb(mover, pt)
	for bb != 0 {
		from := bb.PopLsb()
		targets := GetAttacksBb(pt, from, occupied) &^ ownPieces
		for targets != 0 {
			to := targets.PopLsb()
			add(applyMove(p, layout, mover, from, to, Normal, PtNone), CreateMove(from, to, Normal, PtNone))
		}
	}
}

func generateKingMoves(p *Position, layout *Layout, mover Color, add addFunc) {
	from := p.KingSquare(mover)
	ownPieces := p.OccupiedBb(mover)
	targets := GetPseudoAttacks(King, from) &^ ownPieces
	for targets != 0 {
		to := targets.PopLsb()
		add(applyMove(p, layout, mover, from, to, Normal, PtNone), CreateMove(from, to, Normal, PtNone))
	}
}

// generateCastling checks both flanks generally, per Chess960 rules: the
// squares between the king's start and destination (inclusive) must be
// unattacked, and every square strictly between the king and rook's
// starting squares and their destinations (other than the king and rook's
// own squares) must be empty.
func generateCastling(p *Position, layout *Layout, mover Color, add addFunc) {
	for _, flank := range [2]int{Kingside, Queenside} {
		if !p.Castling.Has(Bit(mover, flank)) {
			continue
		}
		kingSq := layout.KingSq[mover]
		rookSq := layout.RookSq[mover][flank]

		blockers := p.OccupiedAll() &^ (kingSq.Bb() | rookSq.Bb())
		if blockers&layout.CastleEmpty[mover][flank] != 0 {
			continue
		}
		if anyAttacked(p, mover, layout.CastlePath[mover][flank]) {
			continue
		}

		kingDestFile, rookDestFile := FileC, FileD
		if flank == Kingside {
			kingDestFile, rookDestFile = FileG, FileF
		}
		rank := kingSq.RankOf()
		kingDest := SquareOf(kingDestFile, rank)
		rookDest := SquareOf(rookDestFile, rank)

		child := *p
		removePiece(&child, kingSq)
		removePiece(&child, rookSq)
		putPieceAt(&child, MakePiece(mover, King), kingDest)
		putPieceAt(&child, MakePiece(mover, Rook), rookDest)
		child.Castling.Remove(Bit(mover, Kingside))
		child.Castling.Remove(Bit(mover, Queenside))
		child.EpSquare = SqNone
		child.SideToMove = mover.Flip()

		add(child, CreateMove(kingSq, kingDest, Castling, PtNone))
	}
}

func anyAttacked(p *Position, mover Color, path Bitboard) bool {
	for path != 0 {
		sq := path.PopLsb()
		if p.IsAttacked(sq, mover) {
			return true
		}
	}
	return false
}
