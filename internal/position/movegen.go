package position

import "github.com/kestrel-engine/kestrel/internal/bitboard"

// GenPseudoMoves fills list with every pseudo-legal move for the side to
// move: legal in every respect except that it may leave the mover's own
// king in check. Callers filter with IsLegal (GenLegalMoves does both).
func (p *Position) GenPseudoMoves(list *MoveList) {
	us := p.Turn
	own := p.ByColor[us]
	occ := p.Occupied()

	p.genPawnMoves(list, us, occ)

	for n := p.ByPiece[bitboard.Knight] & own; n != 0; {
		from := n.PopLSB()
		genTargets(list, from, bitboard.KnightAttacks(from)&^own)
	}
	for b := p.ByPiece[bitboard.Bishop] & own; b != 0; {
		from := b.PopLSB()
		genTargets(list, from, bitboard.BishopAttacks(from, occ)&^own)
	}
	for r := p.ByPiece[bitboard.Rook] & own; r != 0; {
		from := r.PopLSB()
		genTargets(list, from, bitboard.RookAttacks(from, occ)&^own)
	}
	for q := p.ByPiece[bitboard.Queen] & own; q != 0; {
		from := q.PopLSB()
		genTargets(list, from, bitboard.QueenAttacks(from, occ)&^own)
	}

	kingFrom := (p.ByPiece[bitboard.King] & own).LSB()
	genTargets(list, kingFrom, bitboard.KingAttacks(kingFrom)&^own)

	p.genCastling(list)
}

// GenLegalMoves returns every fully legal move: pseudo-legal moves filtered
// by IsLegal against a single CalcPins call.
func (p *Position) GenLegalMoves() MoveList {
	var pseudo, legal MoveList
	p.GenPseudoMoves(&pseudo)
	pins := p.CalcPins()
	for _, m := range pseudo.Slice() {
		if p.IsLegal(m, pins) {
			legal.Push(m)
		}
	}
	return legal
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool { return p.Checkers != 0 }

func genTargets(list *MoveList, from bitboard.Square, targets bitboard.Bitboard) {
	for targets != 0 {
		list.Push(NewMove(from, targets.PopLSB()))
	}
}

func shift(b bitboard.Bitboard, n int) bitboard.Bitboard {
	if n >= 0 {
		return b << uint(n)
	}
	return b >> uint(-n)
}

func (p *Position) genPawnMoves(list *MoveList, us bitboard.Color, occ bitboard.Bitboard) {
	them := us.Opposite()
	pawns := p.ByPiece[bitboard.Pawn] & p.ByColor[us]
	empty := ^occ

	forward, eastShift, westShift := 8, 9, 7
	promoRank, startRank := bitboard.Rank8, bitboard.Rank2
	if us == bitboard.Black {
		forward, eastShift, westShift = -8, -7, -9
		promoRank, startRank = bitboard.Rank1, bitboard.Rank7
	}

	singlePush := shift(pawns, forward) & empty
	for t := singlePush &^ promoRank; t != 0; {
		to := t.PopLSB()
		list.Push(NewMove(to-bitboard.Square(forward), to))
	}
	for t := singlePush & promoRank; t != 0; {
		to := t.PopLSB()
		pushPromotions(list, to-bitboard.Square(forward), to)
	}

	fromStart := shift(pawns&startRank, forward) & empty
	double := shift(fromStart, forward) & empty
	for t := double; t != 0; {
		to := t.PopLSB()
		list.Push(NewMove(to-bitboard.Square(2*forward), to))
	}

	var epBB bitboard.Bitboard
	if p.EPSquare != NoSquare {
		epBB = bitboard.Bit(p.EPSquare)
	}
	enemyOrEP := p.ByColor[them] | epBB

	capEast := shift(pawns&bitboard.NotFileH, eastShift) & enemyOrEP
	capWest := shift(pawns&bitboard.NotFileA, westShift) & enemyOrEP
	genPawnCaptures(list, capEast, bitboard.Square(eastShift), promoRank)
	genPawnCaptures(list, capWest, bitboard.Square(westShift), promoRank)
}

func genPawnCaptures(list *MoveList, targets bitboard.Bitboard, shiftAmount bitboard.Square, promoRank bitboard.Bitboard) {
	for t := targets &^ promoRank; t != 0; {
		to := t.PopLSB()
		list.Push(NewMove(to-shiftAmount, to))
	}
	for t := targets & promoRank; t != 0; {
		to := t.PopLSB()
		pushPromotions(list, to-shiftAmount, to)
	}
}

func pushPromotions(list *MoveList, from, to bitboard.Square) {
	list.Push(NewPromotion(from, to, bitboard.Queen))
	list.Push(NewPromotion(from, to, bitboard.Rook))
	list.Push(NewPromotion(from, to, bitboard.Bishop))
	list.Push(NewPromotion(from, to, bitboard.Knight))
}

// genCastling appends one move per currently available castling right,
// encoded as "king captures own rook" (rookSq is the move's to-square).
// A right already recorded in CastleRooks means rook and king have never
// moved; what remains is checking the live board: no piece may occupy a
// travel square other than the king and rook themselves, and the king may
// not start, pass through, or land on an attacked square.
func (p *Position) genCastling(list *MoveList) {
	us := p.Turn
	if p.Checkers != 0 {
		return
	}
	kingFrom := (p.ByPiece[bitboard.King] & p.ByColor[us]).LSB()
	rank := kingFrom.Rank()
	occ := p.Occupied()

	for rooks := p.CastleRooks & p.ByColor[us]; rooks != 0; {
		rookSq := rooks.PopLSB()
		kingside := rookSq.File() > kingFrom.File()
		newKingFile, newRookFile := 2, 3
		if kingside {
			newKingFile, newRookFile = 6, 5
		}
		newKingSq := bitboard.FromFileRank(newKingFile, rank)
		newRookSq := bitboard.FromFileRank(newRookFile, rank)

		travel := fileRangeBB(rank, kingFrom.File(), newKingSq.File()) |
			fileRangeBB(rank, rookSq.File(), newRookSq.File())
		blockers := travel &^ bitboard.Bit(kingFrom) &^ bitboard.Bit(rookSq) & occ
		if blockers != 0 {
			continue
		}

		kingTravel := fileRangeBB(rank, kingFrom.File(), newKingSq.File())
		if kingTravel&p.Attacked != 0 {
			continue
		}

		list.Push(NewMove(kingFrom, rookSq))
	}
}

func fileRangeBB(rank, f1, f2 int) bitboard.Bitboard {
	if f1 > f2 {
		f1, f2 = f2, f1
	}
	var bb bitboard.Bitboard
	for f := f1; f <= f2; f++ {
		bb |= bitboard.Bit(bitboard.FromFileRank(f, rank))
	}
	return bb
}

// IsLegal reports whether pseudo-legal move m leaves the mover's own king
// safe, given pins (Position.CalcPins computed once per node).
func (p *Position) IsLegal(m Move, pins bitboard.Bitboard) bool {
	us := p.Turn
	from, to := m.From(), m.To()
	kingSq := (p.ByPiece[bitboard.King] & p.ByColor[us]).LSB()

	if from == kingSq {
		if p.ByColor[us].Test(to) {
			// Castling, already fully vetted by genCastling.
			return true
		}
		return !p.Attacked.Test(to)
	}

	if p.PieceOn[from] == bitboard.Pawn && p.EPSquare != NoSquare && to == p.EPSquare {
		// CalcPins only reasons about standard pins; an en-passant capture
		// can expose the king along the capture rank by removing two pawns
		// at once, which needs its own check.
		return p.enPassantIsLegal(from, to)
	}

	if p.Checkers != 0 {
		if p.Checkers.Count() > 1 {
			return false
		}
		checker := p.Checkers.LSB()
		escape := bitboard.Segment(kingSq, checker) | bitboard.Bit(checker)
		if !escape.Test(to) {
			return false
		}
	}

	if pins.Test(from) {
		return bitboard.Ray(kingSq, from).Test(to)
	}
	return true
}

func (p *Position) enPassantIsLegal(from, to bitboard.Square) bool {
	us, them := p.Turn, p.Turn.Opposite()
	var capSq bitboard.Square
	if us == bitboard.White {
		capSq = to - 8
	} else {
		capSq = to + 8
	}
	kingSq := (p.ByPiece[bitboard.King] & p.ByColor[us]).LSB()
	occ := (p.Occupied() &^ bitboard.Bit(from) &^ bitboard.Bit(capSq)) | bitboard.Bit(to)

	rq := (p.ByPiece[bitboard.Rook] | p.ByPiece[bitboard.Queen]) & p.ByColor[them]
	if bitboard.RookAttacks(kingSq, occ)&rq != 0 {
		return false
	}
	bq := (p.ByPiece[bitboard.Bishop] | p.ByPiece[bitboard.Queen]) & p.ByColor[them]
	if bitboard.BishopAttacks(kingSq, occ)&bq != 0 {
		return false
	}
	return true
}
