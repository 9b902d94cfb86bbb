package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kestrel-engine/kestrel/internal/bitboard"
	"github.com/kestrel-engine/kestrel/internal/zobrist"
)

// NoSquare is the EPSquare sentinel meaning "no en-passant target".
const NoSquare bitboard.Square = 64

// Position is a complete, copy-by-value chess position. It carries no heap
// references, so a child node in search is produced by copying the parent
// and mutating the copy in place (Make) — "copy-make" rather than
// make/unmake, chosen per spec.md §9 because Position is small and trivially
// copyable, which keeps each search worker's recursion fully independent.
type Position struct {
	ByColor [2]bitboard.Bitboard
	ByPiece [6]bitboard.Bitboard

	PieceOn [64]bitboard.PieceKind

	// CastleRooks is the bitboard of rook squares that still carry castling
	// rights, for either color. It directly supports Chess960 ("Shredder")
	// castling, since a right is identified by its rook's home square
	// rather than a fixed 4-bit KQkq flag set.
	CastleRooks bitboard.Bitboard

	// Attacked is the set of squares attacked by the side NOT to move,
	// recomputed by finish with our king removed from occupancy so sliders
	// x-ray through it (a king may never step along the line of a check).
	Attacked bitboard.Bitboard
	// Checkers is the (possibly empty, up to two) set of enemy pieces
	// currently giving check.
	Checkers bitboard.Bitboard

	Key         zobrist.Key
	PawnKingKey zobrist.Key

	// PieceMaterial[c] is the endgame material sum for color c, excluding
	// pawns and kings, used by evaluation's tapering blend.
	PieceMaterial [2]int
	// PST is the accumulated material plus piece-square-table score, White
	// minus Black,
	// maintained incrementally by Make/Toggle.
	PST Pair

	Turn     bitboard.Color
	EPSquare bitboard.Square
	Rule50   int
	FullMove int
}

// Occupied returns the union of both colors' pieces.
func (p *Position) Occupied() bitboard.Bitboard { return p.ByColor[bitboard.White] | p.ByColor[bitboard.Black] }

// PieceAt returns the piece kind on sq, or NoPiece if empty.
func (p *Position) PieceAt(sq bitboard.Square) bitboard.PieceKind { return p.PieceOn[sq] }

// ColorAt returns the color of the piece on sq. Only meaningful when sq is
// occupied.
func (p *Position) ColorAt(sq bitboard.Square) bitboard.Color {
	if p.ByColor[bitboard.White].Test(sq) {
		return bitboard.White
	}
	return bitboard.Black
}

func (p *Position) put(c bitboard.Color, k bitboard.PieceKind, sq bitboard.Square) {
	bit := bitboard.Bit(sq)
	p.ByColor[c] |= bit
	p.ByPiece[k] |= bit
	p.PieceOn[sq] = k
	p.Key ^= zobrist.PieceKey[c][k][sq]
	if k == bitboard.Pawn || k == bitboard.King {
		p.PawnKingKey ^= zobrist.PieceKey[c][k][sq]
	}
	delta := PST(k, c, sq)
	if c == bitboard.Black {
		delta = delta.Neg()
	}
	p.PST = p.PST.Add(delta)
	if k != bitboard.Pawn && k != bitboard.King {
		p.PieceMaterial[c] += PieceValue[k]
	}
}

func (p *Position) remove(c bitboard.Color, k bitboard.PieceKind, sq bitboard.Square) {
	bit := bitboard.Bit(sq)
	p.ByColor[c] &^= bit
	p.ByPiece[k] &^= bit
	p.PieceOn[sq] = bitboard.NoPiece
	p.Key ^= zobrist.PieceKey[c][k][sq]
	if k == bitboard.Pawn || k == bitboard.King {
		p.PawnKingKey ^= zobrist.PieceKey[c][k][sq]
	}
	delta := PST(k, c, sq)
	if c == bitboard.Black {
		delta = delta.Neg()
	}
	p.PST = p.PST.Sub(delta)
	if k != bitboard.Pawn && k != bitboard.King {
		p.PieceMaterial[c] -= PieceValue[k]
	}
}

// Set parses a FEN string (including Chess960 "Shredder" castling letters
// A-H/a-h, alongside standard KQkq) and rebuilds every derived field via
// finish.
func (p *Position) Set(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return fmt.Errorf("position: malformed FEN %q: need at least 4 fields", fen)
	}

	*p = Position{EPSquare: NoSquare}
	for sq := range p.PieceOn {
		p.PieceOn[sq] = bitboard.NoPiece
	}

	rank, file := 7, 0
	for _, ch := range fields[0] {
		switch {
		case ch == '/':
			rank--
			file = 0
		case ch >= '1' && ch <= '8':
			file += int(ch - '0')
		default:
			c, k, err := pieceFromFEN(ch)
			if err != nil {
				return fmt.Errorf("position: malformed FEN %q: %w", fen, err)
			}
			if rank < 0 || file > 7 {
				return fmt.Errorf("position: malformed FEN %q: board overflow", fen)
			}
			p.put(c, k, bitboard.FromFileRank(file, rank))
			file++
		}
	}

	switch fields[1] {
	case "w":
		p.Turn = bitboard.White
	case "b":
		p.Turn = bitboard.Black
		p.Key ^= zobrist.TurnKey
	default:
		return fmt.Errorf("position: malformed FEN %q: bad side to move", fen)
	}

	if err := p.setCastling(fields[2]); err != nil {
		return fmt.Errorf("position: malformed FEN %q: %w", fen, err)
	}
	for rooks := p.CastleRooks; rooks != 0; {
		p.Key ^= zobrist.CastlingKey[rooks.PopLSB()]
	}

	if fields[3] != "-" {
		sq, ok := bitboard.ParseSquare(fields[3])
		if !ok {
			return fmt.Errorf("position: malformed FEN %q: bad en-passant square", fen)
		}
		p.EPSquare = sq
		p.Key ^= zobrist.EnPassantKey[sq]
	} else {
		p.Key ^= zobrist.EnPassantKey[NoSquare]
	}

	p.Rule50 = 0
	p.FullMove = 1
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			p.Rule50 = n
		}
	}
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			p.FullMove = n
		}
	}

	p.finish()
	return nil
}

func pieceFromFEN(ch rune) (bitboard.Color, bitboard.PieceKind, error) {
	c := bitboard.White
	lower := ch
	if ch >= 'a' && ch <= 'z' {
		c = bitboard.Black
	} else {
		lower = ch + ('a' - 'A')
	}
	switch lower {
	case 'p':
		return c, bitboard.Pawn, nil
	case 'n':
		return c, bitboard.Knight, nil
	case 'b':
		return c, bitboard.Bishop, nil
	case 'r':
		return c, bitboard.Rook, nil
	case 'q':
		return c, bitboard.Queen, nil
	case 'k':
		return c, bitboard.King, nil
	}
	return 0, 0, fmt.Errorf("unknown piece letter %q", ch)
}

// setCastling accepts standard KQkq, "-", and Chess960 Shredder letters
// (A-H for White's rook files, a-h for Black's).
func (p *Position) setCastling(field string) error {
	if field == "-" {
		return nil
	}
	for _, ch := range field {
		var c bitboard.Color
		if ch >= 'a' && ch <= 'z' || ch == 'k' || ch == 'q' {
			c = bitboard.Black
		} else {
			c = bitboard.White
		}
		rookSq, ok := p.shredderRookSquare(c, ch)
		if !ok {
			return fmt.Errorf("unknown castling letter %q", ch)
		}
		p.CastleRooks |= bitboard.Bit(rookSq)
	}
	return nil
}

// shredderRookSquare resolves a castling letter to the rook's home square
// for color c. 'K'/'k' and 'Q'/'q' mean "the outermost rook on the
// kingside/queenside of that color's back rank" (standard FEN semantics);
// 'A'-'H'/'a'-'h' name the file directly (Shredder-FEN, Chess960).
func (p *Position) shredderRookSquare(c bitboard.Color, ch rune) (bitboard.Square, bool) {
	backRank := 0
	if c == bitboard.Black {
		backRank = 7
	}
	kingBB := p.ByPiece[bitboard.King] & p.ByColor[c]
	if kingBB == 0 {
		return 0, false
	}
	kingFile := kingBB.LSB().File()
	rooks := p.ByPiece[bitboard.Rook] & p.ByColor[c] & bitboard.RankBB(backRank)

	upper := ch
	if ch >= 'a' && ch <= 'z' {
		upper = ch - ('a' - 'A')
	}
	switch upper {
	case 'K':
		best := -1
		for r := rooks; r != 0; {
			sq := r.PopLSB()
			if sq.File() > kingFile && sq.File() > best {
				best = sq.File()
			}
		}
		if best < 0 {
			return 0, false
		}
		return bitboard.FromFileRank(best, backRank), true
	case 'Q':
		best := 8
		for r := rooks; r != 0; {
			sq := r.PopLSB()
			if sq.File() < kingFile && sq.File() < best {
				best = sq.File()
			}
		}
		if best > 7 {
			return 0, false
		}
		return bitboard.FromFileRank(best, backRank), true
	default:
		file := int(upper - 'A')
		if file < 0 || file > 7 {
			return 0, false
		}
		return bitboard.FromFileRank(file, backRank), true
	}
}

// Get serializes the position back into a FEN string.
func (p *Position) Get() string {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := bitboard.FromFileRank(file, rank)
			k := p.PieceOn[sq]
			if k == bitboard.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte(byte('0' + empty))
				empty = 0
			}
			b.WriteByte(pieceLetter(p.ColorAt(sq), k))
		}
		if empty > 0 {
			b.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}

	b.WriteByte(' ')
	if p.Turn == bitboard.White {
		b.WriteByte('w')
	} else {
		b.WriteByte('b')
	}

	b.WriteByte(' ')
	b.WriteString(p.castlingFEN())

	b.WriteByte(' ')
	if p.EPSquare == NoSquare {
		b.WriteByte('-')
	} else {
		b.WriteString(p.EPSquare.String())
	}

	fmt.Fprintf(&b, " %d %d", p.Rule50, p.FullMove)
	return b.String()
}

func (p *Position) castlingFEN() string {
	var b strings.Builder
	for _, c := range [2]bitboard.Color{bitboard.White, bitboard.Black} {
		backRank := 0
		if c == bitboard.Black {
			backRank = 7
		}
		kingBB := p.ByPiece[bitboard.King] & p.ByColor[c]
		if kingBB == 0 {
			continue
		}
		kingFile := kingBB.LSB().File()
		rooks := p.CastleRooks & p.ByColor[c] & bitboard.RankBB(backRank)
		// Kingside then queenside, matching KQkq field order.
		var kingside, queenside bitboard.Square = NoSquare, NoSquare
		for r := rooks; r != 0; {
			sq := r.PopLSB()
			if sq.File() > kingFile {
				kingside = sq
			} else {
				queenside = sq
			}
		}
		// A corner rook is written as K/Q; any other rook by its file letter.
		mark := func(sq bitboard.Square, corner int, std byte) {
			ch := byte('A' + sq.File())
			if sq.File() == corner {
				ch = std
			}
			if c == bitboard.Black {
				ch += 'a' - 'A'
			}
			b.WriteByte(ch)
		}
		if kingside != NoSquare {
			mark(kingside, 7, 'K')
		}
		if queenside != NoSquare {
			mark(queenside, 0, 'Q')
		}
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func pieceLetter(c bitboard.Color, k bitboard.PieceKind) byte {
	letters := "nbrqkp"
	ch := letters[k]
	if c == bitboard.White {
		ch -= 'a' - 'A'
	}
	return ch
}

// finish recomputes Attacked and Checkers from the bitboards. It is called
// after every Set/Make/Toggle.
func (p *Position) finish() {
	them := p.Turn.Opposite()
	// Exclude our king from occupancy so a slider's x-ray through it is
	// visible: a king may not step backward along the line of an existing
	// check, which only shows up if the king itself doesn't block the ray.
	ourKing := p.ByPiece[bitboard.King] & p.ByColor[p.Turn]
	occWithoutOurKing := p.Occupied() &^ ourKing
	p.Attacked = p.attacksBy(them, occWithoutOurKing)

	kingSq := ourKing.LSB()
	p.Checkers = p.AttackersTo(kingSq, p.Occupied()) & p.ByColor[them]
}

// attacksBy returns every square attacked by color c given occupancy occ.
func (p *Position) attacksBy(c bitboard.Color, occ bitboard.Bitboard) bitboard.Bitboard {
	var a bitboard.Bitboard
	a |= bitboard.GenPawnAttacks(p.ByPiece[bitboard.Pawn]&p.ByColor[c], c)
	for n := p.ByPiece[bitboard.Knight] & p.ByColor[c]; n != 0; {
		a |= bitboard.KnightAttacks(n.PopLSB())
	}
	for k := p.ByPiece[bitboard.King] & p.ByColor[c]; k != 0; {
		a |= bitboard.KingAttacks(k.PopLSB())
	}
	for b := p.ByPiece[bitboard.Bishop] & p.ByColor[c]; b != 0; {
		a |= bitboard.BishopAttacks(b.PopLSB(), occ)
	}
	for r := p.ByPiece[bitboard.Rook] & p.ByColor[c]; r != 0; {
		a |= bitboard.RookAttacks(r.PopLSB(), occ)
	}
	for q := p.ByPiece[bitboard.Queen] & p.ByColor[c]; q != 0; {
		a |= bitboard.QueenAttacks(q.PopLSB(), occ)
	}
	return a
}
