package bitboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Init(t *testing.T) {
	Init()
}

func TestSquareString(t *testing.T) {
	cases := []struct {
		sq   Square
		want string
	}{
		{0, "a1"},
		{7, "h1"},
		{56, "a8"},
		{63, "h8"},
		{28, "e4"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.sq.String())
	}
}

func TestParseSquare(t *testing.T) {
	sq, ok := ParseSquare("e4")
	require.True(t, ok)
	assert.Equal(t, Square(28), sq)

	_, ok = ParseSquare("z9")
	assert.False(t, ok)
}

func TestPopLSB(t *testing.T) {
	bb := Bit(3) | Bit(10) | Bit(40)
	var got []Square
	for bb != 0 {
		got = append(got, bb.PopLSB())
	}
	assert.Equal(t, []Square{3, 10, 40}, got)
}

func TestKnightAttacksCorner(t *testing.T) {
	Init()
	// A1 knight attacks exactly B3 and C2.
	want := Bit(Square(17)) | Bit(Square(10))
	assert.Equal(t, want, KnightAttacks(0))
}

func TestRookAttacksOpenBoard(t *testing.T) {
	Init()
	got := RookAttacks(Square(0), Empty)
	want := (FileA | Rank1) &^ Bit(0)
	assert.Equal(t, want, got)
}

func TestBishopAttacksBlocked(t *testing.T) {
	Init()
	// Bishop on E4 (28) blocked by a piece on F5 (37) should not see past it.
	occ := Bit(Square(37))
	got := BishopAttacks(Square(28), occ)
	assert.True(t, got.Test(Square(37)), "blocker square itself is attacked")
	assert.False(t, got.Test(Square(46)), "square beyond blocker must not be attacked")
}

func TestSegmentAndRay(t *testing.T) {
	Init()
	a, b := Square(0), Square(3) // a1 .. d1
	got := Segment(a, b)
	want := Bit(1) | Bit(2) | Bit(3)
	assert.Equal(t, want, got)

	full := Ray(a, b)
	assert.True(t, full.Test(Square(7)), "ray extends to the board edge")

	// Squares not sharing a rank/file/diagonal have no segment or ray.
	assert.Equal(t, Empty, Segment(Square(0), Square(10)))
}
