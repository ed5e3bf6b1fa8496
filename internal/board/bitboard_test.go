package board

import "testing"

func TestSquareNumbering(t *testing.T) {
	if A8 != 0 || H8 != 7 || A1 != 56 || H1 != 63 {
		t.Fatalf("square numbering broken: A8=%d H8=%d A1=%d H1=%d", A8, H8, A1, H1)
	}

	if E4.File() != 4 {
		t.Errorf("E4.File() = %d, want 4", E4.File())
	}
	if E4.Rank() != 4 {
		t.Errorf("E4.Rank() = %d, want 4 (rank index from the top)", E4.Rank())
	}
	if E4.String() != "e4" {
		t.Errorf("E4.String() = %q, want e4", E4.String())
	}
}

func TestParseSquare(t *testing.T) {
	for sq := A8; sq <= H1; sq++ {
		parsed, err := ParseSquare(sq.String())
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", sq.String(), err)
		}
		if parsed != sq || !parsed.IsValid() {
			t.Errorf("ParseSquare(%q) = %d, want %d", sq.String(), parsed, sq)
		}
	}

	if NoSquare.IsValid() {
		t.Error("NoSquare must not be valid")
	}

	for _, bad := range []string{"", "e", "e44", "i4", "e9", "a0", "4e"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) accepted", bad)
		}
	}
}

func TestSquareMirror(t *testing.T) {
	if A8.Mirror() != A1 || E2.Mirror() != E7 || H1.Mirror() != H8 {
		t.Error("Mirror must flip ranks and keep files")
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b Square
		want int
	}{
		{A8, A8, 0},
		{A8, B8, 1},
		{A8, H1, 7},
		{E4, E5, 1},
		{E4, G5, 2},
		{H4, A3, 7}, // an offset of +1 from the h file wraps; distance detects it
	}
	for _, tc := range tests {
		if got := Distance(tc.a, tc.b); got != tc.want {
			t.Errorf("Distance(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestBitboardBasics(t *testing.T) {
	b := Empty.Set(E4).Set(A8).Set(H1)

	if b.PopCount() != 3 {
		t.Errorf("PopCount = %d, want 3", b.PopCount())
	}
	if !b.IsSet(E4) || b.IsSet(E5) {
		t.Error("IsSet wrong")
	}
	if b.LSB() != A8 {
		t.Errorf("LSB = %s, want a8", b.LSB())
	}
	if b.MSB() != H1 {
		t.Errorf("MSB = %s, want h1", b.MSB())
	}

	b = b.Clear(E4)
	if b.IsSet(E4) || b.PopCount() != 2 {
		t.Error("Clear wrong")
	}

	popped := b.Squares()
	if len(popped) != 2 || popped[0] != A8 || popped[1] != H1 {
		t.Errorf("Squares order wrong: %v", popped)
	}
	if b.PopCount() != 2 {
		t.Error("Squares must not consume the receiver")
	}

	if Empty.LSB() != NoSquare || Empty.MSB() != NoSquare {
		t.Error("LSB/MSB of empty board must be NoSquare")
	}
}

func TestBitboardShifts(t *testing.T) {
	e4 := SquareBB(E4)

	if e4.North() != SquareBB(E5) {
		t.Error("North of e4 must be e5")
	}
	if e4.South() != SquareBB(E3) {
		t.Error("South of e4 must be e3")
	}
	if e4.East() != SquareBB(F4) {
		t.Error("East of e4 must be f4")
	}
	if e4.West() != SquareBB(D4) {
		t.Error("West of e4 must be d4")
	}
	if e4.NorthEast() != SquareBB(F5) || e4.NorthWest() != SquareBB(D5) {
		t.Error("diagonal north shifts of e4 wrong")
	}
	if e4.SouthEast() != SquareBB(F3) || e4.SouthWest() != SquareBB(D3) {
		t.Error("diagonal south shifts of e4 wrong")
	}

	// Edge wrap must be masked off.
	if SquareBB(H4).East() != Empty {
		t.Error("East of h4 must fall off the board")
	}
	if SquareBB(A4).West() != Empty {
		t.Error("West of a4 must fall off the board")
	}
	if SquareBB(H4).NorthEast() != Empty || SquareBB(A4).SouthWest() != Empty {
		t.Error("diagonal wrap must fall off the board")
	}
}

func TestRankAndFileMasks(t *testing.T) {
	if !Rank8.IsSet(A8) || !Rank8.IsSet(H8) || Rank8.IsSet(A7) {
		t.Error("Rank8 must cover squares 0-7")
	}
	if !Rank1.IsSet(A1) || !Rank1.IsSet(H1) {
		t.Error("Rank1 must cover squares 56-63")
	}
	if !FileA.IsSet(A1) || !FileA.IsSet(A8) || FileA.IsSet(B4) {
		t.Error("FileA wrong")
	}
	if !FileH.IsSet(H5) || FileH.IsSet(G5) {
		t.Error("FileH wrong")
	}
}
