// Package board implements the chess board representation using bitboards.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// Square 0 is a8 (the top-left square of the printed board) and square 63
// is h1. File = sq & 7, rank index from the top = sq >> 3.
type Square uint8

// Square constants for all 64 squares, a8 first.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	NoSquare Square = 64
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank index counted from the top of the board
// (0 = rank 8, 7 = rank 1).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '8'-sq.Rank())
}

// NewSquare creates a square from file and rank index (rank counted from the top).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0] - 'a')
	rank := int('8' - s[1])

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, rank), nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Mirror returns the square mirrored vertically (rank 8 becomes rank 1).
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// Distance returns the Chebyshev distance between two squares:
// max(|file delta|, |rank delta|). Offset-based table construction uses it
// to reject moves that wrap around a board edge.
func Distance(a, b Square) int {
	df := abs(a.File() - b.File())
	dr := abs(a.Rank() - b.Rank())
	if df > dr {
		return df
	}
	return dr
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
