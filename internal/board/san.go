package board

import "strings"

// ToSAN converts a move to Standard Algebraic Notation.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	from := m.From()
	to := m.To()
	piece := pos.PieceAt(from)

	if piece == NoPiece {
		return m.String() // Fallback to UCI
	}

	var sb strings.Builder

	if m.IsCastling() {
		if to > from {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
		sb.WriteString(checkSuffix(pos, m))
		return sb.String()
	}

	pt := piece.Type()

	if pt != Pawn {
		sb.WriteByte("PNBRQK"[pt])
		sb.WriteString(disambiguation(pos, m, pt))
	}

	if m.IsCapture(pos) {
		if pt == Pawn {
			// Pawn captures include the file of origin
			sb.WriteByte('a' + byte(from.File()))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(to.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte("PNBRQK"[m.Promotion()])
	}

	sb.WriteString(checkSuffix(pos, m))

	return sb.String()
}

// checkSuffix returns "+", "#" or "" depending on the state after the move.
func checkSuffix(pos *Position, m Move) string {
	next := pos.Copy()
	next.MakeMove(m)
	if next.IsCheckmate() {
		return "#"
	}
	if next.InCheck() {
		return "+"
	}
	return ""
}

// disambiguation returns the origin qualifier needed when another piece of
// the same type can legally reach the same destination.
func disambiguation(pos *Position, m Move, pt PieceType) string {
	from := m.From()
	to := m.To()
	pieces := pos.Pieces[pos.SideToMove][pt]

	var candidates []Square
	allMoves := pos.GenerateLegalMoves()
	for i := 0; i < allMoves.Len(); i++ {
		move := allMoves.Get(i)
		if move.To() != to || move.From() == from {
			continue
		}
		if pieces.IsSet(move.From()) {
			candidates = append(candidates, move.From())
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	sameFile := false
	sameRank := false
	for _, sq := range candidates {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string('a' + byte(from.File()))
	}
	if !sameRank {
		return string('8' - byte(from.Rank()))
	}
	return from.String()
}

// ParseSAN parses a SAN string against a position and returns the matching
// legal move, or NoMove if no legal move matches.
func ParseSAN(s string, pos *Position) Move {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "+")
	s = strings.TrimSuffix(s, "#")

	if s == "O-O" || s == "0-0" || s == "O-O-O" || s == "0-0-0" {
		long := len(s) == 5
		var castle Move
		switch {
		case pos.SideToMove == White && !long:
			castle = NewCastling(E1, G1)
		case pos.SideToMove == White:
			castle = NewCastling(E1, C1)
		case !long:
			castle = NewCastling(E8, G8)
		default:
			castle = NewCastling(E8, C8)
		}
		if !pos.GenerateLegalMoves().Contains(castle) {
			return NoMove
		}
		return castle
	}

	var promoPiece = NoPieceType
	if idx := strings.Index(s, "="); idx >= 0 && idx+1 < len(s) {
		switch s[idx+1] {
		case 'N':
			promoPiece = Knight
		case 'B':
			promoPiece = Bishop
		case 'R':
			promoPiece = Rook
		case 'Q':
			promoPiece = Queen
		}
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		switch s[0] {
		case 'N':
			pt = Knight
		case 'B':
			pt = Bishop
		case 'R':
			pt = Rook
		case 'Q':
			pt = Queen
		case 'K':
			pt = King
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove
	}
	s = s[:len(s)-2]

	disambigFile, disambigRank := -1, -1
	for _, c := range s {
		if c >= 'a' && c <= 'h' {
			disambigFile = int(c - 'a')
		} else if c >= '1' && c <= '8' {
			disambigRank = int('8' - c)
		}
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.To() != dest {
			continue
		}

		from := m.From()
		if pos.PieceAt(from).Type() != pt {
			continue
		}
		if disambigFile >= 0 && from.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && from.Rank() != disambigRank {
			continue
		}
		if isCapture && !m.IsCapture(pos) {
			continue
		}
		if promoPiece != NoPieceType {
			if !m.IsPromotion() || m.Promotion() != promoPiece {
				continue
			}
		} else if m.IsPromotion() {
			continue
		}

		return m
	}

	return NoMove
}

// MovesToSAN converts a move sequence starting at pos to SAN notation.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()

	for i, m := range moves {
		result[i] = m.ToSAN(p)
		p.MakeMove(m)
	}

	return result
}
