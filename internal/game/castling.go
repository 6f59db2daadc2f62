package game

import (
	"chess-rules/internal/board"
)

// Side distinguishes the two castling directions
type Side int

const (
	KingSide Side = iota
	QueenSide
)

func (s Side) String() string {
	if s == KingSide {
		return "king-side"
	}
	return "queen-side"
}

// castlingPattern describes one of the four fixed castling moves: the
// king's two-file step, the matching rook relocation, the squares that
// must be empty between king and rook, and the squares the king
// transits (start and end included), none of which may be attacked.
type castlingPattern struct {
	color    board.Color
	side     Side
	kingFrom board.Square
	kingTo   board.Square
	rookFrom board.Square
	rookTo   board.Square
	between  []board.Square
	transit  []board.Square
}

var castlingPatterns = []castlingPattern{
	{
		color: board.White, side: KingSide,
		kingFrom: board.MustSquare("e1"), kingTo: board.MustSquare("g1"),
		rookFrom: board.MustSquare("h1"), rookTo: board.MustSquare("f1"),
		between: []board.Square{board.MustSquare("f1"), board.MustSquare("g1")},
		transit: []board.Square{board.MustSquare("e1"), board.MustSquare("f1"), board.MustSquare("g1")},
	},
	{
		color: board.White, side: QueenSide,
		kingFrom: board.MustSquare("e1"), kingTo: board.MustSquare("c1"),
		rookFrom: board.MustSquare("a1"), rookTo: board.MustSquare("d1"),
		between: []board.Square{board.MustSquare("b1"), board.MustSquare("c1"), board.MustSquare("d1")},
		transit: []board.Square{board.MustSquare("e1"), board.MustSquare("d1"), board.MustSquare("c1")},
	},
	{
		color: board.Black, side: KingSide,
		kingFrom: board.MustSquare("e8"), kingTo: board.MustSquare("g8"),
		rookFrom: board.MustSquare("h8"), rookTo: board.MustSquare("f8"),
		between: []board.Square{board.MustSquare("f8"), board.MustSquare("g8")},
		transit: []board.Square{board.MustSquare("e8"), board.MustSquare("f8"), board.MustSquare("g8")},
	},
	{
		color: board.Black, side: QueenSide,
		kingFrom: board.MustSquare("e8"), kingTo: board.MustSquare("c8"),
		rookFrom: board.MustSquare("a8"), rookTo: board.MustSquare("d8"),
		between: []board.Square{board.MustSquare("b8"), board.MustSquare("c8"), board.MustSquare("d8")},
		transit: []board.Square{board.MustSquare("e8"), board.MustSquare("d8"), board.MustSquare("c8")},
	},
}

// CastlingMonitor tracks the four castling rights. Each right starts
// true and only ever transitions to false: any move touching the
// relevant king or rook origin square (as from or to) revokes it
// permanently, whether the piece moved away or was captured there.
type CastlingMonitor struct {
	board  *board.Board
	rights [2][2]bool // [color][side]
}

// NewCastlingMonitor returns a monitor with all four rights intact
func NewCastlingMonitor(b *board.Board) *CastlingMonitor {
	m := &CastlingMonitor{board: b}
	m.rights[board.White][KingSide] = true
	m.rights[board.White][QueenSide] = true
	m.rights[board.Black][KingSide] = true
	m.rights[board.Black][QueenSide] = true
	return m
}

// HasRight reports whether the given colour may still castle on the
// given side.
func (m *CastlingMonitor) HasRight(c board.Color, s Side) bool {
	return m.rights[c][s]
}

// match returns the castling pattern for a (from, to) pair, if any
func match(from, to board.Square) *castlingPattern {
	for i := range castlingPatterns {
		p := &castlingPatterns[i]
		if p.kingFrom == from && p.kingTo == to {
			return p
		}
	}
	return nil
}

// CheckMove validates the castling rules for a candidate move without
// touching any state. Moves that match no castling pattern pass. For a
// castling pattern the corresponding right must be intact, the squares
// between king and rook empty, and no transit square attacked.
func (m *CastlingMonitor) CheckMove(from, to board.Square, mover board.Color) error {
	p := match(from, to)
	if p == nil {
		return nil
	}
	// Only a king move is castling; another piece travelling between
	// the same two squares follows the normal rules.
	if k := m.board.Get(from); k == nil || k.Type != board.King {
		return nil
	}
	if p.color != mover {
		return rejectedf("castling: %s cannot use %s's castling move", mover, p.color)
	}
	if !m.rights[p.color][p.side] {
		return rejectedf("castling: %s has lost the %s right", p.color, p.side)
	}
	if rook := m.board.Get(p.rookFrom); rook == nil || rook.Type != board.Rook || rook.Color != p.color {
		return rejectedf("castling: no %s rook on %s", p.color, p.rookFrom)
	}
	for _, sq := range p.between {
		if m.board.Get(sq) != nil {
			return rejectedf("castling: square %s is occupied", sq)
		}
	}
	for _, sq := range p.transit {
		if m.board.IsAttacked(sq, p.color.Opponent()) {
			return rejectedf("castling: king would pass through check at %s", sq)
		}
	}
	return nil
}

// ApplyMove performs the monitor's side of an already-validated move:
// for a castling pattern it relocates the rook (the king's own
// relocation is the controller's job), and for every move it revokes
// whatever rights the touched squares imply. Called exactly once per
// applied move.
func (m *CastlingMonitor) ApplyMove(from, to board.Square) {
	if p := match(from, to); p != nil {
		if k := m.board.Get(from); k != nil && k.Type == board.King && k.Color == p.color {
			rook := m.board.Get(p.rookFrom)
			m.board.Place(p.rookFrom, nil)
			m.board.Place(p.rookTo, rook)
		}
	}
	m.revoke(from)
	m.revoke(to)
}

// revoke clears any right whose king or rook origin square was touched
func (m *CastlingMonitor) revoke(sq board.Square) {
	switch sq {
	case board.MustSquare("e1"):
		m.rights[board.White][KingSide] = false
		m.rights[board.White][QueenSide] = false
	case board.MustSquare("h1"):
		m.rights[board.White][KingSide] = false
	case board.MustSquare("a1"):
		m.rights[board.White][QueenSide] = false
	case board.MustSquare("e8"):
		m.rights[board.Black][KingSide] = false
		m.rights[board.Black][QueenSide] = false
	case board.MustSquare("h8"):
		m.rights[board.Black][KingSide] = false
	case board.MustSquare("a8"):
		m.rights[board.Black][QueenSide] = false
	}
}
