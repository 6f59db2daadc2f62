package game

import (
	"fmt"
	"strings"

	"chess-rules/internal/board"
)

// InitialState is the encoded standard opening position, white to move,
// all castling rights intact.
const InitialState = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq"

// Encode renders the full game state as a single line of text:
// placement, side to move, castling rights. This is what gets
// persisted between moves.
func (g *Controller) Encode() string {
	var sb strings.Builder
	sb.WriteString(g.board.EncodePlacement())

	if g.current == board.White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	rights := ""
	if g.castling.HasRight(board.White, KingSide) {
		rights += "K"
	}
	if g.castling.HasRight(board.White, QueenSide) {
		rights += "Q"
	}
	if g.castling.HasRight(board.Black, KingSide) {
		rights += "k"
	}
	if g.castling.HasRight(board.Black, QueenSide) {
		rights += "q"
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)

	return sb.String()
}

// Decode rebuilds a controller from an encoded game state
func Decode(s string) (*Controller, error) {
	parts := strings.Split(s, " ")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid game state: expected 3 fields, got %d", len(parts))
	}

	b, err := board.DecodePlacement(parts[0])
	if err != nil {
		return nil, err
	}

	g := &Controller{
		board:    b,
		castling: NewCastlingMonitor(b),
	}

	switch parts[1] {
	case "w":
		g.current, g.other = board.White, board.Black
	case "b":
		g.current, g.other = board.Black, board.White
	default:
		return nil, fmt.Errorf("invalid game state: bad side to move %q", parts[1])
	}

	g.castling.rights[board.White][KingSide] = strings.Contains(parts[2], "K")
	g.castling.rights[board.White][QueenSide] = strings.Contains(parts[2], "Q")
	g.castling.rights[board.Black][KingSide] = strings.Contains(parts[2], "k")
	g.castling.rights[board.Black][QueenSide] = strings.Contains(parts[2], "q")

	return g, nil
}
