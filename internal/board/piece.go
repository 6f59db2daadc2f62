package board

import (
	"fmt"
	"strings"
	"unicode"
)

// Color identifies a side
type Color int

const (
	White Color = iota
	Black
)

// Opponent returns the other side
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// ParseColor converts a colour tag ("white" or "black") to a Color
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	}
	return 0, fmt.Errorf("unknown colour: %s", s)
}

// PieceType identifies a movement behavior
type PieceType int

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// pieceTypes is the closed set of recognised piece-type tags. Setup
// descriptors are resolved through this map at parse time; anything
// else is a configuration error.
var pieceTypes = map[string]PieceType{
	"pawn":   Pawn,
	"knight": Knight,
	"bishop": Bishop,
	"rook":   Rook,
	"queen":  Queen,
	"king":   King,
}

var pieceTypeNames = map[PieceType]string{
	Pawn:   "pawn",
	Knight: "knight",
	Bishop: "bishop",
	Rook:   "rook",
	Queen:  "queen",
	King:   "king",
}

// ParsePieceType converts a piece-type tag (e.g., "rook") to a PieceType
func ParsePieceType(s string) (PieceType, error) {
	t, ok := pieceTypes[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown piece type: %s", s)
	}
	return t, nil
}

func (t PieceType) String() string {
	return pieceTypeNames[t]
}

// letters for board-state encoding, indexed by PieceType
var pieceLetters = [...]rune{'P', 'N', 'B', 'R', 'Q', 'K'}

// Piece is an immutable colour plus movement behavior. Pieces do not
// know their own square; the board supplies it at query time.
type Piece struct {
	Color Color
	Type  PieceType
}

// NewPiece returns a piece of the given colour and type
func NewPiece(c Color, t PieceType) *Piece {
	return &Piece{Color: c, Type: t}
}

// Letter returns the piece's encoding letter: uppercase for white,
// lowercase for black.
func (p *Piece) Letter() rune {
	l := pieceLetters[p.Type]
	if p.Color == Black {
		return unicode.ToLower(l)
	}
	return l
}

// pieceFromLetter is the inverse of Letter
func pieceFromLetter(r rune) (*Piece, error) {
	color := White
	if unicode.IsLower(r) {
		color = Black
	}
	switch unicode.ToUpper(r) {
	case 'P':
		return NewPiece(color, Pawn), nil
	case 'N':
		return NewPiece(color, Knight), nil
	case 'B':
		return NewPiece(color, Bishop), nil
	case 'R':
		return NewPiece(color, Rook), nil
	case 'Q':
		return NewPiece(color, Queen), nil
	case 'K':
		return NewPiece(color, King), nil
	}
	return nil, fmt.Errorf("unknown piece letter: %c", r)
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s", p.Color, p.Type)
}
