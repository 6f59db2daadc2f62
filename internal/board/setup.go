package board

import (
	"fmt"
	"strings"
)

// NewFromSetup builds a board from a placement mapping of square
// coordinates to "colour pieceType" descriptors, e.g. {"e1": "white king"}.
// It is used to seed non-standard positions, primarily for testing.
// Unknown tags are rejected here, at parse time.
func NewFromSetup(placement map[string]string) (*Board, error) {
	b := New()
	for coord, descriptor := range placement {
		sq, err := ParseSquare(coord)
		if err != nil {
			return nil, fmt.Errorf("setup: %w", err)
		}

		fields := strings.Fields(descriptor)
		if len(fields) != 2 {
			return nil, fmt.Errorf("setup: invalid piece descriptor %q for %s", descriptor, coord)
		}
		color, err := ParseColor(fields[0])
		if err != nil {
			return nil, fmt.Errorf("setup: %w", err)
		}
		pieceType, err := ParsePieceType(fields[1])
		if err != nil {
			return nil, fmt.Errorf("setup: %w", err)
		}

		if pieceType == King {
			if _, ok := b.KingSquare(color); ok {
				return nil, fmt.Errorf("setup: duplicate %s king", color)
			}
		}
		if b.Get(sq) != nil {
			return nil, fmt.Errorf("setup: square %s placed twice", sq)
		}
		b.Place(sq, NewPiece(color, pieceType))
	}
	return b, nil
}
