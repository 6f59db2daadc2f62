package board

import (
	"fmt"
	"strings"
	"unicode"
)

// EncodePlacement renders the occupancy as a FEN-style placement
// field: ranks 8 down to 1 separated by '/', runs of empty squares as
// digits, pieces as letters (uppercase white, lowercase black).
func (b *Board) EncodePlacement() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			p := b.squares[r][f]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteRune(rune('0' + empty))
				empty = 0
			}
			sb.WriteRune(p.Letter())
		}
		if empty > 0 {
			sb.WriteRune(rune('0' + empty))
		}
		if r > 0 {
			sb.WriteRune('/')
		}
	}
	return sb.String()
}

// DecodePlacement parses a FEN-style placement field into a board
func DecodePlacement(s string) (*Board, error) {
	ranks := strings.Split(s, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid placement: expected 8 ranks, got %d", len(ranks))
	}

	b := New()
	for r := 7; r >= 0; r-- {
		file := 0
		for _, c := range ranks[7-r] {
			if unicode.IsDigit(c) {
				file += int(c - '0')
				continue
			}
			if file > 7 {
				return nil, fmt.Errorf("invalid placement: rank %d overflows", r+1)
			}
			p, err := pieceFromLetter(c)
			if err != nil {
				return nil, fmt.Errorf("invalid placement: %w", err)
			}
			b.Place(Square{File: file, Rank: r}, p)
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("invalid placement: rank %d has %d files", r+1, file)
		}
	}
	return b, nil
}
