package board

import (
	"fmt"
	"strings"
)

// Square represents a square on the board
type Square struct {
	File int // 0-7 (a-h)
	Rank int // 0-7 (1-8)
}

// ParseSquare converts algebraic notation (e.g., "e4" or "E4") to a Square
func ParseSquare(s string) (Square, error) {
	s = strings.ToLower(s)
	if len(s) != 2 {
		return Square{}, fmt.Errorf("invalid square: %s", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return Square{}, fmt.Errorf("invalid square: %s", s)
	}
	return Square{File: file, Rank: rank}, nil
}

// MustSquare is ParseSquare for known-good coordinates; it panics on bad input.
func MustSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// IsValidSquare reports whether a raw coordinate names a real square
func IsValidSquare(s string) bool {
	_, err := ParseSquare(s)
	return err == nil
}

// Valid reports whether the square lies on the board
func (s Square) Valid() bool {
	return s.File >= 0 && s.File <= 7 && s.Rank >= 0 && s.Rank <= 7
}

// String converts a Square to algebraic notation
func (s Square) String() string {
	return fmt.Sprintf("%c%c", 'a'+s.File, '1'+s.Rank)
}
