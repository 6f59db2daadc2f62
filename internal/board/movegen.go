package board

// Geometric move generation. Reachable computes the destination set a
// piece could move to under the current occupancy, ignoring check.
// Squares holding a friendly piece are still included; capturing your
// own piece is a legality question, not a geometry question.

var bishopDirs = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDirs = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var queenDirs = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var knightOffsets = [][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}

func inBounds(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

// Reachable returns every square the piece at from could geometrically
// move to. The result is empty if the square is empty.
func (b *Board) Reachable(from Square) []Square {
	p := b.Get(from)
	if p == nil {
		return nil
	}

	switch p.Type {
	case Pawn:
		return b.pawnMoves(from, p.Color)
	case Knight:
		return b.offsetMoves(from, knightOffsets)
	case Bishop:
		return b.slidingMoves(from, bishopDirs)
	case Rook:
		return b.slidingMoves(from, rookDirs)
	case Queen:
		return b.slidingMoves(from, queenDirs)
	case King:
		return b.kingMoves(from, p.Color)
	}
	return nil
}

func (b *Board) pawnMoves(from Square, c Color) []Square {
	var moves []Square
	dir := 1
	startRank := 1
	if c == Black {
		dir = -1
		startRank = 6
	}

	// Pushes require empty squares
	one := Square{File: from.File, Rank: from.Rank + dir}
	if one.Valid() && b.Get(one) == nil {
		moves = append(moves, one)
		two := Square{File: from.File, Rank: from.Rank + 2*dir}
		if from.Rank == startRank && b.Get(two) == nil {
			moves = append(moves, two)
		}
	}

	// Diagonals require an occupant of either colour
	for _, df := range []int{-1, 1} {
		to := Square{File: from.File + df, Rank: from.Rank + dir}
		if to.Valid() && b.Get(to) != nil {
			moves = append(moves, to)
		}
	}
	return moves
}

func (b *Board) offsetMoves(from Square, offsets [][2]int) []Square {
	var moves []Square
	for _, o := range offsets {
		f, r := from.File+o[0], from.Rank+o[1]
		if inBounds(f, r) {
			moves = append(moves, Square{File: f, Rank: r})
		}
	}
	return moves
}

// slidingMoves walks each ray until it leaves the board or hits a
// piece; the first occupied square is included, whatever its colour.
func (b *Board) slidingMoves(from Square, dirs [][2]int) []Square {
	var moves []Square
	for _, d := range dirs {
		f, r := from.File+d[0], from.Rank+d[1]
		for inBounds(f, r) {
			sq := Square{File: f, Rank: r}
			moves = append(moves, sq)
			if b.Get(sq) != nil {
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return moves
}

var kingOffsets = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func (b *Board) kingMoves(from Square, c Color) []Square {
	moves := b.offsetMoves(from, kingOffsets)

	// From its home square the king can also step two files toward a
	// rook. Whether that castling move is actually playable (rights,
	// empty path, unattacked transit) is decided downstream.
	homeRank := 0
	if c == Black {
		homeRank = 7
	}
	if from.File == 4 && from.Rank == homeRank {
		moves = append(moves,
			Square{File: 6, Rank: homeRank},
			Square{File: 2, Rank: homeRank},
		)
	}
	return moves
}
