package board

// Board owns square occupancy: 64 squares, each empty or holding one
// piece. It also caches each king's current square so check queries
// never have to scan for the king. At most one king of each colour is
// ever on the board, and the cache always matches actual occupancy.
type Board struct {
	squares [8][8]*Piece // [rank][file], nil = empty
	kings   [2]*Square
}

// New returns an empty board
func New() *Board {
	return &Board{}
}

// NewStandard returns a board with the standard 32-piece opening position
func NewStandard() *Board {
	b := New()
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := 0; f < 8; f++ {
		b.Place(Square{File: f, Rank: 0}, NewPiece(White, backRank[f]))
		b.Place(Square{File: f, Rank: 1}, NewPiece(White, Pawn))
		b.Place(Square{File: f, Rank: 6}, NewPiece(Black, Pawn))
		b.Place(Square{File: f, Rank: 7}, NewPiece(Black, backRank[f]))
	}
	return b
}

// Get returns the piece at the given square, or nil if it is empty
func (b *Board) Get(sq Square) *Piece {
	return b.squares[sq.Rank][sq.File]
}

// Place puts a piece (or nil, to clear) on a square, keeping the king
// cache consistent: displacing a king clears its cached square, and
// placing a king records its new one.
func (b *Board) Place(sq Square, p *Piece) {
	if old := b.squares[sq.Rank][sq.File]; old != nil && old.Type == King {
		// A king's cache entry is cleared only while it still points
		// here; the same piece may already have been placed elsewhere.
		if ks := b.kings[old.Color]; ks != nil && *ks == sq {
			b.kings[old.Color] = nil
		}
	}
	b.squares[sq.Rank][sq.File] = p
	if p != nil && p.Type == King {
		s := sq
		b.kings[p.Color] = &s
	}
}

// KingSquare returns the square of the given colour's king, if it is
// on the board.
func (b *Board) KingSquare(c Color) (Square, bool) {
	if b.kings[c] == nil {
		return Square{}, false
	}
	return *b.kings[c], true
}

// Candidate is a (from, to) pair produced by geometric reachability,
// prior to legality filtering.
type Candidate struct {
	From Square
	To   Square
}

// CandidateMoves enumerates every geometric (from, to) pair for the
// given colour under the current occupancy.
func (b *Board) CandidateMoves(c Color) []Candidate {
	var moves []Candidate
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			from := Square{File: f, Rank: r}
			p := b.squares[r][f]
			if p == nil || p.Color != c {
				continue
			}
			for _, to := range b.Reachable(from) {
				moves = append(moves, Candidate{From: from, To: to})
			}
		}
	}
	return moves
}

// IsAttacked reports whether any piece of the given colour attacks the
// square under the current occupancy.
func (b *Board) IsAttacked(sq Square, by Color) bool {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := b.squares[r][f]
			if p == nil || p.Color != by {
				continue
			}
			if b.attacks(Square{File: f, Rank: r}, sq, p) {
				return true
			}
		}
	}
	return false
}

// attacks reports whether the piece at from attacks the target square.
// This differs from reachability for pawns only: a pawn attacks its
// capture diagonals whether or not they are occupied, and its forward
// pushes attack nothing.
func (b *Board) attacks(from, target Square, p *Piece) bool {
	fileDiff := abs(target.File - from.File)
	rankDiff := target.Rank - from.Rank

	switch p.Type {
	case Pawn:
		dir := 1
		if p.Color == Black {
			dir = -1
		}
		return fileDiff == 1 && rankDiff == dir
	case Knight:
		return (fileDiff == 2 && abs(rankDiff) == 1) || (fileDiff == 1 && abs(rankDiff) == 2)
	case King:
		return fileDiff <= 1 && abs(rankDiff) <= 1 && (fileDiff != 0 || rankDiff != 0)
	case Bishop:
		return fileDiff == abs(rankDiff) && fileDiff != 0 && b.isPathClear(from, target)
	case Rook:
		return (fileDiff == 0) != (rankDiff == 0) && b.isPathClear(from, target)
	case Queen:
		if fileDiff == abs(rankDiff) && fileDiff != 0 {
			return b.isPathClear(from, target)
		}
		return (fileDiff == 0) != (rankDiff == 0) && b.isPathClear(from, target)
	}
	return false
}

// isPathClear checks that every square strictly between from and to is
// empty. Callers guarantee the two squares share a rank, file, or
// diagonal.
func (b *Board) isPathClear(from, to Square) bool {
	fileDir := sign(to.File - from.File)
	rankDir := sign(to.Rank - from.Rank)

	f, r := from.File+fileDir, from.Rank+rankDir
	for f != to.File || r != to.Rank {
		if b.squares[r][f] != nil {
			return false
		}
		f += fileDir
		r += rankDir
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}
