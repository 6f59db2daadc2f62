package game

import (
	"chess-rules/internal/board"
)

// Controller owns the turn state and orchestrates move validation and
// application. Geometry is delegated to the board, castling to the
// CastlingMonitor. One controller exclusively owns one board for the
// lifetime of a game; nothing here is safe for concurrent use.
type Controller struct {
	board    *board.Board
	castling *CastlingMonitor
	current  board.Color
	other    board.Color
}

// NewController starts a game from the standard opening position,
// white to move.
func NewController() *Controller {
	b := board.NewStandard()
	return &Controller{
		board:    b,
		castling: NewCastlingMonitor(b),
		current:  board.White,
		other:    board.Black,
	}
}

// NewControllerFromSetup starts a game from a non-standard position
// given as a placement mapping (see board.NewFromSetup), white to move.
func NewControllerFromSetup(placement map[string]string) (*Controller, error) {
	b, err := board.NewFromSetup(placement)
	if err != nil {
		return nil, err
	}
	return &Controller{
		board:    b,
		castling: NewCastlingMonitor(b),
		current:  board.White,
		other:    board.Black,
	}, nil
}

// Board exposes the underlying board for queries
func (g *Controller) Board() *board.Board {
	return g.board
}

// CurrentPlayer returns the colour to move
func (g *Controller) CurrentPlayer() board.Color {
	return g.current
}

// OtherPlayer returns the colour not to move
func (g *Controller) OtherPlayer() board.Color {
	return g.other
}

// Castling exposes the castling monitor for queries
func (g *Controller) Castling() *CastlingMonitor {
	return g.castling
}

// Move validates and applies a move given raw square coordinates
// (case-insensitive, e.g. "e2", "E4"). On any rejection the board and
// turn are left exactly as they were. On success the piece is
// relocated (capturing whatever sat on the destination), castling
// bookkeeping runs, and the turn swaps.
func (g *Controller) Move(fromRaw, toRaw string) error {
	from, err := board.ParseSquare(fromRaw)
	if err != nil {
		return rejectedf("invalid square %q", fromRaw)
	}
	to, err := board.ParseSquare(toRaw)
	if err != nil {
		return rejectedf("invalid square %q", toRaw)
	}

	if err := g.validateMove(from, to, g.current); err != nil {
		return err
	}

	g.castling.ApplyMove(from, to)
	p := g.board.Get(from)
	g.board.Place(to, p)
	g.board.Place(from, nil)
	g.current, g.other = g.other, g.current
	return nil
}

// validateMove runs the full guard chain for a move by the given
// colour, in strict order, without mutating anything that survives the
// call. It is the single entry point for both real moves and the
// checkmate search's legality probes; the mover is passed explicitly
// so probes never depend on (or disturb) the ambient turn.
func (g *Controller) validateMove(from, to board.Square, mover board.Color) error {
	// 1. There must be a piece to move.
	p := g.board.Get(from)
	if p == nil {
		return rejectedf("no piece at %s", from)
	}

	// 2. It must belong to the moving side.
	if p.Color != mover {
		return rejectedf("%s at %s belongs to %s", p.Type, from, p.Color)
	}

	// 3. The destination must be on the board.
	if !to.Valid() {
		return rejectedf("square %s is off the board", to)
	}

	// 4. The destination must be geometrically reachable under the
	// current occupancy.
	if !contains(g.board.Reachable(from), to) {
		return rejectedf("%s cannot reach %s from %s", p.Type, to, from)
	}

	// 5. The destination must not hold a friendly piece.
	if dest := g.board.Get(to); dest != nil && dest.Color == p.Color {
		return rejectedf("cannot capture own %s at %s", dest.Type, to)
	}

	// 6. The move must not leave the mover's own king in check.
	if g.wouldSelfCheck(from, to, mover) {
		return rejectedf("move leaves %s king in check", mover)
	}

	// 7. Castling rules, for the four king moves that are castling.
	if err := g.castling.CheckMove(from, to, mover); err != nil {
		return err
	}

	return nil
}

// wouldSelfCheck speculatively performs the raw relocation, asks
// whether the mover's king is attacked, and restores the two affected
// squares. The restore is deferred so it runs on every exit path and
// the board is observably untouched afterwards. A mover without a king
// on the board is never considered in check.
func (g *Controller) wouldSelfCheck(from, to board.Square, mover board.Color) bool {
	moving := g.board.Get(from)
	displaced := g.board.Get(to)

	g.board.Place(from, nil)
	g.board.Place(to, moving)
	defer func() {
		g.board.Place(to, displaced)
		g.board.Place(from, moving)
	}()

	kingSq, ok := g.board.KingSquare(mover)
	if !ok {
		return false
	}
	return g.board.IsAttacked(kingSq, mover.Opponent())
}

// CheckMate reports whether a king is checkmated. If neither king is
// attacked there is no checkmate. Otherwise every geometric candidate
// for the checked colour is probed through the guard chain with that
// colour explicitly as the mover, regardless of whose turn it is; a
// single legal candidate means the king can be saved. Rejections are
// plain "this candidate does not help" outcomes, not faults, and the
// call has no observable effect on board or turn.
func (g *Controller) CheckMate() (board.Color, bool) {
	checked, inCheck := g.checkedColor()
	if !inCheck {
		return 0, false
	}

	for _, c := range g.board.CandidateMoves(checked) {
		if g.validateMove(c.From, c.To, checked) == nil {
			return 0, false
		}
	}
	return checked, true
}

// checkedColor returns the colour whose king is currently attacked
func (g *Controller) checkedColor() (board.Color, bool) {
	for _, c := range []board.Color{board.White, board.Black} {
		kingSq, ok := g.board.KingSquare(c)
		if !ok {
			continue
		}
		if g.board.IsAttacked(kingSq, c.Opponent()) {
			return c, true
		}
	}
	return 0, false
}

// InCheck reports whether the given colour's king is currently attacked
func (g *Controller) InCheck(c board.Color) bool {
	kingSq, ok := g.board.KingSquare(c)
	if !ok {
		return false
	}
	return g.board.IsAttacked(kingSq, c.Opponent())
}

func contains(squares []board.Square, sq board.Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}
