package game

import (
	"testing"

	"chess-rules/internal/board"
)

func TestShortCastlingRelocatesRook(t *testing.T) {
	g := mustSetup(t, map[string]string{
		"e1": "white king", "h1": "white rook",
		"e8": "black king",
	})

	if err := g.Move("e1", "g1"); err != nil {
		t.Fatal(err)
	}

	if p := g.Board().Get(board.MustSquare("g1")); p == nil || p.Type != board.King {
		t.Errorf("g1 should hold the king, got %v", p)
	}
	if p := g.Board().Get(board.MustSquare("f1")); p == nil || p.Type != board.Rook {
		t.Errorf("f1 should hold the relocated rook, got %v", p)
	}
	if g.Board().Get(board.MustSquare("h1")) != nil {
		t.Error("h1 should be empty after castling")
	}
	if g.CurrentPlayer() != board.Black {
		t.Error("castling should count as one move and swap the turn")
	}
}

func TestLongCastling(t *testing.T) {
	g := mustSetup(t, map[string]string{
		"e8": "black king", "a8": "black rook",
		"e1": "white king",
	})
	if err := g.Move("e1", "e2"); err != nil { // pass the turn to black
		t.Fatal(err)
	}

	if err := g.Move("e8", "c8"); err != nil {
		t.Fatal(err)
	}
	if p := g.Board().Get(board.MustSquare("d8")); p == nil || p.Type != board.Rook {
		t.Errorf("d8 should hold the relocated rook, got %v", p)
	}
	if p := g.Board().Get(board.MustSquare("c8")); p == nil || p.Type != board.King {
		t.Errorf("c8 should hold the king, got %v", p)
	}
}

func TestCastlingRejections(t *testing.T) {
	tests := []struct {
		name  string
		setup map[string]string
		pre   [][2]string // moves played first
		from  string
		to    string
	}{
		{
			name: "path blocked between king and rook",
			setup: map[string]string{
				"e1": "white king", "h1": "white rook", "g1": "white knight",
				"e8": "black king",
			},
			from: "e1", to: "g1",
		},
		{
			name: "king currently in check",
			setup: map[string]string{
				"e1": "white king", "h1": "white rook",
				"e8": "black king", "e5": "black rook",
			},
			from: "e1", to: "g1",
		},
		{
			name: "king passes through an attacked square",
			setup: map[string]string{
				"e1": "white king", "h1": "white rook",
				"e8": "black king", "f5": "black rook",
			},
			from: "e1", to: "g1",
		},
		{
			name: "king would land on an attacked square",
			setup: map[string]string{
				"e1": "white king", "h1": "white rook",
				"e8": "black king", "g5": "black rook",
			},
			from: "e1", to: "g1",
		},
		{
			name: "no rook on the home square",
			setup: map[string]string{
				"e1": "white king",
				"e8": "black king",
			},
			from: "e1", to: "g1",
		},
		{
			name: "right lost after the king moved and returned",
			setup: map[string]string{
				"e1": "white king", "h1": "white rook",
				"e8": "black king", "a7": "black pawn",
			},
			pre: [][2]string{
				{"e1", "e2"}, {"a7", "a6"},
				{"e2", "e1"}, {"a6", "a5"},
			},
			from: "e1", to: "g1",
		},
		{
			name: "right lost after the rook moved and returned",
			setup: map[string]string{
				"e1": "white king", "h1": "white rook",
				"e8": "black king", "a7": "black pawn",
			},
			pre: [][2]string{
				{"h1", "h2"}, {"a7", "a6"},
				{"h2", "h1"}, {"a6", "a5"},
			},
			from: "e1", to: "g1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustSetup(t, tt.setup)
			for _, mv := range tt.pre {
				if err := g.Move(mv[0], mv[1]); err != nil {
					t.Fatalf("setup move %v: %v", mv, err)
				}
			}
			before := g.Encode()
			err := g.Move(tt.from, tt.to)
			if !IsMoveRejected(err) {
				t.Fatalf("castling should be rejected, got %v", err)
			}
			if g.Encode() != before {
				t.Error("rejected castling mutated state")
			}
		})
	}
}

func TestRightsRevokedByCaptureOnRookSquare(t *testing.T) {
	g := mustSetup(t, map[string]string{
		"e1": "white king", "h1": "white rook",
		"e8": "black king", "h7": "black rook",
	})
	if err := g.Move("e1", "d1"); err != nil { // give black the move
		t.Fatal(err)
	}
	if err := g.Move("h7", "h1"); err != nil { // captures the castling rook
		t.Fatal(err)
	}
	if g.Castling().HasRight(board.White, KingSide) {
		t.Error("capture on h1 must revoke white's king-side right")
	}
	// White's own first move already cost it the queen-side right too.
	if g.Castling().HasRight(board.White, QueenSide) {
		t.Error("the king leaving e1 must revoke both white rights")
	}
}

func TestRightsAreMonotone(t *testing.T) {
	g := NewController()
	moves := [][2]string{
		{"g1", "f3"}, {"g8", "f6"},
		{"h1", "g1"}, {"h8", "g8"}, // both king-side rights gone
		{"g1", "h1"}, {"g8", "h8"}, // rooks return; rights must not
	}
	for _, mv := range moves {
		if err := g.Move(mv[0], mv[1]); err != nil {
			t.Fatalf("move %v: %v", mv, err)
		}
	}

	if g.Castling().HasRight(board.White, KingSide) {
		t.Error("white king-side right came back")
	}
	if g.Castling().HasRight(board.Black, KingSide) {
		t.Error("black king-side right came back")
	}
	if !g.Castling().HasRight(board.White, QueenSide) {
		t.Error("white queen-side right should be intact")
	}
	if !g.Castling().HasRight(board.Black, QueenSide) {
		t.Error("black queen-side right should be intact")
	}
}

func TestNonCastlingKingTwoStepIsJustIllegal(t *testing.T) {
	// A black piece on e1's two-step squares is not castling for black.
	g := mustSetup(t, map[string]string{
		"e1": "black king",
		"h8": "white king", "h1": "white rook",
	})
	if err := g.Move("h8", "h7"); err != nil {
		t.Fatal(err)
	}
	if err := g.Move("e1", "g1"); !IsMoveRejected(err) {
		t.Errorf("black cannot use white's castling pattern, got %v", err)
	}
}

func TestRookSlidingOntoCastlingSquaresIsNotCastling(t *testing.T) {
	// A white rook travelling e1->g1 shares the short-castling square
	// pair but must move as a plain rook: no h1 rook relocation, no
	// castling validation.
	g := mustSetup(t, map[string]string{
		"a2": "white king", "e1": "white rook", "h1": "white rook",
		"a7": "black king",
	})
	if err := g.Move("e1", "g1"); err != nil {
		t.Fatal(err)
	}
	if p := g.Board().Get(board.MustSquare("g1")); p == nil || p.Type != board.Rook {
		t.Error("rook should have arrived on g1")
	}
	if p := g.Board().Get(board.MustSquare("h1")); p == nil || p.Type != board.Rook {
		t.Error("h1 rook must not be relocated by a non-castling move")
	}
	if p := g.Board().Get(board.MustSquare("f1")); p != nil {
		t.Errorf("f1 should stay empty, holds %v", p)
	}
}
