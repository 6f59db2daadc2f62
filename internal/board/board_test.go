package board

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseSquare(t *testing.T) {
	tests := []struct {
		raw     string
		want    Square
		wantErr bool
	}{
		{"a1", Square{0, 0}, false},
		{"h8", Square{7, 7}, false},
		{"E4", Square{4, 3}, false}, // case-insensitive
		{"e4", Square{4, 3}, false},
		{"i1", Square{}, true},
		{"a9", Square{}, true},
		{"a0", Square{}, true},
		{"", Square{}, true},
		{"e44", Square{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseSquare(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSquare(%q) err = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseSquare(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsValidSquare(t *testing.T) {
	if !IsValidSquare("c5") {
		t.Error("c5 should be valid")
	}
	if IsValidSquare("z9") {
		t.Error("z9 should be invalid")
	}
}

func TestKingCache(t *testing.T) {
	b := New()
	if _, ok := b.KingSquare(White); ok {
		t.Fatal("empty board should have no white king")
	}

	e1 := MustSquare("e1")
	b.Place(e1, NewPiece(White, King))
	sq, ok := b.KingSquare(White)
	if !ok || sq != e1 {
		t.Fatalf("KingSquare(White) = %v, %v; want e1, true", sq, ok)
	}

	// Relocating the king moves the cache with it
	e2 := MustSquare("e2")
	b.Place(e2, b.Get(e1))
	b.Place(e1, nil)
	sq, ok = b.KingSquare(White)
	if !ok || sq != e2 {
		t.Fatalf("after relocation KingSquare(White) = %v, %v; want e2, true", sq, ok)
	}

	// Capturing a king clears the cache
	b.Place(e2, NewPiece(Black, Queen))
	if _, ok := b.KingSquare(White); ok {
		t.Error("captured king should leave no cached square")
	}
}

func squares(raws ...string) []Square {
	out := make([]Square, len(raws))
	for i, r := range raws {
		out[i] = MustSquare(r)
	}
	return out
}

func sortSquares(s []Square) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Rank != s[j].Rank {
			return s[i].Rank < s[j].Rank
		}
		return s[i].File < s[j].File
	})
}

func TestReachable(t *testing.T) {
	tests := []struct {
		name  string
		setup map[string]string
		from  string
		want  []string
	}{
		{
			name:  "rook blocked by friendly pawn includes the blocker square not beyond",
			setup: map[string]string{"a1": "white rook", "a2": "white pawn"},
			from:  "a1",
			want:  []string{"a2", "b1", "c1", "d1", "e1", "f1", "g1", "h1"},
		},
		{
			name:  "bishop stops at first occupied square on each ray",
			setup: map[string]string{"c1": "white bishop", "e3": "black pawn"},
			from:  "c1",
			want:  []string{"b2", "a3", "d2", "e3"},
		},
		{
			name:  "knight ignores blockers",
			setup: map[string]string{"b1": "white knight", "b2": "white pawn", "c2": "white pawn"},
			from:  "b1",
			want:  []string{"a3", "c3", "d2"},
		},
		{
			name:  "pawn push blocked",
			setup: map[string]string{"a2": "white pawn", "a3": "black rook"},
			from:  "a2",
			want:  nil,
		},
		{
			name:  "pawn double push from start rank",
			setup: map[string]string{"d2": "white pawn"},
			from:  "d2",
			want:  []string{"d3", "d4"},
		},
		{
			name:  "pawn diagonal only when occupied",
			setup: map[string]string{"e4": "white pawn", "d5": "black pawn", "f5": "white knight"},
			from:  "e4",
			want:  []string{"e5", "d5", "f5"},
		},
		{
			name:  "black pawn moves down the board",
			setup: map[string]string{"c7": "black pawn"},
			from:  "c7",
			want:  []string{"c6", "c5"},
		},
		{
			name:  "king one-square radius",
			setup: map[string]string{"a3": "white king"},
			from:  "a3",
			want:  []string{"a2", "b2", "b3", "b4", "a4"},
		},
		{
			name:  "king on home square includes castling steps",
			setup: map[string]string{"e1": "white king"},
			from:  "e1",
			want:  []string{"d1", "f1", "d2", "e2", "f2", "c1", "g1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewFromSetup(tt.setup)
			if err != nil {
				t.Fatal(err)
			}
			got := b.Reachable(MustSquare(tt.from))
			want := squares(tt.want...)
			sortSquares(got)
			sortSquares(want)
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Reachable(%s) mismatch (-want +got):\n%s", tt.from, diff)
			}
		})
	}
}

func TestIsAttacked(t *testing.T) {
	tests := []struct {
		name   string
		setup  map[string]string
		target string
		by     Color
		want   bool
	}{
		{
			name:   "pawn attacks empty diagonal",
			setup:  map[string]string{"e4": "white pawn"},
			target: "d5", by: White, want: true,
		},
		{
			name:   "pawn does not attack its push square",
			setup:  map[string]string{"e4": "white pawn"},
			target: "e5", by: White, want: false,
		},
		{
			name:   "rook attack blocked by any piece",
			setup:  map[string]string{"a1": "black rook", "a4": "white pawn"},
			target: "a8", by: Black, want: false,
		},
		{
			name:   "queen attacks along clear diagonal",
			setup:  map[string]string{"d1": "black queen"},
			target: "h5", by: Black, want: true,
		},
		{
			name:   "knight jumps blockers",
			setup:  map[string]string{"g1": "white knight", "g2": "black pawn", "f2": "black pawn"},
			target: "f3", by: White, want: true,
		},
		{
			name:   "king attacks adjacent square only",
			setup:  map[string]string{"e1": "white king"},
			target: "g1", by: White, want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewFromSetup(tt.setup)
			if err != nil {
				t.Fatal(err)
			}
			if got := b.IsAttacked(MustSquare(tt.target), tt.by); got != tt.want {
				t.Errorf("IsAttacked(%s, %s) = %v, want %v", tt.target, tt.by, got, tt.want)
			}
		})
	}
}

func TestCandidateMoves(t *testing.T) {
	b, err := NewFromSetup(map[string]string{
		"a1": "white rook",
		"a2": "white pawn",
		"h8": "black king",
	})
	if err != nil {
		t.Fatal(err)
	}

	cands := b.CandidateMoves(White)
	// Rook: a2 (blocker) + b1..h1 = 8; pawn: a3, a4 = 2.
	if len(cands) != 10 {
		t.Fatalf("CandidateMoves(White) returned %d candidates, want 10", len(cands))
	}
	for _, c := range cands {
		if p := b.Get(c.From); p == nil || p.Color != White {
			t.Errorf("candidate %v does not start on a white piece", c)
		}
	}
}

func TestNewFromSetupErrors(t *testing.T) {
	tests := []struct {
		name      string
		placement map[string]string
	}{
		{"bad square", map[string]string{"j9": "white rook"}},
		{"bad colour", map[string]string{"a1": "green rook"}},
		{"unknown piece tag", map[string]string{"a1": "white archbishop"}},
		{"malformed descriptor", map[string]string{"a1": "whiterook"}},
		{"duplicate king", map[string]string{"a1": "white king", "h1": "white king"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFromSetup(tt.placement); err == nil {
				t.Errorf("NewFromSetup(%v) should fail", tt.placement)
			}
		})
	}
}

func TestEncodePlacementRoundTrip(t *testing.T) {
	b := NewStandard()
	enc := b.EncodePlacement()
	if enc != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR" {
		t.Fatalf("standard placement encoded as %q", enc)
	}

	decoded, err := DecodePlacement(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got := decoded.EncodePlacement(); got != enc {
		t.Errorf("round trip changed placement: %q -> %q", enc, got)
	}

	sq, ok := decoded.KingSquare(Black)
	if !ok || sq != MustSquare("e8") {
		t.Errorf("decoded board lost the black king cache: %v, %v", sq, ok)
	}
}

func TestDecodePlacementErrors(t *testing.T) {
	for _, raw := range []string{
		"8/8/8/8",
		"9/8/8/8/8/8/8/8",
		"xxxxxxxx/8/8/8/8/8/8/8",
	} {
		if _, err := DecodePlacement(raw); err == nil {
			t.Errorf("DecodePlacement(%q) should fail", raw)
		}
	}
}
