package utils

import (
	"fmt"
	"math/rand"
)

// Word lists for generating display names for anonymous players
var adjectives = []string{
	"Swift", "Brave", "Clever", "Noble", "Mighty", "Silent", "Golden", "Silver",
	"Crimson", "Azure", "Ancient", "Mystic", "Royal", "Bold", "Wise", "Keen",
	"Storm", "Frost", "Iron", "Stone", "Lunar", "Solar", "Phantom", "Elder",
}

var nouns = []string{
	"Knight", "Bishop", "Rook", "Queen", "King", "Pawn", "Gambit", "Tempo",
	"Wolf", "Eagle", "Hawk", "Lion", "Falcon", "Castle", "Tower", "Crown",
	"Guardian", "Sentinel", "Seeker", "Marshal", "Captain", "Champion",
}

// GenerateDisplayName returns a random name in the form "AdjectiveNoun123",
// used when a player joins without an account.
func GenerateDisplayName() string {
	adj := adjectives[rand.Intn(len(adjectives))]
	noun := nouns[rand.Intn(len(nouns))]
	return fmt.Sprintf("%s%s%d", adj, noun, rand.Intn(900)+100)
}
