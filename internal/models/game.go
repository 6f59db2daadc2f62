package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"chess-rules/internal/game"
)

type PlayerColor string

const (
	White PlayerColor = "white"
	Black PlayerColor = "black"
)

type GameStatus string

const (
	GameStatusWaiting   GameStatus = "waiting"   // Waiting for second player
	GameStatusActive    GameStatus = "active"    // Game in progress
	GameStatusComplete  GameStatus = "complete"  // Game finished
	GameStatusAbandoned GameStatus = "abandoned" // No activity for too long
)

type Player struct {
	ID          string              `json:"id" bson:"id"`
	UserID      *primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"` // nullable for anonymous
	DisplayName string              `json:"displayName" bson:"displayName"`
	Color       PlayerColor         `json:"color" bson:"color"`
	JoinedAt    time.Time           `json:"joinedAt" bson:"joinedAt"`
}

type Game struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SessionID   string             `json:"sessionId" bson:"sessionId"`
	Players     []Player           `json:"players" bson:"players"`
	Status      GameStatus         `json:"status" bson:"status"`
	CurrentTurn PlayerColor        `json:"currentTurn" bson:"currentTurn"`
	BoardState  string             `json:"boardState" bson:"boardState"` // encoded placement + turn + castling rights
	Winner      PlayerColor        `json:"winner,omitempty" bson:"winner,omitempty"`
	WinReason   string             `json:"winReason,omitempty" bson:"winReason,omitempty"` // "checkmate", "resignation"
	MoveCount   int                `json:"moveCount" bson:"moveCount"`
	StartedAt   *time.Time         `json:"startedAt,omitempty" bson:"startedAt,omitempty"`
	CompletedAt *time.Time         `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type Move struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	GameID     primitive.ObjectID `json:"gameId" bson:"gameId"`
	SessionID  string             `json:"sessionId" bson:"sessionId"`
	PlayerID   string             `json:"playerId" bson:"playerId"`
	MoveNumber int                `json:"moveNumber" bson:"moveNumber"`
	From       string             `json:"from" bson:"from"` // e.g., "e2"
	To         string             `json:"to" bson:"to"`     // e.g., "e4"
	Piece      string             `json:"piece" bson:"piece"`
	Capture    bool               `json:"capture" bson:"capture"`
	Check      bool               `json:"check" bson:"check"`
	Checkmate  bool               `json:"checkmate" bson:"checkmate"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// InitialBoardState is the encoded standard opening position
const InitialBoardState = game.InitialState
