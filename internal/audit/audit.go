package audit

import (
	"context"
	"log"
	"net/http"
	"time"

	"chess-rules/internal/db"
	"chess-rules/internal/middleware"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event types for audit logging
const (
	EventLoginSuccess = "login_success"
	EventLoginFailed  = "login_failed"
	EventRegister     = "register"
	EventLogout       = "logout"
	EventOAuthLogin   = "oauth_login"
	EventGameCreated  = "game_created"
	EventGameResigned = "game_resigned"
)

// Event represents a security-relevant action.
type Event struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	EventType string              `bson:"eventType"`
	UserID    *primitive.ObjectID `bson:"userId,omitempty"`
	Email     string              `bson:"email,omitempty"`
	SessionID string              `bson:"sessionId,omitempty"`
	IP        string              `bson:"ip"`
	UserAgent string              `bson:"userAgent"`
	Details   string              `bson:"details,omitempty"`
	CreatedAt time.Time           `bson:"createdAt"`
}

// LogEvent writes an audit event to the database (fire-and-forget).
func LogEvent(database *db.MongoDB, eventType string, userID *primitive.ObjectID, email string, r *http.Request, details string) {
	event := Event{
		EventType: eventType,
		UserID:    userID,
		Email:     email,
		IP:        middleware.GetClientIP(r),
		UserAgent: r.UserAgent(),
		Details:   details,
		CreatedAt: time.Now(),
	}
	write(database, event)
}

// LogGameEvent records a game-related event keyed by session
func LogGameEvent(database *db.MongoDB, eventType, sessionID string, r *http.Request, details string) {
	event := Event{
		EventType: eventType,
		SessionID: sessionID,
		IP:        middleware.GetClientIP(r),
		UserAgent: r.UserAgent(),
		Details:   details,
		CreatedAt: time.Now(),
	}
	write(database, event)
}

func write(database *db.MongoDB, event Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := database.AuditLog().InsertOne(ctx, event); err != nil {
			log.Printf("Failed to write audit event %s: %v", event.EventType, err)
		}
	}()
}
