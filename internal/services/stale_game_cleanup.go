package services

import (
	"context"
	"log"
	"time"

	"chess-rules/internal/db"
	"chess-rules/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

// StaleGameCleanupService periodically marks games abandoned when no
// move has been made for a long time, so waiting/active sessions do
// not pile up forever.
type StaleGameCleanupService struct {
	db             *db.MongoDB
	stopCh         chan struct{}
	interval       time.Duration
	staleThreshold time.Duration
}

// NewStaleGameCleanupService creates a new cleanup service.
func NewStaleGameCleanupService(database *db.MongoDB) *StaleGameCleanupService {
	return &StaleGameCleanupService{
		db:             database,
		stopCh:         make(chan struct{}),
		interval:       10 * time.Minute,
		staleThreshold: 24 * time.Hour,
	}
}

// Start begins the periodic cleanup loop in a background goroutine.
func (s *StaleGameCleanupService) Start() {
	go s.runCleanupLoop()
	log.Println("Stale game cleanup service started (interval: 10m, threshold: 24h)")
}

// Stop signals the cleanup loop to exit.
func (s *StaleGameCleanupService) Stop() {
	close(s.stopCh)
	log.Println("Stale game cleanup service stopped")
}

func (s *StaleGameCleanupService) runCleanupLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanupStaleGames()
		case <-s.stopCh:
			return
		}
	}
}

func (s *StaleGameCleanupService) cleanupStaleGames() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-s.staleThreshold)
	filter := bson.M{
		"status":    bson.M{"$in": []models.GameStatus{models.GameStatusWaiting, models.GameStatusActive}},
		"updatedAt": bson.M{"$lt": cutoff},
	}
	update := bson.M{
		"$set": bson.M{
			"status":    models.GameStatusAbandoned,
			"updatedAt": time.Now(),
		},
	}

	result, err := s.db.Games().UpdateMany(ctx, filter, update)
	if err != nil {
		log.Printf("Stale game cleanup failed: %v", err)
		return
	}
	if result.ModifiedCount > 0 {
		log.Printf("Marked %d stale games abandoned", result.ModifiedCount)
	}
}
