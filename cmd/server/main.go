package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chess-rules/internal/auth"
	"chess-rules/internal/config"
	"chess-rules/internal/db"
	"chess-rules/internal/handlers"
	"chess-rules/internal/middleware"
	"chess-rules/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting chess rules server in %s mode", cfg.Environment)

	// Connect to MongoDB
	mongodb, err := db.NewMongoDB(cfg.MongoDB.URI, cfg.MongoDB.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mongodb.Close(ctx)
	}()

	log.Printf("Connected to MongoDB database: %s", cfg.MongoDB.Database)

	// Initialize auth services
	jwtService := auth.NewJWTService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTTL,
		cfg.JWT.RefreshTTL,
	)
	passwordService := auth.NewPasswordService()
	googleOAuth := auth.NewGoogleOAuthService(
		cfg.OAuth.GoogleClientID,
		cfg.OAuth.GoogleClientSecret,
		cfg.OAuth.GoogleRedirectURL,
	)

	// Background cleanup of abandoned sessions
	cleanup := services.NewStaleGameCleanupService(mongodb)
	cleanup.Start()
	defer cleanup.Stop()

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, mongodb)
	rateLimiter := middleware.NewRateLimiter()

	// Create handlers
	wsHandler := handlers.NewWebSocketHandler()
	gameHandler := handlers.NewGameHandler(mongodb, wsHandler)
	authHandler := handlers.NewAuthHandler(mongodb, jwtService, passwordService, googleOAuth, cfg.Frontend.URL)

	// Set up router
	router := mux.NewRouter()
	router.Use(middleware.SecurityHeaders)

	// WebSocket routes
	router.Handle("/ws/games/{sessionId}",
		rateLimiter.IPRateLimit(middleware.WebSocketUpgradeLimit)(http.HandlerFunc(wsHandler.HandleWebSocket)))

	// API routes
	api := router.PathPrefix("/api").Subrouter()

	// Auth routes (public)
	api.Handle("/auth/register",
		rateLimiter.IPRateLimit(middleware.AccountCreationLimit)(http.HandlerFunc(authHandler.Register))).Methods("POST")
	api.Handle("/auth/login",
		rateLimiter.IPRateLimit(middleware.LoginAttemptLimit)(http.HandlerFunc(authHandler.Login))).Methods("POST")
	api.Handle("/auth/refresh",
		rateLimiter.IPRateLimit(middleware.TokenRefreshLimit)(http.HandlerFunc(authHandler.Refresh))).Methods("POST")
	api.Handle("/auth/google",
		rateLimiter.IPRateLimit(middleware.OAuthInitLimit)(http.HandlerFunc(authHandler.GoogleOAuth))).Methods("GET")
	api.HandleFunc("/auth/google/callback", authHandler.GoogleOAuthCallback).Methods("GET")

	// Auth routes (protected)
	authApi := api.PathPrefix("/auth").Subrouter()
	authApi.Use(authMiddleware.RequireAuth)
	authApi.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	authApi.HandleFunc("/me", authHandler.GetMe).Methods("GET")

	// Game routes (optional auth)
	gameApi := api.PathPrefix("/games").Subrouter()
	gameApi.Use(authMiddleware.OptionalAuth)
	gameApi.Handle("",
		rateLimiter.IPRateLimit(middleware.GameCreationLimit)(http.HandlerFunc(gameHandler.CreateGame))).Methods("POST")
	gameApi.HandleFunc("/{sessionId}", gameHandler.GetGame).Methods("GET")
	gameApi.HandleFunc("/{sessionId}/join", gameHandler.JoinGame).Methods("POST")
	gameApi.Handle("/{sessionId}/moves",
		rateLimiter.IPRateLimit(middleware.MoveSubmissionLimit)(http.HandlerFunc(gameHandler.MakeMove))).Methods("POST")
	gameApi.HandleFunc("/{sessionId}/moves", gameHandler.GetMoves).Methods("GET")
	gameApi.HandleFunc("/{sessionId}/resign", gameHandler.ResignGame).Methods("POST")

	// API Documentation
	router.HandleFunc("/docs", handlers.ServeAPIDocs).Methods("GET")

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Frontend.URL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Player-ID"},
		AllowCredentials: true,
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
