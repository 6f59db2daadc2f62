package middleware

import (
	"context"
	"net/http"
	"strings"

	"chess-rules/internal/auth"
	"chess-rules/internal/db"
	"chess-rules/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const UserContextKey contextKey = "user"

type AuthMiddleware struct {
	jwtService *auth.JWTService
	db         *db.MongoDB
}

func NewAuthMiddleware(jwtService *auth.JWTService, database *db.MongoDB) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		db:         database,
	}
}

// RequireAuth validates the bearer token and loads the user into the
// request context; requests without a valid token get 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, errMsg := m.authenticate(r)
		if user == nil {
			http.Error(w, errMsg, http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth loads the user if a valid token is present but lets the
// request continue anonymously otherwise.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, _ := m.authenticate(r); user != nil {
			r = r.WithContext(context.WithValue(r.Context(), UserContextKey, user))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) authenticate(r *http.Request) (*models.User, string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, "Authorization header required"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "Invalid authorization header format"
	}

	claims, err := m.jwtService.ValidateAccessToken(parts[1])
	if err != nil {
		if err == auth.ErrExpiredToken {
			return nil, "Token has expired"
		}
		return nil, "Invalid token"
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, "Invalid user ID"
	}

	var user models.User
	if err := m.db.Users().FindOne(r.Context(), bson.M{"_id": userID}).Decode(&user); err != nil {
		return nil, "User not found"
	}
	if !user.IsActive {
		return nil, "User account is inactive"
	}
	return &user, ""
}

// UserFromContext returns the authenticated user, if any
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}
