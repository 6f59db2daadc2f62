package handlers

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"chess-rules/internal/audit"
	"chess-rules/internal/auth"
	"chess-rules/internal/db"
	"chess-rules/internal/middleware"
	"chess-rules/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthHandler struct {
	db          *db.MongoDB
	jwtService  *auth.JWTService
	passwords   *auth.PasswordService
	googleOAuth *auth.GoogleOAuthService
	frontendURL string
}

func NewAuthHandler(database *db.MongoDB, jwtService *auth.JWTService, passwords *auth.PasswordService, googleOAuth *auth.GoogleOAuthService, frontendURL string) *AuthHandler {
	return &AuthHandler{
		db:          database,
		jwtService:  jwtService,
		passwords:   passwords,
		googleOAuth: googleOAuth,
		frontendURL: frontendURL,
	}
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *models.User `json:"user"`
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (h *AuthHandler) issueTokens(ctx context.Context, user *models.User) (*TokenResponse, error) {
	accessToken, err := h.jwtService.GenerateAccessToken(user.ID.Hex(), user.Email, user.DisplayName)
	if err != nil {
		return nil, err
	}
	refreshToken, err := h.jwtService.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	record := models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: time.Now().Add(h.jwtService.GetRefreshTTL()),
		CreatedAt: time.Now(),
	}
	if _, err := h.db.RefreshTokens().InsertOne(ctx, record); err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		respondWithError(w, http.StatusBadRequest, "Valid email required")
		return
	}
	if req.DisplayName == "" {
		respondWithError(w, http.StatusBadRequest, "Display name required")
		return
	}
	if err := h.passwords.ValidatePasswordStrength(req.Password); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	count, err := h.db.Users().CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		respondWithError(w, http.StatusConflict, "Email already registered")
		return
	}

	hash, err := h.passwords.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: hash,
		AuthMethods:  []models.AuthMethod{models.AuthMethodPassword},
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	result, err := h.db.Users().InsertOne(ctx, user)
	if err != nil {
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	tokens, err := h.issueTokens(ctx, user)
	if err != nil {
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	audit.LogEvent(h.db, audit.EventRegister, &user.ID, user.Email, r, "")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(tokens)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := h.db.Users().FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		audit.LogEvent(h.db, audit.EventLoginFailed, nil, req.Email, r, "unknown email")
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := h.passwords.ComparePassword(user.PasswordHash, req.Password); err != nil {
		h.db.Users().UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$inc": bson.M{"failedLoginAttempts": 1}})
		audit.LogEvent(h.db, audit.EventLoginFailed, &user.ID, req.Email, r, "bad password")
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !user.IsActive {
		respondWithError(w, http.StatusUnauthorized, "Account is inactive")
		return
	}

	now := time.Now()
	h.db.Users().UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
		"lastLoginAt":         now,
		"failedLoginAttempts": 0,
		"updatedAt":           now,
	}})

	tokens, err := h.issueTokens(ctx, &user)
	if err != nil {
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}

	audit.LogEvent(h.db, audit.EventLoginSuccess, &user.ID, user.Email, r, "")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tokens)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	var stored models.RefreshToken
	err = h.db.RefreshTokens().FindOne(ctx, bson.M{"tokenHash": hashToken(req.RefreshToken)}).Decode(&stored)
	if err != nil || stored.IsRevoked || time.Now().After(stored.ExpiresAt) {
		respondWithError(w, http.StatusUnauthorized, "Refresh token revoked or expired")
		return
	}

	var user models.User
	oid := stored.UserID
	if err := h.db.Users().FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil || !user.IsActive {
		respondWithError(w, http.StatusUnauthorized, "User not found or inactive")
		return
	}
	if subtle.ConstantTimeCompare([]byte(user.ID.Hex()), []byte(claims.UserID)) != 1 {
		respondWithError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	// Rotate: revoke the old token, issue a fresh pair
	h.db.RefreshTokens().UpdateOne(ctx, bson.M{"_id": stored.ID}, bson.M{"$set": bson.M{"isRevoked": true}})

	tokens, err := h.issueTokens(ctx, &user)
	if err != nil {
		http.Error(w, "Refresh failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tokens)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	// Revoke every refresh token for this user
	h.db.RefreshTokens().UpdateMany(ctx, bson.M{"userId": user.ID}, bson.M{"$set": bson.M{"isRevoked": true}})

	audit.LogEvent(h.db, audit.EventLogout, &user.ID, user.Email, r, "")

	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

const oauthStateCookie = "oauth_state"

func generateState() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func (h *AuthHandler) GoogleOAuth(w http.ResponseWriter, r *http.Request) {
	state := generateState()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.googleOAuth.AuthURL(state), http.StatusTemporaryRedirect)
}

func (h *AuthHandler) GoogleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		respondWithError(w, http.StatusBadRequest, auth.ErrInvalidOAuthState.Error())
		return
	}

	token, err := h.googleOAuth.ExchangeCode(ctx, r.URL.Query().Get("code"))
	if err != nil {
		respondWithError(w, http.StatusBadGateway, err.Error())
		return
	}
	info, err := h.googleOAuth.UserInfo(ctx, token)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, err.Error())
		return
	}
	if !info.VerifiedEmail {
		respondWithError(w, http.StatusForbidden, "Google account email is not verified")
		return
	}

	email := strings.ToLower(info.Email)
	var user models.User
	err = h.db.Users().FindOne(ctx, bson.M{"googleId": info.ID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		// Link by email if the account exists, otherwise create one
		err = h.db.Users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			user = models.User{
				Email:       email,
				DisplayName: info.Name,
				GoogleID:    info.ID,
				AuthMethods: []models.AuthMethod{models.AuthMethodGoogle},
				IsActive:    true,
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			}
			result, ierr := h.db.Users().InsertOne(ctx, user)
			if ierr != nil {
				http.Error(w, "Sign-in failed", http.StatusInternalServerError)
				return
			}
			user.ID = result.InsertedID.(primitive.ObjectID)
		} else if err == nil {
			h.db.Users().UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
				"$set":      bson.M{"googleId": info.ID, "updatedAt": time.Now()},
				"$addToSet": bson.M{"authMethods": models.AuthMethodGoogle},
			})
		} else {
			http.Error(w, "Sign-in failed", http.StatusInternalServerError)
			return
		}
	} else if err != nil {
		http.Error(w, "Sign-in failed", http.StatusInternalServerError)
		return
	}

	tokens, err := h.issueTokens(ctx, &user)
	if err != nil {
		http.Error(w, "Sign-in failed", http.StatusInternalServerError)
		return
	}

	audit.LogEvent(h.db, audit.EventOAuthLogin, &user.ID, user.Email, r, "")

	// Hand the tokens to the frontend via redirect fragment
	http.Redirect(w, r, h.frontendURL+"/auth/callback#access="+tokens.AccessToken+"&refresh="+tokens.RefreshToken, http.StatusTemporaryRedirect)
}
