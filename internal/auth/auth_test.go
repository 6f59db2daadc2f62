package auth

import (
	"testing"
	"time"
)

func TestValidatePasswordStrength(t *testing.T) {
	s := NewPasswordService()

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"strong password", "Correct#Horse9", nil},
		{"too short", "Ab1!xyz", ErrPasswordTooShort},
		{"no uppercase", "lowercase1!only", ErrPasswordTooWeak},
		{"no special char", "NoSpecials123abc", ErrPasswordTooWeak},
		{"no digit", "NoDigitsHere!!", ErrPasswordTooWeak},
		{"common password", "password123", ErrPasswordCommon},
		{"common password mixed case", "Password123", ErrPasswordCommon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.ValidatePasswordStrength(tt.password)
			if err != tt.wantErr {
				t.Errorf("ValidatePasswordStrength(%q) = %v, want %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestHashAndComparePassword(t *testing.T) {
	s := NewPasswordService()

	hash, err := s.HashPassword("Correct#Horse9")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Correct#Horse9" {
		t.Fatal("hash equals plaintext")
	}
	if err := s.ComparePassword(hash, "Correct#Horse9"); err != nil {
		t.Errorf("ComparePassword with correct password: %v", err)
	}
	if err := s.ComparePassword(hash, "wrong-password"); err == nil {
		t.Error("ComparePassword accepted wrong password")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	s := NewJWTService("access-secret", "refresh-secret", 30, 30)

	token, err := s.GenerateAccessToken("user-1", "alice@example.com", "Alice")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := s.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "alice@example.com" || claims.DisplayName != "Alice" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	s := NewJWTService("access-secret", "refresh-secret", 30, 30)

	token, err := s.GenerateRefreshToken("user-1")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	claims, err := s.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	s := NewJWTService("access-secret", "refresh-secret", 30, 30)

	access, _ := s.GenerateAccessToken("user-1", "alice@example.com", "Alice")
	refresh, _ := s.GenerateRefreshToken("user-1")

	if _, err := s.ValidateRefreshToken(access); err == nil {
		t.Error("access token accepted as refresh token")
	}
	if _, err := s.ValidateAccessToken(refresh); err == nil {
		t.Error("refresh token accepted as access token")
	}
}

func TestRejectsTokenSignedWithWrongSecret(t *testing.T) {
	good := NewJWTService("access-secret", "refresh-secret", 30, 30)
	evil := NewJWTService("other-secret", "other-refresh", 30, 30)

	forged, _ := evil.GenerateAccessToken("user-1", "alice@example.com", "Alice")
	if _, err := good.ValidateAccessToken(forged); err != ErrInvalidToken {
		t.Errorf("ValidateAccessToken(forged) = %v, want ErrInvalidToken", err)
	}
}

func TestTTLFallbacks(t *testing.T) {
	s := NewJWTService("a", "r", 0, 0)
	if got := s.GetRefreshTTL(); got != 30*24*time.Hour {
		t.Errorf("GetRefreshTTL() = %v, want 720h", got)
	}
}
