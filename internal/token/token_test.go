package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testLoginAt = "19/10/2026, 03:04 pm"

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken("alex@x.com", testLoginAt, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty string")
	}
}

func TestValidateTokenValid(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken("alex@x.com", testLoginAt, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.Email != "alex@x.com" {
		t.Errorf("ValidateToken() Email = %q, want %q", claims.Email, "alex@x.com")
	}
	if claims.LoginAt != testLoginAt {
		t.Errorf("ValidateToken() LoginAt = %q, want %q", claims.LoginAt, testLoginAt)
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("not-a-valid-token", "test-secret")
	if err == nil {
		t.Error("ValidateToken() expected error for invalid token")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("alex@x.com", testLoginAt, "correct-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	_, err = ValidateToken(token, "wrong-secret")
	if err == nil {
		t.Error("ValidateToken() expected error for wrong secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken("alex@x.com", testLoginAt, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	_, err = ValidateToken(token, "test-secret")
	if err == nil {
		t.Error("ValidateToken() expected error for expired token")
	}
}

func TestValidateTokenWrongIssuerOrAudience(t *testing.T) {
	secret := "test-secret"

	tests := []struct {
		name     string
		issuer   string
		audience string
	}{
		{"wrong issuer", "someone-else", tokenAudience},
		{"wrong audience", tokenIssuer, "wrong-audience"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					Issuer:    tt.issuer,
					Audience:  jwt.ClaimStrings{tt.audience},
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					IssuedAt:  jwt.NewNumericDate(time.Now()),
				},
				Email: "alex@x.com",
			}
			tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
			if err != nil {
				t.Fatalf("SignedString() unexpected error: %v", err)
			}

			if _, err := ValidateToken(tokenString, secret); err == nil {
				t.Errorf("ValidateToken() expected error for %s", tt.name)
			}
		})
	}
}

func TestClaimsCheckSession(t *testing.T) {
	claims := &Claims{Email: "alex@x.com", LoginAt: testLoginAt}

	tests := []struct {
		name      string
		email     string
		lastLogin string
		wantErr   error
	}{
		{"live session", "alex@x.com", testLoginAt, nil},
		{"user replaced", "sam@x.com", testLoginAt, ErrStaleSession},
		{"newer login", "alex@x.com", "19/10/2026, 04:10 pm", ErrStaleSession},
		{"logged out", "alex@x.com", "", ErrStaleSession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := claims.CheckSession(tt.email, tt.lastLogin); err != tt.wantErr {
				t.Errorf("CheckSession() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClaimsCheckSessionWithoutLoginStamp(t *testing.T) {
	claims := &Claims{Email: "alex@x.com"}
	if err := claims.CheckSession("alex@x.com", ""); err != ErrStaleSession {
		t.Errorf("CheckSession() error = %v, want ErrStaleSession", err)
	}
}
