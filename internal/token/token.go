package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "taskdesk"
	tokenAudience = "taskdesk-api"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrStaleSession means the token was issued for a session that has
	// since ended or been replaced by a newer login.
	ErrStaleSession = errors.New("session has ended")
)

// Claims identifies the session a token was issued for. LoginAt is the
// lastLogin stamp written when that session began.
type Claims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	LoginAt string `json:"login_at"`
}

// GenerateToken creates a signed token for the session that email started
// at loginAt.
func GenerateToken(email, loginAt, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email:   email,
		LoginAt: loginAt,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a token string, returning the claims if valid.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// CheckSession reports ErrStaleSession unless the claims belong to the
// stored user and the login that is currently live.
func (c *Claims) CheckSession(email, lastLogin string) error {
	if c.Email == "" || c.Email != email {
		return ErrStaleSession
	}
	if c.LoginAt == "" || c.LoginAt != lastLogin {
		return ErrStaleSession
	}
	return nil
}
