package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned for tokens with a bad signature, a wrong
	// signing method, past expiry, or an unparseable user id.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// TokenClaims are the claims embedded in issued bearer tokens.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uint64 `json:"user_id"`
}

// GenerateToken creates a signed HS256 token embedding the user id and expiry.
// The jti keeps tokens unique even when two are issued within the same second,
// so a superseded token can always be told apart from its replacement.
func GenerateToken(userID uint64, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    "fittrack",
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a token string and extracts the embedded user id.
func ParseToken(tokenString, secret string) (uint64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer("fittrack"))
	if err != nil {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}
	if claims.UserID == 0 {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}
