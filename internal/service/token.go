package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"flixnet/internal/model"
)

// SessionTTL bounds the lifetime of an issued session token. There is no
// refresh mechanism; re-authentication is the only renewal path.
const SessionTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for every verification failure, so callers
// cannot tell an expired token from a tampered or malformed one.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the session token payload. The claims are self-contained: the
// identity endpoint trusts them without a store lookup.
type Claims struct {
	UserID int    `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// IssueSessionToken signs an HS256 token asserting the user's identity,
// valid for ttl from now.
func IssueSessionToken(user model.User, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("signing secret is empty")
	}

	now := timeNow()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifySessionToken parses and validates a session token.
func VerifySessionToken(tokenString, secret string) (*Claims, error) {
	token, err := parseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
