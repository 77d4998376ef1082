package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields the API puts in its tokens. The client never holds
// the signing secret, so tokens are only ever parsed unverified.
type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenExpired reports whether token carries an exp claim at or before now.
// Tokens that are not JWTs, or carry no exp, are left for the server to judge.
func TokenExpired(token string, now time.Time) bool {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.After(now)
}
