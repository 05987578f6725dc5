package session

import (
	"time"
)

// Token is an issued access token. Tokens are replaced on refresh, never mutated.
type Token struct {
	AccessToken string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// newToken computes the expiry as issuedAt + lifetime - margin, clamped into
// [issuedAt, issuedAt+lifetime].
func newToken(accessToken string, issuedAt time.Time, lifetime, margin time.Duration) *Token {
	effective := lifetime - margin
	if effective < 0 {
		effective = 0
	}
	if effective > lifetime {
		effective = lifetime
	}
	return &Token{
		AccessToken: accessToken,
		IssuedAt:    issuedAt,
		ExpiresAt:   issuedAt.Add(effective),
	}
}

// Expired reports whether the token must not be used at now.
func (t *Token) Expired(now time.Time) bool {
	if t == nil {
		return true
	}
	return !t.ExpiresAt.After(now)
}
