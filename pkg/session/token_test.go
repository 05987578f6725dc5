package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewToken_Expiry(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lifetime time.Duration
		margin   time.Duration
		want     time.Time
	}{
		{
			name:     "lifetime minus margin",
			lifetime: time.Hour,
			margin:   time.Minute,
			want:     issued.Add(59 * time.Minute),
		},
		{
			name:     "margin larger than lifetime clamps to issuance",
			lifetime: 30 * time.Second,
			margin:   time.Minute,
			want:     issued,
		},
		{
			name:     "negative margin never extends past lifetime",
			lifetime: time.Hour,
			margin:   -time.Minute,
			want:     issued.Add(time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := newToken("abc", issued, tt.lifetime, tt.margin)
			assert.Equal(t, tt.want, tok.ExpiresAt)
			assert.False(t, tok.ExpiresAt.Before(issued))
			assert.False(t, tok.ExpiresAt.After(issued.Add(tt.lifetime)))
		})
	}
}

func TestToken_Expired(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tok := newToken("abc", issued, time.Hour, time.Minute)

	assert.False(t, tok.Expired(issued))
	assert.False(t, tok.Expired(issued.Add(58*time.Minute)))
	assert.True(t, tok.Expired(issued.Add(59*time.Minute)), "expired exactly at the boundary")
	assert.True(t, tok.Expired(issued.Add(time.Hour)))

	var none *Token
	assert.True(t, none.Expired(issued))
}
