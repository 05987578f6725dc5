package etc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiny-systems/sierra-module/pkg/session"
)

func TestGetSession_SharedPerCredentials(t *testing.T) {
	ResetSessions()
	t.Cleanup(ResetSessions)

	config := ClientConfig{
		Host:         "https://catalog.example.org",
		ClientID:     "key",
		ClientSecret: "secret",
	}

	a, err := GetSession(config)
	require.NoError(t, err)
	b, err := GetSession(config)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, "https://catalog.example.org/iii/sierra-api/v6", a.BaseURL())

	other := config
	other.ClientSecret = "rotated"
	c, err := GetSession(other)
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}

func TestGetSession_InvalidConfig(t *testing.T) {
	ResetSessions()
	t.Cleanup(ResetSessions)

	_, err := GetSession(ClientConfig{Host: "https://catalog.example.org"})
	var cfgErr *session.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNewToken(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tok := NewToken(&session.Token{
		AccessToken: "abc",
		IssuedAt:    issued,
		ExpiresAt:   issued.Add(59 * time.Minute),
	})
	assert.Equal(t, "abc", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.Equal(t, issued.Add(59*time.Minute), tok.Expiry)
}

func TestResetSessions_DropsSharedSessions(t *testing.T) {
	ResetSessions()
	t.Cleanup(ResetSessions)

	config := ClientConfig{Host: "https://catalog.example.org", ClientID: "key", ClientSecret: "secret"}
	before, err := GetSession(config)
	require.NoError(t, err)

	ResetSessions()
	after, err := GetSession(config)
	require.NoError(t, err)
	assert.NotSame(t, before, after)
	assert.Nil(t, after.Token())
}
