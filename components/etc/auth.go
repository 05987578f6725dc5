package etc

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tiny-systems/sierra-module/pkg/session"
)

// sessions holds one Session per credential set so every component instance in
// the process shares the same token.
var (
	sessions   = make(map[string]*session.Session)
	sessionsMu sync.RWMutex
)

// GetSession returns the shared Session for config, creating it on first use.
func GetSession(config ClientConfig) (*session.Session, error) {
	key := sessionKey(config)

	sessionsMu.RLock()
	if s, ok := sessions[key]; ok {
		sessionsMu.RUnlock()
		return s, nil
	}
	sessionsMu.RUnlock()

	sessionsMu.Lock()
	defer sessionsMu.Unlock()

	// Double-check after acquiring write lock
	if s, ok := sessions[key]; ok {
		return s, nil
	}

	s, err := session.New(config.credentials(), config.sessionConfig())
	if err != nil {
		return nil, fmt.Errorf("unable to create sierra session: %w", err)
	}
	sessions[key] = s

	log.Debug().Str("baseURL", s.BaseURL()).Str("clientID", config.ClientID).Msg("sierra session created")
	return s, nil
}

// ResetSessions drops all shared sessions together with their tokens.
// Call it after credentials were revoked server-side so the next request authenticates again.
func ResetSessions() {
	sessionsMu.Lock()
	sessions = make(map[string]*session.Session)
	sessionsMu.Unlock()
}

func sessionKey(config ClientConfig) string {
	h := sha256.New()
	for _, part := range []string{
		config.Host, config.APIVersion, config.ClientID, config.ClientSecret,
		fmt.Sprint(config.TimeoutSeconds), config.UserAgent,
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
