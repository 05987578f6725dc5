package etc

import (
	"time"

	"github.com/tiny-systems/sierra-module/pkg/session"
)

type Token struct {
	AccessToken string    `json:"accessToken" required:"true" minLength:"1" title:"AccessToken" description:"Bearer token presented to the Sierra API"`
	TokenType   string    `json:"tokenType" required:"true" title:"TokenType" enum:"Bearer"`
	IssuedAt    time.Time `json:"issuedAt" title:"Issued at"`
	Expiry      time.Time `json:"expiry" title:"Expiry" description:"Time after which the token is refreshed, already reduced by the safety margin"`
}

func NewToken(t *session.Token) Token {
	return Token{
		AccessToken: t.AccessToken,
		TokenType:   "Bearer",
		IssuedAt:    t.IssuedAt,
		Expiry:      t.ExpiresAt,
	}
}
