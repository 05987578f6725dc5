package session

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
)

// tokenResponse is the body of a successful client-credentials grant.
type tokenResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   seconds `json:"expires_in"`
}

// seconds accepts a JSON number or a numeric string.
type seconds int64

func (s *seconds) UnmarshalJSON(data []byte) error {
	v := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if v == "" || v == "null" {
		*s = 0
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid expires_in %s", data)
	}
	*s = seconds(f)
	return nil
}

func (s seconds) duration() time.Duration {
	return time.Duration(s) * time.Second
}

// requestToken performs the client-credentials grant. The client ID and secret
// go into the Basic header unescaped, which is what Sierra expects.
func (s *Session) requestToken(ctx context.Context) (*tokenResponse, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.creds.tokenURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &AuthError{Err: fmt.Errorf("failed to create token request: %w", err)}
	}
	req.SetBasicAuth(s.creds.ClientID, s.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "authenticate", Err: err}
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, &TransportError{Op: "authenticate", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AuthError{StatusCode: resp.StatusCode, Body: body, Err: retrieveError(resp, body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, &AuthError{Body: body, Err: fmt.Errorf("cannot parse token response: %w", err)}
	}
	if tr.AccessToken == "" {
		return nil, &AuthError{Body: body, Err: fmt.Errorf("server response missing access_token")}
	}
	if tr.ExpiresIn <= 0 {
		return nil, &AuthError{Body: body, Err: fmt.Errorf("server response missing expires_in")}
	}
	return &tr, nil
}

// retrieveError decodes an RFC 6749 error document when the server sent one.
func retrieveError(resp *http.Response, body []byte) *oauth2.RetrieveError {
	rErr := &oauth2.RetrieveError{Response: resp, Body: body}
	var doc struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		ErrorURI         string `json:"error_uri"`
	}
	if json.Unmarshal(body, &doc) == nil {
		rErr.ErrorCode = doc.Error
		rErr.ErrorDescription = doc.ErrorDescription
		rErr.ErrorURI = doc.ErrorURI
	}
	return rErr
}

// setAuthHeader attaches token to req as a bearer credential.
func setAuthHeader(req *http.Request, token *Token) {
	(&oauth2.Token{AccessToken: token.AccessToken, TokenType: "Bearer"}).SetAuthHeader(req)
}
