package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var errTokenRejected = errors.New("token rejected after re-authentication")

// Session owns a Sierra access token and dispatches authenticated requests.
// A Session is safe for concurrent use and should be shared per credential set.
type Session struct {
	creds      Credentials
	config     Config
	httpClient *http.Client

	// tokenLock covers check expiry -> refresh -> store
	tokenLock sync.Mutex
	token     *Token

	now func() time.Time
}

// New creates a Session. No network calls are made until the first request.
func New(creds Credentials, config Config) (*Session, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}
	config = config.withDefaults()

	return &Session{
		creds:  creds,
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Transport: &userAgentTransport{
				base:  config.Transport,
				agent: config.UserAgent,
			},
		},
		now: time.Now,
	}, nil
}

// BaseURL returns the API root requests are resolved against.
func (s *Session) BaseURL() string {
	return s.creds.BaseURL
}

// Token returns the currently held token, nil if none.
func (s *Session) Token() *Token {
	s.tokenLock.Lock()
	defer s.tokenLock.Unlock()
	return s.token
}

// Invalidate drops the held token so the next request authenticates again.
func (s *Session) Invalidate() {
	s.tokenLock.Lock()
	s.token = nil
	s.tokenLock.Unlock()
}

// Authenticate unconditionally requests a new token and stores it.
// On failure the previously held token is kept.
func (s *Session) Authenticate(ctx context.Context) (*Token, error) {
	s.tokenLock.Lock()
	defer s.tokenLock.Unlock()

	return s.authenticateLocked(ctx)
}

// Send dispatches req with a valid bearer token. A 401 answer triggers one
// re-authentication and retry (Config.MaxAuthRetries); a 401 after that fails
// with *AuthError. Any other status is returned as is.
func (s *Session) Send(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("sierra: nil request")
	}
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	token, err := s.ValidToken(ctx)
	if err != nil {
		return nil, err
	}

	span := trace.SpanFromContext(ctx)

	for attempt := 0; ; attempt++ {
		resp, err := s.dispatch(ctx, req, body, token)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusUnauthorized {
			span.SetAttributes(attribute.Int("sierra.status_code", resp.StatusCode))
			return resp, nil
		}

		if attempt >= s.config.MaxAuthRetries {
			return nil, &AuthError{StatusCode: resp.StatusCode, Body: resp.Body, Err: errTokenRejected}
		}

		log.Warn().
			Str("method", req.Method).
			Str("path", req.Path).
			Int("attempt", attempt+1).
			Msg("sierra rejected access token, re-authenticating")
		span.AddEvent("sierra.token_rejected", trace.WithAttributes(attribute.Int("sierra.attempt", attempt+1)))

		token, err = s.refresh(ctx, token)
		if err != nil {
			return nil, err
		}
	}
}

// ValidToken returns the held token, authenticating first if it is absent or expired.
func (s *Session) ValidToken(ctx context.Context) (*Token, error) {
	s.tokenLock.Lock()
	defer s.tokenLock.Unlock()

	if !s.token.Expired(s.now()) {
		return s.token, nil
	}
	return s.authenticateLocked(ctx)
}

// refresh replaces stale after the server rejected it. If another caller has
// already replaced it with a token that is still valid, that token is reused.
func (s *Session) refresh(ctx context.Context, stale *Token) (*Token, error) {
	s.tokenLock.Lock()
	defer s.tokenLock.Unlock()

	if s.token != nil && s.token != stale && !s.token.Expired(s.now()) {
		return s.token, nil
	}
	s.token = nil
	return s.authenticateLocked(ctx)
}

// authenticateLocked must be called with tokenLock held.
func (s *Session) authenticateLocked(ctx context.Context) (*Token, error) {
	tokenURL := s.creds.tokenURL()
	log.Debug().Str("url", tokenURL).Msg("requesting sierra access token")
	trace.SpanFromContext(ctx).AddEvent("sierra.authenticate", trace.WithAttributes(attribute.String("sierra.token_url", tokenURL)))

	issuedAt := s.now()
	raw, err := s.requestToken(ctx)
	if err != nil {
		return nil, err
	}

	token := newToken(raw.AccessToken, issuedAt, raw.ExpiresIn.duration(), s.config.RefreshMargin)
	s.token = token

	log.Debug().Time("expiresAt", token.ExpiresAt).Msg("sierra access token acquired")
	return token, nil
}

func (s *Session) dispatch(ctx context.Context, req *Request, body *encodedBody, token *Token) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.url(s.creds.BaseURL), body.reader())
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	if body.contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", body.contentType)
	}
	setAuthHeader(httpReq, token)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: "send", Err: err}
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return nil, &TransportError{Op: "send", Err: err}
	}

	log.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Msg("sierra request completed")

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// userAgentTransport sets User-Agent on outgoing requests, including token requests.
type userAgentTransport struct {
	base  http.RoundTripper
	agent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.agent)
	}
	return t.base.RoundTrip(req)
}
