// Package session manages an authenticated connection to the Sierra ILS REST API.
//
// A Session obtains an access token with the OAuth2 client-credentials grant,
// attaches it to outgoing requests and replaces it when it expires or when the
// server rejects it. Token refresh is serialized, so concurrent callers sharing a
// Session never trigger more than one token request at a time.
//
// Usage:
//
//	s, err := session.New(session.Credentials{
//		ClientID:     "key",
//		ClientSecret: "secret",
//		BaseURL:      session.BaseURL("https://catalog.example.org", "v6"),
//	}, session.Config{Timeout: 10 * time.Second})
//
//	resp, err := s.Send(ctx, &session.Request{Method: http.MethodGet, Path: "/bibs/1234567"})
package session
