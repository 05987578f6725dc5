package sierra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiny-systems/sierra-module/pkg/session"
)

// recordingSender answers every request with a canned response
type recordingSender struct {
	requests []*session.Request
	resp     *session.Response
	err      error
}

func (r *recordingSender) Send(_ context.Context, req *session.Request) (*session.Response, error) {
	r.requests = append(r.requests, req)
	return r.resp, r.err
}

func okResponse(body string) *session.Response {
	return &session.Response{StatusCode: http.StatusOK, Body: []byte(body)}
}

func TestClient_GetBib(t *testing.T) {
	sender := &recordingSender{resp: okResponse(`{"id":"12345678","createdDate":"2020-01-01T00:00:00Z","normTitle":"moby dick"}`)}
	c := NewClient(sender)

	bib, err := c.GetBib(context.Background(), "b123456789", nil)
	require.NoError(t, err)
	assert.Equal(t, "12345678", bib.ID)
	assert.Equal(t, "moby dick", bib.NormTitle)

	require.Len(t, sender.requests, 1)
	req := sender.requests[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/bibs/12345678", req.Path)
	assert.Equal(t, "id,createdDate,normTitle", req.Params.Get("fields"))
}

func TestClient_GetBib_InvalidNumber(t *testing.T) {
	sender := &recordingSender{}
	c := NewClient(sender)

	_, err := c.GetBib(context.Background(), "nope", nil)
	assert.ErrorIs(t, err, ErrInvalidNumber)
	assert.Empty(t, sender.requests)
}

func TestClient_APIError(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantDetail bool
		wantMsg    string
	}{
		{
			name:       "sierra error document",
			body:       `{"code":107,"specificCode":0,"httpStatus":404,"name":"Record not found"}`,
			wantDetail: true,
			wantMsg:    "sierra API error 404: Record not found",
		},
		{
			name:    "plain body",
			body:    `not found`,
			wantMsg: "sierra API error 404: not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &recordingSender{resp: &session.Response{StatusCode: http.StatusNotFound, Body: []byte(tt.body)}}
			c := NewClient(sender)

			_, err := c.GetItem(context.Background(), "i12345678", []string{"id"})
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
			assert.Equal(t, tt.wantDetail, apiErr.Detail != nil)
			assert.Equal(t, tt.wantMsg, apiErr.Error())
		})
	}
}

func TestClient_ListParams(t *testing.T) {
	sender := &recordingSender{resp: okResponse(`{"total":2,"entries":[{"id":"1"},{"id":"2"}]}`)}
	c := NewClient(sender)

	bibs, err := c.GetBibs(context.Background(), []string{"b12345678", "b87654321"}, []string{"id", "title"}, ListOptions{Limit: 10, Offset: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, bibs.Total)
	assert.Len(t, bibs.Entries, 2)

	req := sender.requests[0]
	assert.Equal(t, "/bibs/", req.Path)
	assert.Equal(t, "12345678,87654321", req.Params.Get("id"))
	assert.Equal(t, "id,title", req.Params.Get("fields"))
	assert.Equal(t, "10", req.Params.Get("limit"))
	assert.Equal(t, "5", req.Params.Get("offset"))

	_, err = c.GetItems(context.Background(), nil, []string{"b12345678"}, nil, ListOptions{})
	require.NoError(t, err)
	req = sender.requests[1]
	assert.Equal(t, "/items/", req.Path)
	assert.Equal(t, "12345678", req.Params.Get("bibIds"))
	assert.Empty(t, req.Params.Get("id"))
	assert.Empty(t, req.Params.Get("limit"))
}

func TestClient_SearchBibs(t *testing.T) {
	sender := &recordingSender{resp: okResponse(`{"count":1,"total":1,"start":0,"entries":[{"relevance":0.9,"bib":{"id":"12345678"}}]}`)}
	c := NewClient(sender)

	_, err := c.SearchBibs(context.Background(), "  ", nil, ListOptions{})
	require.Error(t, err)
	assert.Empty(t, sender.requests)

	set, err := c.SearchBibs(context.Background(), "moby dick", nil, ListOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, set.Entries, 1)
	assert.Equal(t, "12345678", set.Entries[0].Bib.ID)
	assert.Equal(t, "moby dick", sender.requests[0].Params.Get("text"))
}

func TestClient_WithSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/iii/sierra-api/v6/token":
			json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "abc", "expires_in": 3600})
		case "/iii/sierra-api/v6/info/token":
			if r.Header.Get("Authorization") != "Bearer abc" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"keyId":               "key",
				"grantType":           "client_credentials",
				"authorizationScheme": "Bearer",
				"expiresIn":           3599,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	s, err := session.New(session.Credentials{
		ClientID:     "key",
		ClientSecret: "secret",
		BaseURL:      session.BaseURL(server.URL, ""),
	}, session.Config{})
	require.NoError(t, err)

	info, err := NewClient(s).TokenInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "key", info.KeyID)
	assert.Equal(t, 3599, info.ExpiresIn)
}
