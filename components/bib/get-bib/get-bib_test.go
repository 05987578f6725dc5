package get_bib

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiny-systems/sierra-module/components/etc"
	"github.com/tiny-systems/sierra-module/pkg/sierra"
)

func TestGetBib(t *testing.T) {
	etc.ResetSessions()
	t.Cleanup(etc.ResetSessions)

	var fields string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/iii/sierra-api/v6/token":
			w.Write([]byte(`{"access_token":"abc","expires_in":3600}`))
		case "/iii/sierra-api/v6/bibs/12345678":
			fields = r.URL.Query().Get("fields")
			w.Write([]byte(`{"id":"12345678","normTitle":"moby dick"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := &Component{}
	config := etc.ClientConfig{Host: server.URL, ClientID: "key", ClientSecret: "secret"}

	bib, err := c.getBib(context.Background(), Request{Config: config, BibID: "b123456789"})
	require.NoError(t, err)
	assert.Equal(t, "moby dick", bib.NormTitle)
	assert.Equal(t, "id,createdDate,normTitle", fields)

	_, err = c.getBib(context.Background(), Request{Config: config, BibID: "x"})
	assert.ErrorIs(t, err, sierra.ErrInvalidNumber)

	assert.Len(t, c.Ports(), 3)
}
