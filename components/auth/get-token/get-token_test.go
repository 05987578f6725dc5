package get_token

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiny-systems/sierra-module/components/etc"
)

func TestToken(t *testing.T) {
	etc.ResetSessions()
	t.Cleanup(etc.ResetSessions)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"abc","expires_in":3600}`))
	}))
	defer server.Close()

	c := &Component{}
	in := Request{Config: etc.ClientConfig{Host: server.URL, ClientID: "key", ClientSecret: "secret"}}

	first, err := c.token(context.Background(), in)
	require.NoError(t, err)
	second, err := c.token(context.Background(), in)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.EqualValues(t, 1, calls.Load())

	in.Force = true
	forced, err := c.token(context.Background(), in)
	require.NoError(t, err)
	assert.NotSame(t, first, forced)
	assert.EqualValues(t, 2, calls.Load())
}
