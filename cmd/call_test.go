package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallCmd(t *testing.T) {
	var gotBody, gotQuery, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/iii/sierra-api/v5/token" {
			w.Write([]byte(`{"access_token":"abc","expires_in":3600}`))
			return
		}
		body, _ := io.ReadAll(r.Body)
		gotBody, gotQuery, gotMethod = string(body), r.URL.RawQuery, r.Method
		w.Write([]byte(`{"total":0}`))
	}))
	defer server.Close()

	t.Setenv("SIERRA_CLIENT_SECRET", "secret")

	cmd := newCallCmd(viper.New())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"/bibs/query",
		"--host", server.URL,
		"--api-version", "v5",
		"--client-id", "key",
		"-X", "post",
		"-p", "limit=1",
		"-d", `{"target":{}}`,
	})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "limit=1", gotQuery)
	assert.JSONEq(t, `{"target":{}}`, gotBody)
	assert.Equal(t, "{\n  \"total\": 0\n}\n", out.String())
}

func TestCallCmd_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing credentials", args: []string{"/bibs/", "--host", "http://localhost"}},
		{name: "bad param", args: []string{"/bibs/", "--host", "http://localhost", "--client-id", "k", "--client-secret", "s", "-p", "limit"}},
		{name: "bad body", args: []string{"/bibs/", "--host", "http://localhost", "--client-id", "k", "--client-secret", "s", "-d", "{"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newCallCmd(viper.New())
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)
			cmd.SetArgs(tt.args)
			assert.Error(t, cmd.ExecuteContext(context.Background()))
		})
	}
}
