package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tiny-systems/sierra-module/pkg/session"
)

const (
	flagClientID     = "client-id"
	flagClientSecret = "client-secret"
	flagHost         = "host"
	flagAPIVersion   = "api-version"
	flagTimeout      = "timeout"
	flagAgent        = "agent"
	flagMethod       = "method"
	flagParam        = "param"
	flagData         = "data"
)

// newCallCmd sends one authenticated request and prints the response body.
// Connection settings may come from flags or SIERRA_* environment variables.
func newCallCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <path>",
		Short: "Call a Sierra API endpoint, e.g. call /bibs/1234567",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range []string{flagClientID, flagClientSecret, flagHost, flagAPIVersion, flagTimeout, flagAgent} {
				if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
					return fmt.Errorf("unable to bind flag %s: %w", name, err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(v)
			if err != nil {
				return err
			}

			req, err := buildRequest(cmd, args[0])
			if err != nil {
				return err
			}

			resp, err := s.Send(cmd.Context(), req)
			if err != nil {
				return err
			}
			if !resp.OK() {
				log.Warn().Int("status", resp.StatusCode).Str("path", req.Path).Msg("sierra returned error status")
			}
			return printBody(cmd.OutOrStdout(), resp.Body)
		},
	}

	flags := cmd.Flags()
	flags.String(flagClientID, "", "Sierra API key")
	flags.String(flagClientSecret, "", "Sierra API key secret")
	flags.String(flagHost, "", "Sierra server URL, e.g. https://catalog.example.org")
	flags.String(flagAPIVersion, session.DefaultAPIVersion, "Sierra REST API version")
	flags.Duration(flagTimeout, session.DefaultTimeout, "request timeout")
	flags.String(flagAgent, "", "User-Agent header, "+session.DefaultUserAgent+" if empty")
	flags.StringP(flagMethod, "X", http.MethodGet, "HTTP method")
	flags.StringArrayP(flagParam, "p", nil, "query parameter as key=value, repeatable")
	flags.StringP(flagData, "d", "", "JSON request body")

	v.SetEnvPrefix("sierra")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

func newSession(v *viper.Viper) (*session.Session, error) {
	return session.New(session.Credentials{
		ClientID:     v.GetString(flagClientID),
		ClientSecret: v.GetString(flagClientSecret),
		BaseURL:      session.BaseURL(v.GetString(flagHost), v.GetString(flagAPIVersion)),
	}, session.Config{
		Timeout:   v.GetDuration(flagTimeout),
		UserAgent: v.GetString(flagAgent),
	})
}

func buildRequest(cmd *cobra.Command, path string) (*session.Request, error) {
	flags := cmd.Flags()

	method, _ := flags.GetString(flagMethod)
	req := &session.Request{
		Method: strings.ToUpper(method),
		Path:   path,
	}

	params, _ := flags.GetStringArray(flagParam)
	if len(params) > 0 {
		req.Params = url.Values{}
		for _, p := range params {
			key, value, ok := strings.Cut(p, "=")
			if !ok {
				return nil, fmt.Errorf("invalid param %q, expected key=value", p)
			}
			req.Params.Add(key, value)
		}
	}

	if data, _ := flags.GetString(flagData); data != "" {
		if !json.Valid([]byte(data)) {
			return nil, fmt.Errorf("request body is not valid JSON")
		}
		req.Body = json.RawMessage(data)
	}
	return req, nil
}

func printBody(w io.Writer, body []byte) error {
	if len(body) == 0 {
		return nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		// not JSON
		_, err = fmt.Fprintln(w, string(body))
		return err
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(w)
	return err
}
