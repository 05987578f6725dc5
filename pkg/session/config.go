package session

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sierramodule "github.com/tiny-systems/sierra-module"
)

const (
	// DefaultRefreshMargin is subtracted from the server-declared token lifetime
	DefaultRefreshMargin = 60 * time.Second
	// DefaultMaxAuthRetries is how many times a request is retried after a 401
	DefaultMaxAuthRetries = 1
	// DefaultTimeout is used when Config.Timeout is zero
	DefaultTimeout = 30 * time.Second
	// DefaultAPIVersion is the Sierra REST API version used to build base URLs
	DefaultAPIVersion = "v6"
)

// DefaultUserAgent is sent with every request unless Config.UserAgent is set
var DefaultUserAgent = fmt.Sprintf("%s/%s", sierramodule.Title, sierramodule.Version)

// Credentials identify the application against the Sierra token endpoint.
type Credentials struct {
	// ClientID is the Sierra API key.
	ClientID string

	// ClientSecret is the API key's secret.
	ClientSecret string

	// BaseURL is the API root, e.g. https://catalog.example.org/iii/sierra-api/v6
	BaseURL string
}

// Config holds optional session settings. Zero values are replaced by defaults.
type Config struct {
	// Timeout is passed unmodified to http.Client.Timeout.
	Timeout time.Duration

	// RefreshMargin is how long before the declared expiry a token is considered expired.
	RefreshMargin time.Duration

	// MaxAuthRetries bounds re-authentication on 401 responses. Negative disables retries.
	MaxAuthRetries int

	// UserAgent overrides DefaultUserAgent.
	UserAgent string

	// Transport is the underlying round tripper, http.DefaultTransport if nil.
	Transport http.RoundTripper
}

// BaseURL joins a Sierra host and API version into the API root.
func BaseURL(host, apiVersion string) string {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return fmt.Sprintf("%s/iii/sierra-api/%s", strings.TrimRight(host, "/"), apiVersion)
}

func (c Credentials) validate() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "client id")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "client secret")
	}
	if c.BaseURL == "" {
		missing = append(missing, "base url")
	}
	if len(missing) > 0 {
		return &ConfigError{Reason: "missing " + strings.Join(missing, ", ")}
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RefreshMargin == 0 {
		c.RefreshMargin = DefaultRefreshMargin
	}
	if c.MaxAuthRetries == 0 {
		c.MaxAuthRetries = DefaultMaxAuthRetries
	}
	if c.MaxAuthRetries < 0 {
		c.MaxAuthRetries = 0
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Transport == nil {
		c.Transport = http.DefaultTransport
	}
	return c
}

func (c Credentials) tokenURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/token"
}
