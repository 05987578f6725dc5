package etc

import (
	"time"

	"github.com/tiny-systems/sierra-module/pkg/session"
)

type ClientConfig struct {
	Host           string `json:"host" required:"true" format:"uri" title:"Host" description:"Sierra server URL, e.g. https://catalog.example.org"`
	APIVersion     string `json:"apiVersion,omitempty" title:"API version" default:"v6" description:"Sierra REST API version"`
	ClientID       string `json:"clientId" required:"true" title:"Client ID" description:"Sierra API key"`
	ClientSecret   string `json:"clientSecret" required:"true" format:"password" title:"Client secret" description:"Sierra API key secret"`
	TimeoutSeconds int    `json:"timeoutSeconds,omitempty" title:"Timeout" description:"Request timeout in seconds, 30 if empty"`
	UserAgent      string `json:"userAgent,omitempty" title:"User agent"`
}

func (c ClientConfig) credentials() session.Credentials {
	return session.Credentials{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		BaseURL:      session.BaseURL(c.Host, c.APIVersion),
	}
}

func (c ClientConfig) sessionConfig() session.Config {
	return session.Config{
		Timeout:   time.Duration(c.TimeoutSeconds) * time.Second,
		UserAgent: c.UserAgent,
	}
}
