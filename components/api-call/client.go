package apicall

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/tiny-systems/module/api/v1alpha1"
	"github.com/tiny-systems/module/module"
	"github.com/tiny-systems/module/registry"
	"github.com/tiny-systems/sierra-module/components/etc"
	"github.com/tiny-systems/sierra-module/pkg/session"
)

const (
	ComponentName = "sierra_api_call"
	RequestPort   = "request"
	ResponsePort  = "response"
	ErrorPort     = "error"
)

// Settings holds the component configuration
type Settings struct {
	Method          Method `json:"method" title:"Method" description:"HTTP method of the call"`
	EnableErrorPort bool   `json:"enableErrorPort" required:"true" title:"Enable Error Port" description:"If request fails, error port will emit an error message"`
}

// Request represents the input to the component
type Request struct {
	Context any               `json:"context,omitempty" configurable:"true" title:"Context" description:"Arbitrary context to pass through"`
	Config  etc.ClientConfig  `json:"config" required:"true" title:"Config" description:"Client Config"`
	Path    string            `json:"path" required:"true" title:"Path" description:"Endpoint path relative to the API root, e.g. /bibs/1234567"`
	Params  map[string]string `json:"params,omitempty" title:"Query parameters"`
	Headers map[string]string `json:"headers,omitempty" title:"Headers"`
	Body    any               `json:"body,omitempty" configurable:"true" title:"Body" description:"JSON request body"`
}

// Response represents the output. Vendor error statuses are delivered here too.
type Response struct {
	Context    any            `json:"context,omitempty" title:"Context"`
	StatusCode int            `json:"statusCode" title:"Status Code"`
	Headers    map[string]any `json:"headers,omitempty" title:"Response Headers"`
	Body       any            `json:"body" title:"Response Body"`
}

// Error represents an error output
type Error struct {
	Context any    `json:"context,omitempty" title:"Context"`
	Error   string `json:"error" title:"Error Message"`
	Code    int    `json:"code,omitempty" title:"Error Code"`
}

// Component sends arbitrary authenticated requests to the Sierra API
type Component struct {
	settings     Settings
	settingsLock sync.RWMutex
}

// Instance creates a new component instance
func (c *Component) Instance() module.Component {
	return &Component{
		settings: Settings{
			Method: NewMethod("GET"),
		},
	}
}

// GetInfo returns component metadata
func (c *Component) GetInfo() module.ComponentInfo {
	return module.ComponentInfo{
		Name:        ComponentName,
		Description: "Sierra API Call",
		Info:        "Calls any Sierra REST endpoint with a managed access token. The token is refreshed when it expires or is rejected. Error statuses returned by Sierra are delivered on the response port.",
		Tags:        []string{"sierra", "API", "REST"},
	}
}

// Handle processes incoming messages on ports
func (c *Component) Handle(ctx context.Context, handler module.Handler, port string, msg interface{}) any {
	switch port {
	case v1alpha1.SettingsPort:
		return c.handleSettings(msg)

	case RequestPort:
		return c.handleRequest(ctx, handler, msg)

	default:
		return fmt.Errorf("port %s is not supported", port)
	}
}

func (c *Component) handleSettings(msg interface{}) error {
	in, ok := msg.(Settings)
	if !ok {
		return fmt.Errorf("invalid settings message")
	}

	c.settingsLock.Lock()
	defer c.settingsLock.Unlock()

	c.settings.Method = NewMethod(in.Method.Value)
	c.settings.EnableErrorPort = in.EnableErrorPort
	return nil
}

// handleRequest executes the API request
func (c *Component) handleRequest(ctx context.Context, handler module.Handler, msg interface{}) any {
	in, ok := msg.(Request)
	if !ok {
		return fmt.Errorf("invalid request message")
	}

	c.settingsLock.RLock()
	method := c.settings.Method.Value
	enableErrorPort := c.settings.EnableErrorPort
	c.settingsLock.RUnlock()

	response, err := c.executeRequest(ctx, method, in)
	if err != nil {
		if enableErrorPort {
			return handler(ctx, ErrorPort, Error{
				Context: in.Context,
				Error:   err.Error(),
				Code:    errorCode(err),
			})
		}
		return err
	}

	response.Context = in.Context
	return handler(ctx, ResponsePort, response)
}

func (c *Component) executeRequest(ctx context.Context, method string, in Request) (*Response, error) {
	s, err := etc.GetSession(in.Config)
	if err != nil {
		return nil, err
	}

	req := &session.Request{
		Method: method,
		Path:   in.Path,
		Body:   in.Body,
	}
	if len(in.Params) > 0 {
		req.Params = url.Values{}
		for k, v := range in.Params {
			req.Params.Set(k, v)
		}
	}
	if len(in.Headers) > 0 {
		req.Header = http.Header{}
		for k, v := range in.Headers {
			req.Header.Set(k, v)
		}
	}

	resp, err := s.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		log.Debug().Int("status", resp.StatusCode).Str("path", in.Path).Msg("sierra returned error status")
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    convertHeaders(resp.Header),
		Body:       parseBody(resp.Body),
	}, nil
}

// parseBody decodes JSON bodies and falls back to the raw string
func parseBody(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	var body any
	if err := json.Unmarshal(data, &body); err != nil {
		return string(data)
	}
	return body
}

func convertHeaders(h http.Header) map[string]any {
	headers := make(map[string]any, len(h))
	for k, v := range h {
		if len(v) == 1 {
			headers[k] = v[0]
		} else {
			headers[k] = v
		}
	}
	return headers
}

func errorCode(err error) int {
	var authErr *session.AuthError
	if errors.As(err, &authErr) {
		return authErr.StatusCode
	}
	return 0
}

// Ports returns the component's port configuration
func (c *Component) Ports() []module.Port {
	c.settingsLock.RLock()
	defer c.settingsLock.RUnlock()

	ports := []module.Port{
		{
			Name:          v1alpha1.SettingsPort,
			Label:         "Settings",
			Configuration: c.settings,
		},
		{
			Name:          RequestPort,
			Label:         "Request",
			Position:      module.Left,
			Configuration: Request{},
		},
		{
			Name:          ResponsePort,
			Label:         "Response",
			Position:      module.Right,
			Source:        true,
			Configuration: Response{},
		},
	}

	if c.settings.EnableErrorPort {
		ports = append(ports, module.Port{
			Name:          ErrorPort,
			Label:         "Error",
			Position:      module.Bottom,
			Source:        true,
			Configuration: Error{},
		})
	}

	return ports
}

var _ module.Component = (*Component)(nil)

func init() {
	registry.Register((&Component{}).Instance())
}
