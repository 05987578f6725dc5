package get_token

import (
	"context"
	"fmt"

	"github.com/tiny-systems/module/api/v1alpha1"
	"github.com/tiny-systems/module/module"
	"github.com/tiny-systems/module/registry"
	"github.com/tiny-systems/sierra-module/components/etc"
	"github.com/tiny-systems/sierra-module/pkg/session"
)

const (
	ComponentName = "sierra_get_token"
	RequestPort   = "request"
	ResponsePort  = "response"
	ErrorPort     = "error"
)

type Context any

type Request struct {
	Context Context          `json:"context,omitempty" title:"Context" configurable:"true"`
	Config  etc.ClientConfig `json:"config" title:"Config" required:"true" description:"Client Config"`
	Force   bool             `json:"force" title:"Force" description:"Request a new token even if the current one is still valid"`
}

type Settings struct {
	EnableErrorPort bool `json:"enableErrorPort" required:"true" title:"Enable Error Port" description:"If request may fail, error port will emit an error message"`
}

type Response struct {
	Context Context   `json:"context" title:"Context"`
	Token   etc.Token `json:"token"`
}

type Error struct {
	Context Context `json:"context"`
	Error   string  `json:"error"`
}

type Component struct {
	settings Settings
}

func (a *Component) GetInfo() module.ComponentInfo {
	return module.ComponentInfo{
		Name:        ComponentName,
		Description: "Get Access Token",
		Info:        "Authenticates against Sierra with client credentials and returns the access token shared by all Sierra components using the same config",
		Tags:        []string{"sierra", "auth"},
	}
}

func (a *Component) token(ctx context.Context, in Request) (*session.Token, error) {
	s, err := etc.GetSession(in.Config)
	if err != nil {
		return nil, err
	}
	if in.Force {
		return s.Authenticate(ctx)
	}
	return s.ValidToken(ctx)
}

func (a *Component) Handle(ctx context.Context, output module.Handler, port string, msg interface{}) any {
	if port == v1alpha1.SettingsPort {
		in, ok := msg.(Settings)
		if !ok {
			return fmt.Errorf("invalid settings")
		}
		a.settings = in
		return nil
	}

	if port != RequestPort {
		return fmt.Errorf("unknown port %s", port)
	}

	in, ok := msg.(Request)
	if !ok {
		return fmt.Errorf("invalid input message")
	}

	token, err := a.token(ctx, in)
	if err != nil {
		// check err port
		if !a.settings.EnableErrorPort {
			return err
		}
		return output(ctx, ErrorPort, Error{
			Context: in.Context,
			Error:   err.Error(),
		})
	}

	return output(ctx, ResponsePort, Response{
		Context: in.Context,
		Token:   etc.NewToken(token),
	})
}

func (a *Component) Ports() []module.Port {
	ports := []module.Port{
		{
			Name:          v1alpha1.SettingsPort,
			Label:         "Settings",
			Configuration: Settings{},
		},
		{
			Name:          RequestPort,
			Label:         "Request",
			Position:      module.Left,
			Configuration: Request{},
		},
		{
			Source:        true,
			Name:          ResponsePort,
			Label:         "Response",
			Position:      module.Right,
			Configuration: Response{},
		},
	}

	if !a.settings.EnableErrorPort {
		return ports
	}

	return append(ports, module.Port{
		Position:      module.Bottom,
		Name:          ErrorPort,
		Label:         "Error",
		Source:        true,
		Configuration: Error{},
	})
}

func (a *Component) Instance() module.Component {
	return &Component{}
}

var _ module.Component = (*Component)(nil)

func init() {
	registry.Register(&Component{})
}
