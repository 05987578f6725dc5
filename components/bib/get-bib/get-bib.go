package get_bib

import (
	"context"
	"fmt"

	"github.com/tiny-systems/module/api/v1alpha1"
	"github.com/tiny-systems/module/module"
	"github.com/tiny-systems/module/registry"
	sierramodule "github.com/tiny-systems/sierra-module"
	"github.com/tiny-systems/sierra-module/components/etc"
	"github.com/tiny-systems/sierra-module/pkg/sierra"
)

const (
	ComponentName = "sierra_get_bib"
	RequestPort   = "request"
	ResponsePort  = "response"
	ErrorPort     = "error"
)

type Context any

type Settings struct {
	EnableErrorPort bool `json:"enableErrorPort" required:"true" title:"Enable Error Port" description:"If request may fail, error port will emit an error message"`
}

type Component struct {
	settings Settings
}

type Request struct {
	Context Context          `json:"context" title:"Context" configurable:"true"`
	Config  etc.ClientConfig `json:"config" title:"Config" required:"true" description:"Client Config"`
	BibID   string           `json:"bibId" required:"true" title:"Bib number" description:"Sierra bib number, with or without b prefix and check digit"`
	Fields  []string         `json:"fields,omitempty" title:"Fields" description:"Fields to retrieve, id,createdDate,normTitle if empty"`
}

type Response struct {
	Context Context          `json:"context" title:"Context" configurable:"true"`
	Bib     sierramodule.Bib `json:"bib"`
}

type Error struct {
	Context Context `json:"context"`
	Error   string  `json:"error"`
}

func (g *Component) GetInfo() module.ComponentInfo {
	return module.ComponentInfo{
		Name:        ComponentName,
		Description: "Get Bib",
		Info:        "Retrieves a bibliographic record by its Sierra number",
		Tags:        []string{"sierra", "bib"},
	}
}

func (g *Component) Handle(ctx context.Context, output module.Handler, port string, msg interface{}) any {
	if port == v1alpha1.SettingsPort {
		in, ok := msg.(Settings)
		if !ok {
			return fmt.Errorf("invalid settings")
		}
		g.settings = in
		return nil
	}

	if port != RequestPort {
		return fmt.Errorf("unknown port %s", port)
	}

	in, ok := msg.(Request)
	if !ok {
		return fmt.Errorf("invalid input message")
	}

	bib, err := g.getBib(ctx, in)
	if err != nil {
		// check err port
		if !g.settings.EnableErrorPort {
			return err
		}
		return output(ctx, ErrorPort, Error{
			Context: in.Context,
			Error:   err.Error(),
		})
	}

	return output(ctx, ResponsePort, Response{
		Context: in.Context,
		Bib:     *bib,
	})
}

func (g *Component) getBib(ctx context.Context, req Request) (*sierramodule.Bib, error) {
	s, err := etc.GetSession(req.Config)
	if err != nil {
		return nil, err
	}
	return sierra.NewClient(s).GetBib(ctx, req.BibID, req.Fields)
}

func (g *Component) Ports() []module.Port {
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
	if !g.settings.EnableErrorPort {
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

func (g *Component) Instance() module.Component {
	return &Component{}
}

var _ module.Component = (*Component)(nil)

func init() {
	registry.Register(&Component{})
}
