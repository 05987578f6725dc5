package search_bibs

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
	ComponentName = "sierra_search_bibs"
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
	Context Context          `json:"context,omitempty" title:"Context" configurable:"true"`
	Config  etc.ClientConfig `json:"config" title:"Config" required:"true" description:"Client Config"`
	Text    string           `json:"text" required:"true" minLength:"1" title:"Search text"`
	Fields  []string         `json:"fields,omitempty" title:"Fields"`
	Limit   int              `json:"limit,omitempty" title:"Limit"`
	Offset  int              `json:"offset,omitempty" title:"Offset"`
}

type Response struct {
	Context Context                     `json:"context" title:"Context"`
	Total   int                         `json:"total" title:"Total"`
	Results []sierramodule.SearchResult `json:"results" title:"Results"`
}

type Error struct {
	Context Context `json:"context"`
	Error   string  `json:"error"`
}

func (g *Component) GetInfo() module.ComponentInfo {
	return module.ComponentInfo{
		Name:        ComponentName,
		Description: "Search Bibs",
		Info:        "Keyword search over bibliographic records, ranked by relevance",
		Tags:        []string{"sierra", "bib", "search"},
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

	set, err := g.search(ctx, in)
	if err != nil {
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
		Total:   set.Total,
		Results: set.Entries,
	})
}

func (g *Component) search(ctx context.Context, req Request) (*sierramodule.SearchResultSet, error) {
	s, err := etc.GetSession(req.Config)
	if err != nil {
		return nil, err
	}
	return sierra.NewClient(s).SearchBibs(ctx, req.Text, req.Fields, sierra.ListOptions{
		Limit:  req.Limit,
		Offset: req.Offset,
	})
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
