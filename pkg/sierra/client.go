package sierra

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	sierramodule "github.com/tiny-systems/sierra-module"
	"github.com/tiny-systems/sierra-module/pkg/session"
)

var (
	// DefaultBibFields is requested when GetBib is called without fields
	DefaultBibFields = []string{"id", "createdDate", "normTitle"}
	// DefaultItemFields is requested when GetItem is called without fields
	DefaultItemFields = []string{"id", "bibIds", "location", "status", "barcode", "callNumber"}
)

// Sender dispatches authenticated requests. *session.Session implements it.
type Sender interface {
	Send(ctx context.Context, req *session.Request) (*session.Response, error)
}

// Client provides typed access to Sierra bib and item endpoints
type Client struct {
	sender Sender
}

// NewClient creates a Client on top of an authenticated sender
func NewClient(sender Sender) *Client {
	return &Client{sender: sender}
}

// ListOptions control paging of list endpoints
type ListOptions struct {
	Limit  int
	Offset int
}

func (o ListOptions) apply(params url.Values) {
	if o.Limit > 0 {
		params.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		params.Set("offset", strconv.Itoa(o.Offset))
	}
}

// GetBib retrieves the given fields of a single bib. Uses GET /bibs/{id}.
func (c *Client) GetBib(ctx context.Context, sid string, fields []string) (*sierramodule.Bib, error) {
	id, err := ParseNumber(sid)
	if err != nil {
		return nil, err
	}
	var bib sierramodule.Bib
	if err := c.getJSON(ctx, "/bibs/"+id, fieldParams(fields, DefaultBibFields), &bib); err != nil {
		return nil, err
	}
	return &bib, nil
}

// GetBibs retrieves several bibs at once. Uses GET /bibs/.
func (c *Client) GetBibs(ctx context.Context, sids []string, fields []string, opts ListOptions) (*sierramodule.BibResultSet, error) {
	ids, err := ParseNumbers(sids)
	if err != nil {
		return nil, err
	}
	params := fieldParams(fields, DefaultBibFields)
	params.Set("id", ids)
	opts.apply(params)

	var set sierramodule.BibResultSet
	if err := c.getJSON(ctx, "/bibs/", params, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// SearchBibs runs a keyword search. Uses GET /bibs/search.
func (c *Client) SearchBibs(ctx context.Context, text string, fields []string, opts ListOptions) (*sierramodule.SearchResultSet, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("search text is empty")
	}
	params := fieldParams(fields, DefaultBibFields)
	params.Set("text", text)
	opts.apply(params)

	var set sierramodule.SearchResultSet
	if err := c.getJSON(ctx, "/bibs/search", params, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// GetItem retrieves the given fields of a single item. Uses GET /items/{id}.
func (c *Client) GetItem(ctx context.Context, sid string, fields []string) (*sierramodule.Item, error) {
	id, err := ParseNumber(sid)
	if err != nil {
		return nil, err
	}
	var item sierramodule.Item
	if err := c.getJSON(ctx, "/items/"+id, fieldParams(fields, DefaultItemFields), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItems retrieves several items, by item ids or by the bibs they are attached to.
// Uses GET /items/.
func (c *Client) GetItems(ctx context.Context, sids []string, bibIDs []string, fields []string, opts ListOptions) (*sierramodule.ItemResultSet, error) {
	params := fieldParams(fields, DefaultItemFields)
	if len(sids) > 0 {
		ids, err := ParseNumbers(sids)
		if err != nil {
			return nil, err
		}
		params.Set("id", ids)
	}
	if len(bibIDs) > 0 {
		ids, err := ParseNumbers(bibIDs)
		if err != nil {
			return nil, err
		}
		params.Set("bibIds", ids)
	}
	opts.apply(params)

	var set sierramodule.ItemResultSet
	if err := c.getJSON(ctx, "/items/", params, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// TokenInfo describes the access token in use. Uses GET /info/token.
func (c *Client) TokenInfo(ctx context.Context) (*sierramodule.TokenInfo, error) {
	var info sierramodule.TokenInfo
	if err := c.getJSON(ctx, "/info/token", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	resp, err := c.sender.Send(ctx, &session.Request{
		Method: http.MethodGet,
		Path:   path,
		Params: params,
	})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return newAPIError(resp)
	}
	return resp.Decode(out)
}

func fieldParams(fields, defaults []string) url.Values {
	if len(fields) == 0 {
		fields = defaults
	}
	return url.Values{"fields": {strings.Join(fields, ",")}}
}
