package session

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
)

// Request describes a single Sierra API call relative to the session's base URL.
type Request struct {
	Method string
	// Path is appended to the base URL, e.g. "/bibs/1234567".
	Path   string
	Params url.Values
	// Body can be nil, a string, []byte, url.Values or any JSON-serializable value.
	Body   any
	Header http.Header
}

// Response is a completed exchange. Non-2xx statuses other than a persistent 401
// are returned as responses, not errors.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// encodedBody is a request body rendered once so it can be replayed on retry.
type encodedBody struct {
	data        []byte
	contentType string
}

func encodeBody(body any) (*encodedBody, error) {
	switch v := body.(type) {
	case nil:
		return &encodedBody{}, nil
	case string:
		return &encodedBody{data: []byte(v), contentType: "text/plain"}, nil
	case []byte:
		return &encodedBody{data: v, contentType: "application/octet-stream"}, nil
	case url.Values:
		return &encodedBody{data: []byte(v.Encode()), contentType: "application/x-www-form-urlencoded"}, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		return &encodedBody{data: data, contentType: "application/json"}, nil
	}
}

func (b *encodedBody) reader() io.Reader {
	if b.data == nil {
		return nil
	}
	return bytes.NewReader(b.data)
}

func (r *Request) url(baseURL string) string {
	u := strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(r.Path, "/")
	if len(r.Params) > 0 {
		u += "?" + r.Params.Encode()
	}
	return u
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}
	return io.ReadAll(reader)
}
