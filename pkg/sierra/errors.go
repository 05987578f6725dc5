package sierra

import (
	"fmt"

	"github.com/goccy/go-json"
	sierramodule "github.com/tiny-systems/sierra-module"
	"github.com/tiny-systems/sierra-module/pkg/session"
)

// APIError is a non-2xx answer from a resource endpoint.
type APIError struct {
	StatusCode int
	// Detail is populated when the body carries Sierra's error document.
	Detail *sierramodule.ErrorBody
	Body   []byte
}

func (e *APIError) Error() string {
	if e.Detail != nil && e.Detail.Name != "" {
		if e.Detail.Description != "" {
			return fmt.Sprintf("sierra API error %d: %s: %s", e.StatusCode, e.Detail.Name, e.Detail.Description)
		}
		return fmt.Sprintf("sierra API error %d: %s", e.StatusCode, e.Detail.Name)
	}
	return fmt.Sprintf("sierra API error %d: %s", e.StatusCode, string(e.Body))
}

func newAPIError(resp *session.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Body: resp.Body}
	var detail sierramodule.ErrorBody
	if err := json.Unmarshal(resp.Body, &detail); err == nil && (detail.Name != "" || detail.Code != 0) {
		apiErr.Detail = &detail
	}
	return apiErr
}
