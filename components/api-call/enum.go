package apicall

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/swaggest/jsonschema-go"
)

var methodOptions = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD"}

// Method is the HTTP method selection of the component settings.
// It serializes as a plain string and exposes the supported methods as a schema enum.
type Method struct {
	Value string
}

// NewMethod returns a Method preset to value, GET if empty
func NewMethod(value string) Method {
	if value == "" {
		value = methodOptions[0]
	}
	return Method{Value: strings.ToUpper(value)}
}

func (m Method) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Value)
}

func (m *Method) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	method := NewMethod(v)
	for _, o := range methodOptions {
		if o == method.Value {
			*m = method
			return nil
		}
	}
	return fmt.Errorf("unsupported method %q", v)
}

func (m Method) JSONSchema() (jsonschema.Schema, error) {
	schema := jsonschema.Schema{}
	schema.AddType(jsonschema.String)
	schema.WithDefault(m.Value)

	enums := make([]interface{}, len(methodOptions))
	for k, v := range methodOptions {
		enums[k] = v
	}
	schema.WithEnum(enums...)
	return schema, nil
}

var _ jsonschema.Exposer = (*Method)(nil)
var _ json.Marshaler = (*Method)(nil)
var _ json.Unmarshaler = (*Method)(nil)
