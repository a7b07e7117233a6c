package http

import (
	"fmt"
	"net/url"
	"strings"

	sdk "github.com/funcmock-project/sdk"
	"github.com/funcmock-project/sdk/body"
	"github.com/funcmock-project/sdk/builder"
	"github.com/funcmock-project/sdk/fieldset"
)

const (
	// DefaultMethod is the request method used when none is configured.
	DefaultMethod = "GET"

	// DefaultURL is the request URL used when none is configured.
	DefaultURL = "http://localhost"
)

// Common content types seen in trigger requests.
const (
	ContentTypeJSON        = "application/json"
	ContentTypeForm        = "application/x-www-form-urlencoded"
	ContentTypeOctetStream = "application/octet-stream"
	ContentTypeTextPlain   = "text/plain"
)

// Request is the read interface an http-triggered handler sees.
type Request interface {
	Method() string
	URL() string
	Headers() map[string]string
	Params() map[string]string
	RouteParams() map[string]string
	Form() (map[string]string, error)
	GetBody() []byte
	GetJSON() (any, error)
}

// Config holds the optional named fields of an http request. The zero value
// of a field means "use the default".
type Config struct {
	// Method is the HTTP method.
	Method string

	// URL is the full request URL including any query string.
	URL string

	// Headers holds the request headers.
	Headers map[string]string

	// Params holds the query parameters.
	Params map[string]string

	// RouteParams holds the route parameters.
	RouteParams map[string]string
}

func (c Config) overrides() fieldset.FieldSet {
	fs := fieldset.New()
	if c.Method != "" {
		fs["method"] = c.Method
	}
	if c.URL != "" {
		fs["url"] = c.URL
	}
	if c.Headers != nil {
		fs["headers"] = c.Headers
	}
	if c.Params != nil {
		fs["params"] = c.Params
	}
	if c.RouteParams != nil {
		fs["route_params"] = c.RouteParams
	}
	return fs
}

// request is the assembled http trigger payload.
type request struct {
	method      string
	url         string
	headers     map[string]string
	params      map[string]string
	routeParams map[string]string
	body        body.Body
}

func defaults() fieldset.FieldSet {
	return fieldset.FieldSet{
		"method":       DefaultMethod,
		"url":          DefaultURL,
		"headers":      map[string]string{},
		"params":       map[string]string{},
		"route_params": map[string]string{},
		"body":         body.Body{},
	}
}

func assemble(fs fieldset.FieldSet) (*request, error) {
	var req request
	var err error
	if req.method, err = fs.String("method"); err != nil {
		return nil, err
	}
	if req.url, err = fs.String("url"); err != nil {
		return nil, err
	}
	if req.headers, err = fs.StringMap("headers"); err != nil {
		return nil, err
	}
	if req.params, err = fs.StringMap("params"); err != nil {
		return nil, err
	}
	if req.routeParams, err = fs.StringMap("route_params"); err != nil {
		return nil, err
	}
	if req.body, err = fieldset.Get[body.Body](fs, "body"); err != nil {
		return nil, err
	}
	return &req, nil
}

var definition = builder.Definition[*request]{
	Trigger:  "http",
	Required: []string{"method", "url", "headers", "params", "route_params", "body"},
	Defaults: defaults,
	Assemble: assemble,
}

// Mock is an in-memory stand-in for an http trigger request.
type Mock struct {
	h *builder.Handle[*request]
}

var _ Request = (*Mock)(nil)

// New creates an http request mock. Map payloads are JSON encoded and, when
// no Content-Type header was supplied, mark the request as
// application/json. Strings are UTF-8 encoded and bytes used as-is; list
// payloads are not valid request bodies and fail with
// sdk.ErrInvalidBodyType.
func New(payload any, cfg Config) (*Mock, error) {
	if _, isList := payload.([]any); isList {
		return nil, fmt.Errorf("http request body: %w: list payloads are not supported", sdk.ErrInvalidBodyType)
	}

	b, err := body.New(payload)
	if err != nil {
		return nil, fmt.Errorf("http request body: %w", err)
	}

	overrides := cfg.overrides()
	overrides["body"] = b

	// Structured payloads imply a JSON request unless the caller said
	// otherwise.
	if _, isMap := payload.(map[string]any); isMap {
		headers := make(map[string]string, len(cfg.Headers)+1)
		for k, v := range cfg.Headers {
			headers[k] = v
		}
		if _, ok := headers["Content-Type"]; !ok {
			headers["Content-Type"] = ContentTypeJSON
		}
		overrides["headers"] = headers
	}

	h, err := builder.New(definition, overrides)
	if err != nil {
		return nil, err
	}
	return &Mock{h: h}, nil
}

func field[T any](m *Mock, name string) T {
	v, err := builder.FieldAs[T](m.h, name)
	if err != nil {
		panic(err)
	}
	return v
}

func (m *Mock) assembled() *request {
	req, err := m.h.Assemble()
	if err != nil {
		panic(err)
	}
	return req
}

// Method returns the HTTP method.
func (m *Mock) Method() string { return field[string](m, "method") }

// URL returns the full request URL.
func (m *Mock) URL() string { return field[string](m, "url") }

// Headers returns the request headers.
func (m *Mock) Headers() map[string]string { return field[map[string]string](m, "headers") }

// Params returns the query parameters.
func (m *Mock) Params() map[string]string { return field[map[string]string](m, "params") }

// RouteParams returns the route parameters.
func (m *Mock) RouteParams() map[string]string { return field[map[string]string](m, "route_params") }

// Form parses the body as application/x-www-form-urlencoded data. Requests
// with any other Content-Type yield an empty map. Fields with multiple
// values keep the last one; blank values are preserved.
func (m *Mock) Form() (map[string]string, error) {
	req := m.assembled()
	if !strings.Contains(req.headers["Content-Type"], ContentTypeForm) {
		return map[string]string{}, nil
	}

	values, err := url.ParseQuery(req.body.String())
	if err != nil {
		return nil, fmt.Errorf("parse form body: %w", err)
	}

	form := make(map[string]string, len(values))
	for name, vs := range values {
		form[name] = vs[len(vs)-1]
	}
	return form, nil
}

// GetBody returns the request body as bytes.
func (m *Mock) GetBody() []byte { return m.assembled().body.Bytes() }

// GetJSON decodes and returns the request body as a JSON value. Bodies that
// are empty or not valid JSON fail with sdk.ErrNoBody or sdk.ErrNotJSON.
func (m *Mock) GetJSON() (any, error) { return m.assembled().body.JSON() }

// Fields returns a copy of the merged field set for inspection.
func (m *Mock) Fields() fieldset.FieldSet { return m.h.Fields() }
