package blob

import (
	"bytes"
	"fmt"
	"io"

	sdk "github.com/funcmock-project/sdk"
	"github.com/funcmock-project/sdk/builder"
	"github.com/funcmock-project/sdk/fieldset"
)

const (
	// DefaultName is the blob name used when none is configured.
	DefaultName = "test-blob.txt"

	// DefaultURI is the blob location used when none is configured.
	DefaultURI = "https://test.blob.core.windows.net/container/test-blob.txt"
)

// InputStream is the read interface a blob-triggered handler sees. It
// behaves as an io.Reader over the blob content.
type InputStream interface {
	io.Reader
	Name() string
	URI() string
	Len() int
	Bytes() []byte
}

// Config holds the optional named fields of a blob input stream. The zero
// value of a field means "use the default".
type Config struct {
	// Name is the blob name.
	Name string

	// URI is the blob's primary location.
	URI string
}

func (c Config) overrides() fieldset.FieldSet {
	fs := fieldset.New()
	if c.Name != "" {
		fs["name"] = c.Name
	}
	if c.URI != "" {
		fs["uri"] = c.URI
	}
	return fs
}

// stream is the assembled blob input. The reader tracks the current
// position across partial reads.
type stream struct {
	name    string
	uri     string
	content []byte
	reader  *bytes.Reader
}

func defaults() fieldset.FieldSet {
	return fieldset.FieldSet{
		"name":    DefaultName,
		"uri":     DefaultURI,
		"content": []byte{},
	}
}

func assemble(fs fieldset.FieldSet) (*stream, error) {
	var st stream
	var err error
	if st.name, err = fs.String("name"); err != nil {
		return nil, err
	}
	if st.uri, err = fs.String("uri"); err != nil {
		return nil, err
	}
	if st.content, err = fieldset.Get[[]byte](fs, "content"); err != nil {
		return nil, err
	}
	st.reader = bytes.NewReader(st.content)
	return &st, nil
}

var definition = builder.Definition[*stream]{
	Trigger:  "blob",
	Required: []string{"name", "uri", "content"},
	Defaults: defaults,
	Assemble: assemble,
}

// Mock is an in-memory stand-in for a blob storage input stream.
type Mock struct {
	h *builder.Handle[*stream]
}

var _ InputStream = (*Mock)(nil)

// New creates a blob input stream mock. Content may be a string (UTF-8
// encoded), bytes (used as-is), or nil for an empty blob; other types fail
// with sdk.ErrInvalidBodyType.
func New(content any, cfg Config) (*Mock, error) {
	var raw []byte
	switch v := content.(type) {
	case nil:
		raw = []byte{}
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return nil, fmt.Errorf("blob content: %w: %T", sdk.ErrInvalidBodyType, content)
	}

	overrides := cfg.overrides()
	overrides["content"] = raw

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

func (m *Mock) assembled() *stream {
	st, err := m.h.Assemble()
	if err != nil {
		panic(err)
	}
	return st
}

// Name returns the blob name.
func (m *Mock) Name() string { return field[string](m, "name") }

// URI returns the blob's primary location.
func (m *Mock) URI() string { return field[string](m, "uri") }

// Len returns the size of the blob in bytes.
func (m *Mock) Len() int { return len(field[[]byte](m, "content")) }

// Bytes returns the full blob content, regardless of read position.
func (m *Mock) Bytes() []byte { return m.assembled().content }

// Read reads from the current position, implementing io.Reader. Partial
// reads advance the position; io.EOF follows the last byte.
func (m *Mock) Read(p []byte) (int, error) { return m.assembled().reader.Read(p) }

// Fields returns a copy of the merged field set for inspection.
func (m *Mock) Fields() fieldset.FieldSet { return m.h.Fields() }
