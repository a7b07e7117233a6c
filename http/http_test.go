package http_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	sdk "github.com/funcmock-project/sdk"
	"github.com/funcmock-project/sdk/http"
)

func TestDefaults(t *testing.T) {
	m, err := http.New(nil, http.Config{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if m.Method() != http.DefaultMethod {
		t.Fatalf("Expected default method, got %q", m.Method())
	}
	if m.URL() != http.DefaultURL {
		t.Fatalf("Expected default url, got %q", m.URL())
	}
	if len(m.Headers()) != 0 {
		t.Fatalf("Expected no headers, got %v", m.Headers())
	}
	if len(m.Params()) != 0 {
		t.Fatalf("Expected no params, got %v", m.Params())
	}
	if len(m.RouteParams()) != 0 {
		t.Fatalf("Expected no route params, got %v", m.RouteParams())
	}
	if len(m.GetBody()) != 0 {
		t.Fatalf("Expected empty body, got %q", m.GetBody())
	}
	if _, err := m.GetJSON(); !errors.Is(err, sdk.ErrNoBody) {
		t.Fatalf("Expected ErrNoBody, got %v", err)
	}
}

func TestOverrides(t *testing.T) {
	m, err := http.New("payload", http.Config{
		Method:      "POST",
		URL:         "http://localhost/api/orders/42?verbose=true",
		Headers:     map[string]string{"Authorization": "Bearer token"},
		Params:      map[string]string{"verbose": "true"},
		RouteParams: map[string]string{"id": "42"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if m.Method() != "POST" {
		t.Fatalf("Expected POST, got %q", m.Method())
	}
	if m.URL() != "http://localhost/api/orders/42?verbose=true" {
		t.Fatalf("Expected custom url, got %q", m.URL())
	}
	if m.Headers()["Authorization"] != "Bearer token" {
		t.Fatalf("Expected authorization header, got %v", m.Headers())
	}
	if m.Params()["verbose"] != "true" {
		t.Fatalf("Expected verbose param, got %v", m.Params())
	}
	if m.RouteParams()["id"] != "42" {
		t.Fatalf("Expected id route param, got %v", m.RouteParams())
	}
	if string(m.GetBody()) != "payload" {
		t.Fatalf("Expected string body, got %q", m.GetBody())
	}
}

// BodyTestCase covers the payload conversion rules.
type BodyTestCase struct {
	Name    string
	Payload any
	Want    []byte
	WantErr error
}

func TestBodies(t *testing.T) {
	tt := []BodyTestCase{
		{
			Name:    "Nil payload",
			Payload: nil,
			Want:    []byte{},
		},
		{
			Name:    "String payload UTF-8 encoded",
			Payload: "Hello, World!",
			Want:    []byte("Hello, World!"),
		},
		{
			Name:    "Bytes payload as-is",
			Payload: []byte{0x01, 0x02},
			Want:    []byte{0x01, 0x02},
		},
		{
			Name:    "Map payload JSON encoded",
			Payload: map[string]any{"order_id": 123},
			Want:    []byte(`{"order_id":123}`),
		},
		{
			Name:    "List payload rejected",
			Payload: []any{"not", "valid"},
			WantErr: sdk.ErrInvalidBodyType,
		},
		{
			Name:    "Unsupported payload",
			Payload: 42,
			WantErr: sdk.ErrInvalidBodyType,
		},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			m, err := http.New(tc.Payload, http.Config{})
			if !errors.Is(err, tc.WantErr) {
				t.Fatalf("Expected error %v, got %v", tc.WantErr, err)
			}
			if err != nil {
				return
			}
			if !bytes.Equal(m.GetBody(), tc.Want) {
				t.Fatalf("Expected %q, got %q", tc.Want, m.GetBody())
			}
		})
	}
}

func TestContentTypeForMapPayloads(t *testing.T) {
	t.Run("Auto set when absent", func(t *testing.T) {
		m, err := http.New(map[string]any{"k": "v"}, http.Config{})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if ct := m.Headers()["Content-Type"]; ct != http.ContentTypeJSON {
			t.Fatalf("Expected %q, got %q", http.ContentTypeJSON, ct)
		}
	})

	t.Run("Explicit header preserved", func(t *testing.T) {
		m, err := http.New(map[string]any{"k": "v"}, http.Config{
			Headers: map[string]string{"Content-Type": "application/vnd.custom+json"},
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if ct := m.Headers()["Content-Type"]; ct != "application/vnd.custom+json" {
			t.Fatalf("Expected explicit content type, got %q", ct)
		}
	})

	t.Run("Other headers kept alongside", func(t *testing.T) {
		m, err := http.New(map[string]any{"k": "v"}, http.Config{
			Headers: map[string]string{"X-Request-Id": "abc"},
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if m.Headers()["X-Request-Id"] != "abc" {
			t.Fatalf("Expected custom header kept, got %v", m.Headers())
		}
		if m.Headers()["Content-Type"] != http.ContentTypeJSON {
			t.Fatalf("Expected content type set, got %v", m.Headers())
		}
	})

	t.Run("Config map not mutated", func(t *testing.T) {
		headers := map[string]string{"X-Request-Id": "abc"}
		if _, err := http.New(map[string]any{"k": "v"}, http.Config{Headers: headers}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if _, ok := headers["Content-Type"]; ok {
			t.Fatalf("Expected caller map untouched, got %v", headers)
		}
	})

	t.Run("Not set for string payloads", func(t *testing.T) {
		m, err := http.New("plain", http.Config{})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if _, ok := m.Headers()["Content-Type"]; ok {
			t.Fatalf("Expected no content type, got %v", m.Headers())
		}
	})
}

func TestGetJSON(t *testing.T) {
	m, err := http.New(map[string]any{"order_id": 123, "status": "pending"}, http.Config{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, err := m.GetJSON()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := map[string]any{"order_id": float64(123), "status": "pending"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Decoded body mismatch (-want +got):\n%s", diff)
	}

	t.Run("Invalid JSON body", func(t *testing.T) {
		m, err := http.New("not json", http.Config{})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if _, err := m.GetJSON(); !errors.Is(err, sdk.ErrNotJSON) {
			t.Fatalf("Expected ErrNotJSON, got %v", err)
		}
	})
}

func TestForm(t *testing.T) {
	formCfg := http.Config{
		Method:  "POST",
		Headers: map[string]string{"Content-Type": http.ContentTypeForm},
	}

	t.Run("Parses form body", func(t *testing.T) {
		m, err := http.New("name=Jane&city=Oslo", formCfg)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		form, err := m.Form()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		want := map[string]string{"name": "Jane", "city": "Oslo"}
		if diff := cmp.Diff(want, form); diff != "" {
			t.Fatalf("Form mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Last value wins for repeated fields", func(t *testing.T) {
		m, err := http.New("tag=a&tag=b&tag=c", formCfg)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		form, err := m.Form()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if form["tag"] != "c" {
			t.Fatalf("Expected last value, got %q", form["tag"])
		}
	})

	t.Run("Blank values preserved", func(t *testing.T) {
		m, err := http.New("name=&city=Oslo", formCfg)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		form, err := m.Form()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if v, ok := form["name"]; !ok || v != "" {
			t.Fatalf("Expected blank name kept, got %v", form)
		}
	})

	t.Run("Charset parameter accepted", func(t *testing.T) {
		m, err := http.New("k=v", http.Config{
			Headers: map[string]string{
				"Content-Type": http.ContentTypeForm + "; charset=utf-8",
			},
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		form, err := m.Form()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if form["k"] != "v" {
			t.Fatalf("Expected parsed form, got %v", form)
		}
	})

	t.Run("Non-form content type yields empty map", func(t *testing.T) {
		m, err := http.New("name=Jane", http.Config{})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		form, err := m.Form()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(form) != 0 {
			t.Fatalf("Expected empty form, got %v", form)
		}
	})
}

var _ http.Request = (*http.Mock)(nil)
