package body

import (
	"encoding/json"
	"fmt"

	sdk "github.com/funcmock-project/sdk"
)

// Serialize converts a payload into the canonical byte representation used
// for mock bodies.
//
// Accepted payload types:
//   - nil: empty bytes
//   - []byte / json.RawMessage: passed through unchanged
//   - string: UTF-8 encoded
//   - map[string]any / []any: JSON encoded
//
// Any other type fails with sdk.ErrInvalidBodyType naming the offending
// type. Identical input always serializes to identical bytes.
func Serialize(payload any) ([]byte, error) {
	switch v := payload.(type) {
	case nil:
		return []byte{}, nil
	case []byte:
		return v, nil
	case json.RawMessage:
		return []byte(v), nil
	case string:
		return []byte(v), nil
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %T: %v", sdk.ErrInvalidBodyType, payload, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %T", sdk.ErrInvalidBodyType, payload)
	}
}

// Decode attempts a JSON parse of raw bytes. Empty input returns
// sdk.ErrNoBody (decoding was never attempted); input that fails to parse
// returns sdk.ErrNotJSON. Decode never panics and never fails mock
// construction; callers that need strict JSON check the sentinel.
func Decode(raw []byte) (any, error) {
	if len(raw) == 0 {
		return nil, sdk.ErrNoBody
	}
	var view any
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, fmt.Errorf("%w: %v", sdk.ErrNotJSON, err)
	}
	return view, nil
}

// Body is the serialized form of a payload: the raw bytes plus a best-effort
// decoded structured view. The zero value is an empty body.
type Body struct {
	raw  []byte
	view any
	err  error
}

// New serializes the payload and captures a best-effort structured view.
// It fails only when the payload type is unsupported; a payload that is not
// JSON still produces a valid Body whose JSON accessor reports the sentinel.
func New(payload any) (Body, error) {
	raw, err := Serialize(payload)
	if err != nil {
		return Body{}, err
	}
	view, viewErr := Decode(raw)
	return Body{raw: raw, view: view, err: viewErr}, nil
}

// Bytes returns the raw serialized bytes.
func (b Body) Bytes() []byte { return b.raw }

// Len returns the byte length of the body.
func (b Body) Len() int { return len(b.raw) }

// String returns the body decoded as UTF-8 text.
func (b Body) String() string { return string(b.raw) }

// JSON returns the structured view, or sdk.ErrNoBody / sdk.ErrNotJSON when
// no view exists.
func (b Body) JSON() (any, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.raw) == 0 {
		return nil, sdk.ErrNoBody
	}
	return b.view, nil
}
