package builder_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdk "github.com/funcmock-project/sdk"
	"github.com/funcmock-project/sdk/builder"
	"github.com/funcmock-project/sdk/fieldset"
)

// widget is a toy assembly target for exercising the construction core.
type widget struct {
	Name string
	Size int
}

func widgetDefinition(assembleCalls *int) builder.Definition[*widget] {
	return builder.Definition[*widget]{
		Trigger:  "widget",
		Required: []string{"name", "size"},
		Defaults: func() fieldset.FieldSet {
			return fieldset.FieldSet{"name": "default-widget", "size": 1, "color": nil}
		},
		Assemble: func(fs fieldset.FieldSet) (*widget, error) {
			if assembleCalls != nil {
				*assembleCalls++
			}
			var w widget
			var err error
			if w.Name, err = fs.String("name"); err != nil {
				return nil, err
			}
			if w.Size, err = fs.Int("size"); err != nil {
				return nil, err
			}
			return &w, nil
		},
	}
}

func TestNewMergesDefaults(t *testing.T) {
	h, err := builder.New(widgetDefinition(nil), fieldset.FieldSet{"name": "custom"})
	require.NoError(t, err)

	w, err := h.Assemble()
	require.NoError(t, err)
	assert.Equal(t, "custom", w.Name)
	assert.Equal(t, 1, w.Size)
}

func TestNewMissingRequiredField(t *testing.T) {
	def := widgetDefinition(nil)
	def.Defaults = func() fieldset.FieldSet { return fieldset.FieldSet{"name": "x"} }

	_, err := builder.New(def, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, sdk.ErrMissingField)
	assert.Contains(t, err.Error(), "widget")
	assert.Contains(t, err.Error(), "size")
}

func TestAssembleIdempotent(t *testing.T) {
	calls := 0
	h, err := builder.New(widgetDefinition(&calls), nil)
	require.NoError(t, err)

	first, err := h.Assemble()
	require.NoError(t, err)
	second, err := h.Assemble()
	require.NoError(t, err)

	// Identity, not just value equality: the cached instance is returned.
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestAssembleDoesNotRunAtNew(t *testing.T) {
	calls := 0
	_, err := builder.New(widgetDefinition(&calls), nil)
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestAssemblyFailureWrapsTrigger(t *testing.T) {
	def := widgetDefinition(nil)
	def.Assemble = func(fieldset.FieldSet) (*widget, error) {
		return nil, fmt.Errorf("field %q: boom", "size")
	}

	h, err := builder.New(def, nil)
	require.NoError(t, err)

	_, err = h.Assemble()
	require.Error(t, err)
	assert.ErrorIs(t, err, sdk.ErrAssemblyFailure)
	assert.Contains(t, err.Error(), "widget")
	assert.Contains(t, err.Error(), "size")
}

func TestFieldReadsWithoutAssembly(t *testing.T) {
	calls := 0
	h, err := builder.New(widgetDefinition(&calls), fieldset.FieldSet{"name": "custom"})
	require.NoError(t, err)

	v, err := h.Field("name")
	require.NoError(t, err)
	assert.Equal(t, "custom", v)
	assert.Zero(t, calls, "metadata reads must not pay assembly cost")

	// Nil-valued optional fields are readable too.
	v, err = h.Field("color")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestFieldUnknownName(t *testing.T) {
	h, err := builder.New(widgetDefinition(nil), nil)
	require.NoError(t, err)

	_, err = h.Field("weight")
	require.Error(t, err)
	assert.ErrorIs(t, err, sdk.ErrUnknownField)
}

func TestFieldAs(t *testing.T) {
	h, err := builder.New(widgetDefinition(nil), nil)
	require.NoError(t, err)

	name, err := builder.FieldAs[string](h, "name")
	require.NoError(t, err)
	assert.Equal(t, "default-widget", name)

	_, err = builder.FieldAs[int](h, "name")
	require.Error(t, err)

	_, err = builder.FieldAs[string](h, "weight")
	assert.ErrorIs(t, err, sdk.ErrUnknownField)
}

func TestFieldsReturnsCopy(t *testing.T) {
	h, err := builder.New(widgetDefinition(nil), nil)
	require.NoError(t, err)

	fs := h.Fields()
	fs["name"] = "mutated"

	v, err := h.Field("name")
	require.NoError(t, err)
	assert.Equal(t, "default-widget", v)
}

func TestDefinitionWithoutDefaults(t *testing.T) {
	def := builder.Definition[*widget]{
		Trigger: "bare",
		Assemble: func(fieldset.FieldSet) (*widget, error) {
			return &widget{}, nil
		},
	}
	h, err := builder.New(def, fieldset.FieldSet{"extra": true})
	require.NoError(t, err)

	_, err = h.Assemble()
	require.NoError(t, err)
	assert.False(t, errors.Is(err, sdk.ErrMissingField))
}
