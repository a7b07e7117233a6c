package builder

import (
	"fmt"

	sdk "github.com/funcmock-project/sdk"
	"github.com/funcmock-project/sdk/fieldset"
)

// Definition describes how one trigger kind builds its mock: a defaults
// table and an assembly function, composed by the generic handle. Trigger
// packages register a Definition instead of subclassing anything.
type Definition[T any] struct {
	// Trigger names the trigger kind for error diagnostics.
	Trigger string

	// Required lists field names that must exist in the merged field set.
	// A field present with a nil value satisfies the requirement.
	Required []string

	// Defaults produces the trigger's default field set, including computed
	// defaults such as the current time.
	Defaults func() fieldset.FieldSet

	// Assemble turns a merged field set into the final mock instance.
	Assemble func(fieldset.FieldSet) (T, error)
}

// Handle owns a merged field set and, after first use, the assembled
// instance. A handle belongs to a single test and is not safe for
// concurrent use.
type Handle[T any] struct {
	def    Definition[T]
	fields fieldset.FieldSet

	// Memoized assembly result. Set once on first Assemble, never rebuilt.
	instance T
	built    bool
}

// New merges the definition's defaults with caller overrides and validates
// that no required field is entirely absent. It does not assemble; assembly
// happens lazily on first use.
func New[T any](def Definition[T], overrides fieldset.FieldSet) (*Handle[T], error) {
	defaults := fieldset.New()
	if def.Defaults != nil {
		defaults = def.Defaults()
	}
	merged := fieldset.Merge(defaults, overrides)

	if missing := merged.Missing(def.Required); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s: %v", sdk.ErrMissingField, def.Trigger, missing)
	}

	return &Handle[T]{def: def, fields: merged}, nil
}

// Assemble runs the definition's assembly function exactly once and caches
// the result for the handle's lifetime. Repeated calls return the identical
// instance. Assembly errors wrap sdk.ErrAssemblyFailure with the trigger
// name.
func (h *Handle[T]) Assemble() (T, error) {
	if h.built {
		return h.instance, nil
	}

	instance, err := h.def.Assemble(h.fields)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %v", sdk.ErrAssemblyFailure, h.def.Trigger, err)
	}

	h.instance = instance
	h.built = true
	return h.instance, nil
}

// Field returns the raw value stored under name without forcing assembly.
// This is the fast path for cheap metadata reads. Names outside the field
// set return sdk.ErrUnknownField.
func (h *Handle[T]) Field(name string) (any, error) {
	value, ok := h.fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s: %q", sdk.ErrUnknownField, h.def.Trigger, name)
	}
	return value, nil
}

// Fields returns a copy of the merged field set for inspection.
func (h *Handle[T]) Fields() fieldset.FieldSet {
	return h.fields.Clone()
}

// FieldAs reads a managed field from the handle without forcing assembly,
// converted to T. Names outside the field set return sdk.ErrUnknownField;
// wrong-typed values return the fieldset conversion error.
func FieldAs[T any, M any](h *Handle[M], name string) (T, error) {
	if !h.fields.Has(name) {
		var zero T
		return zero, fmt.Errorf("%w: %s: %q", sdk.ErrUnknownField, h.def.Trigger, name)
	}
	return fieldset.Get[T](h.fields, name)
}
