package fieldset

import (
	"fmt"
	"time"
)

// FieldSet maps field names to values for one mock's construction. Defaults
// tables list every field a trigger knows about, so unspecified optional
// fields are present with a nil value rather than absent.
type FieldSet map[string]any

// New returns an empty FieldSet.
func New() FieldSet {
	return FieldSet{}
}

// Merge combines field sets in increasing precedence: values in later
// overlays replace values from earlier ones. The inputs are not modified.
func Merge(base FieldSet, overlays ...FieldSet) FieldSet {
	merged := base.Clone()
	for _, overlay := range overlays {
		for name, value := range overlay {
			merged[name] = value
		}
	}
	return merged
}

// Clone returns a shallow copy.
func (fs FieldSet) Clone() FieldSet {
	c := make(FieldSet, len(fs))
	for name, value := range fs {
		c[name] = value
	}
	return c
}

// Has reports whether the field name exists, regardless of its value.
func (fs FieldSet) Has(name string) bool {
	_, ok := fs[name]
	return ok
}

// Missing returns the subset of required names that are entirely absent.
// A field present with a nil value is not missing.
func (fs FieldSet) Missing(required []string) []string {
	var missing []string
	for _, name := range required {
		if !fs.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Get returns the value stored under name via a typed assertion. A nil value
// yields the zero value of T. A value of the wrong type is an error naming
// the field and both types.
func Get[T any](fs FieldSet, name string) (T, error) {
	var zero T
	raw, ok := fs[name]
	if !ok || raw == nil {
		return zero, nil
	}
	v, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("field %q: expected %T, got %T", name, zero, raw)
	}
	return v, nil
}

// String returns the named field as a string.
func (fs FieldSet) String(name string) (string, error) {
	return Get[string](fs, name)
}

// Int returns the named field as an int.
func (fs FieldSet) Int(name string) (int, error) {
	return Get[int](fs, name)
}

// Bool returns the named field as a bool.
func (fs FieldSet) Bool(name string) (bool, error) {
	return Get[bool](fs, name)
}

// Time returns the named field as a time.Time.
func (fs FieldSet) Time(name string) (time.Time, error) {
	return Get[time.Time](fs, name)
}

// TimePtr returns the named field as a *time.Time. Optional timestamps use
// this form so "not configured" stays distinguishable from the zero time.
func (fs FieldSet) TimePtr(name string) (*time.Time, error) {
	return Get[*time.Time](fs, name)
}

// Duration returns the named field as a time.Duration.
func (fs FieldSet) Duration(name string) (time.Duration, error) {
	return Get[time.Duration](fs, name)
}

// StringMap returns the named field as a map[string]string.
func (fs FieldSet) StringMap(name string) (map[string]string, error) {
	return Get[map[string]string](fs, name)
}

// Map returns the named field as a map[string]any.
func (fs FieldSet) Map(name string) (map[string]any, error) {
	return Get[map[string]any](fs, name)
}
