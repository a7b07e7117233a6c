package capture

import (
	"fmt"
	"reflect"

	sdk "github.com/funcmock-project/sdk"
)

// Config controls construction of a capture Context.
type Config struct {
	// SingleWrite makes a second write to the same slot fail with
	// sdk.ErrAlreadySet instead of overwriting. The default allows
	// overwrites, which models retry behavior.
	SingleWrite bool
}

// Write records one write observed by the context, for assertions.
type Write struct {
	// Name is the output slot written to.
	Name string
	// Value is the value as given, with no coercion applied.
	Value any
}

// Context manages a namespace of named output slots for one test. Slots are
// created via Out and written by the function under test; the context
// aggregates everything that was set for assertions afterwards.
type Context struct {
	cfg   Config
	names []string
	slots map[string]*Output

	// Writes stores a history of every write in order, including
	// overwrites, for assertions.
	Writes []Write
}

// New creates an empty capture context.
func New(cfg Config) *Context {
	return &Context{
		cfg:   cfg,
		slots: make(map[string]*Output),
	}
}

// Out returns the output slot for name, creating it on first use.
// Registration is idempotent: the same name always yields the same slot,
// never two independent ones.
func (c *Context) Out(name string) *Output {
	if slot, ok := c.slots[name]; ok {
		return slot
	}
	slot := &Output{name: name, ctx: c}
	c.slots[name] = slot
	c.names = append(c.names, name)
	return slot
}

// IsSet reports whether the named slot has been written at least once.
// Unregistered names are not set.
func (c *Context) IsSet(name string) bool {
	slot, ok := c.slots[name]
	return ok && slot.IsSet()
}

// Get returns the value written to the named slot. Slots that were never
// written (or never registered) fail with sdk.ErrOutputNotSet, so a nil or
// false output stays distinguishable from "never written".
func (c *Context) Get(name string) (any, error) {
	slot, ok := c.slots[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", sdk.ErrOutputNotSet, name)
	}
	return slot.Get()
}

// Outputs returns a snapshot of all slots that were set, keyed by name.
// Unset slots are omitted entirely.
func (c *Context) Outputs() map[string]any {
	outputs := make(map[string]any)
	for name, slot := range c.slots {
		if slot.IsSet() {
			outputs[name] = slot.value
		}
	}
	return outputs
}

// Names returns all registered slot names in registration order.
func (c *Context) Names() []string {
	return append([]string(nil), c.names...)
}

// Expect asserts that the named slot was set to want, compared with
// reflect.DeepEqual. It returns an error describing the mismatch, or
// sdk.ErrOutputNotSet when the slot was never written.
func (c *Context) Expect(name string, want any) error {
	got, err := c.Get(name)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(got, want) {
		return fmt.Errorf("output %q mismatch: expected %#v, got %#v", name, want, got)
	}
	return nil
}

// Output is a named capture cell. It starts unset and becomes set on the
// first write; there is no transition back to unset.
type Output struct {
	name  string
	value any
	set   bool
	ctx   *Context
}

// Name returns the slot's output name.
func (o *Output) Name() string { return o.name }

// Set stores the value as given, marking the slot as set. Under the
// context's SingleWrite mode a second write fails with sdk.ErrAlreadySet;
// otherwise it overwrites the first.
func (o *Output) Set(value any) error {
	if o.set && o.ctx.cfg.SingleWrite {
		return fmt.Errorf("%w: %q", sdk.ErrAlreadySet, o.name)
	}
	o.value = value
	o.set = true
	o.ctx.Writes = append(o.ctx.Writes, Write{Name: o.name, Value: value})
	return nil
}

// Get returns the stored value, or sdk.ErrOutputNotSet when the slot was
// never written.
func (o *Output) Get() (any, error) {
	if !o.set {
		return nil, fmt.Errorf("%w: %q", sdk.ErrOutputNotSet, o.name)
	}
	return o.value, nil
}

// IsSet reports whether Set has been called at least once. Falsy values
// such as false, 0, or nil still count as set.
func (o *Output) IsSet() bool { return o.set }
