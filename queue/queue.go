package queue

import (
	"fmt"
	"time"

	sdk "github.com/funcmock-project/sdk"
	"github.com/funcmock-project/sdk/body"
	"github.com/funcmock-project/sdk/builder"
	"github.com/funcmock-project/sdk/fieldset"
)

const (
	// DefaultPopReceipt is the pop receipt used when none is configured.
	DefaultPopReceipt = "test-pop-receipt"

	// DefaultDequeueCount is the dequeue count for a freshly built message.
	DefaultDequeueCount = 1

	// PoisonThreshold is the dequeue count above which queue bindings route
	// a message to the poison queue.
	PoisonThreshold = 5

	// PoisonDequeueCount is the dequeue count used by NewPoison.
	PoisonDequeueCount = 6
)

// Message is the read interface a queue-triggered handler sees. Every member
// the mock forwards is enumerated here.
type Message interface {
	ID() string
	DequeueCount() int
	ExpirationTime() *time.Time
	InsertionTime() time.Time
	TimeNextVisible() *time.Time
	PopReceipt() string
	GetBody() []byte
	GetJSON() (any, error)
}

// Config holds the optional named fields of a queue message. The zero value
// of a field means "use the default".
type Config struct {
	// ID is the message identifier assigned by queue storage.
	ID string

	// DequeueCount is the number of times the message has been dequeued.
	DequeueCount int

	// ExpirationTime is when the message expires.
	ExpirationTime *time.Time

	// InsertionTime is when the message was inserted into the queue.
	InsertionTime time.Time

	// TimeNextVisible is when the message becomes visible again.
	TimeNextVisible *time.Time

	// PopReceipt is the token for message operations.
	PopReceipt string
}

// overrides translates configured fields into a field set. Unset fields are
// omitted so the defaults win.
func (c Config) overrides() fieldset.FieldSet {
	fs := fieldset.New()
	if c.ID != "" {
		fs["id"] = c.ID
	}
	if c.DequeueCount != 0 {
		fs["dequeue_count"] = c.DequeueCount
	}
	if c.ExpirationTime != nil {
		fs["expiration_time"] = c.ExpirationTime
	}
	if !c.InsertionTime.IsZero() {
		fs["insertion_time"] = c.InsertionTime
	}
	if c.TimeNextVisible != nil {
		fs["time_next_visible"] = c.TimeNextVisible
	}
	if c.PopReceipt != "" {
		fs["pop_receipt"] = c.PopReceipt
	}
	return fs
}

// message is the assembled queue trigger payload.
type message struct {
	id              string
	body            body.Body
	dequeueCount    int
	expirationTime  *time.Time
	insertionTime   time.Time
	timeNextVisible *time.Time
	popReceipt      string
}

// defaults is the queue message default field table. Optional fields are
// present with nil values rather than absent.
func defaults() fieldset.FieldSet {
	return fieldset.FieldSet{
		"id":                sdk.DefaultMessageID,
		"body":              body.Body{},
		"dequeue_count":     DefaultDequeueCount,
		"expiration_time":   (*time.Time)(nil),
		"insertion_time":    time.Now().UTC(),
		"time_next_visible": (*time.Time)(nil),
		"pop_receipt":       DefaultPopReceipt,
	}
}

// assemble builds the typed message from a merged field set.
func assemble(fs fieldset.FieldSet) (*message, error) {
	var msg message
	var err error
	if msg.id, err = fs.String("id"); err != nil {
		return nil, err
	}
	if msg.body, err = fieldset.Get[body.Body](fs, "body"); err != nil {
		return nil, err
	}
	if msg.dequeueCount, err = fs.Int("dequeue_count"); err != nil {
		return nil, err
	}
	if msg.expirationTime, err = fs.TimePtr("expiration_time"); err != nil {
		return nil, err
	}
	if msg.insertionTime, err = fs.Time("insertion_time"); err != nil {
		return nil, err
	}
	if msg.timeNextVisible, err = fs.TimePtr("time_next_visible"); err != nil {
		return nil, err
	}
	if msg.popReceipt, err = fs.String("pop_receipt"); err != nil {
		return nil, err
	}
	return &msg, nil
}

var definition = builder.Definition[*message]{
	Trigger:  "queue",
	Required: []string{"id", "body", "dequeue_count", "insertion_time", "pop_receipt"},
	Defaults: defaults,
	Assemble: assemble,
}

// Mock is an in-memory stand-in for a queue storage trigger message.
// Metadata accessors read the field set directly; body accessors assemble
// the message lazily on first use and cache it. A mock belongs to a single
// test.
type Mock struct {
	h *builder.Handle[*message]
}

// Compile-time check: the mock covers the full trigger read interface.
var _ Message = (*Mock)(nil)

// New creates a queue message mock. The payload becomes the message body:
// maps and slices are JSON encoded, strings UTF-8 encoded, bytes used
// as-is, nil leaves the body empty. Configured fields override the
// defaults.
func New(payload any, cfg Config) (*Mock, error) {
	b, err := body.New(payload)
	if err != nil {
		return nil, fmt.Errorf("queue message body: %w", err)
	}

	overrides := cfg.overrides()
	overrides["body"] = b

	h, err := builder.New(definition, overrides)
	if err != nil {
		return nil, err
	}
	return &Mock{h: h}, nil
}

// NewPoison creates a message whose dequeue count exceeds PoisonThreshold,
// simulating a message that failed processing repeatedly.
func NewPoison(payload any, cfg Config) (*Mock, error) {
	if cfg.DequeueCount == 0 {
		cfg.DequeueCount = PoisonDequeueCount
	}
	return New(payload, cfg)
}

// NewBatch creates one message per payload for batch processing tests.
// Messages share the configured fields and receive sequential
// "batch-message-N" identifiers unless cfg.ID is set.
func NewBatch(payloads []any, cfg Config) ([]*Mock, error) {
	mocks := make([]*Mock, 0, len(payloads))
	for i, payload := range payloads {
		c := cfg
		if c.ID == "" {
			c.ID = fmt.Sprintf("batch-message-%d", i)
		}
		m, err := New(payload, c)
		if err != nil {
			return nil, err
		}
		mocks = append(mocks, m)
	}
	return mocks, nil
}

// field reads a managed field without forcing assembly. The defaults table
// fixes every field's type, so a conversion failure here means the mock was
// constructed outside New; fail loudly.
func field[T any](m *Mock, name string) T {
	v, err := builder.FieldAs[T](m.h, name)
	if err != nil {
		panic(err)
	}
	return v
}

// assembled forces memoized assembly.
func (m *Mock) assembled() *message {
	msg, err := m.h.Assemble()
	if err != nil {
		panic(err)
	}
	return msg
}

// ID returns the message identifier.
func (m *Mock) ID() string { return field[string](m, "id") }

// DequeueCount returns how many times the message has been dequeued.
func (m *Mock) DequeueCount() int { return field[int](m, "dequeue_count") }

// ExpirationTime returns when the message expires, or nil.
func (m *Mock) ExpirationTime() *time.Time { return field[*time.Time](m, "expiration_time") }

// InsertionTime returns when the message was inserted into the queue.
func (m *Mock) InsertionTime() time.Time { return field[time.Time](m, "insertion_time") }

// TimeNextVisible returns when the message becomes visible again, or nil.
func (m *Mock) TimeNextVisible() *time.Time { return field[*time.Time](m, "time_next_visible") }

// PopReceipt returns the pop receipt token.
func (m *Mock) PopReceipt() string { return field[string](m, "pop_receipt") }

// GetBody returns the message content as bytes.
func (m *Mock) GetBody() []byte { return m.assembled().body.Bytes() }

// GetJSON decodes and returns the message content as a JSON value. Bodies
// that are empty or not valid JSON fail with sdk.ErrNoBody or
// sdk.ErrNotJSON.
func (m *Mock) GetJSON() (any, error) { return m.assembled().body.JSON() }

// Fields returns a copy of the merged field set for inspection.
func (m *Mock) Fields() fieldset.FieldSet { return m.h.Fields() }
