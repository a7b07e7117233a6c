package servicebus

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	sdk "github.com/funcmock-project/sdk"
	"github.com/funcmock-project/sdk/body"
	"github.com/funcmock-project/sdk/builder"
	"github.com/funcmock-project/sdk/fieldset"
)

const (
	// DefaultDeliveryCount is the delivery count for a freshly built message.
	DefaultDeliveryCount = 1

	// DefaultSessionID is the session used by NewSessionMessage when none is
	// given.
	DefaultSessionID = "default-session"

	// DefaultReplyTo is the reply queue used by NewRequestReply.
	DefaultReplyTo = "response-queue"

	// Dead-letter defaults used by NewDeadLettered.
	DefaultDeadLetterSource      = "original-queue"
	DefaultDeadLetterReason      = "ProcessingError"
	DefaultDeadLetterDescription = "Message processing failed after maximum retries"

	// DeadLetterDeliveryCount is the delivery count of a dead-lettered
	// message.
	DeadLetterDeliveryCount = 10

	// ScheduledOffset is how far in the future NewScheduled enqueues.
	ScheduledOffset = time.Hour
)

// Message is the read interface a service-bus-triggered handler sees.
type Message interface {
	MessageID() string
	SessionID() string
	PartitionKey() string
	ContentType() string
	CorrelationID() string
	DeliveryCount() int
	EnqueuedTimeUTC() time.Time
	ExpiresAtUTC() *time.Time
	DeadLetterSource() string
	DeadLetterReason() string
	DeadLetterErrorDescription() string
	LockToken() string
	SequenceNumber() int64
	ReplyTo() string
	ScheduledEnqueueTimeUTC() *time.Time
	TimeToLive() time.Duration
	ApplicationProperties() map[string]any
	UserProperties() map[string]any
	GetBody() []byte
	GetJSON() (any, error)
}

// Config holds the optional named fields of a service bus message. The zero
// value of a field means "use the default".
type Config struct {
	MessageID                  string
	SessionID                  string
	PartitionKey               string
	ContentType                string
	CorrelationID              string
	DeliveryCount              int
	EnqueuedTimeUTC            time.Time
	ExpiresAtUTC               *time.Time
	DeadLetterSource           string
	DeadLetterReason           string
	DeadLetterErrorDescription string
	LockToken                  string
	SequenceNumber             int64
	ReplyTo                    string
	ScheduledEnqueueTimeUTC    *time.Time
	TimeToLive                 time.Duration
	ApplicationProperties      map[string]any
	UserProperties             map[string]any
}

func (c Config) overrides() fieldset.FieldSet {
	fs := fieldset.New()
	set := func(name string, ok bool, v any) {
		if ok {
			fs[name] = v
		}
	}
	set("message_id", c.MessageID != "", c.MessageID)
	set("session_id", c.SessionID != "", c.SessionID)
	set("partition_key", c.PartitionKey != "", c.PartitionKey)
	set("content_type", c.ContentType != "", c.ContentType)
	set("correlation_id", c.CorrelationID != "", c.CorrelationID)
	set("delivery_count", c.DeliveryCount != 0, c.DeliveryCount)
	set("enqueued_time_utc", !c.EnqueuedTimeUTC.IsZero(), c.EnqueuedTimeUTC)
	set("expires_at_utc", c.ExpiresAtUTC != nil, c.ExpiresAtUTC)
	set("dead_letter_source", c.DeadLetterSource != "", c.DeadLetterSource)
	set("dead_letter_reason", c.DeadLetterReason != "", c.DeadLetterReason)
	set("dead_letter_error_description", c.DeadLetterErrorDescription != "", c.DeadLetterErrorDescription)
	set("lock_token", c.LockToken != "", c.LockToken)
	set("sequence_number", c.SequenceNumber != 0, c.SequenceNumber)
	set("reply_to", c.ReplyTo != "", c.ReplyTo)
	set("scheduled_enqueue_time_utc", c.ScheduledEnqueueTimeUTC != nil, c.ScheduledEnqueueTimeUTC)
	set("time_to_live", c.TimeToLive != 0, c.TimeToLive)
	set("application_properties", c.ApplicationProperties != nil, c.ApplicationProperties)
	set("user_properties", c.UserProperties != nil, c.UserProperties)
	return fs
}

// message is the assembled service bus trigger payload.
type message struct {
	messageID                  string
	body                       body.Body
	sessionID                  string
	partitionKey               string
	contentType                string
	correlationID              string
	deliveryCount              int
	enqueuedTimeUTC            time.Time
	expiresAtUTC               *time.Time
	deadLetterSource           string
	deadLetterReason           string
	deadLetterErrorDescription string
	lockToken                  string
	sequenceNumber             int64
	replyTo                    string
	scheduledEnqueueTimeUTC    *time.Time
	timeToLive                 time.Duration
	applicationProperties      map[string]any
	userProperties             map[string]any
}

func defaults() fieldset.FieldSet {
	return fieldset.FieldSet{
		"message_id":                    sdk.DefaultMessageID,
		"body":                          body.Body{},
		"session_id":                    "",
		"partition_key":                 "",
		"content_type":                  "",
		"correlation_id":                "",
		"delivery_count":                DefaultDeliveryCount,
		"enqueued_time_utc":             time.Now().UTC(),
		"expires_at_utc":                (*time.Time)(nil),
		"dead_letter_source":            "",
		"dead_letter_reason":            "",
		"dead_letter_error_description": "",
		"lock_token":                    "",
		"sequence_number":               int64(0),
		"reply_to":                      "",
		"scheduled_enqueue_time_utc":    (*time.Time)(nil),
		"time_to_live":                  time.Duration(0),
		"application_properties":        map[string]any{},
		"user_properties":               map[string]any{},
	}
}

func assemble(fs fieldset.FieldSet) (*message, error) {
	var msg message
	var err error
	if msg.messageID, err = fs.String("message_id"); err != nil {
		return nil, err
	}
	if msg.body, err = fieldset.Get[body.Body](fs, "body"); err != nil {
		return nil, err
	}
	if msg.sessionID, err = fs.String("session_id"); err != nil {
		return nil, err
	}
	if msg.partitionKey, err = fs.String("partition_key"); err != nil {
		return nil, err
	}
	if msg.contentType, err = fs.String("content_type"); err != nil {
		return nil, err
	}
	if msg.correlationID, err = fs.String("correlation_id"); err != nil {
		return nil, err
	}
	if msg.deliveryCount, err = fs.Int("delivery_count"); err != nil {
		return nil, err
	}
	if msg.enqueuedTimeUTC, err = fs.Time("enqueued_time_utc"); err != nil {
		return nil, err
	}
	if msg.expiresAtUTC, err = fs.TimePtr("expires_at_utc"); err != nil {
		return nil, err
	}
	if msg.deadLetterSource, err = fs.String("dead_letter_source"); err != nil {
		return nil, err
	}
	if msg.deadLetterReason, err = fs.String("dead_letter_reason"); err != nil {
		return nil, err
	}
	if msg.deadLetterErrorDescription, err = fs.String("dead_letter_error_description"); err != nil {
		return nil, err
	}
	if msg.lockToken, err = fs.String("lock_token"); err != nil {
		return nil, err
	}
	if msg.sequenceNumber, err = fieldset.Get[int64](fs, "sequence_number"); err != nil {
		return nil, err
	}
	if msg.replyTo, err = fs.String("reply_to"); err != nil {
		return nil, err
	}
	if msg.scheduledEnqueueTimeUTC, err = fs.TimePtr("scheduled_enqueue_time_utc"); err != nil {
		return nil, err
	}
	if msg.timeToLive, err = fs.Duration("time_to_live"); err != nil {
		return nil, err
	}
	if msg.applicationProperties, err = fs.Map("application_properties"); err != nil {
		return nil, err
	}
	if msg.userProperties, err = fs.Map("user_properties"); err != nil {
		return nil, err
	}
	return &msg, nil
}

var definition = builder.Definition[*message]{
	Trigger:  "servicebus",
	Required: []string{"message_id", "body", "delivery_count", "enqueued_time_utc"},
	Defaults: defaults,
	Assemble: assemble,
}

// Mock is an in-memory stand-in for a service bus trigger message.
type Mock struct {
	h *builder.Handle[*message]
}

var _ Message = (*Mock)(nil)

// New creates a service bus message mock. The payload becomes the message
// body: maps and slices are JSON encoded, strings UTF-8 encoded, bytes used
// as-is, nil leaves the body empty.
func New(payload any, cfg Config) (*Mock, error) {
	b, err := body.New(payload)
	if err != nil {
		return nil, fmt.Errorf("service bus message body: %w", err)
	}

	overrides := cfg.overrides()
	overrides["body"] = b

	h, err := builder.New(definition, overrides)
	if err != nil {
		return nil, err
	}
	return &Mock{h: h}, nil
}

// NewDeadLettered creates a message that looks like it was dead-lettered
// after exhausting delivery attempts.
func NewDeadLettered(payload any, cfg Config) (*Mock, error) {
	if cfg.DeadLetterSource == "" {
		cfg.DeadLetterSource = DefaultDeadLetterSource
	}
	if cfg.DeadLetterReason == "" {
		cfg.DeadLetterReason = DefaultDeadLetterReason
	}
	if cfg.DeadLetterErrorDescription == "" {
		cfg.DeadLetterErrorDescription = DefaultDeadLetterDescription
	}
	if cfg.DeliveryCount == 0 {
		cfg.DeliveryCount = DeadLetterDeliveryCount
	}
	return New(payload, cfg)
}

// NewSessionMessage creates a session-aware message. An empty sessionID
// falls back to DefaultSessionID.
func NewSessionMessage(payload any, sessionID string, cfg Config) (*Mock, error) {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}
	cfg.SessionID = sessionID
	return New(payload, cfg)
}

// NewScheduled creates a message scheduled for future delivery, one hour
// out unless cfg overrides it.
func NewScheduled(payload any, cfg Config) (*Mock, error) {
	if cfg.ScheduledEnqueueTimeUTC == nil {
		at := time.Now().UTC().Add(ScheduledOffset)
		cfg.ScheduledEnqueueTimeUTC = &at
	}
	return New(payload, cfg)
}

// NewRequestReply creates a message carrying request/reply routing: a reply
// queue plus a generated correlation identifier when none is configured.
func NewRequestReply(payload any, cfg Config) (*Mock, error) {
	if cfg.ReplyTo == "" {
		cfg.ReplyTo = DefaultReplyTo
	}
	if cfg.CorrelationID == "" {
		cfg.CorrelationID = uuid.NewString()
	}
	return New(payload, cfg)
}

func field[T any](m *Mock, name string) T {
	v, err := builder.FieldAs[T](m.h, name)
	if err != nil {
		panic(err)
	}
	return v
}

func (m *Mock) assembled() *message {
	msg, err := m.h.Assemble()
	if err != nil {
		panic(err)
	}
	return msg
}

func (m *Mock) MessageID() string                  { return field[string](m, "message_id") }
func (m *Mock) SessionID() string                  { return field[string](m, "session_id") }
func (m *Mock) PartitionKey() string               { return field[string](m, "partition_key") }
func (m *Mock) ContentType() string                { return field[string](m, "content_type") }
func (m *Mock) CorrelationID() string              { return field[string](m, "correlation_id") }
func (m *Mock) DeliveryCount() int                 { return field[int](m, "delivery_count") }
func (m *Mock) EnqueuedTimeUTC() time.Time         { return field[time.Time](m, "enqueued_time_utc") }
func (m *Mock) ExpiresAtUTC() *time.Time           { return field[*time.Time](m, "expires_at_utc") }
func (m *Mock) DeadLetterSource() string           { return field[string](m, "dead_letter_source") }
func (m *Mock) DeadLetterReason() string           { return field[string](m, "dead_letter_reason") }
func (m *Mock) LockToken() string                  { return field[string](m, "lock_token") }
func (m *Mock) SequenceNumber() int64              { return field[int64](m, "sequence_number") }
func (m *Mock) ReplyTo() string                    { return field[string](m, "reply_to") }
func (m *Mock) TimeToLive() time.Duration          { return field[time.Duration](m, "time_to_live") }
func (m *Mock) ApplicationProperties() map[string]any {
	return field[map[string]any](m, "application_properties")
}
func (m *Mock) UserProperties() map[string]any { return field[map[string]any](m, "user_properties") }

func (m *Mock) DeadLetterErrorDescription() string {
	return field[string](m, "dead_letter_error_description")
}

func (m *Mock) ScheduledEnqueueTimeUTC() *time.Time {
	return field[*time.Time](m, "scheduled_enqueue_time_utc")
}

// GetBody returns the message content as bytes.
func (m *Mock) GetBody() []byte { return m.assembled().body.Bytes() }

// GetJSON decodes and returns the message content as a JSON value.
func (m *Mock) GetJSON() (any, error) { return m.assembled().body.JSON() }

// Fields returns a copy of the merged field set for inspection.
func (m *Mock) Fields() fieldset.FieldSet { return m.h.Fields() }
