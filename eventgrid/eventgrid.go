package eventgrid

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/funcmock-project/sdk/builder"
	"github.com/funcmock-project/sdk/fieldset"
)

// Defaults for event identity and topology.
const (
	DefaultEventID     = "test-event-id"
	DefaultTopic       = "/subscriptions/sub-id/resourceGroups/rg/providers/Microsoft.EventGrid/topics/test-topic"
	DefaultSubject     = "test/subject"
	DefaultEventType   = "Test.Event"
	DefaultDataVersion = "1.0"

	// Custom event defaults used by NewCustom.
	CustomEventType    = "Custom.Application.Event"
	CustomEventSubject = "custom/event"
)

// System event types published by storage accounts.
const (
	EventTypeBlobCreated      = "Microsoft.Storage.BlobCreated"
	EventTypeBlobDeleted      = "Microsoft.Storage.BlobDeleted"
	EventTypeBlobRenamed      = "Microsoft.Storage.BlobRenamed"
	EventTypeDirectoryCreated = "Microsoft.Storage.DirectoryCreated"
	EventTypeDirectoryDeleted = "Microsoft.Storage.DirectoryDeleted"
)

// Storage defaults used when building blob event metadata.
const (
	DefaultStorageAccount    = "teststorageaccount"
	DefaultContainerName     = "test-container"
	DefaultBlobName          = "test-blob.txt"
	DefaultBlobContentLength = 1024
)

// sequencerSuffix pads the sequencer timestamp the way storage events do.
const sequencerSuffix = "0000000000000"

// Event is the read interface an event-grid-triggered handler sees.
type Event interface {
	ID() string
	Topic() string
	Subject() string
	EventType() string
	EventTime() time.Time
	DataVersion() string
	GetJSON() map[string]any
}

// Config holds the optional named fields of an event grid event. The zero
// value of a field means "use the default".
type Config struct {
	// ID is the unique event identifier.
	ID string

	// Topic is the full resource path to the event source.
	Topic string

	// Subject is the publisher-defined path to the event subject.
	Subject string

	// EventType is one of the registered event types for the source.
	EventType string

	// EventTime is when the event was generated.
	EventTime time.Time

	// DataVersion is the schema version of the data object.
	DataVersion string
}

func (c Config) overrides() fieldset.FieldSet {
	fs := fieldset.New()
	if c.ID != "" {
		fs["id"] = c.ID
	}
	if c.Topic != "" {
		fs["topic"] = c.Topic
	}
	if c.Subject != "" {
		fs["subject"] = c.Subject
	}
	if c.EventType != "" {
		fs["event_type"] = c.EventType
	}
	if !c.EventTime.IsZero() {
		fs["event_time"] = c.EventTime
	}
	if c.DataVersion != "" {
		fs["data_version"] = c.DataVersion
	}
	return fs
}

// event is the assembled event grid trigger payload.
type event struct {
	id          string
	topic       string
	subject     string
	eventType   string
	eventTime   time.Time
	dataVersion string
	data        map[string]any
}

func defaults() fieldset.FieldSet {
	return fieldset.FieldSet{
		"id":           DefaultEventID,
		"topic":        DefaultTopic,
		"subject":      DefaultSubject,
		"event_type":   DefaultEventType,
		"event_time":   time.Now().UTC(),
		"data_version": DefaultDataVersion,
		"data":         map[string]any{},
	}
}

func assemble(fs fieldset.FieldSet) (*event, error) {
	var ev event
	var err error
	if ev.id, err = fs.String("id"); err != nil {
		return nil, err
	}
	if ev.topic, err = fs.String("topic"); err != nil {
		return nil, err
	}
	if ev.subject, err = fs.String("subject"); err != nil {
		return nil, err
	}
	if ev.eventType, err = fs.String("event_type"); err != nil {
		return nil, err
	}
	if ev.eventTime, err = fs.Time("event_time"); err != nil {
		return nil, err
	}
	if ev.dataVersion, err = fs.String("data_version"); err != nil {
		return nil, err
	}
	if ev.data, err = fs.Map("data"); err != nil {
		return nil, err
	}
	return &ev, nil
}

var definition = builder.Definition[*event]{
	Trigger:  "eventgrid",
	Required: []string{"id", "topic", "subject", "event_type", "event_time", "data_version", "data"},
	Defaults: defaults,
	Assemble: assemble,
}

// Mock is an in-memory stand-in for an event grid trigger event.
type Mock struct {
	h *builder.Handle[*event]
}

var _ Event = (*Mock)(nil)

// New creates an event grid event mock carrying the given data object.
// A nil data map becomes an empty one.
func New(data map[string]any, cfg Config) (*Mock, error) {
	overrides := cfg.overrides()
	if data != nil {
		overrides["data"] = data
	}

	h, err := builder.New(definition, overrides)
	if err != nil {
		return nil, err
	}
	return &Mock{h: h}, nil
}

// NewCustom creates an application-defined event. Empty eventType and
// subject fall back to the custom event defaults.
func NewCustom(data map[string]any, eventType, subject string) (*Mock, error) {
	if eventType == "" {
		eventType = CustomEventType
	}
	if subject == "" {
		subject = CustomEventSubject
	}
	return New(data, Config{EventType: eventType, Subject: subject})
}

// NewBlobCreated creates a storage BlobCreated event populated with
// realistic blob metadata: url, api, etag, sequencer, and request
// identifiers. Empty account, container, or blobName fall back to the
// storage defaults.
func NewBlobCreated(account, container, blobName string, cfg Config) (*Mock, error) {
	return newBlobEvent(EventTypeBlobCreated, "PutBlob", account, container, blobName, cfg)
}

// NewBlobDeleted creates a storage BlobDeleted event with the same metadata
// shape as NewBlobCreated.
func NewBlobDeleted(account, container, blobName string, cfg Config) (*Mock, error) {
	return newBlobEvent(EventTypeBlobDeleted, "DeleteBlob", account, container, blobName, cfg)
}

func newBlobEvent(eventType, api, account, container, blobName string, cfg Config) (*Mock, error) {
	if account == "" {
		account = DefaultStorageAccount
	}
	if container == "" {
		container = DefaultContainerName
	}
	if blobName == "" {
		blobName = DefaultBlobName
	}

	now := time.Now().UTC()
	data := map[string]any{
		"api":             api,
		"clientRequestId": uuid.NewString(),
		"requestId":       uuid.NewString(),
		"eTag":            blobETag(),
		"contentType":     "application/octet-stream",
		"contentLength":   DefaultBlobContentLength,
		"blobType":        "BlockBlob",
		"url":             fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s", account, container, blobName),
		"sequencer":       now.Format("20060102150405") + sequencerSuffix,
		"storageDiagnostics": map[string]any{
			"batchId": uuid.NewString(),
		},
	}

	if cfg.EventType == "" {
		cfg.EventType = eventType
	}
	if cfg.Subject == "" {
		cfg.Subject = fmt.Sprintf("/blobServices/default/containers/%s/blobs/%s", container, blobName)
	}
	if cfg.Topic == "" {
		cfg.Topic = fmt.Sprintf(
			"/subscriptions/sub-id/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/%s",
			account,
		)
	}
	return New(data, cfg)
}

// blobETag returns a storage-style opaque etag token.
func blobETag() string {
	id := uuid.New()
	return "0x" + hex.EncodeToString(id[:8])
}

func field[T any](m *Mock, name string) T {
	v, err := builder.FieldAs[T](m.h, name)
	if err != nil {
		panic(err)
	}
	return v
}

// ID returns the unique event identifier.
func (m *Mock) ID() string { return field[string](m, "id") }

// Topic returns the full resource path to the event source.
func (m *Mock) Topic() string { return field[string](m, "topic") }

// Subject returns the publisher-defined path to the event subject.
func (m *Mock) Subject() string { return field[string](m, "subject") }

// EventType returns the registered event type.
func (m *Mock) EventType() string { return field[string](m, "event_type") }

// EventTime returns when the event was generated.
func (m *Mock) EventTime() time.Time { return field[time.Time](m, "event_time") }

// DataVersion returns the schema version of the data object.
func (m *Mock) DataVersion() string { return field[string](m, "data_version") }

// GetJSON returns the event data object. The data is already structured, so
// no decoding is involved.
func (m *Mock) GetJSON() map[string]any {
	ev, err := m.h.Assemble()
	if err != nil {
		panic(err)
	}
	return ev.data
}

// Fields returns a copy of the merged field set for inspection.
func (m *Mock) Fields() fieldset.FieldSet { return m.h.Fields() }
