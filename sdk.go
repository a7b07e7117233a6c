// Package sdk provides in-memory test doubles for event-trigger payloads
// consumed by serverless function handlers.
//
// Each trigger kind (queue, http, timer, blob, servicebus, eventgrid) has its
// own package exposing a factory that merges caller overrides with sensible
// defaults and returns a mock implementing that trigger's read interface.
// The capture package records values a handler writes to named output slots
// so tests can assert on them afterwards.
//
// Everything is transient and in-process: no network, no files, no real
// backing service. Mocks and capture contexts are built per test and must
// not be shared across concurrent test executions.
package sdk

// DefaultMessageID is the message identifier used when no explicit ID is
// provided to a message-style trigger mock.
const DefaultMessageID = "test-message-id"
