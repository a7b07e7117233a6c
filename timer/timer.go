package timer

import (
	"time"

	"github.com/funcmock-project/sdk/builder"
	"github.com/funcmock-project/sdk/fieldset"
)

// ScheduleStatus carries the last and next occurrences of the timer
// schedule.
type ScheduleStatus struct {
	// Last is when the schedule last fired.
	Last time.Time

	// Next is when the schedule fires next.
	Next time.Time

	// LastUpdated is when the status was recorded.
	LastUpdated time.Time
}

// Request is the read interface a timer-triggered handler sees.
type Request interface {
	PastDue() bool
	ScheduleStatus() ScheduleStatus
	Schedule() map[string]any
}

// Config holds the optional named fields of a timer request. The zero value
// of a field means "use the default".
type Config struct {
	// PastDue marks the timer as firing later than scheduled.
	PastDue bool

	// ScheduleStatus overrides the last/next occurrence information.
	ScheduleStatus *ScheduleStatus

	// Schedule is the timer schedule configuration, such as a cron
	// expression or DST adjustment flags.
	Schedule map[string]any
}

func (c Config) overrides() fieldset.FieldSet {
	fs := fieldset.New()
	if c.PastDue {
		fs["past_due"] = true
	}
	if c.ScheduleStatus != nil {
		fs["schedule_status"] = *c.ScheduleStatus
	}
	if c.Schedule != nil {
		fs["schedule"] = c.Schedule
	}
	return fs
}

// request is the assembled timer trigger payload.
type request struct {
	pastDue        bool
	scheduleStatus ScheduleStatus
	schedule       map[string]any
}

func defaults() fieldset.FieldSet {
	now := time.Now().UTC()
	return fieldset.FieldSet{
		"past_due": false,
		"schedule_status": ScheduleStatus{
			Last:        now,
			Next:        now,
			LastUpdated: now,
		},
		"schedule": map[string]any{},
	}
}

func assemble(fs fieldset.FieldSet) (*request, error) {
	var req request
	var err error
	if req.pastDue, err = fs.Bool("past_due"); err != nil {
		return nil, err
	}
	if req.scheduleStatus, err = fieldset.Get[ScheduleStatus](fs, "schedule_status"); err != nil {
		return nil, err
	}
	if req.schedule, err = fs.Map("schedule"); err != nil {
		return nil, err
	}
	return &req, nil
}

var definition = builder.Definition[*request]{
	Trigger:  "timer",
	Required: []string{"past_due", "schedule_status", "schedule"},
	Defaults: defaults,
	Assemble: assemble,
}

// Mock is an in-memory stand-in for a timer trigger request.
type Mock struct {
	h *builder.Handle[*request]
}

var _ Request = (*Mock)(nil)

// New creates a timer request mock.
func New(cfg Config) (*Mock, error) {
	h, err := builder.New(definition, cfg.overrides())
	if err != nil {
		return nil, err
	}
	return &Mock{h: h}, nil
}

// NewPastDue creates a timer request that fired later than scheduled.
func NewPastDue(cfg Config) (*Mock, error) {
	cfg.PastDue = true
	return New(cfg)
}

func field[T any](m *Mock, name string) T {
	v, err := builder.FieldAs[T](m.h, name)
	if err != nil {
		panic(err)
	}
	return v
}

// PastDue reports whether the timer is past its scheduled time.
func (m *Mock) PastDue() bool { return field[bool](m, "past_due") }

// ScheduleStatus returns the last/next occurrence information.
func (m *Mock) ScheduleStatus() ScheduleStatus {
	return field[ScheduleStatus](m, "schedule_status")
}

// Schedule returns the timer schedule configuration.
func (m *Mock) Schedule() map[string]any { return field[map[string]any](m, "schedule") }

// Fields returns a copy of the merged field set for inspection.
func (m *Mock) Fields() fieldset.FieldSet { return m.h.Fields() }
