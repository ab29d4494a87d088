// Package diagnostics carries the structured event trail of one report run.
// Each pipeline stage receives the run's Context and records what it did;
// the trail is rendered to the console as it happens and to an error log
// file when a run fails.
package diagnostics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"backorder/domain/core"
	"backorder/internal"
)

// Level is the severity of an event
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARNING"
	LevelError Level = "ERROR"
)

// Fields are structured key/value details attached to an event
type Fields map[string]interface{}

// Event is one recorded diagnostic
type Event struct {
	Time    time.Time
	Stage   string
	Level   Level
	Message string
	Fields  Fields
}

// String renders the event on one line with sorted fields.
func (e Event) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", e.Stage, e.Level, e.Message)
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, e.Fields[k])
		}
	}
	return b.String()
}

// Context accumulates the events of a single run. A nil *Context discards
// everything, so stages can be used without one.
type Context struct {
	RunID   core.RunID
	Started time.Time

	events []Event
	logger *internal.Logger
	now    func() time.Time
}

// New creates a diagnostics context that echoes events at INFO and above
// to the standard logger.
func New(runID core.RunID) *Context {
	return NewWithLogger(runID, internal.NewLogger(internal.LogLevelInfo))
}

// NewWithLogger creates a context that echoes events through logger.
func NewWithLogger(runID core.RunID, logger *internal.Logger) *Context {
	return &Context{
		RunID:   runID,
		Started: time.Now(),
		logger:  logger,
		now:     time.Now,
	}
}

// NewSilent creates a context that records events without logging them.
func NewSilent(runID core.RunID) *Context {
	return NewWithLogger(runID, nil)
}

func (l Level) logLevel() internal.LogLevel {
	switch l {
	case LevelError:
		return internal.LogLevelError
	case LevelWarn:
		return internal.LogLevelWarn
	default:
		return internal.LogLevelInfo
	}
}

func (c *Context) record(stage string, level Level, msg string, fields Fields) {
	if c == nil {
		return
	}
	e := Event{Time: c.now(), Stage: stage, Level: level, Message: msg, Fields: fields}
	c.events = append(c.events, e)
	c.logger.Print(level.logLevel(), e.String())
}

// Info records a progress event.
func (c *Context) Info(stage, msg string, fields Fields) {
	c.record(stage, LevelInfo, msg, fields)
}

// Warn records a recovered data-quality issue.
func (c *Context) Warn(stage, msg string, fields Fields) {
	c.record(stage, LevelWarn, msg, fields)
}

// Error records a failure that aborted the run.
func (c *Context) Error(stage string, err error, fields Fields) {
	c.record(stage, LevelError, err.Error(), fields)
}

// Events returns a copy of the trail.
func (c *Context) Events() []Event {
	if c == nil {
		return nil
	}
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Filter returns the events at the given level.
func (c *Context) Filter(level Level) []Event {
	if c == nil {
		return nil
	}
	var out []Event
	for _, e := range c.events {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Warnings returns every warning event.
func (c *Context) Warnings() []Event {
	return c.Filter(LevelWarn)
}

// HasErrors reports whether any error was recorded.
func (c *Context) HasErrors() bool {
	return len(c.Filter(LevelError)) > 0
}

// StageEvents returns the events recorded by one stage.
func (c *Context) StageEvents(stage string) []Event {
	if c == nil {
		return nil
	}
	var out []Event
	for _, e := range c.events {
		if e.Stage == stage {
			out = append(out, e)
		}
	}
	return out
}

// Counts returns the number of events per level.
func (c *Context) Counts() map[Level]int {
	counts := make(map[Level]int, 3)
	if c == nil {
		return counts
	}
	for _, e := range c.events {
		counts[e.Level]++
	}
	return counts
}
