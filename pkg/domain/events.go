package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart      EventType = "run_start"
	EventRunFinish     EventType = "run_finish"
	EventCommandStart  EventType = "command_start"
	EventCommandReturn EventType = "command_return"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// RunEvent marks the beginning or the end of one engine invocation.
type RunEvent struct {
	EventBase
	Variant  string        `json:"variant"`
	Commands int           `json:"commands"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// CommandEvent represents one executed command line. Lines of a batch are
// reported individually with Batch set.
type CommandEvent struct {
	EventBase
	Command  string        `json:"command"`
	Batch    bool          `json:"batch,omitempty"`
	Output   string        `json:"output,omitempty"`
	IsError  bool          `json:"is_error,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRunStart      func(context.Context, *RunEvent)
	OnRunFinish     func(context.Context, *RunEvent)
	OnCommandStart  func(context.Context, *CommandEvent)
	OnCommandReturn func(context.Context, *CommandEvent)
}
