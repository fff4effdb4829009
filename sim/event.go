package sim

import "log"

// VTime is a point in virtual time. It carries no unit; scenarios decide
// whether a step means a second or a minute.
type VTime float64

// Priority decides the order of events scheduled for the same time. Urgent
// events fire before normal ones.
type Priority int

// Scheduling priorities, from highest to lowest.
const (
	PriorityUrgent Priority = iota
	PriorityNormal
)

// A Waitable is anything a process can wait on: a bare event, a timeout, a
// resource request, a condition, a gate, or another process.
type Waitable interface {
	// WaitEvent returns the event that carries the outcome.
	WaitEvent() *Event
}

// An Event is a single-fire future occurrence. It starts pending, is
// triggered exactly once with a value or an error, and is processed when the
// engine pops it from the queue and runs its callbacks in registration
// order. Once triggered, the outcome is immutable.
//
// Events are created through Environment.NewEvent, Environment.Timeout, or
// by the primitives; the zero value is not usable.
type Event struct {
	env *Environment

	value any
	err   error

	triggered bool
	processed bool

	callbacks []func(*Event)

	// set when this event belongs to a condition, so that nested
	// conditions can flatten their member values
	cond *Condition
}

// Succeed triggers the event with the given value and schedules it at the
// current time with normal priority. Succeeding an already-triggered event
// is a programming error and panics.
func (e *Event) Succeed(value any) *Event {
	if e.triggered {
		log.Panic("event has already been triggered")
	}

	e.value = value
	e.env.Schedule(e, PriorityNormal, 0)

	return e
}

// Fail triggers the event with the given error and schedules it at the
// current time with normal priority. The error must not be nil. Failing an
// already-triggered event is a programming error and panics.
func (e *Event) Fail(err error) *Event {
	if e.triggered {
		log.Panic("event has already been triggered")
	}

	if err == nil {
		log.Panic("failing an event requires a non-nil error")
	}

	e.err = err
	e.env.Schedule(e, PriorityNormal, 0)

	return e
}

// AddCallback registers a function to run when the event is processed.
// Callbacks run in registration order. Adding a callback to an event that
// has already been processed is a programming error and panics; waiters
// must check Processed first, which is what the process layer does.
func (e *Event) AddCallback(cb func(*Event)) {
	if e.processed {
		log.Panic("adding a callback to a processed event")
	}

	e.callbacks = append(e.callbacks, cb)
}

// Pending returns true while the event has not been triggered.
func (e *Event) Pending() bool {
	return !e.triggered
}

// Triggered returns true once the outcome is set and the event is queued.
func (e *Event) Triggered() bool {
	return e.triggered
}

// Processed returns true once the callbacks have run.
func (e *Event) Processed() bool {
	return e.processed
}

// OK reports whether the event carries a value rather than an error. It
// panics if the event has not been triggered yet.
func (e *Event) OK() bool {
	e.mustBeTriggered()
	return e.err == nil
}

// Value returns the value the event fired with. It panics if the event has
// not been triggered yet.
func (e *Event) Value() any {
	e.mustBeTriggered()
	return e.value
}

// Err returns the error the event fired with, or nil if it succeeded. It
// panics if the event has not been triggered yet.
func (e *Event) Err() error {
	e.mustBeTriggered()
	return e.err
}

// WaitEvent returns the event itself, satisfying Waitable.
func (e *Event) WaitEvent() *Event {
	return e
}

func (e *Event) mustBeTriggered() {
	if !e.triggered {
		log.Panic("event has not been triggered yet")
	}
}

// process marks the event processed and runs the callbacks in registration
// order. Called by the engine, on the engine goroutine only.
func (e *Event) process() {
	e.processed = true

	callbacks := e.callbacks
	e.callbacks = nil

	for _, cb := range callbacks {
		cb(e)
	}
}
