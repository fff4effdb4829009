package sim

import (
	"fmt"
	"log"
	"runtime/debug"
)

// A ProcessFunc is the body of a process. It runs until it returns or until
// it parks in a Wait call. The returned value and error become the outcome
// of the process's completion event.
type ProcessFunc func(p *Process) (any, error)

type waitOutcome struct {
	value any
	err   error
}

// A Process is a suspendable unit of simulation logic. The body runs on its
// own goroutine, but control is handed off strictly: the engine blocks
// while the body runs, and the body blocks in Wait while the engine runs,
// so exactly one of them executes at any moment and bodies never race.
//
// A process that stays blocked forever (the model never satisfies its
// request) keeps its goroutine parked until the program exits; the engine
// does not detect starvation.
type Process struct {
	env  *Environment
	name string
	fn   ProcessFunc

	completion *Event

	resume chan waitOutcome
	park   chan struct{}
}

// Process launches fn as a new process. Spawning is scheduled as an urgent
// zero-delay entry, so a new process never preempts its creator mid-step;
// the body starts when that entry is processed. An empty name draws one
// from the ID generator; a non-empty name must satisfy NameMustBeValid.
//
// The completion of a process is itself an event: waiting on the returned
// Process resumes with the body's return value, or its error.
func (e *Environment) Process(name string, fn ProcessFunc) *Process {
	if fn == nil {
		log.Panic("process body must not be nil")
	}

	if name == "" {
		name = "process[" + GetIDGenerator().Generate() + "]"
	} else {
		NameMustBeValid(name)
	}

	p := &Process{
		env:        e,
		name:       name,
		fn:         fn,
		completion: e.NewEvent(),
		resume:     make(chan waitOutcome),
		park:       make(chan struct{}),
	}

	initialize := e.NewEvent()
	initialize.AddCallback(func(*Event) {
		p.start()
	})
	e.Schedule(initialize, PriorityUrgent, 0)

	return p
}

// start launches the body goroutine and blocks until the body parks in its
// first Wait or finishes. Runs on the engine goroutine.
func (p *Process) start() {
	go p.body()
	<-p.park
}

func (p *Process) body() {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("process %s panicked: %v\n%s",
				p.name, r, debug.Stack())
			if p.completion.Pending() {
				p.completion.Fail(err)
			}
		}

		p.park <- struct{}{}
	}()

	value, err := p.fn(p)
	if err != nil {
		p.completion.Fail(err)
		return
	}

	p.completion.Succeed(value)
}

// Wait yields the process until the waitable's event fires, then returns
// the event's value or error. If the event has already been processed, Wait
// returns immediately without suspending. Wait must only be called from
// within the process body.
func (p *Process) Wait(w Waitable) (any, error) {
	evt := w.WaitEvent()
	if evt == nil {
		log.Panic("waiting on a nil event")
	}

	if evt.env != p.env {
		log.Panic("waiting on an event from another environment")
	}

	if evt.Processed() {
		return evt.value, evt.err
	}

	evt.AddCallback(func(fired *Event) {
		p.resume <- waitOutcome{value: fired.value, err: fired.err}
		<-p.park
	})

	p.park <- struct{}{}
	outcome := <-p.resume

	return outcome.value, outcome.err
}

// Name returns the name of the process.
func (p *Process) Name() string {
	return p.name
}

// Env returns the environment the process runs in.
func (p *Process) Env() *Environment {
	return p.env
}

// WaitEvent returns the completion event, satisfying Waitable.
func (p *Process) WaitEvent() *Event {
	return p.completion
}

// Done returns true once the process has finished and its completion event
// has been processed.
func (p *Process) Done() bool {
	return p.completion.Processed()
}

// Value returns the body's return value. It panics if the process has not
// finished yet.
func (p *Process) Value() any {
	return p.completion.Value()
}

// Err returns the body's error, or nil. It panics if the process has not
// finished yet.
func (p *Process) Err() error {
	return p.completion.Err()
}
