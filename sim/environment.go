package sim

import (
	"errors"
	"log"
	"math"
	"sync"
)

// TimeTeller can be used to get the current virtual time.
type TimeTeller interface {
	Now() VTime
}

// ErrEmptySchedule is returned by Step when nothing is pending. A run that
// ends because the queue drained has settled; this is a normal termination,
// not a failure.
var ErrEmptySchedule = errors.New("nothing is scheduled")

// EventDetail describes the queue entry being processed. It is passed to
// hooks as the Detail field of the hook context.
type EventDetail struct {
	Time     VTime
	Priority Priority
	Seq      uint64
}

// An Environment owns the virtual clock and the queue of pending events,
// and drives the run loop. Events scheduled for the same time resolve in
// (priority, sequence) order, so a run is fully deterministic for a fixed
// sequence of Schedule calls.
type Environment struct {
	HookableBase

	timeLock sync.RWMutex
	now      VTime

	queue *eventQueue

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex

	singleRunLock sync.Mutex
}

// NewEnvironment creates an Environment with the clock at zero.
func NewEnvironment() *Environment {
	return NewEnvironmentAt(0)
}

// NewEnvironmentAt creates an Environment with the clock at the given time.
func NewEnvironmentAt(start VTime) *Environment {
	e := new(Environment)
	e.now = start
	e.queue = newEventQueue()

	return e
}

// Now returns the current virtual time.
func (e *Environment) Now() VTime {
	return e.readNow()
}

func (e *Environment) readNow() VTime {
	e.timeLock.RLock()
	t := e.now
	e.timeLock.RUnlock()

	return t
}

func (e *Environment) writeNow(t VTime) {
	e.timeLock.Lock()
	e.now = t
	e.timeLock.Unlock()
}

// Schedule triggers the event and inserts it into the pending queue at
// now+delay with the given priority. An event without a pre-set outcome
// fires with a nil value. Scheduling a nil event, an already-triggered
// event, an event from another environment, or a negative delay is a
// programming error and panics.
func (e *Environment) Schedule(evt *Event, prio Priority, delay VTime) {
	if evt == nil {
		log.Panic("scheduling a nil event")
	}

	if evt.env != e {
		log.Panic("scheduling an event that belongs to another environment")
	}

	if evt.triggered {
		log.Panic("scheduling an event that has already been triggered")
	}

	if delay < 0 {
		log.Panicf("cannot schedule an event in the past, delay %.10f",
			float64(delay))
	}

	evt.triggered = true
	e.queue.push(e.readNow()+delay, prio, evt)
}

// NewEvent creates a bare pending event bound to this environment.
func (e *Environment) NewEvent() *Event {
	return &Event{env: e}
}

// Timeout returns an event that fires after the given delay.
func (e *Environment) Timeout(delay VTime) *Event {
	return e.TimeoutValue(delay, nil)
}

// TimeoutValue returns an event that fires after the given delay carrying
// the given value.
func (e *Environment) TimeoutValue(delay VTime, value any) *Event {
	evt := e.NewEvent()
	evt.value = value
	e.Schedule(evt, PriorityNormal, delay)

	return evt
}

// Step processes the next scheduled event: it pops the minimal
// (time, priority, seq) entry, advances the clock to its time, and runs the
// event's callbacks synchronously. Returns ErrEmptySchedule when nothing is
// pending.
func (e *Environment) Step() error {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	return e.step()
}

// Peek returns the time of the next scheduled event, or +Inf when the
// queue is empty.
func (e *Environment) Peek() VTime {
	next := e.queue.peek()
	if next == nil {
		return VTime(math.Inf(1))
	}

	return next.time
}

// Pending returns the number of queued entries.
func (e *Environment) Pending() int {
	return e.queue.len()
}

// Run processes events until the queue is empty.
func (e *Environment) Run() error {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	for {
		if err := e.step(); err != nil {
			if errors.Is(err, ErrEmptySchedule) {
				return nil
			}

			return err
		}
	}
}

// RunUntil processes events strictly before the given time; no event at or
// after it fires. On return the clock reads until, even when the queue
// drained earlier. An until at or before the current time is a programming
// error and panics.
func (e *Environment) RunUntil(until VTime) error {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	if until <= e.readNow() {
		log.Panicf("run until %.10f is not after the current time %.10f",
			float64(until), float64(e.readNow()))
	}

	for {
		next := e.queue.peek()
		if next == nil || next.time >= until {
			e.writeNow(until)
			return nil
		}

		if err := e.step(); err != nil {
			return err
		}
	}
}

func (e *Environment) step() error {
	if e.queue.len() == 0 {
		return ErrEmptySchedule
	}

	e.pauseLock.Lock()
	defer e.pauseLock.Unlock()

	entry := e.queue.pop()

	now := e.readNow()
	if entry.time < now {
		log.Panicf("cannot process an event in the past, event @%.10f, now %.10f",
			float64(entry.time), float64(now))
	}

	e.writeNow(entry.time)

	hookCtx := HookCtx{
		Domain: e,
		Pos:    HookPosBeforeEvent,
		Item:   entry.event,
		Detail: EventDetail{
			Time:     entry.time,
			Priority: entry.priority,
			Seq:      entry.seq,
		},
	}

	if e.NumHooks() > 0 {
		e.InvokeHook(hookCtx)
	}

	entry.event.process()

	if e.NumHooks() > 0 {
		hookCtx.Pos = HookPosAfterEvent
		e.InvokeHook(hookCtx)
	}

	return nil
}

// Pause prevents the environment from processing more events until
// Continue is called. The current event finishes first.
func (e *Environment) Pause() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if e.isPaused {
		return
	}

	e.pauseLock.Lock()
	e.isPaused = true
}

// Continue lets a paused environment process events again.
func (e *Environment) Continue() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if !e.isPaused {
		return
	}

	e.pauseLock.Unlock()
	e.isPaused = false
}
