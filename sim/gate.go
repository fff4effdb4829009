package sim

import "log"

// A Gate is a renewable one-shot signal: a wrapper owning a replaceable
// event, for broadcast conditions that repeat, such as "a truck is ready
// to load". Signal fires the current event for everyone waiting on it;
// Reset installs a fresh event for the next round. Waiters resolved
// against an old event are unaffected by later resets.
type Gate struct {
	env *Environment
	evt *Event
}

// NewGate creates a Gate with a fresh pending event.
func NewGate(env *Environment) *Gate {
	return &Gate{
		env: env,
		evt: env.NewEvent(),
	}
}

// Signal fires the current event with the given value. Signalling again
// before Reset is a programming error and panics.
func (g *Gate) Signal(value any) {
	if g.evt.Triggered() {
		log.Panic("signalling a gate that was not reset since the last signal")
	}

	g.evt.Succeed(value)
}

// Reset replaces the fired event with a fresh pending one. Resetting a
// gate that was never signalled would strand its waiters, so it is a
// programming error and panics.
func (g *Gate) Reset() {
	if !g.evt.Triggered() {
		log.Panic("resetting a gate that was not signalled")
	}

	g.evt = g.env.NewEvent()
}

// Armed returns true while the current event has not been signalled.
func (g *Gate) Armed() bool {
	return !g.evt.Triggered()
}

// WaitEvent returns the current event, satisfying Waitable. Conditions
// built from a gate capture the event current at construction time.
func (g *Gate) WaitEvent() *Event {
	return g.evt
}
