package sim

import "log"

// A Condition is an event composed from a fixed set of member events with
// an all-of or any-of rule. It registers itself as a waiter on each member
// exactly once and fires exactly once when the rule holds; members shared
// across several conditions are counted independently by each.
type Condition struct {
	evt     *Event
	members []*Event

	count    int
	evaluate func(total, fired int) bool
}

// AllOf returns a condition that fires once every member has fired, with
// an outcome mapping every member to its value. Members already fired at
// construction count immediately, and an empty member list fires at once,
// in both cases within the same step. A member that fails fails the
// condition with the same error.
func AllOf(env *Environment, ws ...Waitable) *Condition {
	return newCondition(env, func(total, fired int) bool {
		return fired == total
	}, ws)
}

// AnyOf returns a condition that fires the instant any member fires. The
// outcome maps every member that had fired by the time the condition is
// processed, so members firing simultaneously all appear, not only the
// one that tripped the rule.
func AnyOf(env *Environment, ws ...Waitable) *Condition {
	return newCondition(env, func(total, fired int) bool {
		return fired > 0
	}, ws)
}

func newCondition(
	env *Environment,
	evaluate func(total, fired int) bool,
	ws []Waitable,
) *Condition {
	c := &Condition{
		evt:      env.NewEvent(),
		evaluate: evaluate,
	}
	c.evt.cond = c

	c.members = make([]*Event, 0, len(ws))
	for _, w := range ws {
		m := w.WaitEvent()
		if m.env != env {
			log.Panic("condition member belongs to another environment")
		}

		c.members = append(c.members, m)
	}

	if len(c.members) == 0 {
		c.evt.Succeed(newConditionValue())
		return c
	}

	// Runs first when the condition is processed, before any waiter, so
	// that members fired in the same instant are captured in the outcome.
	c.evt.AddCallback(c.buildValue)

	for _, m := range c.members {
		if m.Processed() {
			c.check(m)
		} else {
			m.AddCallback(c.check)
		}
	}

	return c
}

// check is invoked once per processed member. It fires the condition when
// the rule holds and is a no-op once the condition has been triggered.
func (c *Condition) check(m *Event) {
	if c.evt.Triggered() {
		return
	}

	c.count++

	if m.err != nil {
		c.evt.Fail(m.err)
		return
	}

	if c.evaluate(len(c.members), c.count) {
		c.evt.Succeed(nil)
	}
}

// buildValue replaces the placeholder outcome with the mapping of members
// processed by now. Nested conditions flatten into the same mapping.
func (c *Condition) buildValue(evt *Event) {
	if evt.err != nil {
		return
	}

	value := newConditionValue()
	c.populate(value)
	evt.value = value
}

func (c *Condition) populate(value *ConditionValue) {
	for _, m := range c.members {
		if m.cond != nil {
			m.cond.populate(value)
			continue
		}

		if m.processed && m.err == nil {
			value.add(m)
		}
	}
}

// WaitEvent returns the event that fires when the rule holds, satisfying
// Waitable.
func (c *Condition) WaitEvent() *Event {
	return c.evt
}

// A ConditionValue is the outcome of a condition: a mapping from every
// member event that had fired by evaluation time to that member's value,
// ordered by member position.
type ConditionValue struct {
	order  []*Event
	values map[*Event]any
}

func newConditionValue() *ConditionValue {
	return &ConditionValue{
		values: make(map[*Event]any),
	}
}

func (v *ConditionValue) add(m *Event) {
	if _, seen := v.values[m]; !seen {
		v.order = append(v.order, m)
	}

	v.values[m] = m.value
}

// Has reports whether the member event appears in the outcome.
func (v *ConditionValue) Has(evt *Event) bool {
	_, ok := v.values[evt]
	return ok
}

// Value returns the member's value and whether the member appears in the
// outcome.
func (v *ConditionValue) Value(evt *Event) (any, bool) {
	value, ok := v.values[evt]
	return value, ok
}

// Events returns the members that appear in the outcome, in member order.
func (v *ConditionValue) Events() []*Event {
	return v.order
}

// Len returns the number of members that appear in the outcome.
func (v *ConditionValue) Len() int {
	return len(v.values)
}
