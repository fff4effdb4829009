package sim

import "log"

// HookPosContainerGet marks when a get request takes from the level.
var HookPosContainerGet = &HookPos{Name: "ContainerGet"}

// HookPosContainerPut marks when a put request adds to the level.
var HookPosContainerPut = &HookPos{Name: "ContainerPut"}

// A Container holds a bulk quantity with a numeric level in [0, capacity]
// and FIFO queues of pending get and put requests.
//
// Waiters are served strictly head-of-line: a get at the head of its queue
// blocks every later get until the level covers its amount, even when a
// later, smaller get could be satisfied sooner. This is policy, not an
// accident; it keeps grant order identical to request order.
type Container struct {
	HookableBase

	env      *Environment
	capacity float64
	level    float64

	gets []*containerRequest
	puts []*containerRequest
}

type containerRequest struct {
	evt    *Event
	amount float64
}

// NewContainer creates a Container with the given capacity and initial
// level. A non-positive capacity or an initial level outside
// [0, capacity] is a programming error and panics.
func NewContainer(env *Environment, capacity, initial float64) *Container {
	if capacity <= 0 {
		log.Panicf("container capacity must be positive, got %g", capacity)
	}

	if initial < 0 || initial > capacity {
		log.Panicf("container initial level %g is outside [0, %g]",
			initial, capacity)
	}

	return &Container{
		env:      env,
		capacity: capacity,
		level:    initial,
	}
}

// Get requests the given amount from the container. The returned event
// fires with the amount as its value once the level covers it and the
// request is at the head of the get queue. A non-positive amount is a
// programming error and panics.
func (c *Container) Get(amount float64) *Event {
	if amount <= 0 {
		log.Panicf("container get amount must be positive, got %g", amount)
	}

	evt := c.env.NewEvent()
	c.gets = append(c.gets, &containerRequest{evt: evt, amount: amount})
	c.balance()

	return evt
}

// Put adds the given amount to the container. The returned event fires
// once the spare capacity covers the amount and the request is at the head
// of the put queue. A non-positive amount is a programming error and
// panics.
func (c *Container) Put(amount float64) *Event {
	if amount <= 0 {
		log.Panicf("container put amount must be positive, got %g", amount)
	}

	evt := c.env.NewEvent()
	c.puts = append(c.puts, &containerRequest{evt: evt, amount: amount})
	c.balance()

	return evt
}

// balance re-evaluates the heads of both queues, gets before puts, until
// neither can advance, so every request that became satisfiable resolves
// within the same virtual instant.
func (c *Container) balance() {
	for {
		progress := false

		for len(c.gets) > 0 && c.level >= c.gets[0].amount {
			req := c.gets[0]
			c.gets = c.gets[1:]

			c.level -= req.amount
			req.evt.Succeed(req.amount)
			progress = true

			if c.NumHooks() > 0 {
				c.InvokeHook(HookCtx{
					Domain: c,
					Pos:    HookPosContainerGet,
					Item:   req.amount,
					Detail: c.level,
				})
			}
		}

		for len(c.puts) > 0 && c.capacity-c.level >= c.puts[0].amount {
			req := c.puts[0]
			c.puts = c.puts[1:]

			c.level += req.amount
			req.evt.Succeed(nil)
			progress = true

			if c.NumHooks() > 0 {
				c.InvokeHook(HookCtx{
					Domain: c,
					Pos:    HookPosContainerPut,
					Item:   req.amount,
					Detail: c.level,
				})
			}
		}

		if !progress {
			return
		}
	}
}

// Level returns the current level of the container.
func (c *Container) Level() float64 {
	return c.level
}

// Capacity returns the capacity of the container.
func (c *Container) Capacity() float64 {
	return c.capacity
}

// PendingGets returns the number of get requests waiting for level.
func (c *Container) PendingGets() int {
	return len(c.gets)
}

// PendingPuts returns the number of put requests waiting for capacity.
func (c *Container) PendingPuts() int {
	return len(c.puts)
}
