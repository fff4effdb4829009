package sim

import "log"

// HookPosResourceAcquire marks when a request is granted the resource.
var HookPosResourceAcquire = &HookPos{Name: "ResourceAcquire"}

// HookPosResourceRelease marks when a holder releases the resource.
var HookPosResourceRelease = &HookPos{Name: "ResourceRelease"}

// A Resource is a capacity-bounded mutual exclusion pool with a FIFO queue
// of pending acquire requests. At no time do holders exceed the capacity,
// and a release always satisfies the oldest pending request first.
type Resource struct {
	HookableBase

	env      *Environment
	capacity int

	users []*Request
	queue []*Request
}

// A Request is one acquire attempt on a Resource. It fires when the
// resource is granted, and can be cancelled while still pending.
type Request struct {
	evt *Event
	res *Resource
}

// NewResource creates a Resource with the given capacity. A capacity below
// one is a programming error and panics.
func NewResource(env *Environment, capacity int) *Resource {
	if capacity < 1 {
		log.Panicf("resource capacity must be positive, got %d", capacity)
	}

	return &Resource{
		env:      env,
		capacity: capacity,
	}
}

// Acquire requests the resource. While holders are below capacity the
// request fires immediately, within the same step; otherwise it joins the
// FIFO wait queue and fires on a later Release.
func (r *Resource) Acquire() *Request {
	req := &Request{
		evt: r.env.NewEvent(),
		res: r,
	}

	if len(r.users) < r.capacity {
		r.grant(req)
	} else {
		r.queue = append(r.queue, req)
	}

	return req
}

// Release returns the resource held by req. If the wait queue is not
// empty, the oldest pending request is granted in the same call, so
// capacity hands off atomically with no window for another acquirer to
// slip in. Releasing a request that does not hold the resource, which
// includes releasing past zero holders, is a programming error and panics.
func (r *Resource) Release(req *Request) {
	for i, held := range r.users {
		if held != req {
			continue
		}

		r.users = append(r.users[:i], r.users[i+1:]...)

		if r.NumHooks() > 0 {
			r.InvokeHook(HookCtx{
				Domain: r,
				Pos:    HookPosResourceRelease,
				Item:   req,
				Detail: len(r.users),
			})
		}

		if len(r.queue) > 0 {
			next := r.queue[0]
			r.queue = r.queue[1:]
			r.grant(next)
		}

		return
	}

	log.Panic("releasing a request that does not hold the resource")
}

func (r *Resource) grant(req *Request) {
	r.users = append(r.users, req)
	req.evt.Succeed(nil)

	if r.NumHooks() > 0 {
		r.InvokeHook(HookCtx{
			Domain: r,
			Pos:    HookPosResourceAcquire,
			Item:   req,
			Detail: len(r.users),
		})
	}
}

// Holders returns the number of requests currently holding the resource.
func (r *Resource) Holders() int {
	return len(r.users)
}

// Capacity returns the capacity of the resource.
func (r *Resource) Capacity() int {
	return r.capacity
}

// Pending returns the number of requests waiting in the queue.
func (r *Resource) Pending() int {
	return len(r.queue)
}

// WaitEvent returns the event that fires when the request is granted,
// satisfying Waitable.
func (req *Request) WaitEvent() *Event {
	return req.evt
}

// Cancel withdraws a pending request from the wait queue with no side
// effects. Cancelling a request that has already fired is a programming
// error and panics.
func (req *Request) Cancel() {
	if req.evt.Triggered() {
		log.Panic("cancelling a request that has already fired")
	}

	r := req.res
	for i, waiting := range r.queue {
		if waiting == req {
			r.queue = append(r.queue[:i], r.queue[i+1:]...)
			return
		}
	}
}
