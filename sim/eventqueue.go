package sim

import (
	"container/heap"
	"sync"
)

// A scheduledEvent is one entry in the pending queue: an event bound to the
// time it fires at, its priority, and the sequence number assigned when it
// was scheduled. The sequence number breaks (time, priority) ties so that
// simultaneous entries resolve in scheduling order.
type scheduledEvent struct {
	time     VTime
	priority Priority
	seq      uint64
	event    *Event
}

// An eventQueue is a thread-safe queue of scheduled events ordered by
// (time, priority, seq).
type eventQueue struct {
	sync.Mutex

	entries eventHeap
	nextSeq uint64
}

func newEventQueue() *eventQueue {
	q := new(eventQueue)
	q.entries = make(eventHeap, 0)
	heap.Init(&q.entries)

	return q
}

// push adds an event to the queue, assigning it the next sequence number.
func (q *eventQueue) push(t VTime, prio Priority, evt *Event) {
	q.Lock()
	entry := &scheduledEvent{
		time:     t,
		priority: prio,
		seq:      q.nextSeq,
		event:    evt,
	}
	q.nextSeq++
	heap.Push(&q.entries, entry)
	q.Unlock()
}

// pop removes and returns the minimal entry. The queue must not be empty.
func (q *eventQueue) pop() *scheduledEvent {
	q.Lock()
	entry := heap.Pop(&q.entries).(*scheduledEvent)
	q.Unlock()

	return entry
}

// peek returns the minimal entry without removing it, or nil when the queue
// is empty.
func (q *eventQueue) peek() *scheduledEvent {
	q.Lock()
	defer q.Unlock()

	if len(q.entries) == 0 {
		return nil
	}

	return q.entries[0]
}

func (q *eventQueue) len() int {
	q.Lock()
	l := len(q.entries)
	q.Unlock()

	return l
}

type eventHeap []*scheduledEvent

func (h eventHeap) Len() int {
	return len(h)
}

// Less orders entries by time, then priority, then sequence number.
func (h eventHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}

	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}

	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*scheduledEvent))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[0 : n-1]

	return entry
}
