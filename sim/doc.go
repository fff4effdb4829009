// Package sim provides a deterministic discrete-event simulation engine:
// a virtual clock, a queue of pending events ordered by
// (time, priority, sequence), suspendable processes, and the primitives
// queueing models are built from.
//
// The primitives are:
//   - Event: a single-fire future occurrence carrying a value or an error
//   - Process: a suspendable computation that waits on events
//   - Resource: capacity-bounded mutual exclusion with a FIFO wait queue
//   - Store: a bounded FIFO item queue with get/put backpressure
//   - Container: a bulk quantity with get/put by amount
//   - Condition: AllOf/AnyOf composition over events
//   - Gate: a renewable one-shot broadcast signal
//
// Exactly one process body runs between any two yield points, so models
// need no locking; all shared state is mutated inside engine-driven
// callbacks. For a fixed random seed, runs are byte-for-byte reproducible.
package sim
