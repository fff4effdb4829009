package monitoring

import (
	"sync"
	"time"
)

// A ProgressBar tracks how much of a long-lived activity has finished,
// such as the portion of the horizon a run has covered. Its methods are
// safe to call while the monitor serves it.
type ProgressBar struct {
	sync.Mutex
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

// IncrementFinished adds a certain amount to the finished elements.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}
