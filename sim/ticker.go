package sim

import "log"

// A Ticker invokes a function at a fixed virtual-time period, for periodic
// work such as sampling occupancy into a metric series. The function runs
// on the engine goroutine; it must not block.
type Ticker struct {
	env    *Environment
	period VTime
	fn     func(now VTime)

	started bool
	stopped bool
}

// NewTicker creates a Ticker that calls fn every period once started. A
// non-positive period is a programming error and panics.
func NewTicker(env *Environment, period VTime, fn func(now VTime)) *Ticker {
	if period <= 0 {
		log.Panicf("ticker period must be positive, got %.10f", float64(period))
	}

	if fn == nil {
		log.Panic("ticker function must not be nil")
	}

	return &Ticker{
		env:    env,
		period: period,
		fn:     fn,
	}
}

// Start schedules the first tick one period from now. Starting twice is a
// programming error and panics.
func (t *Ticker) Start() {
	if t.started {
		log.Panic("ticker has already been started")
	}

	t.started = true
	t.scheduleNext()
}

// Stop cancels future ticks. The ticker cannot be restarted.
func (t *Ticker) Stop() {
	t.stopped = true
}

func (t *Ticker) scheduleNext() {
	t.env.Timeout(t.period).AddCallback(func(*Event) {
		if t.stopped {
			return
		}

		t.fn(t.env.Now())
		t.scheduleNext()
	})
}
