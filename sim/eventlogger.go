package sim

import (
	"fmt"
	"log"
)

// LogHookBase provides the common logic for hooks that write to a logger.
type LogHookBase struct {
	*log.Logger
}

// EventLogger is a hook that prints every event the engine processes,
// with its time, priority, sequence number, and outcome.
type EventLogger struct {
	LogHookBase
}

// NewEventLogger returns a new EventLogger that writes into the logger.
func NewEventLogger(logger *log.Logger) *EventLogger {
	h := new(EventLogger)
	h.Logger = logger

	return h
}

// Func writes the event information into the logger.
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(*Event)
	if !ok {
		return
	}

	detail, ok := ctx.Detail.(EventDetail)
	if !ok {
		return
	}

	h.Printf("%.10f, prio %d, seq %d, %s",
		float64(detail.Time), detail.Priority, detail.Seq, describe(evt))
}

func describe(evt *Event) string {
	if evt.err != nil {
		return fmt.Sprintf("failed: %v", evt.err)
	}

	if evt.value == nil {
		return "fired"
	}

	return fmt.Sprintf("fired with %v", evt.value)
}
