package simulation

import (
	"fmt"

	"github.com/enzo-santos-ufpa/sd/datarecording"
	"github.com/enzo-santos-ufpa/sd/sim"
)

const traceTableName = "event_trace"

type traceEntry struct {
	Time     float64
	Priority int
	Seq      uint64
	Kind     string
	Detail   string
}

// eventTraceHook records every processed event into the data recorder.
type eventTraceHook struct {
	recorder datarecording.DataRecorder
}

// Func writes one trace row per event the engine pops.
func (h *eventTraceHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(*sim.Event)
	if !ok {
		return
	}

	detail, ok := ctx.Detail.(sim.EventDetail)
	if !ok {
		return
	}

	entry := traceEntry{
		Time:     float64(detail.Time),
		Priority: int(detail.Priority),
		Seq:      detail.Seq,
	}

	if evt.OK() {
		entry.Kind = "fired"
		if v := evt.Value(); v != nil {
			entry.Detail = fmt.Sprintf("%v", v)
		}
	} else {
		entry.Kind = "failed"
		entry.Detail = evt.Err().Error()
	}

	h.recorder.InsertData(traceTableName, entry)
}

// EventTrace installs a hook that records every processed event into the
// data recorder, one row per event with its time, outcome kind, and
// detail. It requires recording to be enabled and may be called at most
// once per run.
func (s *Simulation) EventTrace() {
	if s.recorder == nil {
		panic("event tracing requires recording to be enabled")
	}

	if s.tracing {
		panic("event tracing is already enabled")
	}
	s.tracing = true

	s.recorder.CreateTable(traceTableName, traceEntry{})
	s.env.AcceptHook(&eventTraceHook{recorder: s.recorder})
}
