package vsim_test

import (
	"bytes"
	"testing"

	"github.com/db47h/vsim"
	"github.com/db47h/vsim/vsimtest"
)

// Events at {5, 5, 12, 12, 12, 40}, then finish. Coincident events collapse
// into one evaluation, so exactly 4 evaluate/dump pairs occur: at 5, 12, 40
// and the one coincident with the finish signal.
func TestDriver_eventDriven(t *testing.T) {
	ctx := vsim.NewContext()
	m := vsimtest.NewEventScript(ctx, 5, 5, 12, 12, 12, 40)
	sink := &vsimtest.SinkRecorder{}
	d := vsim.New(ctx, m, vsim.EventDriven{})
	d.Out = &bytes.Buffer{}

	if err := d.Trace(sink, "waveform.vcd"); err != nil {
		t.Fatal(err)
	}
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	want := []uint64{5, 12, 40, 40}
	if len(m.EvalTimes) != len(want) {
		t.Fatalf("expected %d evaluate/dump pairs, got %d at %v", len(want), len(m.EvalTimes), m.EvalTimes)
	}
	for i, w := range want {
		if m.EvalTimes[i] != w {
			t.Errorf("pair %d at time %d, expected %d", i, m.EvalTimes[i], w)
		}
	}
	if ctx.Time() != 40 {
		t.Errorf("expected final time 40, got %d", ctx.Time())
	}
	// every sample is dumped at the context's reported time
	for i := range want {
		if sink.Dumps[i] != m.EvalTimes[i] {
			t.Errorf("sample %d at time %d, evaluated at %d", i, sink.Dumps[i], m.EvalTimes[i])
		}
	}
	if sink.Closes != 1 {
		t.Errorf("trace closed %d times", sink.Closes)
	}
	if m.Finals != 1 {
		t.Errorf("model finalized %d times", m.Finals)
	}
}

// A model that stalls with no pending event and no finish request stops the
// loop instead of hanging it.
func TestDriver_eventDriven_stall(t *testing.T) {
	ctx := vsim.NewContext()
	m := &vsimtest.Script{Ctx: ctx, Never: true}
	d := vsim.New(ctx, m, vsim.EventDriven{})
	d.Out = &bytes.Buffer{}

	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	if m.Evals != 0 {
		t.Errorf("model evaluated %d times", m.Evals)
	}
	if m.Finals != 1 {
		t.Errorf("model finalized %d times", m.Finals)
	}
}

// Scheduling a time already in the past wakes the model again "now" rather
// than moving the clock backwards.
func TestEventDriven_pastSchedule(t *testing.T) {
	ctx := vsim.NewContext()
	var s vsim.EventDriven

	ctx.Schedule(10)
	if !s.Next(ctx) || ctx.Time() != 10 {
		t.Fatalf("expected advance to 10, got %d", ctx.Time())
	}
	ctx.Schedule(3)
	if !s.Next(ctx) {
		t.Fatal("expected one more iteration")
	}
	if ctx.Time() != 10 {
		t.Errorf("time moved to %d", ctx.Time())
	}
	if s.Next(ctx) {
		t.Error("expected stop on empty event queue")
	}
}

// Simulation time never decreases under either discipline.
func TestEventDriven_monotonic(t *testing.T) {
	ctx := vsim.NewContext()
	var s vsim.EventDriven

	for _, at := range []uint64{30, 7, 7, 19, 42} {
		ctx.Schedule(at)
	}
	var prev uint64
	for s.Next(ctx) {
		if ctx.Time() < prev {
			t.Fatalf("time decreased from %d to %d", prev, ctx.Time())
		}
		prev = ctx.Time()
	}
	if prev != 42 {
		t.Errorf("expected last wake at 42, got %d", prev)
	}
}

func TestFixedTick_strictIncrement(t *testing.T) {
	ctx := vsim.NewContext()
	s := &vsim.FixedTick{Ceiling: 50}

	var iter uint64
	for s.Next(ctx) {
		if ctx.Time() != iter {
			t.Fatalf("iteration %d at time %d", iter, ctx.Time())
		}
		iter++
	}
	if iter != 50 || ctx.Time() != 50 {
		t.Errorf("expected 50 iterations ending at time 50, got %d at %d", iter, ctx.Time())
	}
}

// The finish flag wins over the ceiling when raised first.
func TestFixedTick_flagBeforeCeiling(t *testing.T) {
	ctx := vsim.NewContext()
	s := &vsim.FixedTick{Ceiling: 50}

	for s.Next(ctx) {
		if ctx.Time() == 20 {
			ctx.Finish()
		}
	}
	if ctx.Time() != 20 {
		t.Errorf("expected stop at time 20, got %d", ctx.Time())
	}
}
