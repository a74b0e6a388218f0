package main

import "github.com/db47h/vsim"

// clock period of the counter design in event-driven mode
const period = 5

// counter is the demonstration design: an 8-bit counter incremented on the
// rising edge of a free-running clock, requesting finish when it wraps.
// Under the fixed-tick discipline the clock toggles every time step; under
// the event-driven discipline the model schedules its own edges one period
// apart and the driver skips the idle time in between.
type counter struct {
	ctx   *vsim.Context
	event bool

	Clk   bool  `vsim:"clk"`
	Count uint8 `vsim:"count"`
	Done  bool  `vsim:"done"`
}

func newCounter(ctx *vsim.Context, event bool) *counter {
	m := &counter{ctx: ctx, event: event}
	if event {
		ctx.Schedule(period)
	}
	return m
}

func (m *counter) Eval() {
	if m.Done {
		return
	}
	m.Clk = !m.Clk
	if m.Clk {
		m.Count++
		if m.Count == 0 {
			m.Done = true
			m.ctx.Finish()
			return
		}
	}
	if m.event {
		m.ctx.Schedule(m.ctx.Time() + period)
	}
}

func (m *counter) Final() {}

// DeclareTrace implements vsim.Traceable.
func (m *counter) DeclareTrace(w *vsim.Waveform, depth int) {
	vsim.RegisterStruct(w, "top", m)
}

// selfTest is the unit-test variant: its embedded sequence runs the counter
// through one full wrap without any driver-managed clock or tracing.
type selfTest struct {
	m *counter
}

func newSelfTest(ctx *vsim.Context) *selfTest {
	return &selfTest{m: newCounter(ctx, false)}
}

// AwaitCompletion implements vsim.SelfDriven.
func (s *selfTest) AwaitCompletion(ctx *vsim.Context) error {
	for !ctx.GotFinish() {
		s.m.Eval()
	}
	s.m.Final()
	return nil
}
