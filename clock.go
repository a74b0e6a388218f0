// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

// A Strategy is a timing discipline for the Driver's run loop. Next advances
// the simulation time for the coming iteration and reports whether the loop
// should keep running. The Driver evaluates the model and dumps one trace
// sample after every true return:
//
//	for strategy.Next(ctx) {
//		model.Eval()
//		sink.Dump(ctx.Time())
//	}
//
type Strategy interface {
	Next(ctx *Context) bool
}

// FixedTick re-evaluates the model once per time unit, unconditionally. It
// trades efficiency for simplicity and uniform sampling: there is no notion
// of "nothing happened".
//
// A non-zero Ceiling bounds the run: the loop stops as soon as the
// simulation time reaches it, whether or not the model ever raises the
// finish flag.
//
type FixedTick struct {
	Ceiling uint64

	started bool
}

// Next stops on the finish flag, otherwise advances time by exactly 1 and
// stops when the ceiling is reached. The first call leaves time at 0 so that
// the model is evaluated and sampled at every time unit starting there.
//
func (s *FixedTick) Next(ctx *Context) bool {
	if ctx.GotFinish() {
		return false
	}
	if !s.started {
		s.started = true
		return true
	}
	ctx.timeInc(1)
	return s.Ceiling == 0 || ctx.Time() < s.Ceiling
}

// EventDriven delegates time advancement to the model: each iteration jumps
// to the earliest time the model scheduled with Context.Schedule, which may
// be more than one unit ahead, enabling sparse evaluation while the model is
// idle between clock edges or I/O waits. Wait-for-duration constructs inside
// the hardware description cannot be honored under an externally imposed
// fixed tick; yielding the increment decision to the model is what makes
// them work.
//
type EventDriven struct{}

// Next stops on the finish flag and otherwise advances to the next pending
// event. A model that stalls, leaving no event queued and the finish flag
// down, stops the loop rather than hanging it.
//
func (EventDriven) Next(ctx *Context) bool {
	if ctx.GotFinish() {
		return false
	}
	return ctx.advanceToNextEvent()
}
