// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package vsimtest provides scripted models and recording trace sinks for
// testing simulation drivers.
//
package vsimtest

import (
	"fmt"

	"github.com/db47h/vsim"
)

// A Log records the order of model and sink calls across a run. Share one
// Log between a model and a SinkRecorder to assert interleaving.
//
type Log struct {
	Events []string
}

func (l *Log) add(format string, args ...interface{}) {
	if l != nil {
		l.Events = append(l.Events, fmt.Sprintf(format, args...))
	}
}

// Script is a model driven by an external clock. It raises the finish flag
// on Ctx the first time it is evaluated at or past FinishAt, unless Never is
// set.
//
type Script struct {
	Ctx      *vsim.Context
	FinishAt uint64
	Never    bool
	Log      *Log

	Evals     int
	EvalTimes []uint64
	Finals    int
}

// Eval records the call and possibly raises the finish flag.
func (s *Script) Eval() {
	s.Evals++
	t := s.Ctx.Time()
	s.EvalTimes = append(s.EvalTimes, t)
	s.Log.add("eval@%d", t)
	if !s.Never && t >= s.FinishAt {
		s.Ctx.Finish()
	}
}

// Final records the call.
func (s *Script) Final() {
	s.Finals++
	s.Log.add("final")
}

// EventScript is a model for event-driven runs. It schedules the given wake
// times up front; when evaluated at the last of them it queues one
// additional same-time wake and raises the finish flag on that final
// evaluation, so the finishing sample coincides with the last event time.
//
type EventScript struct {
	Ctx *vsim.Context
	Log *Log

	Evals     int
	EvalTimes []uint64
	Finals    int

	lastWake     uint64
	finishQueued bool
}

// NewEventScript schedules wakes on ctx and returns the model.
//
func NewEventScript(ctx *vsim.Context, wakes ...uint64) *EventScript {
	s := &EventScript{Ctx: ctx}
	for _, t := range wakes {
		ctx.Schedule(t)
		if t > s.lastWake {
			s.lastWake = t
		}
	}
	return s
}

// Eval records the call and runs the finish handshake at the last wake.
func (s *EventScript) Eval() {
	s.Evals++
	t := s.Ctx.Time()
	s.EvalTimes = append(s.EvalTimes, t)
	s.Log.add("eval@%d", t)
	if t != s.lastWake {
		return
	}
	if !s.finishQueued {
		s.finishQueued = true
		s.Ctx.Schedule(t)
	} else {
		s.Ctx.Finish()
	}
}

// Final records the call.
func (s *EventScript) Final() {
	s.Finals++
	s.Log.add("final")
}

// SelfTest is a self-driven model: AwaitCompletion raises the finish flag
// unless Skip is set, and returns Err as-is.
//
type SelfTest struct {
	Skip bool
	Err  error
}

// AwaitCompletion implements vsim.SelfDriven.
func (s *SelfTest) AwaitCompletion(ctx *vsim.Context) error {
	if s.Err != nil {
		return s.Err
	}
	if !s.Skip {
		ctx.Finish()
	}
	return nil
}
