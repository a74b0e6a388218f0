// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// A TraceSink captures one waveform sample per Dump call. It must not be
// written to before Open succeeds nor after Close. The Driver guarantees
// that Dump timestamps never decrease and that Close runs exactly once, on
// every exit path.
//
type TraceSink interface {
	Open(path string) error
	Dump(t uint64)
	Close() error
}

// A Driver owns one model and one optional trace sink and runs the
// simulation loop under a given timing Strategy. Exactly one goroutine may
// use a Driver; the run is synchronous from construction to Final.
//
type Driver struct {
	// Out receives the two status lines printed by Run. Nil means stdout.
	Out io.Writer

	ctx      *Context
	model    Model
	strategy Strategy
	sink     TraceSink
}

// New returns a Driver for the given model and timing discipline.
//
func New(ctx *Context, m Model, s Strategy) *Driver {
	return &Driver{ctx: ctx, model: m, strategy: s}
}

// Trace attaches a trace sink and opens it at path. When sink is a
// *Waveform, the model must implement Traceable and gets to declare its
// signals before the file is opened; other sinks are opened as-is. An open
// failure leaves the Driver without a sink and no partial run happens.
//
func (d *Driver) Trace(sink TraceSink, path string) error {
	if w, ok := sink.(*Waveform); ok {
		tm, ok := d.model.(Traceable)
		if !ok {
			return errors.New("model does not support tracing")
		}
		tm.DeclareTrace(w, w.MaxDepth())
	}
	if err := sink.Open(path); err != nil {
		return errors.Wrap(err, "open trace "+path)
	}
	d.sink = sink
	return nil
}

// Run drives the model until the strategy stops the loop, then closes the
// trace sink, finalizes the model and reports the final simulation time.
// Evaluation always precedes the trace sample for the same timestamp. The
// trace is closed before Final so that a model flushing coverage or
// deferred writes during Final can never append to the waveform.
//
// Run is single-shot: a Driver must not be reused for a second run.
//
func (d *Driver) Run() error {
	out := d.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, "starting simulation...")
	for d.strategy.Next(d.ctx) {
		d.model.Eval()
		if d.sink != nil {
			d.sink.Dump(d.ctx.Time())
		}
	}
	var err error
	if d.sink != nil {
		err = d.sink.Close()
		d.sink = nil
	}
	d.model.Final()
	fmt.Fprintf(out, "simulation completed at time %d\n", d.ctx.Time())
	return errors.Wrap(err, "close trace")
}

// RunSelfTest drives a self-contained test model: no clock stepping, no
// tracing, no evaluation loop in this layer. The model's embedded test
// sequence runs to completion and is expected to raise the finish flag on
// ctx itself; a model returning without doing so is an error.
//
func RunSelfTest(ctx *Context, m SelfDriven) error {
	if err := m.AwaitCompletion(ctx); err != nil {
		return errors.Wrap(err, "self-driven model")
	}
	if !ctx.GotFinish() {
		return errors.New("model returned without requesting finish")
	}
	return nil
}
