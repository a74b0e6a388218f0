// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

import "sort"

// A Context holds the state of one simulation run: the current simulation
// time, the finish flag raised by the model, and, for event-driven runs, the
// set of times the model asked to be woken at.
//
// A Context is bound to a single Model at construction time and must not be
// shared between concurrently running simulations.
//
type Context struct {
	time   uint64
	events []uint64 // pending wake times, kept sorted
	finish bool
}

// NewContext returns a fresh Context with simulation time 0.
//
func NewContext() *Context {
	return &Context{}
}

// Time returns the current simulation time.
//
func (c *Context) Time() uint64 {
	return c.time
}

// Finish raises the termination flag. The model calls this when a stop
// directive inside the hardware description executes. Raising the flag more
// than once has no further effect.
//
func (c *Context) Finish() {
	c.finish = true
}

// GotFinish reports whether the model requested termination.
//
func (c *Context) GotFinish() bool {
	return c.finish
}

// Schedule registers t as a wake time for the model. Times earlier than the
// current simulation time are treated as "now": the model is re-evaluated
// once more without advancing the clock.
//
func (c *Context) Schedule(t uint64) {
	if t < c.time {
		t = c.time
	}
	i := sort.Search(len(c.events), func(i int) bool { return c.events[i] >= t })
	c.events = append(c.events, 0)
	copy(c.events[i+1:], c.events[i:])
	c.events[i] = t
}

// Pending reports whether any wake time is still queued.
//
func (c *Context) Pending() bool {
	return len(c.events) > 0
}

// advanceToNextEvent moves the simulation time to the earliest pending wake
// time and removes every queued entry sharing it. The next event may fall on
// the current time, in which case the clock does not move but the model still
// gets one more evaluation. Returns false if the queue is empty.
//
func (c *Context) advanceToNextEvent() bool {
	if len(c.events) == 0 {
		return false
	}
	t := c.events[0]
	n := 1
	for n < len(c.events) && c.events[n] == t {
		n++
	}
	c.events = c.events[n:]
	c.time = t
	return true
}

// timeInc advances the simulation time by d. Used by the fixed-tick strategy.
//
func (c *Context) timeInc(d uint64) {
	c.time += d
}
