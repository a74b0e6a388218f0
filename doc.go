/*
Package vsim drives a steppable hardware-simulation model through time,
captures a waveform trace of its signals and detects simulation termination.

The model under test is opaque to this package: anything implementing Eval
and Final can be driven. Two timing disciplines are provided, a fixed-tick
clock that re-evaluates the model every time unit, and an event-driven clock
that advances straight to the next time the model asked to be woken at. The
discipline is a Strategy value handed to the Driver, not a compiled-in fork.

All simulation state (current time, pending events, the finish flag) lives in
an explicitly passed Context rather than package-level globals, so several
independent simulations can coexist in one process.
*/
package vsim
