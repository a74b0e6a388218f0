package vsim

// A Model is the instantiated hardware design under test. The Driver treats
// it as an opaque steppable object: it never inspects registers, memory or
// any other design state.
//
// Eval runs one combinational/sequential settle pass. It is idempotent with
// respect to unchanged inputs and always safe to call. Final flushes any
// pending internal state (coverage counters, deferred writes); the Driver
// calls it exactly once, after all evaluation and tracing has ceased.
//
type Model interface {
	Eval()
	Final()
}

// A Traceable model can register its signals into a waveform sink. The
// Driver calls DeclareTrace once, before opening the sink. depth bounds the
// hierarchy depth recorded: a signal named "a.b.c" sits at depth 3.
//
type Traceable interface {
	DeclareTrace(w *Waveform, depth int)
}

// A SelfDriven model embeds its own test sequence and needs no external
// clock: AwaitCompletion runs the sequence to the point where the model
// raises the finish flag on ctx, then returns. See RunSelfTest.
//
type SelfDriven interface {
	AwaitCompletion(ctx *Context) error
}
