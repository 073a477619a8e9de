package core

import (
	"context"
	"time"
)

// Controller owns one motor's state and runs the two cooperating components
// over it: each iteration first drains whatever commands are already
// buffered, then advances the pulse state machine one tick. Everything runs
// on a single goroutine in strict alternation, so the shared state needs no
// locks.
type Controller struct {
	Motor  MotorState
	Timing TimingState

	interp *Interpreter
	engine *Engine
	trace  TraceRing
}

// NewController builds a controller with power-on defaults and syncs the
// output pins to them.
func NewController(stream ByteStream, sig Signals, clock Clock) *Controller {
	c := &Controller{
		Motor:  MotorState{StepsPerRev: StepsPerRevCoarse},
		Timing: TimingState{BaseInterval: DefaultBaseInterval},
	}
	c.interp = NewInterpreter(&c.Motor, &c.Timing, stream, sig, clock)
	c.engine = NewEngine(&c.Motor, &c.Timing, sig, clock)
	c.engine.SetTrace(&c.trace)

	sig.SetStep(false)
	sig.SetMicrostep(false)
	sig.SetStatus(false)

	return c
}

// RunOnce processes all buffered commands, then runs one engine tick. The
// interpreter never blocks the engine for longer than decoding the commands
// whose bytes have already arrived.
func (c *Controller) RunOnce() error {
	for {
		handled, err := c.interp.TryReadCommand()
		if err != nil {
			return err
		}
		if !handled {
			break
		}
	}
	c.engine.Tick()
	return nil
}

// Run drives RunOnce until ctx is done, yielding briefly between iterations
// so transport goroutines get scheduled.
func (c *Controller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := c.RunOnce(); err != nil {
			return err
		}
		time.Sleep(10 * time.Microsecond)
	}
}

// Interpreter exposes the command interpreter, mainly so supervisors can
// observe the blocking argument-read state and set its optional timeout.
func (c *Controller) Interpreter() *Interpreter {
	return c.interp
}

// Trace returns the step edge trace ring.
func (c *Controller) Trace() *TraceRing {
	return &c.trace
}
