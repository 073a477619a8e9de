package core

// Engine turns the difference between the commanded target and the
// dead-reckoned position into a step pulse train. Tick is called once per
// loop iteration and never blocks: pulse edges fire only when the elapsed
// time since the previous edge reaches the armed deadline, however many
// ticks that takes.
type Engine struct {
	motor  *MotorState
	timing *TimingState
	sig    Signals
	clock  Clock
	trace  *TraceRing
}

// NewEngine wires an engine to shared state. The trace ring is optional.
func NewEngine(motor *MotorState, timing *TimingState, sig Signals, clock Clock) *Engine {
	return &Engine{
		motor:  motor,
		timing: timing,
		sig:    sig,
		clock:  clock,
	}
}

// SetTrace attaches a post-mortem edge trace.
func (e *Engine) SetTrace(trace *TraceRing) {
	e.trace = trace
}

// Tick advances the pulse state machine by one iteration.
func (e *Engine) Tick() {
	pos := e.motor.Position
	target := e.motor.Target

	forward := pos <= target
	e.sig.SetDirection(forward)

	remaining := target - pos
	if remaining < 0 {
		remaining = -remaining
	}

	// Recomputed every tick; stale values must never carry an old
	// deceleration decision across a target change.
	e.timing.EffectiveInterval = e.stepInterval(remaining)

	if e.motor.Paused || remaining == 0 {
		// Hold state: step low, no pulse in flight. Idempotent.
		e.sig.SetStep(false)
		e.timing.PulseActive = false
		return
	}

	e.sig.SetEnable(true)

	now := e.clock.Now()
	elapsed := now - e.timing.EdgeTime
	if elapsed < e.timing.NextDeadline {
		return
	}

	if !e.timing.PulseActive {
		e.sig.SetStep(true)
		e.timing.PulseActive = true
		e.timing.NextDeadline = e.timing.EffectiveInterval
		e.timing.EdgeTime = now
		e.trace.Record(EdgeRise, now, e.timing.EffectiveInterval, e.motor.Position)
		return
	}

	// Completing the pulse is the one place position moves.
	e.sig.SetStep(false)
	e.timing.PulseActive = false
	e.timing.NextDeadline = e.timing.EffectiveInterval
	e.timing.EdgeTime = now
	if forward {
		e.motor.Position++
	} else {
		e.motor.Position--
	}
	e.trace.Record(EdgeFall, now, e.timing.EffectiveInterval, e.motor.Position)
}

// stepInterval maps the remaining distance to the half-period of the pulse
// train. Beyond an eighth of a revolution the motor runs at the base
// interval; inside it the interval grows hyperbolically, reaching
// BaseInterval/minSpeedFactor in the limit. The float math and the 0.02
// constant are part of the mechanical tuning and are kept exactly.
func (e *Engine) stepInterval(remaining int32) uint32 {
	threshold := e.motor.StepsPerRev / 8
	if remaining > threshold {
		return e.timing.BaseInterval
	}
	factor := (1-minSpeedFactor)*(float64(remaining)/float64(threshold)) + minSpeedFactor
	return uint32(float64(e.timing.BaseInterval) / factor)
}
