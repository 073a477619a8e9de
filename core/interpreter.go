package core

import (
	"encoding/binary"
	"errors"
	"runtime"
)

// Command opcodes as they appear on the wire. Each command is a single
// character; P and T carry a decimal argument terminated by 'X'.
const (
	OpSetTarget       = 'P'
	OpIdentify        = 'F'
	OpReset           = 'R'
	OpSetBaseInterval = 'T'
	OpMicrostepOn     = 'M'
	OpMicrostepOff    = 'N'
	OpPause           = 'S'
	OpResume          = 'G'
	OpQueryPosition   = 'Q'
)

// argTerminator ends the decimal argument of P and T.
const argTerminator = 'X'

// Identify flash sequence: fixed count, fixed on/off durations.
const (
	identifyFlashes = 5
	identifyOnUS    = 100000
	identifyOffUS   = 100000
)

// ErrArgTimeout reports that the blocking argument read hit the optional
// deadline before the terminator arrived.
var ErrArgTimeout = errors.New("argument read timed out")

// Interpreter decodes inbound command bytes and applies their side effects
// to the shared motor and timing state.
type Interpreter struct {
	motor  *MotorState
	timing *TimingState
	stream ByteStream
	sig    Signals
	clock  Clock

	// ArgTimeout bounds the blocking argument read, in microseconds. Zero
	// disables the bound, in which case a dropped terminator byte stalls
	// the whole control loop until more bytes arrive. That unbounded wait
	// matches the original wire contract; enable the timeout only when the
	// host is allowed to observe ErrArgTimeout.
	ArgTimeout uint32

	reading bool
	argBuf  []byte
}

// NewInterpreter wires an interpreter to shared state.
func NewInterpreter(motor *MotorState, timing *TimingState, stream ByteStream, sig Signals, clock Clock) *Interpreter {
	return &Interpreter{
		motor:  motor,
		timing: timing,
		stream: stream,
		sig:    sig,
		clock:  clock,
		argBuf: make([]byte, 0, 16),
	}
}

// TryReadCommand decodes at most one pending command, returning false
// without blocking when no byte is waiting.
//
// Decoding the argument of P or T is the single intentional blocking point
// in the firmware: the motion engine does not advance until the terminator
// arrives, so hosts must transmit arguments promptly. Reading reports that
// state while it lasts.
func (in *Interpreter) TryReadCommand() (bool, error) {
	op, ok := in.stream.TryRead()
	if !ok {
		return false, nil
	}

	switch op {
	case OpSetTarget:
		v, err := in.readArg()
		if err != nil {
			return true, err
		}
		in.motor.Target = v

	case OpSetBaseInterval:
		v, err := in.readArg()
		if err != nil {
			return true, err
		}
		// No range check: a zero or negative interval produces
		// degenerate timing and is the operator's problem.
		in.timing.BaseInterval = uint32(v)

	case OpReset:
		in.reset()

	case OpMicrostepOn:
		in.setMicrostep(true)

	case OpMicrostepOff:
		in.setMicrostep(false)

	case OpPause:
		in.motor.Paused = true
		in.sig.SetStatus(true)

	case OpResume:
		in.motor.Paused = false
		in.sig.SetStatus(false)

	case OpQueryPosition:
		var resp [4]byte
		binary.LittleEndian.PutUint32(resp[:], uint32(in.motor.Position))
		if _, err := in.stream.Write(resp[:]); err != nil {
			return true, err
		}

	case OpIdentify:
		in.identify()

	default:
		// The link has no framing beyond the opcode characters; stray
		// bytes are dropped.
	}

	return true, nil
}

// Reading reports whether the interpreter is inside the blocking argument
// sub-read.
func (in *Interpreter) Reading() bool {
	return in.reading
}

// readArg accumulates decimal characters until the terminator, polling the
// stream. CR and LF bytes inside the argument are discarded before parsing.
func (in *Interpreter) readArg() (int32, error) {
	in.reading = true
	in.argBuf = in.argBuf[:0]
	defer func() { in.reading = false }()

	start := in.clock.Now()
	for {
		b, ok := in.stream.TryRead()
		if !ok {
			if in.ArgTimeout != 0 && in.clock.Now()-start >= in.ArgTimeout {
				return 0, ErrArgTimeout
			}
			runtime.Gosched()
			continue
		}
		if b == argTerminator {
			break
		}
		if b == '\r' || b == '\n' {
			continue
		}
		in.argBuf = append(in.argBuf, b)
	}
	return parseDecimal(in.argBuf), nil
}

// reset restores the power-on state with fine microstepping re-enabled.
func (in *Interpreter) reset() {
	in.motor.Position = 0
	in.motor.Target = 0
	in.motor.Paused = false
	in.timing.BaseInterval = DefaultBaseInterval
	in.timing.EffectiveInterval = 0
	in.timing.PulseActive = false
	in.timing.EdgeTime = in.clock.Now()
	in.timing.NextDeadline = 0
	in.setMicrostep(true)
	in.sig.SetStep(false)
	in.sig.SetStatus(false)
}

// setMicrostep switches the drive resolution. The change applies to
// subsequent distance and deceleration calculations only; the position
// counter is not rescaled.
func (in *Interpreter) setMicrostep(fine bool) {
	if fine {
		in.motor.StepsPerRev = StepsPerRevFine
	} else {
		in.motor.StepsPerRev = StepsPerRevCoarse
	}
	in.sig.SetMicrostep(fine)
}

// identify flashes the status indicator so an operator can tell units apart.
// The sequence blocks command and motion processing for its duration.
func (in *Interpreter) identify() {
	for i := 0; i < identifyFlashes; i++ {
		in.sig.SetStatus(true)
		in.clock.Sleep(identifyOnUS)
		in.sig.SetStatus(false)
		in.clock.Sleep(identifyOffUS)
	}
}

// parseDecimal parses an optionally signed ASCII decimal. Anything that is
// not a clean integer parses to zero: the recovery policy for malformed
// arguments is "treat as zero", never an error.
func parseDecimal(buf []byte) int32 {
	if len(buf) == 0 {
		return 0
	}

	i := 0
	negative := false
	switch buf[0] {
	case '-':
		negative = true
		i++
	case '+':
		i++
	}
	if i == len(buf) {
		return 0
	}

	var v int32
	for ; i < len(buf); i++ {
		c := buf[i]
		if c < '0' || c > '9' {
			return 0
		}
		v = v*10 + int32(c-'0')
	}
	if negative {
		v = -v
	}
	return v
}
