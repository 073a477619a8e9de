package core

// Firmware defaults, applied at power-on and restored by the reset command.
const (
	// DefaultBaseInterval is the full-speed time between step edges in
	// microseconds.
	DefaultBaseInterval = 5000

	// StepsPerRevCoarse is the full-step resolution of the driver.
	StepsPerRevCoarse = 200

	// StepsPerRevFine is the resolution with microstepping enabled.
	StepsPerRevFine = 3200

	// minSpeedFactor floors the deceleration profile. As the remaining
	// distance approaches zero the step interval approaches
	// BaseInterval/minSpeedFactor instead of growing without bound, so the
	// motor never stalls waiting for an infinite deadline. The value is
	// part of the mechanical tuning and must not change.
	minSpeedFactor = 0.02
)

// MotorState is the dead-reckoned view of the motor. Position changes by
// exactly one per completed step pulse; Target may be overwritten at any
// time, including mid-pulse. There are no position bounds.
type MotorState struct {
	Position    int32
	Target      int32
	StepsPerRev int32
	Paused      bool
}

// TimingState carries the pulse generator state. EffectiveInterval is
// recomputed on every tick as a pure function of the remaining distance; it
// is only cached here for the current tick's edge decision.
//
// EdgeTime is the clock stamp of the most recent step edge. Elapsed time is
// always derived as now-EdgeTime with unsigned arithmetic, so a counter wrap
// inside a measurement window is benign.
type TimingState struct {
	BaseInterval      uint32
	EffectiveInterval uint32
	PulseActive       bool
	EdgeTime          uint32
	NextDeadline      uint32
}
