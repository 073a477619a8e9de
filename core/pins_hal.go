package core

//go:generate mockgen -source=pins_hal.go -destination=mock_signals.go -package=core

// Signals is the capability interface for the driver-facing outputs. Core
// code asserts logical signals only; implementations translate them to
// hardware levels. In particular the driver enable input is active low, so
// SetEnable(true) must drive that pin low.
type Signals interface {
	// SetDirection asserts the direction output. forward selects the
	// positive-position sense of rotation.
	SetDirection(forward bool)

	// SetStep drives the step pulse output.
	SetStep(high bool)

	// SetMicrostep drives both mode-select inputs of the driver. fine
	// selects the microstepped resolution.
	SetMicrostep(fine bool)

	// SetEnable turns the driver output stage on or off.
	SetEnable(on bool)

	// SetStatus drives the status indicator.
	SetStatus(on bool)
}
