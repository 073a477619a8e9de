//go:build rp2040 || rp2350

package main

import (
	"machine"
)

// Pin assignment for the A4988/DRV8825-style driver board.
const (
	stepPin   = machine.GP2
	dirPin    = machine.GP3
	ms1Pin    = machine.GP4
	ms2Pin    = machine.GP5
	enablePin = machine.GP6 // active low
)

// boardSignals drives the motor signals through the RP2040 GPIO block.
type boardSignals struct {
	status machine.Pin
}

func newBoardSignals() *boardSignals {
	out := machine.PinConfig{Mode: machine.PinOutput}
	stepPin.Configure(out)
	dirPin.Configure(out)
	ms1Pin.Configure(out)
	ms2Pin.Configure(out)
	enablePin.Configure(out)
	machine.LED.Configure(out)

	// Driver disabled until motion starts.
	enablePin.High()

	return &boardSignals{status: machine.LED}
}

func (s *boardSignals) SetDirection(forward bool) {
	dirPin.Set(forward)
}

func (s *boardSignals) SetStep(high bool) {
	stepPin.Set(high)
}

// SetMicrostep selects 1/16 microstepping when fine, full steps otherwise.
func (s *boardSignals) SetMicrostep(fine bool) {
	ms1Pin.Set(fine)
	ms2Pin.Set(fine)
}

func (s *boardSignals) SetEnable(on bool) {
	// Enable input is active low.
	enablePin.Set(!on)
}

func (s *boardSignals) SetStatus(on bool) {
	s.status.Set(on)
}
