// Package commutator drives the commutator firmware from the host side.
// Positions at this level are angles in radians; the controller converts
// them to motor steps using the active drive resolution and the configured
// sense of rotation before putting command bytes on the wire.
package commutator

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"sync"

	"commutator/host/serial"
)

// Fixed resolutions of the firmware's two drive modes.
const (
	stepsPerTurnCoarse = 200
	stepsPerTurnFine   = 3200
)

// Config holds controller construction settings.
type Config struct {
	// Sense is the mechanical direction of positive angles, +1 or -1.
	// Defaults to +1.
	Sense int

	// Microstep enables the fine drive mode during initialization.
	Microstep bool

	// StepTime is the full-speed step interval in microseconds. Defaults
	// to 312, the tuning of the original rigs.
	StepTime int
}

// Controller is the host-side counterpart of the firmware's command
// interpreter. All methods are safe for concurrent use; the original host
// application drives it from both a GUI thread and an updater loop.
type Controller struct {
	mu   sync.Mutex
	port serial.Port

	sense        int
	stepsPerTurn int
	microstep    bool
	stepTime     int
}

// New initializes a controller over an open port: reset the firmware, put
// the driver in a known drive mode and program the step time.
func New(port serial.Port, cfg Config) (*Controller, error) {
	if cfg.Sense == 0 {
		cfg.Sense = 1
	}
	if cfg.StepTime == 0 {
		cfg.StepTime = 312
	}

	c := &Controller{
		port:         port,
		sense:        cfg.Sense,
		stepsPerTurn: stepsPerTurnCoarse,
	}

	if err := c.Reset(); err != nil {
		return nil, err
	}
	if err := c.DisableMicrostep(); err != nil {
		return nil, err
	}
	if cfg.Microstep {
		if err := c.EnableMicrostep(); err != nil {
			return nil, err
		}
	}
	if err := c.SetStepTime(cfg.StepTime); err != nil {
		return nil, err
	}

	return c, nil
}

// Reset zeroes the firmware's position and target.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write("R")
}

// PosReset re-zeroes the firmware while preserving the drive mode and step
// time. The firmware's reset side effects (fine mode, default interval) are
// undone by replaying the current settings.
func (c *Controller) PosReset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.write("R"); err != nil {
		return err
	}
	if c.microstep {
		if err := c.enableMicrostep(); err != nil {
			return err
		}
	} else {
		if err := c.disableMicrostep(); err != nil {
			return err
		}
	}
	return c.setStepTime(c.stepTime)
}

// Stop pauses motion; the firmware holds the current position.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write("S")
}

// Resume continues motion toward the last commanded target.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write("G")
}

// Identify makes the firmware flash its status indicator so the operator
// can tell units apart. The firmware blocks for the flash sequence.
func (c *Controller) Identify() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write("F")
}

// SetPosition commands a new target angle in radians.
func (c *Controller) SetPosition(angle float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	steps := int(float64(c.stepsPerTurn) * angle / (2 * math.Pi))
	return c.write("P" + strconv.Itoa(c.sense*steps) + "X")
}

// SetStepTime programs the full-speed step interval in microseconds.
func (c *Controller) SetStepTime(us int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setStepTime(us)
}

// StepTime returns the programmed full-speed step interval.
func (c *Controller) StepTime() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepTime
}

// StepsPerTurn returns the step count of one revolution in the active drive
// mode.
func (c *Controller) StepsPerTurn() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepsPerTurn
}

// EnableMicrostep switches the firmware to the fine drive mode.
func (c *Controller) EnableMicrostep() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enableMicrostep()
}

// DisableMicrostep switches the firmware to the coarse drive mode.
func (c *Controller) DisableMicrostep() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disableMicrostep()
}

// QueryPosition reads back the motor angle in radians. It blocks until the
// firmware transmits its 4-byte little-endian position.
func (c *Controller) QueryPosition() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.write("Q"); err != nil {
		return 0, err
	}

	var raw [4]byte
	if _, err := io.ReadFull(c.port, raw[:]); err != nil {
		return 0, fmt.Errorf("read position: %w", err)
	}
	steps := int32(binary.LittleEndian.Uint32(raw[:]))

	return float64(c.sense) * 2 * math.Pi * float64(steps) / float64(c.stepsPerTurn), nil
}

func (c *Controller) setStepTime(us int) error {
	if err := c.write("T" + strconv.Itoa(us) + "X"); err != nil {
		return err
	}
	c.stepTime = us
	return nil
}

func (c *Controller) enableMicrostep() error {
	if err := c.write("M"); err != nil {
		return err
	}
	c.microstep = true
	c.stepsPerTurn = stepsPerTurnFine
	return nil
}

func (c *Controller) disableMicrostep() error {
	if err := c.write("N"); err != nil {
		return err
	}
	c.microstep = false
	c.stepsPerTurn = stepsPerTurnCoarse
	return nil
}

func (c *Controller) write(s string) error {
	if _, err := c.port.Write([]byte(s)); err != nil {
		return fmt.Errorf("write %q: %w", s, err)
	}
	return nil
}
