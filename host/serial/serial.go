package serial

import (
	"io"
)

// Port is a byte-oriented connection to the commutator firmware.
// Implementations include native serial ports and in-memory fakes used for
// testing.
type Port interface {
	io.ReadWriteCloser
}

// Config holds serial link settings.
type Config struct {
	// Device path (e.g. "/dev/ttyACM0", "COM57")
	Device string

	// Baud rate; the firmware link runs at 115200
	Baud int

	// Read timeout in milliseconds (0 = blocking). Position queries block
	// until the firmware answers, so the default stays blocking.
	ReadTimeout int
}

// DefaultConfig returns the settings the firmware expects.
func DefaultConfig(device string) *Config {
	return &Config{
		Device: device,
		Baud:   115200,
	}
}
