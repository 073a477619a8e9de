//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"

	"commutator/core"
)

var (
	rxFifo *core.Fifo

	// Debug counters
	bytesDropped uint32
	loopErrors   uint32
)

// serialWriter transmits through the USB CDC port.
type serialWriter struct{}

func (serialWriter) Write(p []byte) (int, error) {
	return machine.Serial.Write(p)
}

func main() {
	machine.Serial.Configure(machine.UARTConfig{})

	sig := newBoardSignals()
	rxFifo = core.NewFifo(256)
	stream := &core.FifoStream{RX: rxFifo, TX: serialWriter{}}

	ctl := core.NewController(stream, sig, core.NewWallClock())

	// Start serial reader goroutine
	go serialReaderLoop()

	// Main loop - start immediately
	for {
		if err := ctl.RunOnce(); err != nil {
			loopErrors++
		}

		// Yield to the reader goroutine
		time.Sleep(10 * time.Microsecond)
	}
}

// serialReaderLoop runs in a goroutine to continuously read serial data
// into the receive FIFO for the control loop.
func serialReaderLoop() {
	for {
		if machine.Serial.Buffered() == 0 {
			// Yield to avoid a busy loop
			time.Sleep(100 * time.Microsecond)
			continue
		}

		b, err := machine.Serial.ReadByte()
		if err != nil {
			continue
		}

		if !rxFifo.Put(b) {
			// Buffer full - the control loop is behind
			bytesDropped++
			time.Sleep(1 * time.Millisecond)
		}
	}
}
