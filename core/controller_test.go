package core

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func newTestController() (*Controller, *LoopStream, *recordingSignals, *SimClock) {
	stream := &LoopStream{}
	sig := &recordingSignals{}
	clock := NewSimClock()
	return NewController(stream, sig, clock), stream, sig, clock
}

// spinTo runs the control loop with a fixed time quantum until the motor
// reaches its target.
func spinTo(t *testing.T, c *Controller, clock *SimClock, target int32) {
	t.Helper()
	for i := 0; i < 2000000; i++ {
		if err := c.RunOnce(); err != nil {
			t.Fatalf("RunOnce failed: %v", err)
		}
		if c.Motor.Position == target {
			return
		}
		clock.Advance(500)
	}
	t.Fatalf("Motor never reached %d (position %d)", target, c.Motor.Position)
}

func TestDefaults(t *testing.T) {
	c, _, sig, _ := newTestController()

	if c.Motor.Position != 0 || c.Motor.Target != 0 || c.Motor.Paused {
		t.Errorf("Unexpected initial motor state: %+v", c.Motor)
	}
	if c.Motor.StepsPerRev != StepsPerRevCoarse {
		t.Errorf("Initial StepsPerRev = %d, want %d", c.Motor.StepsPerRev, StepsPerRevCoarse)
	}
	if c.Timing.BaseInterval != DefaultBaseInterval {
		t.Errorf("Initial BaseInterval = %d, want %d", c.Timing.BaseInterval, DefaultBaseInterval)
	}
	if sig.step || sig.fine || sig.status {
		t.Error("Output pins should start deasserted")
	}
}

func TestQueryRoundTrip(t *testing.T) {
	c, stream, _, clock := newTestController()

	// A query queued right behind a retarget answers with the old
	// position: both commands drain before the engine moves.
	stream.FeedString("P100XQ")
	if err := c.RunOnce(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(stream.Sent(), []byte{0, 0, 0, 0}) {
		t.Fatalf("Query before motion = % X, want old position 0", stream.Sent())
	}

	spinTo(t, c, clock, 100)

	stream.FeedString("Q")
	if err := c.RunOnce(); err != nil {
		t.Fatal(err)
	}
	var want [4]byte
	binary.LittleEndian.PutUint32(want[:], 100)
	if !bytes.Equal(stream.Sent()[4:], want[:]) {
		t.Errorf("Query after motion = % X, want % X", stream.Sent()[4:], want)
	}
}

func TestDrainsAllBufferedCommands(t *testing.T) {
	c, stream, _, _ := newTestController()

	// Three commands buffered back to back are all applied by a single
	// iteration.
	stream.FeedString("SMT312X")
	if err := c.RunOnce(); err != nil {
		t.Fatal(err)
	}
	if !c.Motor.Paused {
		t.Error("S not applied")
	}
	if c.Motor.StepsPerRev != StepsPerRevFine {
		t.Error("M not applied")
	}
	if c.Timing.BaseInterval != 312 {
		t.Error("T not applied")
	}
}

func TestResetOverWire(t *testing.T) {
	c, stream, _, clock := newTestController()

	stream.FeedString("P40XT100XS")
	if err := c.RunOnce(); err != nil {
		t.Fatal(err)
	}
	clock.Advance(12345)

	stream.FeedString("R")
	if err := c.RunOnce(); err != nil {
		t.Fatal(err)
	}

	if c.Motor.Position != 0 || c.Motor.Target != 0 || c.Motor.Paused {
		t.Errorf("Reset left motor state: %+v", c.Motor)
	}
	if c.Motor.StepsPerRev != StepsPerRevFine {
		t.Errorf("Reset StepsPerRev = %d, want %d", c.Motor.StepsPerRev, StepsPerRevFine)
	}
}

func TestPauseResumeOverWire(t *testing.T) {
	c, stream, _, clock := newTestController()

	stream.FeedString("P50X")
	if err := c.RunOnce(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 40; i++ {
		if err := c.RunOnce(); err != nil {
			t.Fatal(err)
		}
		clock.Advance(500)
	}

	stream.FeedString("S")
	if err := c.RunOnce(); err != nil {
		t.Fatal(err)
	}
	snapshot := c.Motor
	for i := 0; i < 100; i++ {
		if err := c.RunOnce(); err != nil {
			t.Fatal(err)
		}
		clock.Advance(5000)
	}
	if c.Motor != snapshot {
		t.Errorf("Motor state changed while paused: %+v -> %+v", snapshot, c.Motor)
	}

	stream.FeedString("G")
	if err := c.RunOnce(); err != nil {
		t.Fatal(err)
	}
	spinTo(t, c, clock, 50)
}

func TestRetargetMidMove(t *testing.T) {
	c, stream, _, clock := newTestController()

	stream.FeedString("P1000X")
	if err := c.RunOnce(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 200; i++ {
		if err := c.RunOnce(); err != nil {
			t.Fatal(err)
		}
		clock.Advance(500)
	}
	if c.Motor.Position == 0 || c.Motor.Position == 1000 {
		t.Fatalf("Expected mid-move position, got %d", c.Motor.Position)
	}

	// Reverse course mid-move; the engine must converge on the new target.
	stream.FeedString("P-20X")
	if err := c.RunOnce(); err != nil {
		t.Fatal(err)
	}
	spinTo(t, c, clock, -20)
}

func TestTraceAfterMove(t *testing.T) {
	c, stream, _, clock := newTestController()

	stream.FeedString("P2X")
	if err := c.RunOnce(); err != nil {
		t.Fatal(err)
	}
	spinTo(t, c, clock, 2)

	events := c.Trace().Events()
	if len(events) != 4 {
		t.Fatalf("Expected 4 trace edges for 2 pulses, got %d", len(events))
	}
	if events[len(events)-1].Position != 2 {
		t.Errorf("Final traced position = %d, want 2", events[len(events)-1].Position)
	}
}
