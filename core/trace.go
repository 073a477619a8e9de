package core

// Step edge trace for post-mortem timing analysis. Recording is non-blocking
// and cheap enough to stay enabled while stepping.

const traceRingSize = 32

// Edge type codes.
const (
	EdgeRise = 1 // step signal asserted
	EdgeFall = 2 // step signal deasserted, position advanced
)

// TraceEvent captures one step edge.
type TraceEvent struct {
	Edge     uint8
	Clock    uint32 // microsecond stamp at the edge
	Interval uint32 // effective interval armed for the next deadline
	Position int32  // position after the edge
}

// TraceRing keeps the most recent step edges in a fixed ring.
type TraceRing struct {
	events [traceRingSize]TraceEvent
	head   uint8
}

// Record stores one edge, overwriting the oldest entry when full.
func (r *TraceRing) Record(edge uint8, clock, interval uint32, pos int32) {
	if r == nil {
		return
	}
	r.events[r.head] = TraceEvent{
		Edge:     edge,
		Clock:    clock,
		Interval: interval,
		Position: pos,
	}
	r.head = (r.head + 1) % traceRingSize
}

// Events returns the recorded edges from oldest to newest.
func (r *TraceRing) Events() []TraceEvent {
	if r == nil {
		return nil
	}
	out := make([]TraceEvent, 0, traceRingSize)
	for i := uint8(0); i < traceRingSize; i++ {
		idx := (r.head + i) % traceRingSize
		evt := r.events[idx]
		if evt.Edge == 0 {
			continue
		}
		out = append(out, evt)
	}
	return out
}

// Clear empties the ring.
func (r *TraceRing) Clear() {
	for i := range r.events {
		r.events[i] = TraceEvent{}
	}
	r.head = 0
}
