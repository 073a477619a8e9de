package core

import (
	"bytes"
	"io"
)

// ByteStream is the serial link as the control loop sees it. TryRead must
// never block; Write transmits immediately.
type ByteStream interface {
	TryRead() (byte, bool)
	Write(p []byte) (int, error)
}

// Fifo is a single-producer single-consumer ring buffer carrying inbound
// serial bytes from the transport goroutine to the control loop. One slot is
// kept free to distinguish full from empty.
type Fifo struct {
	buf   []byte
	read  int
	write int
}

// NewFifo creates a Fifo holding up to capacity-1 bytes.
func NewFifo(capacity int) *Fifo {
	return &Fifo{buf: make([]byte, capacity)}
}

// Put appends one byte. It returns false when the buffer is full and the
// byte was dropped.
func (f *Fifo) Put(b byte) bool {
	next := (f.write + 1) % len(f.buf)
	if next == f.read {
		return false
	}
	f.buf[f.write] = b
	f.write = next
	return true
}

// Get removes and returns the oldest byte, if any.
func (f *Fifo) Get() (byte, bool) {
	if f.read == f.write {
		return 0, false
	}
	b := f.buf[f.read]
	f.read = (f.read + 1) % len(f.buf)
	return b, true
}

// Len returns the number of buffered bytes.
func (f *Fifo) Len() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return len(f.buf) - f.read + f.write
}

// Reset discards all buffered bytes.
func (f *Fifo) Reset() {
	f.read = 0
	f.write = 0
}

// FifoStream adapts a receive Fifo plus a transmit writer into a ByteStream.
// Hardware targets feed RX from their serial reader goroutine and point TX at
// the serial transmitter.
type FifoStream struct {
	RX *Fifo
	TX io.Writer
}

func (s *FifoStream) TryRead() (byte, bool) {
	return s.RX.Get()
}

func (s *FifoStream) Write(p []byte) (int, error) {
	return s.TX.Write(p)
}

// LoopStream is an in-memory ByteStream for tests: input bytes are queued
// with Feed and everything the firmware transmits is captured.
type LoopStream struct {
	in  []byte
	out bytes.Buffer
}

// Feed queues inbound bytes for the control loop to read.
func (s *LoopStream) Feed(p []byte) {
	s.in = append(s.in, p...)
}

// FeedString queues an inbound command string.
func (s *LoopStream) FeedString(str string) {
	s.Feed([]byte(str))
}

func (s *LoopStream) TryRead() (byte, bool) {
	if len(s.in) == 0 {
		return 0, false
	}
	b := s.in[0]
	s.in = s.in[1:]
	return b, true
}

func (s *LoopStream) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// Sent returns everything written to the stream so far.
func (s *LoopStream) Sent() []byte {
	return s.out.Bytes()
}
