// Package leds drives the six tri-colour LEDs, one per face, that share three
// colour lines. A scanner lights one LED at a time fast enough to look
// continuous, and varies how many scan passes each channel is on for to get
// ScanLevels of brightness.
package leds

import "sync/atomic"

const (
	// NumLEDs is the number of multiplexed LEDs.
	NumLEDs = 6
	// ScanLevels is the number of brightness steps. A channel at ScanLevels
	// is always on.
	ScanLevels = 8
)

// FrameBuffer holds the colour of every LED. Writers and the scanner may run
// concurrently: each LED is stored in a single word so a colour is never seen
// half written, though a multi-LED update may be displayed part done.
type FrameBuffer struct {
	cells [NumLEDs]atomic.Uint32
}

// Set colours LED pos. Out of range positions are ignored.
func (fb *FrameBuffer) Set(pos int, c Colour) {
	if pos < 0 || pos >= NumLEDs {
		return
	}
	fb.cells[pos].Store(pack(c.clamped()))
}

// SetGrey sets every channel of LED pos to v.
func (fb *FrameBuffer) SetGrey(pos int, v uint8) {
	fb.Set(pos, Grey(v))
}

// SetAll colours every LED.
func (fb *FrameBuffer) SetAll(c Colour) {
	for i := 0; i < NumLEDs; i++ {
		fb.Set(i, c)
	}
}

// Get returns the colour of LED pos, or black if pos is out of range.
func (fb *FrameBuffer) Get(pos int) Colour {
	if pos < 0 || pos >= NumLEDs {
		return Colour{}
	}
	return unpack(fb.cells[pos].Load())
}

// Snapshot returns every LED's colour.
func (fb *FrameBuffer) Snapshot() [NumLEDs]Colour {
	var s [NumLEDs]Colour
	for i := range s {
		s[i] = fb.Get(i)
	}
	return s
}

// Clear turns every LED off.
func (fb *FrameBuffer) Clear() {
	fb.SetAll(Colour{})
}

func pack(c Colour) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func unpack(v uint32) Colour {
	return Colour{uint8(v >> 16), uint8(v >> 8), uint8(v)}
}
