// Package animation holds the cube's light shows. Each one is stepped a frame
// at a time by the behaviour player and may carry a tune whose notes it
// reacts to.
package animation

import (
	"math/rand"

	"github.com/jacube/cube/geometry"
	"github.com/jacube/cube/leds"
	"github.com/jacube/cube/melody"
)

// Animation is called once per frame (about 50ms) until Tick returns false or
// the player gives up on it. OnBeat is called on each note and rest of the
// animation's tune, if it has one.
type Animation interface {
	Tick() bool
	OnBeat()
}

// Tuned is implemented by animations with a tune. The player builds the
// sequencer and hands it back through Attach before the first frame.
type Tuned interface {
	Tune() string
	Attach(seq *melody.Sequencer)
}

// Compass is the view of the orientation cache animations may read.
type Compass interface {
	Up() geometry.Face
	Nose() geometry.Face
	Sides() [4]geometry.Face
	FaceClosestToBearing(target int) (geometry.Face, bool)
}

// Env is what an animation draws on and reads from.
type Env struct {
	Frame   *leds.FrameBuffer
	Compass Compass
	// Target returns the current target bearing.
	Target func() int
	Rand   *rand.Rand
}

func (e Env) set(f geometry.Face, c leds.Colour) {
	e.Frame.Set(int(f), c)
}

func (e Env) setAll(c leds.Colour) {
	e.Frame.SetAll(c)
}

// random returns an int in [lo, hi).
func (e Env) random(lo, hi int) int {
	return lo + e.Rand.Intn(hi-lo)
}

// randomColour returns a colour with every channel in [0, hi).
func (e Env) randomColour(hi int) leds.Colour {
	return leds.Colour{
		R: uint8(e.random(0, hi)),
		G: uint8(e.random(0, hi)),
		B: uint8(e.random(0, hi)),
	}
}

func (e Env) bearingFace() geometry.Face {
	target := 0
	if e.Target != nil {
		target = e.Target()
	}
	f, ok := e.Compass.FaceClosestToBearing(target)
	if !ok {
		return geometry.Invalid
	}
	return f
}

// Song gives an animation a tune. Embed it and call ended to know when the
// tune is over.
type Song struct {
	tune string
	seq  *melody.Sequencer
}

func (s *Song) Tune() string {
	return s.tune
}

func (s *Song) Attach(seq *melody.Sequencer) {
	s.seq = seq
}

// ended reports whether the tune has finished. Without a tune it never does.
func (s *Song) ended() bool {
	return s.seq != nil && s.seq.Finished()
}

// Silent is embedded by animations that ignore beats.
type Silent struct{}

func (Silent) OnBeat() {}

var (
	white = leds.Grey(leds.ScanLevels)
	red   = leds.Colour{R: leds.ScanLevels}
	green = leds.Colour{G: leds.ScanLevels}
	blue  = leds.Colour{B: leds.ScanLevels}
)
