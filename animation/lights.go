package animation

import (
	"github.com/jacube/cube/geometry"
	"github.com/jacube/cube/leds"
)

// ScanFade ramps every LED through the grey levels, each a step behind its
// neighbour. It never ends by itself.
type ScanFade struct {
	Silent
	env  Env
	vals [leds.NumLEDs]uint8
}

func NewScanFade(env Env) *ScanFade {
	a := &ScanFade{env: env}
	for i := range a.vals {
		a.vals[i] = uint8(i)
	}
	return a
}

func (a *ScanFade) Tick() bool {
	for i := range a.vals {
		a.vals[i]++
		if a.vals[i] > leds.ScanLevels {
			a.vals[i] = 0
		}
		a.env.Frame.SetGrey(i, a.vals[i])
	}
	return true
}

// Twinkle sets one or two random LEDs to random dim colours every frame until
// its tune ends. With no tune it only stops on timeout.
type Twinkle struct {
	Silent
	Song
	env Env
}

func NewTwinkle(env Env, tune string) *Twinkle {
	return &Twinkle{env: env, Song: Song{tune: tune}}
}

func (a *Twinkle) Tick() bool {
	n := a.env.random(1, 3)
	for i := 0; i < n; i++ {
		a.env.Frame.Set(a.env.random(0, leds.NumLEDs), a.env.randomColour(leds.ScanLevels-1))
	}
	return !a.ended()
}

// Pulse fades every LED up in blue, then red, then green.
type Pulse struct {
	Silent
	env    Env
	val    uint8
	pulses int
}

func NewPulse(env Env) *Pulse {
	env.Frame.Clear()
	return &Pulse{env: env}
}

func (a *Pulse) Tick() bool {
	var c leds.Colour
	switch a.pulses {
	case 0:
		c.B = a.val
	case 1:
		c.R = a.val
	default:
		c.G = a.val
	}

	a.val++
	if a.val >= leds.ScanLevels {
		a.val = 0
		a.pulses++
	}

	a.env.setAll(c)
	return a.pulses < 3
}

// Circle chases a white light once round the sides, starting from the first
// side, three frames per face.
type Circle struct {
	Silent
	env   Env
	state int
	count int
	start geometry.Face
}

func NewCircle(env Env) *Circle {
	return &Circle{env: env}
}

const circleFrames = 3

func (a *Circle) Tick() bool {
	if a.state == 0 && a.count == 0 {
		a.start = a.env.Compass.Sides()[0]
	}

	a.count++
	if a.count >= circleFrames {
		a.count = 0
		a.state++
	}

	up := a.env.Compass.Up()
	a.env.Frame.Clear()
	switch a.state {
	case 0:
		a.env.set(a.start, white)
	case 1:
		a.env.set(geometry.Clockwise(a.start, up), white)
	case 2:
		a.env.set(geometry.Opposite(a.start), white)
	case 3:
		a.env.set(geometry.Anticlockwise(a.start, up), white)
	}
	return a.state < 4
}

// BearingIndicator shows which way to turn: the face closest to the target
// bearing is lit, the faces either side of it pulse, and the top and bottom
// flash. Used from the console to set the cube up.
type BearingIndicator struct {
	Silent
	env   Env
	pulse uint8
	flash uint8
}

func NewBearingIndicator(env Env) *BearingIndicator {
	return &BearingIndicator{env: env}
}

func (a *BearingIndicator) Tick() bool {
	a.pulse++
	if a.pulse >= leds.ScanLevels {
		a.pulse = 0
	}
	if a.flash == 0 {
		a.flash = leds.ScanLevels - 1
	} else {
		a.flash = 0
	}

	up := a.env.Compass.Up()
	f := a.env.bearingFace()
	a.env.set(f, leds.Grey(leds.ScanLevels-1))
	a.env.set(geometry.Opposite(f), leds.Colour{})
	a.env.set(geometry.Clockwise(f, up), leds.Grey(a.pulse))
	a.env.set(geometry.Anticlockwise(f, up), leds.Grey(a.pulse))
	a.env.set(up, leds.Grey(a.flash))
	a.env.set(geometry.Opposite(up), leds.Grey(a.flash))
	return true
}
