package animation

import (
	"github.com/jacube/cube/geometry"
	"github.com/jacube/cube/leds"
)

// BeatIndicator splashes five random colours on every beat.
type BeatIndicator struct {
	Song
	env Env
}

func NewBeatIndicator(env Env, tune string) *BeatIndicator {
	return &BeatIndicator{env: env, Song: Song{tune: tune}}
}

func (a *BeatIndicator) Tick() bool { return !a.ended() }

func (a *BeatIndicator) OnBeat() {
	for i := 0; i < 5; i++ {
		a.env.Frame.Set(a.env.random(0, leds.NumLEDs), a.env.randomColour(leds.ScanLevels-1))
	}
}

// FiveLights lights each side in turn and then the top, one per beat.
type FiveLights struct {
	Song
	env   Env
	beats int
	sides [4]geometry.Face
}

func NewFiveLights(env Env, tune string) *FiveLights {
	return &FiveLights{env: env, Song: Song{tune: tune}}
}

func (a *FiveLights) Tick() bool { return !a.ended() }

func (a *FiveLights) OnBeat() {
	a.env.Frame.Clear()
	step := a.beats % 5
	if step == 0 {
		a.sides = a.env.Compass.Sides()
	}
	if step == 4 {
		a.env.set(a.env.Compass.Up(), a.env.randomColour(leds.ScanLevels))
	} else {
		a.env.set(a.sides[step], a.env.randomColour(leds.ScanLevels))
	}
	a.beats++
}

// TinyFanfare rotates the bright colours round every LED on each beat.
type TinyFanfare struct {
	Song
	env   Env
	beats int
}

func NewTinyFanfare(env Env) *TinyFanfare {
	return &TinyFanfare{env: env, Song: Song{tune: fanfare}}
}

func (a *TinyFanfare) Tick() bool { return !a.ended() }

func (a *TinyFanfare) OnBeat() {
	a.env.Frame.Clear()
	for i := 0; i < leds.NumLEDs; i++ {
		a.env.Frame.Set(i, leds.BrightColours[a.beats%len(leds.BrightColours)])
		a.beats++
	}
	a.beats++
}

// Scatman walks a bright light round the sides, yellow for four beats then
// blue for four, with the top blinking white.
type Scatman struct {
	Song
	env   Env
	beats int
	sides [4]geometry.Face
}

func NewScatman(env Env) *Scatman {
	return &Scatman{env: env, Song: Song{tune: scatman}, sides: env.Compass.Sides()}
}

func (a *Scatman) Tick() bool { return !a.ended() }

func (a *Scatman) OnBeat() {
	a.env.Frame.Clear()
	top := leds.Colour{}
	if a.beats%2 != 0 {
		top = white
	}
	a.env.set(a.env.Compass.Up(), top)

	bright, dim := leds.Colour{R: leds.ScanLevels, G: leds.ScanLevels}, leds.Colour{R: 1, G: 1}
	if (a.beats/4)%2 != 0 {
		bright, dim = blue, leds.Colour{B: 1}
	}
	for i, side := range a.sides {
		if a.beats%4 == i {
			a.env.set(side, bright)
		} else {
			a.env.set(side, dim)
		}
	}
	a.beats++
}

// Triple alternates everything blue and red on each beat.
type Triple struct {
	Song
	env   Env
	beats int
}

func NewTriple(env Env) *Triple {
	return &Triple{env: env, Song: Song{tune: triple}}
}

func (a *Triple) Tick() bool { return !a.ended() }

func (a *Triple) OnBeat() {
	if a.beats%2 != 0 {
		a.env.setAll(red)
	} else {
		a.env.setAll(blue)
	}
	a.beats++
}

// Cobo strobes white for the opening run of sixteen notes, then spins a
// rainbow round the cube every frame.
type Cobo struct {
	Song
	env   Env
	beats int
}

const coboIntro = 16

func NewCobo(env Env) *Cobo {
	return &Cobo{env: env, Song: Song{tune: cobo}}
}

func (a *Cobo) Tick() bool {
	if a.beats >= coboIntro {
		for i := 0; i < leds.NumLEDs; i++ {
			hue := (a.beats%40*9 + i*60) % 360
			a.env.Frame.Set(i, leds.HSVToRGB(float64(hue), 100, 100))
		}
		a.beats++
	}
	return !a.ended()
}

func (a *Cobo) OnBeat() {
	if a.beats >= coboIntro {
		return
	}
	if a.beats%2 != 0 {
		a.env.setAll(white)
	} else {
		a.env.Frame.Clear()
	}
	a.beats++
}

// MOTD flashes green and blue on the beat, resting every eighth beat.
type MOTD struct {
	Song
	env   Env
	beats int
}

func NewMOTD(env Env) *MOTD {
	return &MOTD{env: env, Song: Song{tune: motd}}
}

func (a *MOTD) Tick() bool { return !a.ended() }

func (a *MOTD) OnBeat() {
	a.env.Frame.Clear()
	if a.beats%8 != 0 {
		if a.beats%2 != 0 {
			a.env.setAll(green)
		} else {
			a.env.setAll(blue)
		}
	}
	a.beats++
}

// SMT blinks every LED its own bright colour for one frame per beat.
type SMT struct {
	Song
	env Env
}

func NewSMT(env Env) *SMT {
	return &SMT{env: env, Song: Song{tune: mario2}}
}

func (a *SMT) Tick() bool {
	a.env.Frame.Clear()
	return !a.ended()
}

func (a *SMT) OnBeat() {
	for i, c := range leds.BrightColours {
		a.env.Frame.Set(i, c)
	}
}

// Tetris blinks blue every other frame.
type Tetris struct {
	Song
	env    Env
	frames int
}

func NewTetris(env Env) *Tetris {
	return &Tetris{env: env, Song: Song{tune: tetris}}
}

func (a *Tetris) Tick() bool {
	a.frames++
	if a.frames%2 != 0 {
		a.env.Frame.Clear()
	} else {
		a.env.setAll(blue)
	}
	return !a.ended()
}

func (a *Tetris) OnBeat() {}

// Intel brightens cyan over the first twelve beats and then fades it out.
type Intel struct {
	Song
	env   Env
	beats int
}

func NewIntel(env Env) *Intel {
	return &Intel{env: env, Song: Song{tune: intel}}
}

func (a *Intel) Tick() bool { return !a.ended() }

func (a *Intel) OnBeat() {
	v := a.beats
	if a.beats >= 12 {
		v = 20 - a.beats
		if v < 0 {
			v = 0
		}
	}
	if v > leds.ScanLevels {
		v = leds.ScanLevels
	}
	a.env.setAll(leds.Colour{G: uint8(v), B: uint8(v)})
	a.beats++
}

// Chirp strobes white on alternate beats.
type Chirp struct {
	Song
	env   Env
	beats int
}

func NewChirp(env Env) *Chirp {
	return &Chirp{env: env, Song: Song{tune: chirp}}
}

func (a *Chirp) Tick() bool { return !a.ended() }

func (a *Chirp) OnBeat() {
	a.env.Frame.Clear()
	if a.beats%2 != 0 {
		a.env.setAll(white)
	}
	a.beats++
}

// HCock lights one random LED white per beat.
type HCock struct {
	Song
	env Env
}

func NewHCock(env Env) *HCock {
	return &HCock{env: env, Song: Song{tune: hcock}}
}

func (a *HCock) Tick() bool { return !a.ended() }

func (a *HCock) OnBeat() {
	a.env.Frame.Clear()
	a.env.Frame.Set(a.env.random(0, leds.NumLEDs), white)
}
