package animation

import "github.com/jacube/cube/leds"

// Phases of the becoming happy animation.
const (
	happyRising = iota
	happyCountdown
	happyGlow
	happyDone
)

// HappyAnim celebrates getting back on bearing: a purple fade in with the
// opening run, green lights counting up, a red and blue flash, then a long
// green glow that fades out after the tune.
type HappyAnim struct {
	Song
	env   Env
	phase int
	count int
}

func NewHappyAnim(env Env) *HappyAnim {
	return &HappyAnim{env: env, Song: Song{tune: happyTune}}
}

const (
	happyRiseBeats  = 16
	happyFlashBeat  = 24
	happyBlueBeat   = 26
	happyLastBeat   = 27
	happyGlowFrames = 200
	happyGlowStep   = 25
)

func (a *HappyAnim) Tick() bool {
	if a.phase == happyGlow {
		v := leds.ScanLevels - 1 - a.count/happyGlowStep
		if v < 0 {
			v = 0
		}
		a.env.setAll(leds.Colour{G: uint8(v)})
		if a.count >= happyGlowFrames {
			a.env.Frame.Clear()
			a.phase = happyDone
		}
		a.count++
	}
	return a.phase != happyDone
}

func (a *HappyAnim) OnBeat() {
	if a.phase == happyRising {
		if a.count >= happyRiseBeats {
			a.phase = happyCountdown
		} else {
			v := uint8(a.count / 2)
			a.env.setAll(leds.Colour{R: v, B: v})
		}
	}

	if a.phase == happyCountdown {
		switch {
		case a.count < happyFlashBeat:
			a.env.Frame.Set(a.count-happyRiseBeats, green)
		case a.count == happyFlashBeat:
			a.env.setAll(red)
		case a.count == happyBlueBeat:
			a.env.setAll(blue)
		case a.count >= happyLastBeat:
			a.env.setAll(green)
			a.phase = happyGlow
			a.count = 0
			return
		}
	}

	a.count++
}
