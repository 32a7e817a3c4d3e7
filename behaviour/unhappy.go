package behaviour

import (
	"context"
	"log"
	"math"

	"github.com/jacube/cube/geometry"
	"github.com/jacube/cube/leds"
	"github.com/jacube/cube/sensors"
)

// Unhappy is the animation played while the nose is off bearing. It gets
// steadily more agitated, redder, higher pitched and eventually vibrating,
// until the cube has been back on bearing for long enough. If that takes too
// long it gives up and sleeps for a while.
type Unhappy struct {
	m   *Machine
	ctx context.Context // of the Play call running this animation

	unhappiness   int
	happyReadings int

	pulse      int // 0 tail, 1 sides, 2 nose only
	pulseTicks int
	noseTicks  int
	noseColour leds.Colour
}

func newUnhappy(ctx context.Context, m *Machine) *Unhappy {
	return &Unhappy{m: m, ctx: ctx}
}

// Unhappiness is the number of frames spent unhappy since the last cool down.
func (u *Unhappy) Unhappiness() int {
	return u.unhappiness
}

// HappyReadings is the number of on bearing frames seen so far.
func (u *Unhappy) HappyReadings() int {
	return u.happyReadings
}

func (u *Unhappy) OnBeat() {}

func (u *Unhappy) Tick() bool {
	m, cfg := u.m, u.m.cfg

	m.body.Vibrate(u.unhappiness > cfg.VibrateThreshold)

	if u.unhappiness > cfg.ApoplexyThreshold {
		u.unhappiness = 0
		u.happyReadings = 0
		m.setUnhappiness(0)
		m.body.Vibrate(false)
		m.apoplexy(u.ctx)
	}
	u.unhappiness++
	m.setUnhappiness(u.unhappiness)

	u.pulseTicks++
	if u.pulseTicks > 2 {
		u.pulseTicks = 0
		u.pulse = (u.pulse + 1) % 3
	}

	c := leds.HSVToRGB(u.hue(), 100, 100)
	nose := m.engine.Nose()
	tail := geometry.Opposite(nose)
	if _, ok := m.engine.FaceClosestToBearing(m.Target()); !ok {
		m.frame.SetAll(c)
	} else {
		m.frame.Clear()
		switch u.pulse {
		case 0:
			m.frame.Set(int(tail), c)
		case 1:
			for _, f := range geometry.Faces {
				if f != nose && f != tail {
					m.frame.Set(int(f), c)
				}
			}
		}
	}

	u.noseTicks++
	if u.noseTicks >= 2 {
		u.noseTicks = 0
		if u.noseColour.Off() {
			u.noseColour = leds.BrightColours[m.rand.Intn(len(leds.BrightColours))]
		} else {
			u.noseColour = leds.Colour{}
		}
	}
	m.frame.Set(int(nose), u.noseColour)

	m.body.Tone(u.tone())

	if m.engine.IsFacingBearing(m.Target(), cfg.Leeway) {
		u.happyReadings++
	}
	if u.happyReadings >= cfg.HappyReadings {
		m.body.Vibrate(false)
		return false
	}
	return true
}

// hue sweeps from calm to red over twice the vibrate threshold.
func (u *Unhappy) hue() float64 {
	limit := 2 * u.m.cfg.VibrateThreshold
	if u.unhappiness >= limit {
		return 0
	}
	return float64(limit-u.unhappiness) / float64(limit) * u.m.cfg.HueCalm
}

// tone glides up over three times the vibrate threshold.
func (u *Unhappy) tone() float64 {
	cfg := u.m.cfg
	frac := math.Min(1, float64(u.unhappiness)/float64(3*cfg.VibrateThreshold))
	return (cfg.ToneHigh-cfg.ToneLow)*frac + cfg.ToneLow
}

// apoplexy sleeps off a fit of unhappiness. It checks in every few sleeps,
// pulsing red now and then, and stops early if the cube is moved.
func (m *Machine) apoplexy(ctx context.Context) {
	cfg := m.cfg
	log.Printf("Cube Info: apoplectic, cooling down for up to %d checks\n", cfg.ApoplexySleepCycles)
	m.player.observe(Event{Kind: EventApoplexy})

	snapshot, err := m.sensors.Magnetometer()
	if err != nil {
		m.player.logDbg("Cube Info: apoplexy snapshot failed: %s\n", err)
	}

	defer func() {
		m.display.Start()
		m.player.enable()
	}()

	pulse := 0
	for i := 0; i < cfg.ApoplexySleepCycles; i++ {
		if err := m.player.SleepLong(ctx, cfg.ApoplexySleepLength); err != nil {
			return
		}
		m.player.enable()
		m.player.refresh()

		if mag, err := m.sensors.Magnetometer(); err == nil && poked(snapshot, mag, cfg.ApoplexyPokeDelta) {
			log.Printf("Cube Info: poked after %d checks, back to being unhappy\n", i+1)
			m.player.observe(Event{Kind: EventPoked, Count: i + 1})
			return
		}

		if pulse >= cfg.ApoplexyPulseEvery-1 {
			pulse = 0
			m.display.Start()
			for x := 0; x < cfg.ApoplexyFlashes; x++ {
				m.frame.SetAll(leds.Colour{R: cfg.ApoplexyFlashLevel})
				if m.clock.Sleep(ctx, cfg.ApoplexyFlashOn) != nil {
					return
				}
				m.frame.Clear()
				if m.clock.Sleep(ctx, cfg.ApoplexyFlashOff) != nil {
					return
				}
			}
		} else {
			pulse++
		}
	}
	m.player.observe(Event{Kind: EventCalmed})
}

// poked reports whether the field has moved by more than delta on any axis.
func poked(before, after sensors.Vector, delta float64) bool {
	return math.Abs(after.X-before.X) > delta ||
		math.Abs(after.Y-before.Y) > delta ||
		math.Abs(after.Z-before.Z) > delta
}
