package behaviour

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/jacube/cube/leds"
	"github.com/jacube/cube/sensors"
)

func TestUnhappyExitsOnFourthHappyReading(t *testing.T) {
	r := newRig(testConfig(), 0, constant(heading(10)))
	r.m.player.refresh()
	u := newUnhappy(context.Background(), r.m)

	for i := 1; i <= 3; i++ {
		if !u.Tick() {
			t.Fatalf("exited after %d happy readings", i)
		}
		if u.HappyReadings() != i {
			t.Fatalf("happy readings %d, want %d", u.HappyReadings(), i)
		}
	}
	if u.Tick() {
		t.Fatal("still unhappy after 4 happy readings")
	}
	if r.body.vibrating() {
		t.Fatal("left vibrating")
	}
}

func TestUnhappyHappyReadingsAccumulate(t *testing.T) {
	r := newRig(testConfig(), 0, constant(heading(10)))
	u := newUnhappy(context.Background(), r.m)

	facing := heading(10)
	away := heading(180)
	for i, s := range []sensors.Sample{facing, away, facing, away, facing} {
		r.m.engine.UpdateHeading(s)
		if !u.Tick() {
			t.Fatalf("exited at reading %d", i)
		}
	}
	r.m.engine.UpdateHeading(facing)
	if u.Tick() {
		t.Fatal("expected exit on the fourth on bearing reading")
	}
}

func TestApoplexyCoolsDownUntilPoked(t *testing.T) {
	cfg := testConfig()
	poke := false
	sample := func(int) sensors.Sample {
		s := heading(180)
		if poke {
			s.Mag.X += 100
		}
		return s
	}
	r := newRig(cfg, 0, sample)
	r.m.player.refresh()

	checks := 0
	var flashes []leds.Colour
	r.clock.onSleep = func(d time.Duration) {
		switch d {
		case time.Duration(cfg.ApoplexySleepLength) * cfg.SleepCycle:
			checks++
			if checks == 7 {
				poke = true
			}
		case cfg.ApoplexyFlashOn:
			flashes = append(flashes, r.frame.Get(0))
		}
	}

	u := newUnhappy(context.Background(), r.m)
	u.unhappiness = cfg.ApoplexyThreshold + 1
	u.happyReadings = 3

	if !u.Tick() {
		t.Fatal("unexpected exit")
	}
	if u.Unhappiness() != 1 || u.HappyReadings() != 0 {
		t.Fatalf("unhappiness %d happy readings %d, want 1 and 0", u.Unhappiness(), u.HappyReadings())
	}
	if len(r.body.vibrations) < 2 || !r.body.vibrations[0] || r.body.vibrations[1] {
		t.Fatalf("vibrations %v, want on then off", r.body.vibrations)
	}
	if checks != 7 {
		t.Fatalf("%d checks, want 7", checks)
	}
	if len(flashes) != cfg.ApoplexyFlashes {
		t.Fatalf("%d flashes, want one pulse of %d", len(flashes), cfg.ApoplexyFlashes)
	}
	for _, c := range flashes {
		if c != (leds.Colour{R: cfg.ApoplexyFlashLevel}) {
			t.Fatalf("flash colour %+v", c)
		}
	}
	if r.events.count(EventApoplexy) != 1 || r.events.count(EventPoked) != 1 || r.events.count(EventCalmed) != 0 {
		t.Fatalf("events %+v", r.events.events)
	}
	if !r.display.running {
		t.Fatal("display not restarted after the cool down")
	}
}

func TestApoplexyRunsItsCourse(t *testing.T) {
	cfg := testConfig()
	r := newRig(cfg, 0, constant(heading(180)))
	r.m.player.refresh()

	pulses := 0
	r.clock.onSleep = func(d time.Duration) {
		if d == cfg.ApoplexyFlashOn {
			pulses++
		}
	}
	u := newUnhappy(context.Background(), r.m)
	u.unhappiness = cfg.ApoplexyThreshold + 1
	u.Tick()

	want := cfg.ApoplexySleepCycles / cfg.ApoplexyPulseEvery * cfg.ApoplexyFlashes
	if pulses != want {
		t.Fatalf("%d flashes, want %d", pulses, want)
	}
	if r.events.count(EventCalmed) != 1 {
		t.Fatal("cool down did not finish")
	}
	long := time.Duration(cfg.ApoplexySleepCycles*cfg.ApoplexySleepLength) * cfg.SleepCycle
	if r.clock.slept < long {
		t.Fatalf("slept %v, want at least %v", r.clock.slept, long)
	}
}

func TestApoplexyCancelled(t *testing.T) {
	cfg := testConfig()
	r := newRig(cfg, 0, constant(heading(180)))
	ctx, cancel := context.WithCancel(context.Background())
	r.clock.onSleep = func(time.Duration) { cancel() }

	u := newUnhappy(ctx, r.m)
	u.unhappiness = cfg.ApoplexyThreshold + 1
	u.Tick()
	if r.clock.slept != cfg.SleepCycle*time.Duration(cfg.ApoplexySleepLength) {
		t.Fatalf("slept %v after cancel", r.clock.slept)
	}
}

func TestUnhappyLights(t *testing.T) {
	r := newRig(testConfig(), 0, constant(heading(180)))
	r.m.player.refresh()
	u := newUnhappy(context.Background(), r.m)
	const nose, tail = 1, 0

	u.Tick()
	if r.frame.Get(tail).Off() || !r.frame.Get(2).Off() || !r.frame.Get(nose).Off() {
		t.Fatalf("tick 1: %v", r.frame.Snapshot())
	}
	u.Tick()
	if r.frame.Get(nose).Off() {
		t.Fatal("tick 2: nose should flash on")
	}
	u.Tick()
	fb := r.frame.Snapshot()
	if !fb[tail].Off() || fb[nose].Off() {
		t.Fatalf("tick 3: %v", fb)
	}
	for _, side := range []int{2, 3, 4, 5} {
		if fb[side].Off() {
			t.Fatalf("tick 3: side %d dark", side)
		}
	}
	for i := 0; i < 3; i++ {
		u.Tick()
	}
	fb = r.frame.Snapshot()
	for i, c := range fb {
		if i != nose && !c.Off() {
			t.Fatalf("tick 6: LED %d lit", i)
		}
	}
}

func TestUnhappyLightsWithoutBearing(t *testing.T) {
	r := newRig(testConfig(), 0, constant(noseUp))
	r.m.player.refresh()
	u := newUnhappy(context.Background(), r.m)
	u.Tick()
	for i, c := range r.frame.Snapshot() {
		if i != 1 && c.Off() {
			t.Fatalf("LED %d dark with no bearing", i)
		}
	}
}

func TestUnhappyToneAndHue(t *testing.T) {
	r := newRig(testConfig(), 0, constant(heading(180)))
	u := newUnhappy(context.Background(), r.m)
	cfg := r.m.cfg

	if u.tone() != cfg.ToneLow || u.hue() != cfg.HueCalm {
		t.Fatalf("calm tone %v hue %v", u.tone(), u.hue())
	}
	u.unhappiness = cfg.VibrateThreshold
	if math.Abs(u.hue()-cfg.HueCalm/2) > 1e-9 {
		t.Fatalf("hue %v, want half way", u.hue())
	}
	u.unhappiness = 2 * cfg.VibrateThreshold
	if u.hue() != 0 {
		t.Fatalf("hue %v, want red", u.hue())
	}
	u.unhappiness = 3 * cfg.VibrateThreshold
	if u.tone() != cfg.ToneHigh {
		t.Fatalf("tone %v, want top", u.tone())
	}
	u.unhappiness = 30 * cfg.VibrateThreshold
	if u.tone() != cfg.ToneHigh {
		t.Fatalf("tone %v, want capped", u.tone())
	}
}

func TestUnhappyVibratesPastThreshold(t *testing.T) {
	r := newRig(testConfig(), 0, constant(heading(180)))
	r.m.player.refresh()
	u := newUnhappy(context.Background(), r.m)
	for i := 0; i <= r.m.cfg.VibrateThreshold; i++ {
		u.Tick()
		if r.body.vibrating() {
			t.Fatalf("vibrating at unhappiness %d", u.Unhappiness())
		}
	}
	u.Tick()
	if !r.body.vibrating() {
		t.Fatal("not vibrating past the threshold")
	}
}
