package behaviour

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/jacube/cube/leds"
	"github.com/jacube/cube/orientation"
	"github.com/jacube/cube/sensors"
)

type fakeClock struct {
	now     time.Time
	slept   time.Duration
	onSleep func(d time.Duration)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	if c.onSleep != nil {
		c.onSleep(d)
	}
	c.now = c.now.Add(d)
	c.slept += d
	return nil
}

type fakeSensors struct {
	// sample returns the n'th reading, counting from 0.
	sample   func(n int) sensors.Sample
	reads    int
	enables  int
	disables int
	fail     bool
}

func constant(s sensors.Sample) func(int) sensors.Sample {
	return func(int) sensors.Sample { return s }
}

func (f *fakeSensors) Enable() int { f.enables++; return 1 }
func (f *fakeSensors) Disable()    { f.disables++ }

func (f *fakeSensors) Sample() (sensors.Sample, error) {
	if f.fail {
		return sensors.Sample{}, errFakeRead
	}
	s := f.sample(f.reads)
	f.reads++
	return s, nil
}

func (f *fakeSensors) Magnetometer() (sensors.Vector, error) {
	s, err := f.Sample()
	return s.Mag, err
}

type fakeError string

func (e fakeError) Error() string { return string(e) }

const errFakeRead = fakeError("short read")

type fakeBody struct {
	vibrations []bool
	tones      []float64
}

func (b *fakeBody) Vibrate(on bool) { b.vibrations = append(b.vibrations, on) }
func (b *fakeBody) Tone(hz float64) { b.tones = append(b.tones, hz) }

func (b *fakeBody) vibrating() bool {
	return len(b.vibrations) > 0 && b.vibrations[len(b.vibrations)-1]
}

func (b *fakeBody) everVibrated() bool {
	for _, v := range b.vibrations {
		if v {
			return true
		}
	}
	return false
}

type fakeDisplay struct {
	starts, stops int
	running       bool
}

func (d *fakeDisplay) Start() { d.starts++; d.running = true }
func (d *fakeDisplay) Stop()  { d.stops++; d.running = false }

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Observe(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) count(k EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// heading returns a level sample (face 4 up) putting nose 1 on deg.
func heading(deg float64) sensors.Sample {
	r := deg * math.Pi / 180
	return sensors.Sample{
		Accel: sensors.Vector{Z: 1},
		Mag:   sensors.Vector{X: 300 * math.Cos(r), Y: 300 * math.Sin(r)},
	}
}

// noseUp is a sample with nose 1 pointing at the sky, so no bearing.
var noseUp = sensors.Sample{Accel: sensors.Vector{X: -1}, Mag: sensors.Vector{X: 300}}

type rig struct {
	m       *Machine
	clock   *fakeClock
	sensors *fakeSensors
	body    *fakeBody
	display *fakeDisplay
	frame   *leds.FrameBuffer
	events  *recorder
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.VibrateThreshold = 10
	cfg.ApoplexyThreshold = 40
	cfg.ApoplexySleepCycles = 10
	cfg.AnimsBetweenNoseChanges = [2]int{2, 3}
	cfg.CyclesBetweenAnims = [2]int{2, 3}
	return cfg
}

func newRig(cfg Config, target int, sample func(int) sensors.Sample) *rig {
	r := &rig{
		clock:   newFakeClock(),
		sensors: &fakeSensors{sample: sample},
		body:    &fakeBody{},
		display: &fakeDisplay{},
		frame:   &leds.FrameBuffer{},
		events:  &recorder{},
	}
	hw := Hardware{
		Sensors: r.sensors,
		Body:    r.body,
		Display: r.display,
		Frame:   r.frame,
		Clock:   r.clock,
	}
	r.m = NewMachine(cfg, hw, orientation.NewEngine(1), target, rand.New(rand.NewSource(7)), r.events)
	return r
}
