// Package behaviour is the cube's personality. It polls the orientation,
// plays happy animations now and then while the nose is on bearing, throws a
// tantrum when it is not, and keeps quiet while a magnet is held to it.
package behaviour

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jacube/cube/animation"
	"github.com/jacube/cube/geometry"
	"github.com/jacube/cube/leds"
	"github.com/jacube/cube/orientation"
)

// Hardware is everything the behaviour loop drives.
type Hardware struct {
	Sensors Sensors
	Body    Body
	Display Display
	Frame   *leds.FrameBuffer
	Clock   Clock
}

// Status is a snapshot of the machine for display.
type Status struct {
	State                State
	Orientation          orientation.State
	Target               int
	Unhappiness          int
	AnimsUntilNoseChange int
	CyclesUntilNextAnim  int
}

// Machine is the behaviour loop. Run it from one goroutine; Target,
// SetTarget, Status and Exclusive may be called from anywhere.
type Machine struct {
	cfg     Config
	engine  *orientation.Engine
	frame   *leds.FrameBuffer
	display Display
	sensors Sensors
	body    Body
	clock   Clock
	rand    *rand.Rand
	player  *Player

	target      atomic.Int32
	state       atomic.Int32
	unhappiness atomic.Int32

	// busy is held while the loop or an Exclusive caller is using the hardware.
	busy sync.Mutex

	counters             sync.Mutex
	animsUntilNoseChange int
	cyclesUntilNextAnim  int
}

// ErrBearingRange is returned for target bearings outside 0..359.
var ErrBearingRange = errors.New("behaviour: bearing must be 0..359")

// NewMachine returns a machine aiming for target. rng drives every random
// choice; seed it from sensor noise.
func NewMachine(cfg Config, hw Hardware, engine *orientation.Engine, target int, rng *rand.Rand, observer Observer) *Machine {
	m := &Machine{
		cfg:     cfg,
		engine:  engine,
		frame:   hw.Frame,
		display: hw.Display,
		sensors: hw.Sensors,
		body:    hw.Body,
		clock:   hw.Clock,
		rand:    rng,
	}
	m.player = &Player{
		cfg:      cfg,
		engine:   engine,
		frame:    hw.Frame,
		display:  hw.Display,
		sensors:  hw.Sensors,
		body:     hw.Body,
		clock:    hw.Clock,
		observer: observer,
		state:    m.State,
		unhappy:  func() int { return int(m.unhappiness.Load()) },
	}
	m.target.Store(int32(orientation.NormaliseDegrees(target)))
	m.resetCounters()
	return m
}

func (m *Machine) random(r [2]int) int {
	if r[1] <= r[0] {
		return r[0]
	}
	return r[0] + m.rand.Intn(r[1]-r[0])
}

func (m *Machine) resetCounters() {
	m.counters.Lock()
	m.animsUntilNoseChange = m.random(m.cfg.AnimsBetweenNoseChanges)
	m.cyclesUntilNextAnim = m.random(m.cfg.CyclesBetweenAnims)
	m.counters.Unlock()
}

// Target returns the bearing the nose should point at.
func (m *Machine) Target() int {
	return int(m.target.Load())
}

// SetTarget changes the bearing the nose should point at.
func (m *Machine) SetTarget(deg int) error {
	if deg < 0 || deg >= 360 {
		return ErrBearingRange
	}
	m.target.Store(int32(deg))
	return nil
}

// State returns the state of the last step.
func (m *Machine) State() State {
	return State(m.state.Load())
}

func (m *Machine) setState(s State) {
	m.state.Store(int32(s))
}

func (m *Machine) setUnhappiness(n int) {
	m.unhappiness.Store(int32(n))
}

// Engine returns the orientation cache the machine updates.
func (m *Machine) Engine() *orientation.Engine {
	return m.engine
}

// Status returns a snapshot for display.
func (m *Machine) Status() Status {
	m.counters.Lock()
	defer m.counters.Unlock()
	return Status{
		State:                m.State(),
		Orientation:          m.engine.State(),
		Target:               m.Target(),
		Unhappiness:          int(m.unhappiness.Load()),
		AnimsUntilNoseChange: m.animsUntilNoseChange,
		CyclesUntilNextAnim:  m.cyclesUntilNextAnim,
	}
}

// Exclusive runs fn between steps of the loop, with nothing else touching
// the hardware.
func (m *Machine) Exclusive(fn func()) {
	m.busy.Lock()
	defer m.busy.Unlock()
	fn()
}

// Run steps the loop until ctx is cancelled.
func (m *Machine) Run(ctx context.Context) error {
	log.Printf("Cube Info: behaviour loop starting, target bearing %d, nose %v\n", m.Target(), m.engine.Nose())
	for {
		if _, err := m.Step(ctx); err != nil {
			m.player.off()
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// Step runs one pass of the loop and returns the state it was in.
func (m *Machine) Step(ctx context.Context) (State, error) {
	m.busy.Lock()
	defer m.busy.Unlock()

	p := m.player
	p.enable()
	p.refresh()

	mag, err := m.sensors.Magnetometer()
	if err == nil && orientation.Pacified(mag, m.cfg.PacificationThreshold) {
		m.setState(Pacified)
		p.logDbg("Cube Info: magnetically pacified\n")
		p.observe(Event{Kind: EventStep})
		return Pacified, p.SleepLong(ctx, 1)
	}

	if m.engine.IsFacingBearing(m.Target(), m.cfg.Leeway) {
		m.setState(Oriented)
		m.setUnhappiness(0)
		p.observe(Event{Kind: EventStep})
		return Oriented, m.oriented(ctx)
	}

	m.setState(Misoriented)
	p.observe(Event{Kind: EventStep})
	return Misoriented, m.misoriented(ctx)
}

func (m *Machine) oriented(ctx context.Context) error {
	m.counters.Lock()
	due := m.cyclesUntilNextAnim <= 0
	if !due {
		m.cyclesUntilNextAnim--
	}
	m.counters.Unlock()

	if due {
		if err := m.playHappy(ctx, -1); err != nil {
			return err
		}
		m.counters.Lock()
		m.cyclesUntilNextAnim = m.random(m.cfg.CyclesBetweenAnims)
		m.animsUntilNoseChange--
		m.counters.Unlock()
	}

	m.counters.Lock()
	change := m.animsUntilNoseChange <= 0
	if change {
		m.animsUntilNoseChange = m.random(m.cfg.AnimsBetweenNoseChanges)
	}
	m.counters.Unlock()
	if change {
		m.changeNose()
	}

	return m.player.SleepLong(ctx, 1)
}

// changeNose picks a new nose, never the current one.
func (m *Machine) changeNose() {
	old := m.engine.Nose()
	nose := old
	for nose == old {
		nose = geometry.Face(m.rand.Intn(geometry.NumFaces))
	}
	m.engine.SetNose(nose)
	log.Printf("Cube Info: nose changed from %v to %v\n", old, nose)
	m.player.observe(Event{Kind: EventNoseChange, Note: fmt.Sprintf("%v->%v", old, nose)})
}

func (m *Machine) misoriented(ctx context.Context) error {
	u := newUnhappy(ctx, m)
	p := m.player
	p.observe(Event{Kind: EventAnimation, Note: "unhappy"})
	if err := p.Play(ctx, u, 0); err != nil {
		return err
	}
	m.setUnhappiness(0)

	p.observe(Event{Kind: EventAnimation, Note: "happy"})
	if err := p.Play(ctx, animation.NewHappyAnim(m.env()), 0); err != nil {
		return err
	}
	m.resetCounters()
	return nil
}

func (m *Machine) env() animation.Env {
	return animation.Env{
		Frame:   m.frame,
		Compass: m.engine,
		Target:  m.Target,
		Rand:    m.rand,
	}
}

// PlayHappy plays catalogue entry i, or a random one if i is negative, in
// between steps of the loop.
func (m *Machine) PlayHappy(ctx context.Context, i int) error {
	m.busy.Lock()
	defer m.busy.Unlock()
	return m.playHappy(ctx, i)
}

func (m *Machine) playHappy(ctx context.Context, i int) error {
	if i < 0 {
		i = m.rand.Intn(len(animation.Catalogue))
	}
	e := animation.Lookup(i)
	m.player.observe(Event{Kind: EventAnimation, Note: e.Name, Count: i})
	return m.player.Play(ctx, e.New(m.env()), e.Timeout)
}

// PlayBearingIndicator shows the way to the target bearing for d.
func (m *Machine) PlayBearingIndicator(ctx context.Context, d time.Duration) error {
	m.busy.Lock()
	defer m.busy.Unlock()
	return m.player.Play(ctx, animation.NewBearingIndicator(m.env()), d)
}
