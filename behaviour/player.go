package behaviour

import (
	"context"
	"log"
	"time"

	"github.com/jacube/cube/animation"
	"github.com/jacube/cube/leds"
	"github.com/jacube/cube/melody"
	"github.com/jacube/cube/orientation"
)

// Player runs animations against the hardware, keeping the orientation cache
// fresh while it does.
type Player struct {
	cfg      Config
	engine   *orientation.Engine
	frame    *leds.FrameBuffer
	display  Display
	sensors  Sensors
	body     Body
	clock    Clock
	observer Observer

	state   func() State
	unhappy func() int
}

func (p *Player) logDbg(format string, v ...interface{}) {
	if p.cfg.Debug {
		log.Printf(format, v...)
	}
}

func (p *Player) observe(e Event) {
	if p.observer == nil {
		return
	}
	if e.Time.IsZero() {
		e.Time = p.clock.Now()
	}
	e.Orientation = p.engine.State()
	if p.state != nil {
		e.State = p.state()
	}
	if p.unhappy != nil {
		e.Unhappiness = p.unhappy()
	}
	p.observer.Observe(e)
}

// enable powers the sensors and reports how hard it was.
func (p *Player) enable() {
	n := p.sensors.Enable()
	if n > 1 {
		p.logDbg("Cube Info: sensors took %d attempts to enable\n", n)
	}
	p.observe(Event{Kind: EventEnable, Count: n})
}

// refresh reads both sensors and updates the orientation cache. On a failed
// read the cache is left as it was. pacified reports whether the fresh
// reading shows a magnet.
func (p *Player) refresh() (pacified bool) {
	s, err := p.sensors.Sample()
	if err != nil {
		p.logDbg("Cube Info: discarding sensor read: %s\n", err)
		p.observe(Event{Kind: EventReadError, Note: err.Error()})
		return false
	}
	p.engine.UpdateHeading(s)
	return orientation.Pacified(s.Mag, p.cfg.PacificationThreshold)
}

// Play runs anim until it finishes, timeout passes (if positive), a magnet is
// detected or ctx is cancelled. The display and sensors are on while it
// plays and everything is off afterwards.
func (p *Player) Play(ctx context.Context, anim animation.Animation, timeout time.Duration) error {
	p.display.Start()
	p.enable()
	defer func() {
		p.sensors.Disable()
		p.frame.Clear()
		p.display.Stop()
		p.body.Tone(0)
	}()

	var seq *melody.Sequencer
	if t, ok := anim.(animation.Tuned); ok && t.Tune() != "" {
		seq = melody.New(t.Tune(), p.body, anim.OnBeat)
		t.Attach(seq)
	}

	start := p.clock.Now()
	deadline := start.Add(timeout)
	nextSense, nextFrame, nextNote := start, start, start

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := p.clock.Now()
		if timeout > 0 && !now.Before(deadline) {
			return nil
		}

		if !now.Before(nextSense) {
			if p.refresh() {
				p.logDbg("Cube Info: magnetically pacified during animation\n")
				return nil
			}
			nextSense = now.Add(p.cfg.Sense)
		}

		if !now.Before(nextFrame) {
			if !anim.Tick() {
				return nil
			}
			nextFrame = now.Add(p.cfg.Tick)
		}

		if seq != nil && !now.Before(nextNote) {
			d, ok := seq.Advance()
			if ok {
				nextNote = now.Add(d)
			} else {
				seq = nil
			}
		}

		wake := earliest(nextSense, nextFrame)
		if seq != nil {
			wake = earliest(wake, nextNote)
		}
		if timeout > 0 {
			wake = earliest(wake, deadline)
		}
		if err := p.clock.Sleep(ctx, wake.Sub(p.clock.Now())); err != nil {
			return err
		}
	}
}

func earliest(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

// SleepLong turns everything off and sleeps for cycles sleep cycles.
func (p *Player) SleepLong(ctx context.Context, cycles int) error {
	p.off()
	return p.clock.Sleep(ctx, time.Duration(cycles)*p.cfg.SleepCycle)
}

func (p *Player) off() {
	p.display.Stop()
	p.sensors.Disable()
	p.body.Vibrate(false)
	p.body.Tone(0)
}
