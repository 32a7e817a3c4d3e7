package behaviour

import (
	"context"
	"testing"
	"time"

	"github.com/jacube/cube/animation"
	"github.com/jacube/cube/sensors"
)

type countingAnim struct {
	ticks, beats int
	stopAt       int
}

func (a *countingAnim) Tick() bool {
	a.ticks++
	return a.stopAt == 0 || a.ticks < a.stopAt
}

func (a *countingAnim) OnBeat() { a.beats++ }

func TestPlayUntilFinished(t *testing.T) {
	r := newRig(testConfig(), 0, constant(heading(0)))
	a := &countingAnim{stopAt: 10}
	if err := r.m.player.Play(context.Background(), a, 0); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if a.ticks != 10 {
		t.Fatalf("%d ticks", a.ticks)
	}
	if took := r.clock.slept; took != 9*r.m.cfg.Tick {
		t.Fatalf("took %v", took)
	}
	// sensed every third frame
	if r.sensors.reads != 4 {
		t.Fatalf("%d reads", r.sensors.reads)
	}
	if r.display.running || r.display.starts != 1 || r.sensors.disables != 1 {
		t.Fatalf("display %+v sensors %+v", r.display, r.sensors)
	}
}

func TestPlayTimeout(t *testing.T) {
	r := newRig(testConfig(), 0, constant(heading(0)))
	a := &countingAnim{}
	if err := r.m.player.Play(context.Background(), a, time.Second); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if a.ticks != 20 {
		t.Fatalf("%d ticks in 1s", a.ticks)
	}
}

func TestPlayStopsWhenPacified(t *testing.T) {
	sample := func(n int) sensors.Sample {
		s := heading(0)
		if n >= 2 {
			s.Mag.Z = -2600
		}
		return s
	}
	r := newRig(testConfig(), 0, sample)
	a := &countingAnim{}
	if err := r.m.player.Play(context.Background(), a, 0); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if a.ticks != 6 {
		t.Fatalf("%d ticks before the magnet was noticed", a.ticks)
	}
	if r.body.tones[len(r.body.tones)-1] != 0 {
		t.Fatal("tone left on")
	}
}

func TestPlayKeepsCacheOnReadFailure(t *testing.T) {
	r := newRig(testConfig(), 0, constant(heading(90)))
	r.m.player.refresh()
	r.sensors.fail = true
	a := &countingAnim{stopAt: 5}
	if err := r.m.player.Play(context.Background(), a, 0); err != nil {
		t.Fatalf("Play: %v", err)
	}
	st := r.m.engine.State()
	if !st.HasBearing || st.Bearing != 90 {
		t.Fatalf("cache lost: %+v", st)
	}
	if r.events.count(EventReadError) == 0 {
		t.Fatal("read errors not reported")
	}
}

func TestPlayDrivesTune(t *testing.T) {
	r := newRig(testConfig(), 0, constant(heading(0)))
	e := animation.Lookup(7)
	if err := r.m.player.Play(context.Background(), e.New(r.m.env()), e.Timeout); err != nil {
		t.Fatalf("Play: %v", err)
	}
	sounded := false
	for _, hz := range r.body.tones {
		if hz > 0 {
			sounded = true
		}
	}
	if !sounded {
		t.Fatalf("%s played no notes", e.Name)
	}
	if r.body.tones[len(r.body.tones)-1] != 0 {
		t.Fatal("tone left on")
	}
}

func TestPlayCancelled(t *testing.T) {
	r := newRig(testConfig(), 0, constant(heading(0)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.m.player.Play(ctx, &countingAnim{}, 0); err != context.Canceled {
		t.Fatalf("Play = %v", err)
	}
	if r.display.running {
		t.Fatal("display left running")
	}
}
