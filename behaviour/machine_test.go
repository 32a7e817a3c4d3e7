package behaviour

import (
	"context"
	"testing"
	"time"

	"github.com/jacube/cube/geometry"
	"github.com/jacube/cube/sensors"
)

func TestStepPacifiedRegardlessOfHeading(t *testing.T) {
	magnet := sensors.Sample{Accel: sensors.Vector{Z: 1}, Mag: sensors.Vector{X: 3000}}
	r := newRig(testConfig(), 0, constant(magnet))

	state, err := r.m.Step(context.Background())
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if state != Pacified || r.m.State() != Pacified {
		t.Fatalf("state %v, want pacified", state)
	}
	if r.clock.slept != r.m.cfg.SleepCycle {
		t.Fatalf("slept %v, want one sleep cycle", r.clock.slept)
	}
	if r.display.running || r.sensors.disables == 0 {
		t.Fatal("expected everything off while pacified")
	}
	if r.events.count(EventAnimation) != 0 {
		t.Fatal("pacified cube animated")
	}
}

func TestStepOrientedCountsDownToAnimation(t *testing.T) {
	r := newRig(testConfig(), 90, constant(heading(90)))
	before := r.m.Status()
	if before.CyclesUntilNextAnim != 2 {
		t.Fatalf("cycles until next anim %d, want 2", before.CyclesUntilNextAnim)
	}

	for i := 0; i < 2; i++ {
		state, err := r.m.Step(context.Background())
		if err != nil || state != Oriented {
			t.Fatalf("step %d: %v %v", i, state, err)
		}
	}
	if r.events.count(EventAnimation) != 0 {
		t.Fatal("animated before the timer ran out")
	}
	if got := r.m.Status().CyclesUntilNextAnim; got != 0 {
		t.Fatalf("cycles until next anim %d, want 0", got)
	}

	if _, err := r.m.Step(context.Background()); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if r.events.count(EventAnimation) != 1 {
		t.Fatalf("%d animations, want 1", r.events.count(EventAnimation))
	}
	st := r.m.Status()
	if st.CyclesUntilNextAnim != 2 || st.AnimsUntilNoseChange != 1 {
		t.Fatalf("status %+v", st)
	}
	if r.display.running {
		t.Fatal("display left running after the animation")
	}
}

func TestStepOrientedChangesNose(t *testing.T) {
	cfg := testConfig()
	cfg.CyclesBetweenAnims = [2]int{0, 0}
	cfg.AnimsBetweenNoseChanges = [2]int{1, 1}
	r := newRig(cfg, 90, constant(heading(90)))

	if _, err := r.m.Step(context.Background()); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if r.events.count(EventNoseChange) != 1 {
		t.Fatal("nose not changed")
	}
	if r.m.Engine().Nose() == 1 {
		t.Fatal("new nose is the old nose")
	}
	if got := r.m.Status().AnimsUntilNoseChange; got != 1 {
		t.Fatalf("anims until nose change %d, want reset to 1", got)
	}
}

func TestChangeNoseNeverRepeats(t *testing.T) {
	r := newRig(testConfig(), 0, constant(heading(0)))
	for i := 0; i < 100; i++ {
		old := r.m.Engine().Nose()
		r.m.changeNose()
		if n := r.m.Engine().Nose(); n == old || !n.Valid() {
			t.Fatalf("nose %v after %v", n, old)
		}
	}
}

func TestStepMisorientedUntilSustainedHappiness(t *testing.T) {
	// off bearing for a while, then on bearing for good
	sample := func(n int) sensors.Sample {
		if n < 30 {
			return heading(180)
		}
		return heading(10)
	}
	cfg := testConfig()
	cfg.ApoplexyThreshold = 1000
	r := newRig(cfg, 0, sample)
	var longest time.Duration
	r.clock.onSleep = func(d time.Duration) {
		if d > longest {
			longest = d
		}
	}

	state, err := r.m.Step(context.Background())
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if state != Misoriented {
		t.Fatalf("state %v, want misoriented", state)
	}
	if r.events.count(EventAnimation) != 2 {
		t.Fatalf("%d animations, want unhappy then happy", r.events.count(EventAnimation))
	}
	if !r.body.everVibrated() || r.body.vibrating() {
		t.Fatal("expected vibration during the tantrum and none after")
	}
	if r.body.tones[len(r.body.tones)-1] != 0 {
		t.Fatal("tone left on")
	}
	st := r.m.Status()
	if st.Unhappiness != 0 || st.CyclesUntilNextAnim != 2 || st.AnimsUntilNoseChange != 2 {
		t.Fatalf("status %+v", st)
	}
	// unhappy mode polls rather than sleeping
	if longest >= r.m.cfg.SleepCycle {
		t.Fatalf("slept for %v in one go", longest)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	r := newRig(testConfig(), 90, constant(heading(90)))
	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	r.clock.onSleep = func(d time.Duration) {
		if d == r.m.cfg.SleepCycle {
			steps++
			if steps == 3 {
				cancel()
			}
		}
	}
	if err := r.m.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if steps != 3 {
		t.Fatalf("%d steps", steps)
	}
}

func TestSetTarget(t *testing.T) {
	r := newRig(testConfig(), 400, constant(heading(0)))
	if r.m.Target() != 40 {
		t.Fatalf("target %d, want 40", r.m.Target())
	}
	if err := r.m.SetTarget(360); err != ErrBearingRange {
		t.Fatalf("SetTarget(360) = %v", err)
	}
	if err := r.m.SetTarget(359); err != nil || r.m.Target() != 359 {
		t.Fatalf("SetTarget(359) = %v, target %d", err, r.m.Target())
	}
}

func TestPlayHappyExplicit(t *testing.T) {
	r := newRig(testConfig(), 0, constant(heading(0)))
	start := r.clock.Now()
	if err := r.m.PlayHappy(context.Background(), 4); err != nil {
		t.Fatalf("PlayHappy: %v", err)
	}
	if took := r.clock.Now().Sub(start); took < time.Second || took > time.Second+r.m.cfg.Tick {
		t.Fatalf("scan fade played for %v, want its 1s timeout", took)
	}
	last := r.events.events[len(r.events.events)-1]
	for _, e := range r.events.events {
		if e.Kind == EventAnimation {
			last = e
		}
	}
	if last.Note != "scan fade" || last.Count != 4 {
		t.Fatalf("last animation event %+v", last)
	}
}

func TestExclusiveSerialises(t *testing.T) {
	r := newRig(testConfig(), 0, constant(heading(0)))
	ran := false
	r.m.Exclusive(func() { ran = true })
	if !ran {
		t.Fatal("Exclusive did not run fn")
	}
	// the lock is released again
	if _, err := r.m.Step(context.Background()); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func TestStatusReportsOrientation(t *testing.T) {
	r := newRig(testConfig(), 90, constant(heading(90)))
	r.m.Step(context.Background())
	st := r.m.Status()
	if st.State != Oriented || st.Target != 90 || !st.Orientation.HasBearing || st.Orientation.Bearing != 90 {
		t.Fatalf("status %+v", st)
	}
	if st.Orientation.Up != geometry.Face(4) {
		t.Fatalf("up %v", st.Orientation.Up)
	}
}
