package main

import (
	"errors"
	"time"

	"github.com/jacube/cube/behaviour"
	"github.com/jacube/cube/orientation"
)

type fakeController struct {
	target       int
	nose         int
	offsets      [3]int8
	calibrated   bool
	played       []int
	indicated    int
	status       behaviour.Status
	calibrateErr error
}

func (f *fakeController) Target() int { return f.target }

func (f *fakeController) SetTarget(deg int) error {
	if deg < 0 || deg >= 360 {
		return behaviour.ErrBearingRange
	}
	f.target = deg
	return nil
}

func (f *fakeController) SetNose(face int) error {
	if face < 0 || face > 5 {
		return errNose
	}
	f.nose = face
	return nil
}

func (f *fakeController) Calibration() [3]int8 { return f.offsets }

func (f *fakeController) Calibrate() ([3]int8, error) {
	if f.calibrateErr != nil {
		return [3]int8{}, f.calibrateErr
	}
	f.calibrated = true
	f.offsets = [3]int8{-1, 2, -3}
	return f.offsets, nil
}

func (f *fakeController) Status() behaviour.Status {
	st := f.status
	st.Target = f.target
	return st
}

func (f *fakeController) PlayHappy(i int) error {
	f.played = append(f.played, i)
	return nil
}

func (f *fakeController) ShowBearing() error {
	f.indicated++
	return nil
}

func (f *fakeController) Uptime() string { return "3 minutes" }

func orientedStatus() behaviour.Status {
	return behaviour.Status{
		State:       behaviour.Oriented,
		Orientation: orientation.State{Up: 4, Nose: 1, Bearing: 42, HasBearing: true},
		Unhappiness: 0,
	}
}

var errFakeCalibrate = errors.New("sensor stick missing")

// script is a serial port that replays input and records output. Once the
// input runs out every read times out, moving the clock on.
type script struct {
	in    []byte
	out   []byte
	clock *stepClock
}

func (s *script) Read(p []byte) (int, error) {
	if len(s.in) == 0 {
		s.clock.t = s.clock.t.Add(serialReadTimeout)
		return 0, nil
	}
	n := copy(p, s.in)
	s.in = s.in[n:]
	return n, nil
}

func (s *script) Write(p []byte) (int, error) {
	s.out = append(s.out, p...)
	return len(p), nil
}

type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time { return c.t }

func newScriptConsole(input string, ctl controller) (*console, *script) {
	clock := &stepClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := &script{in: []byte(input), clock: clock}
	return &console{rw: s, ctl: ctl, now: clock.now}, s
}
