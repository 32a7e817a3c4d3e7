package main

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/jacube/cube/behaviour"
	"github.com/jacube/cube/geometry"
	"github.com/jacube/cube/orientation"
)

func newTestCube(nose geometry.Face) *cube {
	m := behaviour.NewMachine(behaviour.DefaultConfig(), behaviour.Hardware{},
		orientation.NewEngine(nose), 0, rand.New(rand.NewSource(1)), nil)
	return &cube{machine: m, clock: NewMonotonic()}
}

func TestCubeSetNose(t *testing.T) {
	tests := []struct {
		face int
		ok   bool
	}{
		{0, true},
		{5, true},
		{6, false},
		{-1, false},
		{260, false},
		{261, false},
		{-252, false},
	}
	for _, tt := range tests {
		c := newTestCube(1)
		err := c.SetNose(tt.face)
		if (err == nil) != tt.ok {
			t.Fatalf("SetNose(%d) = %v", tt.face, err)
		}
		want := geometry.Face(1)
		if tt.ok {
			want = geometry.Face(tt.face)
		}
		if got := c.machine.Engine().Nose(); got != want {
			t.Fatalf("SetNose(%d): nose %d, want %d", tt.face, got, want)
		}
	}
}

func TestConsoleNoseOutOfRange(t *testing.T) {
	for _, line := range []string{"n6", "n260", "n-252"} {
		c := newTestCube(1)
		con, s := newScriptConsole("", c)
		con.handle(line)
		if !strings.Contains(string(s.out), "Nose must be a digit 0..5") {
			t.Fatalf("%q: output %q", line, s.out)
		}
		if got := c.machine.Engine().Nose(); got != 1 {
			t.Fatalf("%q: nose moved to %d", line, got)
		}
	}
}

func TestControlNoseOutOfRange(t *testing.T) {
	for _, v := range []int{6, 260, -252} {
		c := newTestCube(1)
		if err := applySetting(c, SettingMessage{Setting: "nose", Value: v}); err == nil {
			t.Fatalf("nose %d accepted", v)
		}
		if got := c.machine.Engine().Nose(); got != 1 {
			t.Fatalf("nose %d: nose moved to %d", v, got)
		}
	}
}
