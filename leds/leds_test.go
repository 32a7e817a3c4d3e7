package leds

import (
	"sync"
	"testing"
	"time"
)

type recordingPins struct {
	mu       sync.Mutex
	anodes   [NumLEDs]bool
	channels [3]bool
	offs     int
	// litFor[pos][ch] counts ticks where ch was asserted while pos was lit
	litFor [NumLEDs][3]int
	ticks  int
}

func (p *recordingPins) DriveAnode(pos int, on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.anodes[pos] = on
	if !on {
		return
	}
	p.ticks++
	for ch, asserted := range p.channels {
		if asserted {
			p.litFor[pos][ch]++
		}
	}
}

func (p *recordingPins) AssertChannel(ch Channel, on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channels[ch] = on
}

func (p *recordingPins) Off() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.offs++
	p.anodes = [NumLEDs]bool{}
	p.channels = [3]bool{}
}

func (p *recordingPins) litAnodes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, on := range p.anodes {
		if on {
			n++
		}
	}
	return n
}

func TestSoftwarePWM(t *testing.T) {
	fb := &FrameBuffer{}
	fb.Set(0, Colour{R: 3})
	fb.Set(1, Colour{G: ScanLevels, B: 1})
	fb.Set(5, Grey(7))
	pins := &recordingPins{}
	s := NewScanner(fb, pins)

	for i := 0; i < NumLEDs*ScanLevels; i++ {
		s.Tick()
		if n := pins.litAnodes(); n != 1 {
			t.Fatalf("tick %d: %d anodes lit, want 1", i, n)
		}
	}

	want := [NumLEDs][3]int{
		0: {3, 0, 0},
		1: {0, ScanLevels, 1},
		5: {7, 7, 7},
	}
	if pins.litFor != want {
		t.Fatalf("duty cycles %v, want %v", pins.litFor, want)
	}
	if s.pos != 0 || s.level != 0 {
		t.Fatalf("scanner did not wrap: pos %d level %d", s.pos, s.level)
	}
}

func TestTickReadsLatestColour(t *testing.T) {
	fb := &FrameBuffer{}
	pins := &recordingPins{}
	s := NewScanner(fb, pins)
	s.Tick() // LED 0, level 0, dark
	fb.Set(1, Colour{B: 1})
	s.Tick()
	if !pins.channels[Blue] {
		t.Fatal("blue not asserted for LED 1")
	}
}

func TestStartStop(t *testing.T) {
	pins := &recordingPins{}
	s := NewScanner(&FrameBuffer{}, pins)
	s.Period = time.Millisecond

	s.Start()
	s.Start()
	if !s.Running() {
		t.Fatal("scanner not running")
	}
	deadline := time.Now().Add(2 * time.Second)
	for {
		pins.mu.Lock()
		ticks := pins.ticks
		pins.mu.Unlock()
		if ticks > 10 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("scanner did not tick")
		}
		time.Sleep(time.Millisecond)
	}

	s.Stop()
	if s.Running() {
		t.Fatal("scanner still running")
	}
	if pins.litAnodes() != 0 {
		t.Fatal("LEDs left on after Stop")
	}
	s.Stop()
	if pins.offs != 2 {
		t.Fatalf("Off called %d times, want 2", pins.offs)
	}
}

func TestFrameBuffer(t *testing.T) {
	fb := &FrameBuffer{}
	fb.Set(-1, Colour{R: 1})
	fb.Set(NumLEDs, Colour{R: 1})
	if fb.Snapshot() != [NumLEDs]Colour{} {
		t.Fatal("out of range writes landed")
	}
	if fb.Get(NumLEDs) != (Colour{}) {
		t.Fatal("out of range read not black")
	}

	fb.Set(2, Colour{R: 200, G: 4, B: 8})
	if got := fb.Get(2); got != (Colour{ScanLevels, 4, ScanLevels}) {
		t.Fatalf("Get = %+v", got)
	}

	fb.SetGrey(3, 5)
	if fb.Get(3) != Grey(5) {
		t.Fatalf("Get = %+v", fb.Get(3))
	}
	fb.Clear()
	for i, c := range fb.Snapshot() {
		if !c.Off() {
			t.Fatalf("LED %d still lit after Clear", i)
		}
	}
}

func TestHSVToRGB(t *testing.T) {
	tcs := []struct {
		h, s, v float64
		want    Colour
	}{
		{0, 100, 100, Colour{8, 0, 0}},
		{120, 100, 100, Colour{0, 8, 0}},
		{240, 100, 100, Colour{0, 0, 8}},
		{60, 100, 100, Colour{8, 8, 0}},
		{170, 100, 100, Colour{0, 8, 7}},
		{0, 0, 50, Grey(4)},
		{-10, 150, 100, Colour{8, 0, 0}},
		{30, 100, 0, Colour{}},
	}
	for _, tc := range tcs {
		if got := HSVToRGB(tc.h, tc.s, tc.v); got != tc.want {
			t.Fatalf("HSVToRGB(%v, %v, %v) = %+v, want %+v", tc.h, tc.s, tc.v, got, tc.want)
		}
	}
}

func TestBrightColoursAreFullyLit(t *testing.T) {
	for i, c := range BrightColours {
		lit := 0
		for _, ch := range Channels {
			switch c.Channel(ch) {
			case ScanLevels:
				lit++
			case 0:
			default:
				t.Fatalf("colour %d has a part lit channel", i)
			}
		}
		if lit == 0 || lit == 3 {
			t.Fatalf("colour %d lights %d channels", i, lit)
		}
	}
}
