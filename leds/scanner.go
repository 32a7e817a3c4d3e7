package leds

import (
	"sync"
	"time"
)

// DefaultScanPeriod is the time each LED is lit for per pass.
const DefaultScanPeriod = 100 * time.Microsecond

// Channel names one of the shared colour lines.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// Channels lists the colour lines in scan order.
var Channels = [...]Channel{Red, Green, Blue}

func (ch Channel) String() string {
	switch ch {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	}
	return "unknown"
}

// Pins is the hardware the scanner toggles.
type Pins interface {
	// DriveAnode switches the anode of LED pos.
	DriveAnode(pos int, on bool)
	// AssertChannel connects or releases a shared colour line. A released
	// line must not be driven, so a lit anode can never push current backwards
	// through another LED.
	AssertChannel(ch Channel, on bool)
	// Off drops every anode and releases every colour line.
	Off()
}

// Scanner multiplexes a FrameBuffer onto Pins.
type Scanner struct {
	Buffer *FrameBuffer
	Period time.Duration

	pins Pins

	// owned by whoever calls Tick, the scan goroutine once started
	pos, level, prev int

	mu      sync.Mutex
	stop    chan struct{}
	stopped chan struct{}
}

// NewScanner returns a stopped scanner for fb.
func NewScanner(fb *FrameBuffer, pins Pins) *Scanner {
	return &Scanner{
		Buffer: fb,
		Period: DefaultScanPeriod,
		pins:   pins,
		prev:   NumLEDs - 1,
	}
}

// Tick lights the next LED. Each channel is on iff its level is above the
// current scan level. After every LED has had a turn the scan level goes up,
// wrapping at ScanLevels.
func (s *Scanner) Tick() {
	s.pins.DriveAnode(s.prev, false)

	c := s.Buffer.Get(s.pos)
	for _, ch := range Channels {
		s.pins.AssertChannel(ch, int(c.Channel(ch)) > s.level)
	}
	s.pins.DriveAnode(s.pos, true)

	s.prev = s.pos
	s.pos++
	if s.pos >= NumLEDs {
		s.pos = 0
		s.level++
		if s.level == ScanLevels {
			s.level = 0
		}
	}
}

// Start begins scanning every Period in a goroutine. Starting a running
// scanner does nothing.
func (s *Scanner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	period := s.Period
	if period <= 0 {
		period = DefaultScanPeriod
	}
	s.stop = make(chan struct{})
	s.stopped = make(chan struct{})
	go s.run(period, s.stop, s.stopped)
}

func (s *Scanner) run(period time.Duration, stop <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Stop halts scanning and turns every LED off. Stopping a stopped scanner
// still turns the LEDs off.
func (s *Scanner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		close(s.stop)
		<-s.stopped
		s.stop, s.stopped = nil, nil
	}
	s.pins.Off()
}

// Running reports whether the scan goroutine is active.
func (s *Scanner) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}
