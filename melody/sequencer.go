// Package melody plays ring tones written in RTTTL, e.g.
//
//	name:d=4,o=5,b=140:8c,8e,g.,2c6
//
// The header gives the default duration, octave and tempo; each note is an
// optional duration, a letter (p is a rest), an optional sharp, an optional
// dot and an optional octave.
package melody

import (
	"strings"
	"time"
)

const (
	defaultDuration = 4
	defaultOctave   = 6
	defaultBPM      = 63
	minOctave       = 3
	maxOctave       = 7
)

// Sounder makes a tone. A frequency of 0 silences it.
type Sounder interface {
	Tone(hz float64)
}

type state int

const (
	parsing state = iota
	playing
	done
)

// Sequencer steps through a tune one note per Advance call.
type Sequencer struct {
	song  string
	pos   int
	state state

	duration int // default note length, as a fraction of a whole note
	octave   int
	bpm      int
	whole    int // milliseconds

	noteOn bool
	sound  Sounder
	beat   func()
}

// New returns a sequencer for song that plays through sound and calls beat on
// every note and rest. Either may be nil.
func New(song string, sound Sounder, beat func()) *Sequencer {
	return &Sequencer{
		song:     song,
		duration: defaultDuration,
		octave:   defaultOctave,
		bpm:      defaultBPM,
		sound:    sound,
		beat:     beat,
	}
}

// Advance silences the previous note and starts the next, returning how long
// until it should be called again. ok is false once the tune has ended.
func (s *Sequencer) Advance() (next time.Duration, ok bool) {
	if s.state == parsing {
		if !s.parseHeader() {
			s.state = done
			return 0, false
		}
		s.state = playing
	}

	if s.noteOn {
		s.tone(0)
		s.noteOn = false
	}

	s.skipSpace()
	if s.state == done || s.pos >= len(s.song) {
		s.state = done
		s.tone(0)
		return 0, false
	}

	ms := s.whole / s.duration
	if n := s.number(); n > 0 {
		ms = s.whole / n
	}

	note := 0
	switch s.peek() {
	case 'c':
		note = 1
	case 'd':
		note = 3
	case 'e':
		note = 5
	case 'f':
		note = 6
	case 'g':
		note = 8
	case 'a':
		note = 10
	case 'b':
		note = 12
	}
	s.pos++

	if s.peek() == '#' {
		if note > 0 {
			note++
		}
		s.pos++
	}
	if s.peek() == '.' {
		ms += ms / 2
		s.pos++
	}
	octave := s.octave
	if c := s.peek(); isDigit(c) {
		octave = int(c - '0')
		s.pos++
	}
	if s.peek() == ',' {
		s.pos++
	}

	if hz := Frequency(octave, note); hz > 0 {
		s.tone(hz)
		s.noteOn = true
	}
	if s.beat != nil {
		s.beat()
	}
	return time.Duration(ms) * time.Millisecond, true
}

// Finished reports whether the end of the tune has been reached.
func (s *Sequencer) Finished() bool {
	return s.state == done
}

// parseHeader skips the name and reads the d=, o= and b= settings.
func (s *Sequencer) parseHeader() bool {
	i := strings.IndexByte(s.song, ':')
	if i < 0 {
		return false
	}
	s.pos = i + 1

	for {
		s.skipSpace()
		key := s.peek()
		if key != 'd' && key != 'o' && key != 'b' {
			break
		}
		s.pos++
		if s.peek() != '=' {
			return false
		}
		s.pos++
		n := s.number()
		switch key {
		case 'd':
			if n > 0 {
				s.duration = n
			}
		case 'o':
			if n >= minOctave && n <= maxOctave {
				s.octave = n
			}
		case 'b':
			if n > 0 {
				s.bpm = n
			}
		}
		c := s.peek()
		s.pos++
		if c == ':' {
			break
		}
		if c != ',' {
			return false
		}
	}
	if s.peek() == ':' {
		s.pos++
	}

	s.whole = 60 * 1000 / s.bpm * 4
	return true
}

func (s *Sequencer) tone(hz float64) {
	if s.sound != nil {
		s.sound.Tone(hz)
	}
}

func (s *Sequencer) peek() byte {
	if s.pos >= len(s.song) {
		return 0
	}
	return s.song[s.pos]
}

func (s *Sequencer) number() int {
	n := 0
	for isDigit(s.peek()) {
		n = n*10 + int(s.peek()-'0')
		s.pos++
	}
	return n
}

func (s *Sequencer) skipSpace() {
	for s.peek() == ' ' {
		s.pos++
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
