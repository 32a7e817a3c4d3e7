// Package nvram keeps the cube's persistent settings in a small fixed-size
// file image laid out like the EEPROM it replaces.
package nvram

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	Size = 16

	offBearing = 0 // uint16, little-endian
	offOffsets = 2 // three int8: x, y, z
)

// DefaultOffsets are the accelerometer offsets used until the cube has been
// calibrated.
var DefaultOffsets = [3]int8{12, 12, 24}

var ErrBearingRange = errors.New("nvram: bearing must be 0..359")

// Store is a file-backed image. Every change is written through.
type Store struct {
	path string

	mu  sync.Mutex
	img [Size]byte
}

// Open loads the image at path. A missing file gives the defaults, which are
// written out straight away.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.reset()
		if err := s.flush(); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("nvram: read %s: %w", path, err)
	}
	if len(b) != Size {
		return nil, fmt.Errorf("nvram: %s is %d bytes, want %d", path, len(b), Size)
	}
	copy(s.img[:], b)
	if s.Bearing() >= 360 {
		return nil, fmt.Errorf("nvram: %s holds bearing %d: %w", path, s.Bearing(), ErrBearingRange)
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

// Bearing is the stored target bearing in degrees.
func (s *Store) Bearing() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(binary.LittleEndian.Uint16(s.img[offBearing:]))
}

func (s *Store) SetBearing(deg int) error {
	if deg < 0 || deg >= 360 {
		return ErrBearingRange
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	binary.LittleEndian.PutUint16(s.img[offBearing:], uint16(deg))
	return s.flush()
}

// Offsets returns the stored accelerometer offsets.
func (s *Store) Offsets() [3]int8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var o [3]int8
	for i := range o {
		o[i] = int8(s.img[offOffsets+i])
	}
	return o
}

func (s *Store) SetOffsets(o [3]int8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range o {
		s.img[offOffsets+i] = byte(v)
	}
	return s.flush()
}

// Clear puts the defaults back.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return s.flush()
}

func (s *Store) reset() {
	s.img = [Size]byte{}
	for i, v := range DefaultOffsets {
		s.img[offOffsets+i] = byte(v)
	}
}

// flush replaces the file so a power cut leaves either the old or the new
// image. Callers hold mu, or own s exclusively.
func (s *Store) flush() error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".nvram-*")
	if err != nil {
		return fmt.Errorf("nvram: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(s.img[:]); err != nil {
		tmp.Close()
		return fmt.Errorf("nvram: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("nvram: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("nvram: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("nvram: %w", err)
	}
	return nil
}
