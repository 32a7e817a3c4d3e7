// Package orientation turns accelerometer and magnetometer samples into the
// cube's view of itself: which face is up, and which way the nose points.
//
// Headings are uncompensated for tilt and declination. The dominant gravity
// axis picks the up face and two magnetometer axes in the horizontal plane
// give the heading.
package orientation

import (
	"math"
	"sync"

	"github.com/jacube/cube/geometry"
	"github.com/jacube/cube/sensors"
)

// DefaultNose is the nose face at power on.
const DefaultNose geometry.Face = 1

// State is the cached result of the last orientation update.
type State struct {
	Up         geometry.Face
	Nose       geometry.Face
	Bearing    int  // degrees from magnetic north, 0..359
	HasBearing bool // false while the nose points at the sky or the ground
}

type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

func (a axis) of(v sensors.Vector) float64 {
	switch a {
	case axisX:
		return v.X
	case axisY:
		return v.Y
	}
	return v.Z
}

// headingCase selects the field components fed to atan2(y, x) and whether
// the result must be mirrored because the cube is upside down relative to
// the nose's reference orientation.
type headingCase struct {
	y, x   axis
	invert bool
}

// headingCases[nose][up]. Only side faces have entries; the nose's own axis
// and its opposite have no heading.
var headingCases = [geometry.NumFaces]map[geometry.Face]headingCase{
	0: {4: {axisY, axisX, false}, 5: {axisY, axisX, true}, 2: {axisZ, axisX, false}, 3: {axisZ, axisX, true}},
	1: {4: {axisY, axisX, false}, 5: {axisY, axisX, true}, 2: {axisZ, axisX, false}, 3: {axisZ, axisX, true}},
	2: {5: {axisX, axisY, false}, 4: {axisX, axisY, true}, 1: {axisZ, axisY, false}, 0: {axisZ, axisY, true}},
	3: {5: {axisX, axisY, false}, 4: {axisX, axisY, true}, 1: {axisZ, axisY, false}, 0: {axisZ, axisY, true}},
	4: {3: {axisX, axisZ, false}, 2: {axisX, axisZ, true}, 0: {axisY, axisZ, false}, 1: {axisY, axisZ, true}},
	5: {3: {axisX, axisZ, false}, 2: {axisX, axisZ, true}, 0: {axisY, axisZ, false}, 1: {axisY, axisZ, true}},
}

// oneEighty marks the noses whose heading is measured from the negative end of
// the axis pair and so needs turning round.
var oneEighty = [geometry.NumFaces]bool{0: true, 2: true, 5: true}

// Engine holds the orientation cache. It is the only thing that writes it;
// everyone else reads through State and friends. Safe for concurrent use.
type Engine struct {
	mu    sync.RWMutex
	state State
}

// NewEngine returns an engine with the nose on nose and no reading yet.
func NewEngine(nose geometry.Face) *Engine {
	if !nose.Valid() {
		nose = DefaultNose
	}
	return &Engine{state: State{Up: geometry.Invalid, Nose: nose}}
}

// DetermineUpFace finds the most upward face from the dominant axis of the
// acceleration and caches it. Ties fall through to the later axis.
func (e *Engine) DetermineUpFace(accel sensors.Vector) geometry.Face {
	up := upFace(accel)
	e.mu.Lock()
	e.state.Up = up
	e.mu.Unlock()
	return up
}

func upFace(a sensors.Vector) geometry.Face {
	xa, ya, za := math.Abs(a.X), math.Abs(a.Y), math.Abs(a.Z)
	switch {
	case xa > ya && xa > za:
		if a.X > 0 {
			return 0
		}
		return 1
	case ya > xa && ya > za:
		if a.Y > 0 {
			return 2
		}
		return 3
	default:
		if a.Z > 0 {
			return 4
		}
		return 5
	}
}

// UpdateHeading refreshes the up face and the nose's bearing from s. ok is
// false when the nose is pointing up or down and there is no bearing.
func (e *Engine) UpdateHeading(s sensors.Sample) (deg int, ok bool) {
	up := upFace(s.Accel)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Up = up
	deg, ok = heading(s.Mag, e.state.Nose, up)
	e.state.Bearing, e.state.HasBearing = deg, ok
	return deg, ok
}

func heading(mag sensors.Vector, nose, up geometry.Face) (int, bool) {
	if !nose.Valid() || nose == up || nose == geometry.Opposite(up) {
		return 0, false
	}
	c, ok := headingCases[nose][up]
	if !ok {
		return 0, false
	}

	h := math.Atan2(c.y.of(mag), c.x.of(mag))
	if oneEighty[nose] {
		h += math.Pi
	}
	h = NormaliseRadians(h)
	if c.invert {
		h = 2*math.Pi - h
	}
	h = NormaliseRadians(h)

	return NormaliseDegrees(int(math.Round(h * 180 / math.Pi))), true
}

// IsFacingBearing reports whether the cached heading is within leeway degrees
// of target, either way round. Always false with no heading.
func (e *Engine) IsFacingBearing(target, leeway int) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.state.HasBearing {
		return false
	}
	return Distance(e.state.Bearing, target) <= leeway
}

// Distance is the angle between two bearings, 0..180.
func Distance(a, b int) int {
	d := NormaliseDegrees(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// FaceClosestToBearing returns the side face pointing closest to target.
func (e *Engine) FaceClosestToBearing(target int) (geometry.Face, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.state.HasBearing {
		return geometry.Invalid, false
	}

	nose, up := e.state.Nose, e.state.Up
	switch off := NormaliseDegrees(e.state.Bearing - target); {
	case off >= 315 || off < 45:
		return nose, true
	case off < 135:
		return geometry.Anticlockwise(nose, up), true
	case off < 225:
		return geometry.Opposite(nose), true
	default:
		return geometry.Clockwise(nose, up), true
	}
}

// State returns a copy of the cache.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

func (e *Engine) Up() geometry.Face {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Up
}

func (e *Engine) Nose() geometry.Face {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Nose
}

// SetNose moves the nose. The cached heading is left alone until the next
// update. Invalid faces are ignored and reported with false.
func (e *Engine) SetNose(f geometry.Face) bool {
	if !f.Valid() {
		return false
	}
	e.mu.Lock()
	e.state.Nose = f
	e.mu.Unlock()
	return true
}

// Sides returns the four faces around the cached up face.
func (e *Engine) Sides() [4]geometry.Face {
	return geometry.Sides(e.Up())
}

// Pacified reports whether any axis of the field exceeds threshold, which
// means a magnet is being held against the cube.
func Pacified(mag sensors.Vector, threshold float64) bool {
	return math.Abs(mag.X) > threshold || math.Abs(mag.Y) > threshold || math.Abs(mag.Z) > threshold
}

// NormaliseRadians wraps r into [0, 2π).
func NormaliseRadians(r float64) float64 {
	r = math.Mod(r, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	if r >= 2*math.Pi {
		r = 0
	}
	return r
}

// NormaliseDegrees wraps d into 0..359.
func NormaliseDegrees(d int) int {
	d %= 360
	if d < 0 {
		d += 360
	}
	return d
}
