// Package geometry labels the six faces of the cube and answers the
// topological questions every other package asks about them: which face is
// opposite, and which side faces are clockwise or anticlockwise of each other
// when looking down on whichever face is currently up.
//
// Faces are numbered after the sensor axes they sit on:
//
//	0 = +X   1 = -X
//	2 = +Y   3 = -Y
//	4 = +Z   5 = -Z
package geometry

import (
	"strconv"

	"golang.org/x/exp/slices"
)

// Face is one of the six sides of the cube.
type Face int8

// NumFaces is the number of sides on the cube (and LEDs, one per face).
const NumFaces = 6

// Invalid is returned wherever a face lookup has no answer, e.g. the clockwise
// neighbour of the top face. It must be checked before use as an index.
const Invalid Face = -1

// Faces lists every face in ascending order.
var Faces = [NumFaces]Face{0, 1, 2, 3, 4, 5}

var opposites = [NumFaces]Face{1, 0, 3, 2, 5, 4}

// clockwiseOf[up][side] is the face clockwise from side when looking down on
// up. Entries for up and its opposite are Invalid.
var clockwiseOf = [NumFaces][NumFaces]Face{
	0: {Invalid, Invalid, 5, 4, 2, 3},
	1: {Invalid, Invalid, 4, 5, 3, 2},
	2: {4, 5, Invalid, Invalid, 1, 0},
	3: {5, 4, Invalid, Invalid, 0, 1},
	4: {3, 2, 0, 1, Invalid, Invalid},
	5: {2, 3, 1, 0, Invalid, Invalid},
}

// Valid reports whether f names a real face.
func (f Face) Valid() bool {
	return f >= 0 && f < NumFaces
}

func (f Face) String() string {
	if !f.Valid() {
		return "invalid"
	}
	return strconv.Itoa(int(f))
}

// Opposite returns the face on the other side of the cube from f.
func Opposite(f Face) Face {
	if !f.Valid() {
		return Invalid
	}
	return opposites[f]
}

// Clockwise returns the side face clockwise from side, as seen looking down on
// up. Returns Invalid if side is up, or the face opposite up.
func Clockwise(side, up Face) Face {
	if !side.Valid() || !up.Valid() {
		return Invalid
	}
	return clockwiseOf[up][side]
}

// Anticlockwise is three clockwise steps. Keep it that way: callers rely on
// the two being exact inverses of each other.
func Anticlockwise(side, up Face) Face {
	return Clockwise(Clockwise(Clockwise(side, up), up), up)
}

// IsSide reports whether f is one of the four faces around up.
func IsSide(f, up Face) bool {
	return f.Valid() && up.Valid() && f != up && f != Opposite(up)
}

// Sides fills the four faces which are neither up nor down, lowest first.
func Sides(up Face) [4]Face {
	var sides [4]Face
	p := 0
	for _, f := range Faces {
		if !IsSide(f, up) {
			continue
		}
		if p < len(sides) {
			sides[p] = f
		}
		p++
	}
	if p != len(sides) {
		return [4]Face{Invalid, Invalid, Invalid, Invalid}
	}
	return sides
}

// Around returns the four side faces in clockwise order starting at side.
// It is empty if side is not a side face of up.
func Around(side, up Face) []Face {
	if !IsSide(side, up) {
		return nil
	}
	ring := make([]Face, 0, 4)
	for f := side; !slices.Contains(ring, f); f = Clockwise(f, up) {
		ring = append(ring, f)
	}
	return ring
}
