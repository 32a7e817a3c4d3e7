// Package sensors provides the cube's interface to the accelerometer and
// magnetometer on the sensor stick: power, configuration, sampling and
// calibration.
package sensors

import "math"

// Vector is a scaled three axis measurement: g for the accelerometer,
// milligauss for the magnetometer.
type Vector struct {
	X, Y, Z float64
}

// Magnitude returns the Euclidean length of v.
func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// MaxAbs returns the largest absolute component of v.
func (v Vector) MaxAbs() float64 {
	return math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z)))
}

// Sample is one sensing cycle's worth of data.
type Sample struct {
	Accel Vector
	Mag   Vector
}

// Reader provides samples from an accelerometer/magnetometer pair.
type Reader interface {
	// Sample reads both sensors. On error the whole sample must be discarded.
	Sample() (Sample, error)
	// Magnetometer reads just the magnetic field.
	Magnetometer() (Vector, error)
}
