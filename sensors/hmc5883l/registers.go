// Package hmc5883l provides a driver for Honeywell's HMC5883L 3-axis digital compass.
// Note the HMC5883L is not identical to the HMC5883.
package hmc5883l

const Address byte = 0x1E // fixed I2C address

const (
	RegConfigA byte = 0x00
	RegConfigB byte = 0x01 // gain, top three bits
	RegMode    byte = 0x02
	RegDataX   byte = 0x03 // start of the six data registers, X Z Y, big endian
	RegIdentA  byte = 0x0A // useful for checking the connection
)

const IdentA byte = 'H' // correct response if reading from identification register A

// Gain settings, as field ranges in Gauss.
const (
	Gain0_88 Gain = iota
	Gain1_3
	Gain1_9
	Gain2_5
	Gain4_0
	Gain4_7
	Gain5_6
	Gain8_1
)

// Measurement modes.
const (
	Continuous Mode = 0x00
	SingleShot Mode = 0x01
	Idle       Mode = 0x03
)

// scales[g] is the resolution in milligauss per LSB for gain g.
var scales = [...]float64{0.73, 0.92, 1.22, 1.52, 2.27, 2.56, 3.03, 4.35}
