package hmc5883l

import (
	"github.com/kidoman/embd"
	"github.com/pkg/errors"
)

type Gain byte
type Mode byte

var (
	ErrNotConnected = errors.New("hmc5883l: not connected")
	errGain         = errors.New("hmc5883l: unsupported gain")
)

// HMC5883L wraps the I2C connection and the current scale of an HMC5883L.
type HMC5883L struct {
	Bus   embd.I2CBus
	scale float64
}

// New returns a driver for the magnetometer on bus.
func New(bus embd.I2CBus) *HMC5883L {
	return &HMC5883L{Bus: bus, scale: scales[Gain0_88]}
}

// Connected returns true if identification register A reads 'H'.
func (d *HMC5883L) Connected() bool {
	data, err := d.readRegister(RegIdentA, 1)
	return err == nil && data[0] == IdentA
}

// SetGain selects the field range and the matching scale.
func (d *HMC5883L) SetGain(g Gain) error {
	if int(g) >= len(scales) {
		return errGain
	}
	if err := d.writeRegister(RegConfigB, byte(g)<<5); err != nil {
		return errors.Wrap(err, "hmc5883l: write gain")
	}
	d.scale = scales[g]
	return nil
}

// SetMode selects continuous, single shot or idle measurement.
func (d *HMC5883L) SetMode(m Mode) error {
	return errors.Wrap(d.writeRegister(RegMode, byte(m)), "hmc5883l: write mode")
}

// ReadRaw returns the raw counts for each axis. The device stores them in
// X, Z, Y order.
func (d *HMC5883L) ReadRaw() (x, y, z int16, err error) {
	buf, err := d.readRegister(RegDataX, 6)
	if err != nil {
		return 0, 0, 0, errors.Wrap(err, "hmc5883l: read data")
	}
	x = int16(uint16(buf[0])<<8 | uint16(buf[1]))
	z = int16(uint16(buf[2])<<8 | uint16(buf[3]))
	y = int16(uint16(buf[4])<<8 | uint16(buf[5]))
	return
}

// ReadScaled returns the field on each axis in milligauss.
func (d *HMC5883L) ReadScaled() (x, y, z float64, err error) {
	rx, ry, rz, err := d.ReadRaw()
	if err != nil {
		return 0, 0, 0, err
	}
	return float64(rx) * d.scale, float64(ry) * d.scale, float64(rz) * d.scale, nil
}

// Scale returns the current milligauss per LSB.
func (d *HMC5883L) Scale() float64 {
	return d.scale
}

func (d *HMC5883L) readRegister(register byte, len int) (data []byte, err error) {
	data = make([]byte, len)
	err = d.Bus.ReadFromReg(Address, register, data)
	return
}

func (d *HMC5883L) writeRegister(register byte, data byte) error {
	return d.Bus.WriteByteToReg(Address, register, data)
}
