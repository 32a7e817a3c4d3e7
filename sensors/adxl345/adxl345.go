package adxl345

import (
	"github.com/kidoman/embd"
	"github.com/pkg/errors"
)

var (
	ErrNotConnected = errors.New("adxl345: not connected")
	errRange        = errors.New("adxl345: unsupported range")
)

// ADXL345 wraps the I2C connection and the current scale of an ADXL345.
type ADXL345 struct {
	Bus     embd.I2CBus
	Address byte
	scale   float64
}

// New returns a driver for the accelerometer at addr. Nothing is written to
// the device until it is configured.
func New(bus embd.I2CBus, addr byte) *ADXL345 {
	return &ADXL345{Bus: bus, Address: addr, scale: ScaleFor2G}
}

// Connected returns true if the device answers with the right id.
func (d *ADXL345) Connected() bool {
	data, err := d.readRegister(RegDevID, 1)
	return err == nil && data[0] == DevID
}

// SetRange selects a measurement range of 2, 4, 8 or 16 g, optionally in full
// resolution mode (fixed 3.9 mg/LSB).
func (d *ADXL345) SetRange(g int, fullResolution bool) error {
	data, err := d.readRegister(RegDataFormat, 1)
	if err != nil {
		return errors.Wrap(err, "adxl345: read data format")
	}

	format := data[0] & formatClear
	scale := ScaleFor2G
	switch g {
	case 2:
	case 4:
		format |= 0x01
		scale = ScaleFor4G
	case 8:
		format |= 0x02
		scale = ScaleFor8G
	case 16:
		format |= rangeBits
		scale = ScaleFor16G
	default:
		return errRange
	}
	if fullResolution {
		format |= FullRes
		scale = ScaleFor2G
	}

	if err := d.writeRegister(RegDataFormat, format); err != nil {
		return errors.Wrap(err, "adxl345: write data format")
	}
	d.scale = scale
	return nil
}

// SetOffset writes the per-axis offset trim, in units of OffsetLSB.
func (d *ADXL345) SetOffset(x, y, z int8) error {
	if err := d.Bus.WriteToReg(d.Address, RegOffsetX, []byte{byte(x), byte(y), byte(z)}); err != nil {
		return errors.Wrap(err, "adxl345: write offsets")
	}
	return nil
}

// EnableMeasurements takes the device out of standby.
func (d *ADXL345) EnableMeasurements() error {
	return errors.Wrap(d.writeRegister(RegPowerCtl, Measure), "adxl345: enable measurements")
}

// ReadRaw returns the raw counts for each axis.
func (d *ADXL345) ReadRaw() (x, y, z int16, err error) {
	buf, err := d.readRegister(RegDataX0, 6)
	if err != nil {
		return 0, 0, 0, errors.Wrap(err, "adxl345: read data")
	}
	x = int16(uint16(buf[1])<<8 | uint16(buf[0]))
	y = int16(uint16(buf[3])<<8 | uint16(buf[2]))
	z = int16(uint16(buf[5])<<8 | uint16(buf[4]))
	return
}

// ReadScaled returns the acceleration on each axis in g.
func (d *ADXL345) ReadScaled() (x, y, z float64, err error) {
	rx, ry, rz, err := d.ReadRaw()
	if err != nil {
		return 0, 0, 0, err
	}
	return float64(rx) * d.scale, float64(ry) * d.scale, float64(rz) * d.scale, nil
}

// Scale returns the current g per LSB.
func (d *ADXL345) Scale() float64 {
	return d.scale
}

func (d *ADXL345) readRegister(register byte, len int) (data []byte, err error) {
	data = make([]byte, len)
	err = d.Bus.ReadFromReg(d.Address, register, data)
	return
}

func (d *ADXL345) writeRegister(register byte, data byte) error {
	return d.Bus.WriteByteToReg(d.Address, register, data)
}
