// Package adxl345 provides a driver for Analog Devices' ADXL345 3-axis digital accelerometer.
// The datasheet can be found here: https://www.analog.com/media/en/technical-documentation/data-sheets/ADXL345.pdf
package adxl345

const (
	Address        byte = 0x53 // I2C address with ALT ADDRESS tied low
	AddressAltHigh byte = 0x1D // I2C address with ALT ADDRESS tied high
)

const (
	RegDevID      byte = 0x00 // useful for checking the connection
	RegOffsetX    byte = 0x1E // X-axis offset trim, 15.6 mg/LSB, two's complement
	RegOffsetY    byte = 0x1F
	RegOffsetZ    byte = 0x20
	RegPowerCtl   byte = 0x2D // power-saving features control
	RegDataFormat byte = 0x31 // data format control
	RegDataX0     byte = 0x32 // start of the six data registers, X0 X1 Y0 Y1 Z0 Z1
)

const (
	DevID       byte = 0xE5 // correct response if reading from the device id register
	Measure     byte = 0x08 // POWER_CTL measure bit
	FullRes     byte = 0x08 // DATA_FORMAT full resolution bit
	rangeBits   byte = 0x03
	formatClear byte = 0xF4 // clears FULL_RES, Justify and the range bits
)

// Scale factors in g per LSB. In full resolution mode the scale is fixed at
// ScaleFor2G whatever the range.
const (
	ScaleFor2G  = 0.0039
	ScaleFor4G  = 0.0078
	ScaleFor8G  = 0.0156
	ScaleFor16G = 0.0312
)

// OffsetLSB is the weight of one count in the offset registers, in g.
const OffsetLSB = 0.0156
