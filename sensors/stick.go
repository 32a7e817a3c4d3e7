package sensors

import (
	"log"
	"math"
	"time"

	"github.com/jacube/cube/sensors/adxl345"
	"github.com/jacube/cube/sensors/hmc5883l"
	"github.com/kidoman/embd"
	"github.com/pkg/errors"
)

const (
	accelRange     = 2                // accelRange is the range to use for the accelerometer, in g.
	magGain        = hmc5883l.Gain1_3 // magGain is the field range to use for the magnetometer.
	enableDelay    = 100 * time.Millisecond
	minGravity     = 0.5
	maxGravity     = 1.5
	logEveryNTries = 50
	calibrateTries = 50
)

var errImplausible = errors.New("sensors: accelerometer reading is not plausibly 1g")

// Rail switches the supply to the sensor stick and owns the bus it hangs off.
type Rail interface {
	// PowerOn energises the sensor supply.
	PowerOn()
	// PowerOff cuts the sensor supply.
	PowerOff()
	// Reset reinitialises the transport and returns the bus to use from now on.
	Reset() (embd.I2CBus, error)
	// Release stops driving or pulling up the transport lines so a powered
	// down stick cannot leech current through them.
	Release()
}

// OffsetStore persists the accelerometer offset trim.
type OffsetStore interface {
	Offsets() [3]int8
	SetOffsets(offsets [3]int8) error
}

// Stick is the ADXL345 + HMC5883L sensor board behind a switchable supply.
type Stick struct {
	// Sleep is used between enable attempts. Defaults to time.Sleep.
	Sleep func(time.Duration)
	// Debug enables per-attempt logging.
	Debug bool

	rail    Rail
	offsets OffsetStore
	accel   *adxl345.ADXL345
	mag     *hmc5883l.HMC5883L
}

// NewStick returns a powered down stick. The accelerometer is expected at
// accelAddr; the magnetometer address is fixed.
func NewStick(rail Rail, offsets OffsetStore, accelAddr byte) *Stick {
	return &Stick{
		Sleep:   time.Sleep,
		rail:    rail,
		offsets: offsets,
		accel:   adxl345.New(nil, accelAddr),
		mag:     hmc5883l.New(nil),
	}
}

// Enable powers the stick and configures both sensors. It retries until the
// accelerometer identifies itself and reads close to 1g, however long that
// takes, and returns how many attempts were needed.
func (s *Stick) Enable() int {
	s.rail.PowerOn()

	attempts := 0
	for {
		s.Sleep(enableDelay)
		attempts++
		err := s.configureAccel()
		if err == nil {
			break
		}
		if s.Debug || attempts%logEveryNTries == 0 {
			log.Printf("Sensor Info: accelerometer not ready after %d attempts: %s\n", attempts, err)
		}
	}

	if err := s.mag.SetGain(magGain); err != nil {
		log.Printf("Sensor Error: %s\n", err)
	}
	if err := s.mag.SetMode(hmc5883l.Continuous); err != nil {
		log.Printf("Sensor Error: %s\n", err)
	}
	return attempts
}

func (s *Stick) configureAccel() error {
	bus, err := s.rail.Reset()
	if err != nil {
		return errors.Wrap(err, "sensors: reset bus")
	}
	s.accel.Bus = bus
	s.mag.Bus = bus

	if !s.accel.Connected() {
		return adxl345.ErrNotConnected
	}
	if err := s.accel.SetRange(accelRange, true); err != nil {
		return err
	}
	off := s.offsets.Offsets()
	if err := s.accel.SetOffset(off[0], off[1], off[2]); err != nil {
		return err
	}
	if err := s.accel.EnableMeasurements(); err != nil {
		return err
	}

	a, err := s.readAccel()
	if err != nil {
		return err
	}
	if g := a.Magnitude(); g <= minGravity || g >= maxGravity {
		return errors.Wrapf(errImplausible, "read %.2fg", g)
	}
	return nil
}

// Disable releases the transport lines and cuts the supply.
func (s *Stick) Disable() {
	s.rail.Release()
	s.rail.PowerOff()
}

// Sample reads the accelerometer and then the magnetometer.
func (s *Stick) Sample() (Sample, error) {
	a, err := s.readAccel()
	if err != nil {
		return Sample{}, err
	}
	m, err := s.Magnetometer()
	if err != nil {
		return Sample{}, err
	}
	return Sample{Accel: a, Mag: m}, nil
}

// Magnetometer reads the magnetic field in milligauss.
func (s *Stick) Magnetometer() (Vector, error) {
	if s.mag.Bus == nil {
		return Vector{}, hmc5883l.ErrNotConnected
	}
	x, y, z, err := s.mag.ReadScaled()
	return Vector{x, y, z}, err
}

func (s *Stick) readAccel() (Vector, error) {
	if s.accel.Bus == nil {
		return Vector{}, adxl345.ErrNotConnected
	}
	x, y, z, err := s.accel.ReadScaled()
	return Vector{x, y, z}, err
}

// Entropy powers the stick and collects the least significant bit of 32 raw
// X axis readings. Failed readings are skipped, the seed just gets shorter.
func (s *Stick) Entropy() int64 {
	s.Enable()
	defer s.Disable()

	var seed int64
	for i := 0; i < 32; i++ {
		x, _, _, err := s.accel.ReadRaw()
		if err != nil {
			continue
		}
		if x&1 != 0 {
			seed |= 1
		}
		seed <<= 1
	}
	return seed
}

// RunningAverage folds sample into avg the way calibration does: each new
// reading carries half the weight. This is not a true mean.
func RunningAverage(avg, sample Vector) Vector {
	return Vector{
		X: (avg.X + sample.X) / 2,
		Y: (avg.Y + sample.Y) / 2,
		Z: (avg.Z + sample.Z) / 2,
	}
}

// Calibrate assumes the cube is level with the accelerometer's Z axis up. It
// zeroes the offset trim, averages 100 readings, removes the expected 1g from
// Z and stores and applies the resulting trim.
func (s *Stick) Calibrate() ([3]int8, error) {
	s.Enable()
	defer s.Disable()

	if err := s.accel.SetOffset(0, 0, 0); err != nil {
		return [3]int8{}, err
	}

	avg, err := s.readAccel()
	for tries := 1; err != nil; tries++ {
		if tries >= calibrateTries {
			return [3]int8{}, errors.Wrapf(err, "sensors: calibrate gave up after %d reads", tries)
		}
		s.Sleep(enableDelay)
		avg, err = s.readAccel()
	}
	for i := 0; i < 100; i++ {
		a, err := s.readAccel()
		if err != nil {
			continue
		}
		avg = RunningAverage(avg, a)
	}
	avg.Z -= 1.0

	offsets := [3]int8{offsetCounts(avg.X), offsetCounts(avg.Y), offsetCounts(avg.Z)}
	if err := s.offsets.SetOffsets(offsets); err != nil {
		return offsets, errors.Wrap(err, "sensors: store calibration")
	}
	if err := s.accel.SetOffset(offsets[0], offsets[1], offsets[2]); err != nil {
		return offsets, err
	}
	log.Printf("Sensor Info: accelerometer calibrated, offsets %d %d %d\n", offsets[0], offsets[1], offsets[2])
	return offsets, nil
}

// offsetCounts converts a g error into the trim that cancels it.
func offsetCounts(g float64) int8 {
	v := -math.Round(g / adxl345.OffsetLSB)
	return int8(math.Max(math.MinInt8, math.Min(math.MaxInt8, v)))
}
