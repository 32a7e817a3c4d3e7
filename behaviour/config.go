package behaviour

import "time"

// Config holds the timings and thresholds of the behaviour loop. Counts of
// "ticks" are animation frames, counts of "cycles" are long sleeps.
type Config struct {
	Tick       time.Duration // animation frame length
	Sense      time.Duration // sensor poll interval while animating
	SleepCycle time.Duration // length of one long sleep

	Leeway        int // degrees either side of the target that count as on bearing
	HappyReadings int // on bearing frames needed to calm down

	VibrateThreshold      int     // ticks of unhappiness before the motor starts
	ApoplexyThreshold     int     // ticks of unhappiness before giving up for a while
	ApoplexySleepCycles   int     // cool down length, in checks
	ApoplexySleepLength   int     // sleep cycles per check
	ApoplexyPokeDelta     float64 // field change on any axis that ends the cool down
	ApoplexyPulseEvery    int     // checks between red pulses
	ApoplexyFlashes       int
	ApoplexyFlashOn       time.Duration
	ApoplexyFlashOff      time.Duration
	ApoplexyFlashLevel    uint8
	PacificationThreshold float64 // field on any axis that means a magnet is present

	// Random ranges, [min, max).
	AnimsBetweenNoseChanges [2]int
	CyclesBetweenAnims      [2]int

	ToneLow  float64 // Hz, at no unhappiness
	ToneHigh float64 // Hz, at three times the vibrate threshold
	HueCalm  float64 // degrees, at no unhappiness; red is reached at twice the vibrate threshold

	Debug bool
}

// ticksIn is the number of frames in d at the default frame rate.
func ticksIn(d time.Duration) int {
	return int(d / (50 * time.Millisecond))
}

// DefaultConfig returns the timings the cube ships with.
func DefaultConfig() Config {
	return Config{
		Tick:       50 * time.Millisecond,
		Sense:      150 * time.Millisecond,
		SleepCycle: 8 * time.Second,

		Leeway:        45,
		HappyReadings: 4,

		VibrateThreshold:      ticksIn(13 * time.Second),
		ApoplexyThreshold:     ticksIn(120 * time.Second),
		ApoplexySleepCycles:   int(2 * time.Hour / (8 * time.Second)),
		ApoplexySleepLength:   2,
		ApoplexyPokeDelta:     20,
		ApoplexyPulseEvery:    5,
		ApoplexyFlashes:       2,
		ApoplexyFlashOn:       300 * time.Millisecond,
		ApoplexyFlashOff:      80 * time.Millisecond,
		ApoplexyFlashLevel:    7,
		PacificationThreshold: 2500,

		AnimsBetweenNoseChanges: [2]int{12, 24},
		CyclesBetweenAnims:      [2]int{int(3 * time.Hour / (8 * time.Second)), int(4 * time.Hour / (8 * time.Second))},

		ToneLow:  55,
		ToneHigh: 1047,
		HueCalm:  170,
	}
}
