package behaviour

import (
	"context"
	"time"

	"github.com/jacube/cube/sensors"
)

// Sensors is the switchable sensor stick.
type Sensors interface {
	// Enable powers and configures the sensors, blocking until they work.
	// It returns the number of attempts it took.
	Enable() int
	// Disable powers the sensors down.
	Disable()
	sensors.Reader
}

// Body is the cube's motor and speaker.
type Body interface {
	Vibrate(on bool)
	// Tone plays hz, or stops playing if hz is 0.
	Tone(hz float64)
}

// Display is the LED scanner.
type Display interface {
	Start()
	Stop()
}

// Clock tells the time and sleeps. Sleep returns early with the context's
// error if it is cancelled.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
