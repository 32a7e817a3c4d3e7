package hmc5883l

import (
	"errors"
	"testing"

	"github.com/jacube/cube/sensors/i2cfake"
)

func TestConnected(t *testing.T) {
	bus := i2cfake.New()
	d := New(bus)
	if d.Connected() {
		t.Fatal("expected blank device to fail identification")
	}
	bus.Set(Address, RegIdentA, 'H', '4', '3')
	if !d.Connected() {
		t.Fatal("expected device to identify")
	}
}

func TestSetGain(t *testing.T) {
	bus := i2cfake.New()
	d := New(bus)
	if err := d.SetGain(Gain1_3); err != nil {
		t.Fatalf("SetGain: %v", err)
	}
	if got := bus.Get(Address, RegConfigB); got != 0x20 {
		t.Fatalf("CRB = %#x, want 0x20", got)
	}
	if d.Scale() != 0.92 {
		t.Fatalf("scale = %v, want 0.92", d.Scale())
	}
	if err := d.SetGain(Gain(8)); err == nil {
		t.Fatal("expected error for gain 8")
	}
}

func TestSetMode(t *testing.T) {
	bus := i2cfake.New()
	if err := New(bus).SetMode(Idle); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if got := bus.Get(Address, RegMode); got != byte(Idle) {
		t.Fatalf("mode = %#x", got)
	}
}

func TestReadRawAxisOrder(t *testing.T) {
	bus := i2cfake.New()
	// X = 1, Z = -2, Y = 300, big endian
	bus.Set(Address, RegDataX, 0x00, 0x01, 0xFF, 0xFE, 0x01, 0x2C)
	x, y, z, err := New(bus).ReadRaw()
	if err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	if x != 1 || y != 300 || z != -2 {
		t.Fatalf("ReadRaw = %d %d %d, want 1 300 -2", x, y, z)
	}
}

func TestReadScaledFailure(t *testing.T) {
	bus := i2cfake.New()
	bus.Fail(Address, true)
	_, _, _, err := New(bus).ReadScaled()
	if !errors.Is(err, i2cfake.ErrNoDevice) {
		t.Fatalf("ReadScaled error = %v", err)
	}
}
