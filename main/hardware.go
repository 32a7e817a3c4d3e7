/*
	Copyright (c) 2013-2024 The jacube authors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file, herein included
	as part of this header.

	hardware.go: GPIO, PWM and I2C wiring of the cube's board.
*/

package main

import (
	"fmt"

	"github.com/jacube/cube/leds"
	"github.com/kidoman/embd"
	_ "github.com/kidoman/embd/host/rpi"
	"github.com/stianeikeland/go-rpio/v4"
)

// PWM cycle length for the piezo. The clock runs toneCycle times faster
// than the note so a half duty square wave comes out at the note frequency.
const toneCycle = 128

type board struct {
	anodes  [leds.NumLEDs]rpio.Pin
	colours [3]rpio.Pin
	vibrate rpio.Pin
	piezo   rpio.Pin
	power   rpio.Pin
	sda     rpio.Pin
	scl     rpio.Pin

	bus embd.I2CBus
}

func openBoard(p pinMap, busNum byte) (*board, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}
	if err := embd.InitI2C(); err != nil {
		rpio.Close()
		return nil, fmt.Errorf("open i2c: %w", err)
	}
	b := &board{
		colours: [3]rpio.Pin{rpio.Pin(p.Red), rpio.Pin(p.Green), rpio.Pin(p.Blue)},
		vibrate: rpio.Pin(p.Vibrate),
		piezo:   rpio.Pin(p.Piezo),
		power:   rpio.Pin(p.SensorPower),
		sda:     rpio.Pin(p.SDA),
		scl:     rpio.Pin(p.SCL),
		bus:     embd.NewI2CBus(busNum),
	}
	for i := range b.anodes {
		b.anodes[i] = rpio.Pin(p.Anodes[i])
		b.anodes[i].Output()
	}
	b.Off()
	b.Vibrate(false)
	b.piezo.Mode(rpio.Pwm)
	b.Tone(0)
	b.PowerOff()
	return b, nil
}

func (b *board) Close() {
	b.Off()
	b.Vibrate(false)
	b.Tone(0)
	b.PowerOff()
	embd.CloseI2C()
	rpio.Close()
}

// LED lines. Colour lines sink current: asserted means driven low, released
// means high impedance.

func (b *board) DriveAnode(pos int, on bool) {
	if on {
		b.anodes[pos].High()
	} else {
		b.anodes[pos].Low()
	}
}

func (b *board) AssertChannel(ch leds.Channel, on bool) {
	pin := b.colours[ch]
	if on {
		pin.Output()
		pin.Low()
	} else {
		pin.Input()
	}
}

func (b *board) Off() {
	for _, a := range b.anodes {
		a.Low()
	}
	for _, c := range b.colours {
		c.Input()
	}
}

// Body.

func (b *board) Vibrate(on bool) {
	if on {
		b.vibrate.Output()
		b.vibrate.High()
	} else {
		b.vibrate.Low()
		b.vibrate.Input()
	}
}

func (b *board) Tone(hz float64) {
	if hz <= 0 {
		b.piezo.DutyCycle(0, toneCycle)
		return
	}
	b.piezo.Freq(int(hz * toneCycle))
	b.piezo.DutyCycle(toneCycle/2, toneCycle)
}

// Sensor rail.

func (b *board) PowerOn() {
	b.power.Output()
	b.power.High()
}

func (b *board) PowerOff() {
	b.power.Low()
	b.power.Input()
}

// Reset restores the bus pull-ups. The kernel owns the controller, so the
// bus handle itself is kept for the life of the daemon.
func (b *board) Reset() (embd.I2CBus, error) {
	b.sda.PullUp()
	b.scl.PullUp()
	return b.bus, nil
}

func (b *board) Release() {
	b.sda.PullOff()
	b.scl.PullOff()
}
