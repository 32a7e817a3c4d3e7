/*
	Copyright (c) 2013-2024 The jacube authors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file, herein included
	as part of this header.

	cube.go: Operations shared by the console and the management interface.
*/

package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jacube/cube/behaviour"
	"github.com/jacube/cube/geometry"
	"github.com/jacube/cube/nvram"
	"github.com/jacube/cube/sensors"
)

const bearingIndicatorTime = 10 * time.Second

var errNose = errors.New("nose must be a face 0..5")

// controller is what the console and the web interface may do to a running
// cube.
type controller interface {
	Target() int
	SetTarget(deg int) error
	SetNose(face int) error
	Calibration() [3]int8
	Calibrate() ([3]int8, error)
	Status() behaviour.Status
	PlayHappy(i int) error
	ShowBearing() error
	Uptime() string
}

type cube struct {
	ctx     context.Context
	machine *behaviour.Machine
	store   *nvram.Store
	stick   *sensors.Stick
	clock   *monotonic
}

func (c *cube) Target() int {
	return c.machine.Target()
}

// SetTarget persists deg before the loop sees it.
func (c *cube) SetTarget(deg int) error {
	if err := c.store.SetBearing(deg); err != nil {
		return err
	}
	if err := c.machine.SetTarget(deg); err != nil {
		return err
	}
	log.Printf("Cube Info: target bearing set to %d\n", deg)
	return nil
}

func (c *cube) SetNose(face int) error {
	if face < 0 || face >= geometry.NumFaces {
		return errNose
	}
	if !c.machine.Engine().SetNose(geometry.Face(face)) {
		return errNose
	}
	log.Printf("Cube Info: nose set to %d\n", face)
	return nil
}

func (c *cube) Calibration() [3]int8 {
	return c.store.Offsets()
}

// Calibrate waits for the loop to finish its step, then calibrates.
func (c *cube) Calibrate() (offsets [3]int8, err error) {
	c.machine.Exclusive(func() {
		offsets, err = c.stick.Calibrate()
	})
	return offsets, err
}

func (c *cube) Status() behaviour.Status {
	return c.machine.Status()
}

func (c *cube) PlayHappy(i int) error {
	return c.machine.PlayHappy(c.ctx, i)
}

func (c *cube) ShowBearing() error {
	return c.machine.PlayBearingIndicator(c.ctx, bearingIndicatorTime)
}

func (c *cube) Uptime() string {
	return c.clock.HumanizeUptime()
}
