/*
	Copyright (c) 2013-2024 The jacube authors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file, herein included
	as part of this header.

	console.go: Serial setup and debug console.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jacube/cube/animation"
	"github.com/tarm/serial"
)

const (
	serialReadTimeout = 100 * time.Millisecond
	startupWait       = time.Second
	digitWait         = 30 * time.Second
	maxLine           = 64
)

var (
	errTimeout = errors.New("timed out")
	errDigits  = errors.New("bearing must be 3 ASCII digits")
	errBearing = errors.New("bearing must be 0..359")
)

type console struct {
	rw  io.ReadWriter
	ctl controller
	now func() time.Time
}

func openConsole(name string, baud int, ctl controller) (*console, io.Closer, error) {
	port, err := serial.OpenPort(&serial.Config{Name: name, Baud: baud, ReadTimeout: serialReadTimeout})
	if err != nil {
		return nil, nil, fmt.Errorf("open serial %s: %w", name, err)
	}
	return &console{rw: port, ctl: ctl, now: time.Now}, port, nil
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.rw, format, args...)
}

// readByte waits up to d for a byte. The port's own read timeout bounds each
// attempt, so d is only checked between attempts.
func (c *console) readByte(d time.Duration) (byte, error) {
	deadline := c.now().Add(d)
	var b [1]byte
	for {
		n, err := c.rw.Read(b[:])
		if n == 1 {
			return b[0], nil
		}
		if err != nil && err != io.EOF {
			return 0, err
		}
		if !c.now().Before(deadline) {
			return 0, errTimeout
		}
	}
}

func (c *console) drain() {
	for {
		if _, err := c.readByte(0); err != nil {
			return
		}
	}
}

// startup offers to change the target bearing before the cube starts.
func (c *console) startup() {
	c.printf("Hello! The current target bearing is %d\r\n", c.ctl.Target())
	c.printf("To change press any key in 1 second.\r\n")
	if _, err := c.readByte(startupWait); err != nil {
		return
	}
	c.drain()
	c.printf("OK. Enter the new bearing as three ASCII digits now: ")
	deg, err := c.readBearing()
	if err == nil {
		err = c.ctl.SetTarget(deg)
	}
	if err != nil {
		c.printf("\r\n%s\r\n", errorMessage(err))
		return
	}
	c.printf("\r\nNew target bearing is %d\r\n", deg)
	c.printf("Continuing to run...\r\n")
}

// readBearing reads and echoes three digits, giving up at the first byte
// that is not one.
func (c *console) readBearing() (int, error) {
	var buf [3]byte
	for i := range buf {
		b, err := c.readByte(digitWait)
		if err != nil {
			return 0, err
		}
		c.printf("%c", b)
		if b < '0' || b > '9' {
			return 0, errDigits
		}
		buf[i] = b
	}
	return parseBearing(string(buf[:]))
}

func parseBearing(s string) (int, error) {
	if len(s) != 3 {
		return 0, errDigits
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errDigits
		}
	}
	deg, _ := strconv.Atoi(s)
	if deg >= 360 {
		return 0, errBearing
	}
	return deg, nil
}

// readLine reads up to a CR or LF. Over long lines are dropped.
func (c *console) readLine(ctx context.Context) (string, error) {
	var line []byte
	var b [1]byte
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, err := c.rw.Read(b[:])
		if err != nil && err != io.EOF {
			return "", err
		}
		if n == 0 {
			continue
		}
		switch b[0] {
		case '\r', '\n':
			if len(line) > maxLine {
				c.printf("Line too long, ignored.\r\n")
				line = line[:0]
				continue
			}
			return string(line), nil
		default:
			if len(line) <= maxLine {
				line = append(line, b[0])
			}
		}
	}
}

// serve runs console commands until ctx is cancelled.
func (c *console) serve(ctx context.Context) {
	for {
		line, err := c.readLine(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("Cube Error: console: %s\n", err)
			}
			return
		}
		c.handle(strings.TrimSpace(line))
	}
}

const consoleHelp = "Commands:\r\n" +
	"  bNNN  set target bearing (3 digits)\r\n" +
	"  nN    set nose face (0-5)\r\n" +
	"  c     show calibration and target\r\n" +
	"  k     calibrate, cube level with the accelerometer Z up\r\n" +
	"  s     show orientation\r\n" +
	"  aN    play happy animation N\r\n" +
	"  i     show the bearing indicator\r\n" +
	"  h     this help\r\n"

func (c *console) handle(line string) {
	if line == "" {
		return
	}
	arg := line[1:]
	switch line[0] {
	case 'b':
		deg, err := parseBearing(arg)
		if err == nil {
			err = c.ctl.SetTarget(deg)
		}
		if err != nil {
			c.printf("%s\r\n", errorMessage(err))
			return
		}
		c.printf("New target bearing is %d\r\n", deg)
	case 'n':
		n, err := strconv.Atoi(arg)
		if err == nil {
			err = c.ctl.SetNose(n)
		}
		if err != nil {
			c.printf("Error. Nose must be a digit 0..5.\r\n")
			return
		}
		c.printf("Nose set to: %d\r\n", n)
	case 'c':
		c.printCalibration(c.ctl.Calibration())
	case 'k':
		c.printf("Calibrating...\r\n")
		offsets, err := c.ctl.Calibrate()
		if err != nil {
			c.printf("Calibration failed: %s\r\n", err)
			return
		}
		c.printCalibration(offsets)
	case 's':
		c.printStatus()
	case 'a':
		i, err := strconv.Atoi(arg)
		if err != nil || i < 0 || i >= len(animation.Catalogue) {
			c.printf("Error. Animation must be 0..%d.\r\n", len(animation.Catalogue)-1)
			return
		}
		c.printf("Playing %s\r\n", animation.Catalogue[i].Name)
		if err := c.ctl.PlayHappy(i); err != nil {
			c.printf("%s\r\n", err)
		}
	case 'i':
		if err := c.ctl.ShowBearing(); err != nil {
			c.printf("%s\r\n", err)
		}
	case 'h', '?':
		c.printf(consoleHelp)
	default:
		c.printf("Unknown command %q, h for help.\r\n", line)
	}
}

// errorMessage is how the console words err.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, errDigits):
		return "Error. Enter as 3 ASCII digits."
	case errors.Is(err, errTimeout):
		return "Error. Timed out waiting for input."
	}
	return "Error. " + err.Error()
}

func (c *console) printCalibration(o [3]int8) {
	c.printf("Calibration data: X %d, Y %d, Z %d\r\n", o[0], o[1], o[2])
	c.printf("Target bearing: %d\r\n", c.ctl.Target())
}

func (c *console) printStatus() {
	st := c.ctl.Status()
	o := st.Orientation
	bearing := "none"
	if o.HasBearing {
		bearing = strconv.Itoa(o.Bearing)
	}
	c.printf("State %v, up %v, nose %v, bearing %s, target %d, unhappiness %d, up %s\r\n",
		st.State, o.Up, o.Nose, bearing, st.Target, st.Unhappiness, c.ctl.Uptime())
}
