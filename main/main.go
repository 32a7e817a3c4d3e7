/*
	Copyright (c) 2013-2024 The jacube authors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file, herein included
	as part of this header.

	main.go: cubed, the orientation cube daemon.
*/

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jacube/cube/behaviour"
	"github.com/jacube/cube/common"
	"github.com/jacube/cube/geometry"
	"github.com/jacube/cube/leds"
	"github.com/jacube/cube/nvram"
	"github.com/jacube/cube/orientation"
	"github.com/jacube/cube/sensors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/takama/daemon"
)

const (
	// name of the service
	name        = "cubed"
	description = "orientation cube that wants its nose to point one way"

	cpuTempPeriod = time.Second
)

var stdlog, errlog *log.Logger

// Service has embedded daemon
type Service struct {
	daemon.Daemon
}

// Manage by daemon commands or run the daemon
func (service *Service) Manage() (string, error) {
	configPath := flag.String("config", defaultConfigLocation, "Settings file")
	flag.Parse()

	usage := "Usage: " + name + " [-config file] install | remove | start | stop | status | settings"
	// if received any kind of command, do it
	if flag.NArg() > 0 {
		switch flag.Arg(0) {
		case "install":
			return service.Install("-config", *configPath)
		case "remove":
			return service.Remove()
		case "start":
			return service.Start()
		case "stop":
			return service.Stop()
		case "status":
			return service.Status()
		case "settings":
			s, err := loadSettings(*configPath)
			if err != nil {
				return "Settings are not valid", err
			}
			return "", writeSettings(os.Stdout, s)
		default:
			return usage, nil
		}
	}

	s, err := loadSettings(*configPath)
	if err != nil {
		return "Could not load settings", err
	}
	globalSettings = s

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stdlog.Printf("%s: settings from %s, logging to %s\n", name, *configPath, s.LogDir)
	initLogging(ctx, s.LogDir)
	if err := runCube(ctx, s); err != nil {
		return "Cube stopped", err
	}
	return "Daemon was interrupted by system signal", nil
}

// runCube wires the hardware to the behaviour loop and runs it until ctx is
// cancelled.
func runCube(ctx context.Context, s settings) error {
	clock := NewMonotonic()
	if !common.IsRunningAsRoot() {
		log.Printf("Cube Error: not running as root, GPIO access will probably fail\n")
	}

	store, err := nvram.Open(s.NVRAMPath)
	if err != nil {
		return err
	}
	b, err := openBoard(s.Pins, s.I2CBus)
	if err != nil {
		return err
	}
	defer b.Close()

	stick := sensors.NewStick(b, store, s.AccelAddr)
	stick.Debug = s.Debug
	seed := stick.Entropy()
	logDbg("Cube Info: random seed %#x\n", seed)

	frame := &leds.FrameBuffer{}
	scanner := leds.NewScanner(frame, b)
	scanner.Period = s.Timings.ScanPeriod
	defer scanner.Stop()

	engine := orientation.NewEngine(geometry.Face(s.Nose))
	reg := prometheus.NewRegistry()

	var m *behaviour.Machine
	status := func() behaviour.Status { return m.Status() }
	target := func() int { return m.Target() }
	met := newMetrics(reg, status)
	go common.CPUTempMonitor(ctx, common.ThermalZone, cpuTempPeriod, met.SetCPUTemp)
	observers := behaviour.Observers{met}
	if dl, err := openDataLog(s.DatalogPath, target); err != nil {
		log.Printf("Cube Error: %s, running without a datalog\n", err)
	} else {
		defer dl.Close()
		observers = append(observers, dl)
	}

	hw := behaviour.Hardware{
		Sensors: stick,
		Body:    b,
		Display: scanner,
		Frame:   frame,
		Clock:   behaviour.SystemClock{},
	}
	m = behaviour.NewMachine(s.behaviourConfig(), hw, engine, store.Bearing(), rand.New(rand.NewSource(seed)), observers)
	c := &cube{ctx: ctx, machine: m, store: store, stick: stick, clock: clock}

	con, port, err := openConsole(s.Serial, s.SerialBaud, c)
	if err != nil {
		log.Printf("Cube Error: %s, running without a console\n", err)
	} else {
		defer port.Close()
		con.startup()
		go con.serve(ctx)
	}

	mi := &managementInterface{ctl: c, settings: s, gatherer: reg}
	go mi.serve(ctx, s.ManagementAddr)

	return m.Run(ctx)
}

func init() {
	stdlog = log.New(os.Stdout, "", 0)
	errlog = log.New(os.Stderr, "", 0)
}

func main() {
	srv, err := daemon.New(name, description, daemon.SystemDaemon)
	if err != nil {
		errlog.Println("Error: ", err)
		os.Exit(1)
	}
	service := &Service{srv}
	status, err := service.Manage()
	if err != nil {
		errlog.Println(status, "\nError: ", err)
		os.Exit(1)
	}
	fmt.Println(status)
}
