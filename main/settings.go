/*
	Copyright (c) 2013-2024 The jacube authors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file, herein included
	as part of this header.

	settings.go: Settings file and environment overrides.
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jacube/cube/behaviour"
	"github.com/jacube/cube/geometry"
	"github.com/jacube/cube/leds"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigLocation = "/etc/cube.yaml"
	envPrefix             = "CUBE_"
)

// pinMap holds BCM GPIO numbers.
type pinMap struct {
	Anodes      []int `yaml:"anodes" env:"ANODES" envSeparator:","`
	Red         int   `yaml:"red" env:"RED"`
	Green       int   `yaml:"green" env:"GREEN"`
	Blue        int   `yaml:"blue" env:"BLUE"`
	Vibrate     int   `yaml:"vibrate" env:"VIBRATE"`
	Piezo       int   `yaml:"piezo" env:"PIEZO"`
	SensorPower int   `yaml:"sensor_power" env:"SENSOR_POWER"`
	SDA         int   `yaml:"sda" env:"SDA"`
	SCL         int   `yaml:"scl" env:"SCL"`
}

// timings are the behaviour settings worth changing without a rebuild.
type timings struct {
	Tick          time.Duration `yaml:"tick" env:"TICK"`
	Sense         time.Duration `yaml:"sense" env:"SENSE"`
	SleepCycle    time.Duration `yaml:"sleep_cycle" env:"SLEEP_CYCLE"`
	ScanPeriod    time.Duration `yaml:"scan_period" env:"SCAN_PERIOD"`
	Leeway        int           `yaml:"leeway" env:"LEEWAY"`
	HappyReadings int           `yaml:"happy_readings" env:"HAPPY_READINGS"`
}

type settings struct {
	Debug          bool    `yaml:"debug" env:"DEBUG"`
	LogDir         string  `yaml:"log_dir" env:"LOG_DIR"`
	NVRAMPath      string  `yaml:"nvram" env:"NVRAM"`
	DatalogPath    string  `yaml:"datalog" env:"DATALOG"`
	ManagementAddr string  `yaml:"management_addr" env:"MANAGEMENT_ADDR"`
	Serial         string  `yaml:"serial" env:"SERIAL"`
	SerialBaud     int     `yaml:"serial_baud" env:"SERIAL_BAUD"`
	I2CBus         byte    `yaml:"i2c_bus" env:"I2C_BUS"`
	AccelAddr      byte    `yaml:"accel_addr" env:"ACCEL_ADDR"`
	Nose           int     `yaml:"nose" env:"NOSE"`
	Pins           pinMap  `yaml:"pins" envPrefix:"PIN_"`
	Timings        timings `yaml:"timings" envPrefix:"TIMING_"`
}

var globalSettings settings

func defaultSettings() settings {
	cfg := behaviour.DefaultConfig()
	return settings{
		LogDir:         "/var/log/cube",
		NVRAMPath:      "/var/lib/cube/nvram.bin",
		DatalogPath:    "/var/lib/cube/datalog.sqlite",
		ManagementAddr: ":8080",
		Serial:         "/dev/ttyAMA0",
		SerialBaud:     115200,
		I2CBus:         1,
		AccelAddr:      0x53,
		Nose:           1,
		Pins: pinMap{
			Anodes:      []int{5, 6, 13, 19, 26, 21},
			Red:         17,
			Green:       27,
			Blue:        22,
			Vibrate:     23,
			Piezo:       18,
			SensorPower: 24,
			SDA:         2,
			SCL:         3,
		},
		Timings: timings{
			Tick:          cfg.Tick,
			Sense:         cfg.Sense,
			SleepCycle:    cfg.SleepCycle,
			ScanPeriod:    leds.DefaultScanPeriod,
			Leeway:        cfg.Leeway,
			HappyReadings: cfg.HappyReadings,
		},
	}
}

// loadSettings reads the settings file at path over the defaults, then
// applies CUBE_* environment overrides. A missing file is not an error.
func loadSettings(path string) (settings, error) {
	s := defaultSettings()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("Cube Info: no settings at %s, using defaults\n", path)
	case err != nil:
		return s, fmt.Errorf("read settings %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(b, &s); err != nil {
			return s, fmt.Errorf("parse settings %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&s, env.Options{Prefix: envPrefix}); err != nil {
		return s, fmt.Errorf("settings from environment: %w", err)
	}
	return s, s.validate()
}

func (s settings) validate() error {
	if len(s.Pins.Anodes) != leds.NumLEDs {
		return fmt.Errorf("settings: %d anode pins, want %d", len(s.Pins.Anodes), leds.NumLEDs)
	}
	if s.Nose < 0 || s.Nose >= geometry.NumFaces {
		return fmt.Errorf("settings: nose %d is not a face", s.Nose)
	}
	t := s.Timings
	if t.Tick <= 0 || t.Sense <= 0 || t.SleepCycle <= 0 || t.ScanPeriod <= 0 {
		return errors.New("settings: timings must be positive")
	}
	if t.Leeway < 0 || t.Leeway > 180 || t.HappyReadings < 1 {
		return fmt.Errorf("settings: leeway %d / happy readings %d out of range", t.Leeway, t.HappyReadings)
	}
	return nil
}

// behaviourConfig applies the settings to the behaviour defaults.
func (s settings) behaviourConfig() behaviour.Config {
	cfg := behaviour.DefaultConfig()
	cfg.Tick = s.Timings.Tick
	cfg.Sense = s.Timings.Sense
	cfg.SleepCycle = s.Timings.SleepCycle
	cfg.Leeway = s.Timings.Leeway
	cfg.HappyReadings = s.Timings.HappyReadings
	cfg.Debug = s.Debug
	return cfg
}

// writeSettings prints s in settings file form.
func writeSettings(w io.Writer, s settings) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&s); err != nil {
		return err
	}
	return enc.Close()
}
