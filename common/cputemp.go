// Package common holds small host helpers shared by the daemon and tools.
package common

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	InvalidCPUTemp = float32(-99.0)
	ThermalZone    = "/sys/class/thermal/thermal_zone0/temp"
)

type CPUTempUpdateFunc func(cpuTemp float32)

// ParseCPUTemp reads a thermal zone value, which the Pi reports in
// millidegrees and some kernels in whole degrees.
func ParseCPUTemp(b []byte) float32 {
	tInt, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return InvalidCPUTemp
	}
	if tInt > 1000 {
		return float32(tInt) / 1000
	}
	return float32(tInt)
}

// CPUTempMonitor reads the board temperature from path every period and
// calls updater with each valid value, until ctx is cancelled. Run it in its
// own goroutine: reading the thermal zone can hang for a long time.
func CPUTempMonitor(ctx context.Context, path string, period time.Duration, updater CPUTempUpdateFunc) {
	timer := time.NewTicker(period)
	defer timer.Stop()
	for {
		if b, err := os.ReadFile(path); err == nil {
			if t := ParseCPUTemp(b); IsCPUTempValid(t) {
				updater(t)
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}

// IsCPUTempValid assumes <= 0 is invalid.
func IsCPUTempValid(cpuTemp float32) bool {
	return cpuTemp > 0
}
