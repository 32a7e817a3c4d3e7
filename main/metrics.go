/*
	Copyright (c) 2013-2024 The jacube authors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file, herein included
	as part of this header.

	metrics.go: Prometheus metrics for the behaviour loop.
*/

package main

import (
	"github.com/jacube/cube/behaviour"
	"github.com/prometheus/client_golang/prometheus"
)

// metrics counts behaviour events. Live values are read from the cube at
// scrape time.
type metrics struct {
	steps       *prometheus.CounterVec
	animations  *prometheus.CounterVec
	noseChanges prometheus.Counter
	apoplexies  prometheus.Counter
	pokes       prometheus.Counter
	enables     prometheus.Counter
	enableTries prometheus.Counter
	readErrors  prometheus.Counter
	cpuTemp     prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer, status func() behaviour.Status) *metrics {
	m := &metrics{
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cube_steps_total",
			Help: "Behaviour loop steps by state.",
		}, []string{"state"}),
		animations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cube_animations_total",
			Help: "Animations played.",
		}, []string{"name"}),
		noseChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cube_nose_changes_total",
			Help: "Times the cube picked a new nose.",
		}),
		apoplexies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cube_apoplexy_total",
			Help: "Times the cube gave up and cooled down.",
		}),
		pokes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cube_apoplexy_pokes_total",
			Help: "Cool downs cut short by moving the cube.",
		}),
		enables: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cube_sensor_enables_total",
			Help: "Sensor power ups.",
		}),
		enableTries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cube_sensor_enable_attempts_total",
			Help: "Attempts needed across all sensor power ups.",
		}),
		readErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cube_sensor_read_errors_total",
			Help: "Discarded sensor reads.",
		}),
		cpuTemp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cube_cpu_temp_celsius",
			Help: "Board temperature.",
		}),
	}
	reg.MustRegister(m.steps, m.animations, m.noseChanges, m.apoplexies, m.pokes,
		m.enables, m.enableTries, m.readErrors, m.cpuTemp)

	gauge := func(name, help string, f func(behaviour.Status) float64) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, func() float64 {
			return f(status())
		})
	}
	reg.MustRegister(
		gauge("cube_state", "0 starting, 1 pacified, 2 oriented, 3 misoriented.",
			func(s behaviour.Status) float64 { return float64(s.State) }),
		gauge("cube_unhappiness", "Frames spent unhappy.",
			func(s behaviour.Status) float64 { return float64(s.Unhappiness) }),
		gauge("cube_target_degrees", "Target bearing.",
			func(s behaviour.Status) float64 { return float64(s.Target) }),
		gauge("cube_heading_degrees", "Bearing of the nose, -1 when it has none.",
			func(s behaviour.Status) float64 {
				if !s.Orientation.HasBearing {
					return -1
				}
				return float64(s.Orientation.Bearing)
			}),
		gauge("cube_up_face", "Face pointing at the sky, -1 when unknown.",
			func(s behaviour.Status) float64 { return float64(s.Orientation.Up) }),
		gauge("cube_nose_face", "Face that should point at the target.",
			func(s behaviour.Status) float64 { return float64(s.Orientation.Nose) }),
	)
	return m
}

func (m *metrics) Observe(e behaviour.Event) {
	switch e.Kind {
	case behaviour.EventStep:
		m.steps.WithLabelValues(e.State.String()).Inc()
	case behaviour.EventAnimation:
		m.animations.WithLabelValues(e.Note).Inc()
	case behaviour.EventNoseChange:
		m.noseChanges.Inc()
	case behaviour.EventApoplexy:
		m.apoplexies.Inc()
	case behaviour.EventPoked:
		m.pokes.Inc()
	case behaviour.EventEnable:
		m.enables.Inc()
		m.enableTries.Add(float64(e.Count))
	case behaviour.EventReadError:
		m.readErrors.Inc()
	}
}

// SetCPUTemp matches common.CPUTempUpdateFunc.
func (m *metrics) SetCPUTemp(t float32) {
	m.cpuTemp.Set(float64(t))
}
