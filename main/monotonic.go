/*
	Copyright (c) 2013-2024 The jacube authors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file, herein included
	as part of this header.

	monotonic.go: Uptime on the monotonic clock, unaffected by RTC or NTP steps on the Pi.
*/

package main

import (
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
)

type monotonic struct {
	start time.Time
	now   func() time.Time
}

func NewMonotonic() *monotonic {
	return &monotonic{start: time.Now(), now: time.Now}
}

func (m *monotonic) Uptime() time.Duration {
	return m.now().Sub(m.start)
}

// HumanizeTime renders t relative to now, e.g. "3 minutes ago".
func (m *monotonic) HumanizeTime(t time.Time) string {
	return humanize.RelTime(t, m.now(), "ago", "from now")
}

// HumanizeUptime renders the time since start, e.g. "2 hours".
func (m *monotonic) HumanizeUptime() string {
	return strings.TrimSpace(humanize.RelTime(m.start, m.now(), "", ""))
}
