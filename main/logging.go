/*
	Copyright (c) 2013-2024 The jacube authors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file, herein included
	as part of this header.

	logging.go: Log to file and stdout, rotate by size, delete old logs when the disk fills.
*/

package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ricochet2200/go-disk-usage/du"
)

const (
	debugLogFile    = "cube.log"
	maxLogSize      = 10 * 1024 * 1024
	maxLogFiles     = 9
	minFreeLogSpace = 50 * 1024 * 1024
	logCheckPeriod  = 30 * time.Second
)

type logFiles struct {
	dir    string
	stdout io.Writer
	fp     *os.File
}

func (l *logFiles) path() string {
	return filepath.Join(l.dir, debugLogFile)
}

type logGeneration struct {
	path string
	n    int
}

// rotated lists the rotated logs, newest first.
func (l *logFiles) rotated() []logGeneration {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil
	}
	var logs []logGeneration
	for _, e := range entries {
		suffix, ok := strings.CutPrefix(e.Name(), debugLogFile+".")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		logs = append(logs, logGeneration{filepath.Join(l.dir, e.Name()), n})
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].n < logs[j].n })
	return logs
}

func (l *logFiles) open() error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return err
	}
	fp, err := os.OpenFile(l.path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return err
	}
	old := l.fp
	l.fp = fp
	log.SetOutput(io.MultiWriter(fp, l.stdout))
	if old != nil {
		old.Close()
	}
	return nil
}

// rotate shifts cube.log.N to N+1, dropping the oldest, and starts a new log.
func (l *logFiles) rotate() error {
	logs := l.rotated()
	for i := len(logs) - 1; i >= 0; i-- {
		if logs[i].n >= maxLogFiles {
			os.Remove(logs[i].path)
			continue
		}
		os.Rename(logs[i].path, l.path()+"."+strconv.Itoa(logs[i].n+1))
	}
	os.Rename(l.path(), l.path()+".1")
	return l.open()
}

// deleteOldest removes the oldest rotated log and returns its size.
func (l *logFiles) deleteOldest() int64 {
	logs := l.rotated()
	if len(logs) == 0 {
		return 0
	}
	oldest := logs[len(logs)-1].path
	st, err := os.Stat(oldest)
	if err != nil {
		return 0
	}
	if os.Remove(oldest) != nil {
		return 0
	}
	return st.Size()
}

func (l *logFiles) check() {
	if st, err := os.Stat(l.path()); err == nil && st.Size() > maxLogSize {
		if err := l.rotate(); err != nil {
			log.Printf("Cube Error: rotating logs: %s\n", err)
		}
	}

	free := int64(du.NewDiskUsage(l.dir).Free())
	for free < minFreeLogSpace {
		deleted := l.deleteOldest()
		if deleted == 0 {
			break
		}
		free += deleted
	}
}

func (l *logFiles) watch(ctx context.Context) {
	t := time.NewTicker(logCheckPeriod)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.check()
		}
	}
}

// initLogging sends the standard logger to dir/cube.log as well as stdout.
// If the log file cannot be opened logging stays on stdout.
func initLogging(ctx context.Context, dir string) {
	l := &logFiles{dir: dir, stdout: os.Stdout}
	if err := l.open(); err != nil {
		log.Printf("Cube Error: could not open log file in %s: %s\n", dir, err)
		return
	}
	go l.watch(ctx)
}

func logDbg(msg string, args ...any) {
	if globalSettings.Debug {
		log.Printf(msg, args...)
	}
}
