/*
	Copyright (c) 2013-2024 The jacube authors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file, herein included
	as part of this header.

	main.go: Plot heading, target and unhappiness from a cube datalog.
*/

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

type series struct {
	heading     plotter.XYs
	target      plotter.XYs
	unhappiness plotter.XYs
}

// loadSeries reads the events table. X is minutes since the first event.
func loadSeries(db *sql.DB) (series, error) {
	var s series
	rows, err := db.Query("SELECT time, bearing, has_bearing, target, unhappiness FROM events ORDER BY time, id")
	if err != nil {
		return s, err
	}
	defer rows.Close()

	var first int64
	for n := 0; rows.Next(); n++ {
		var (
			ms                           int64
			bearing, target, unhappiness int
			hasBearing                   bool
		)
		if err := rows.Scan(&ms, &bearing, &hasBearing, &target, &unhappiness); err != nil {
			return s, err
		}
		if n == 0 {
			first = ms
		}
		x := float64(ms-first) / 60000
		if hasBearing {
			s.heading = append(s.heading, plotter.XY{X: x, Y: float64(bearing)})
		}
		s.target = append(s.target, plotter.XY{X: x, Y: float64(target)})
		s.unhappiness = append(s.unhappiness, plotter.XY{X: x, Y: float64(unhappiness)})
	}
	return s, rows.Err()
}

func render(s series, out string) error {
	p := plot.New()
	p.Title.Text = "Cube heading vs. time"
	p.X.Label.Text = "minutes"
	p.Y.Label.Text = "degrees / frames unhappy"

	err := plotutil.AddLinePoints(p,
		"heading", s.heading,
		"target", s.target,
		"unhappiness", s.unhappiness)
	if err != nil {
		return err
	}
	return p.Save(10*vg.Inch, 5*vg.Inch, out)
}

func main() {
	out := flag.String("o", "datalog.png", "Output image")
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Printf("%s [-o out.png] <datalog.sqlite>\n", os.Args[0])
		os.Exit(2)
	}

	db, err := sql.Open("sqlite3", flag.Arg(0))
	if err != nil {
		fmt.Printf("sql.Open(): %s\n", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	s, err := loadSeries(db)
	if err != nil {
		fmt.Printf("error reading '%s': %s\n", flag.Arg(0), err.Error())
		os.Exit(1)
	}
	if len(s.target) == 0 {
		fmt.Printf("no events in '%s'\n", flag.Arg(0))
		os.Exit(1)
	}
	if err := render(s, *out); err != nil {
		fmt.Printf("error plotting: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Printf("%d events plotted to %s\n", len(s.target), *out)
}
