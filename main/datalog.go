/*
	Copyright (c) 2013-2024 The jacube authors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file, herein included
	as part of this header.

	datalog.go: Log behaviour events to SQLite.
*/

package main

import (
	"database/sql"
	"fmt"
	"log"
	"reflect"
	"strings"
	"sync"

	"github.com/jacube/cube/behaviour"
	_ "github.com/mattn/go-sqlite3"
)

const (
	eventsTable    = "events"
	dataLogBacklog = 1024
)

// eventRow is one row of the events table. Columns come from the db tags.
type eventRow struct {
	Time        int64  `db:"time"` // unix milliseconds
	Kind        string `db:"kind"`
	State       string `db:"state"`
	Up          int    `db:"up"`
	Nose        int    `db:"nose"`
	Bearing     int    `db:"bearing"`
	HasBearing  bool   `db:"has_bearing"`
	Target      int    `db:"target"`
	Unhappiness int    `db:"unhappiness"`
	Note        string `db:"note"`
	Count       int    `db:"count"`
}

var sqlTypeMap = map[reflect.Kind]string{
	reflect.Bool:    "INTEGER",
	reflect.Int:     "INTEGER",
	reflect.Int64:   "INTEGER",
	reflect.Float64: "REAL",
	reflect.String:  "TEXT",
}

type column struct {
	name, sqlType string
	index         int
}

func columnsOf(row any) []column {
	t := reflect.TypeOf(row)
	cols := make([]column, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := f.Tag.Get("db")
		sqlType, ok := sqlTypeMap[f.Type.Kind()]
		if name == "" || !ok {
			continue
		}
		cols = append(cols, column{name: name, sqlType: sqlType, index: i})
	}
	return cols
}

func makeTable(row any, tbl string, db *sql.DB) error {
	fields := make([]string, 0)
	for _, c := range columnsOf(row) {
		fields = append(fields, c.name+" "+c.sqlType)
	}
	tblCreate := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT, %s)", tbl, strings.Join(fields, ", "))
	_, err := db.Exec(tblCreate)
	return err
}

func insertData(row any, tbl string, db *sql.DB) (int64, error) {
	cols := columnsOf(row)
	val := reflect.ValueOf(row)
	keys := make([]string, len(cols))
	values := make([]any, len(cols))
	for i, c := range cols {
		keys[i] = c.name
		values[i] = val.Field(c.index).Interface()
	}
	tblInsert := fmt.Sprintf("INSERT INTO %s (%s) VALUES(%s)", tbl, strings.Join(keys, ","),
		strings.TrimSuffix(strings.Repeat("?,", len(keys)), ","))
	res, err := db.Exec(tblInsert, values...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func rowFor(e behaviour.Event, target int) eventRow {
	o := e.Orientation
	return eventRow{
		Time:        e.Time.UnixMilli(),
		Kind:        string(e.Kind),
		State:       e.State.String(),
		Up:          int(o.Up),
		Nose:        int(o.Nose),
		Bearing:     o.Bearing,
		HasBearing:  o.HasBearing,
		Target:      target,
		Unhappiness: e.Unhappiness,
		Note:        e.Note,
		Count:       e.Count,
	}
}

// dataLog writes events from a background goroutine so the behaviour loop
// never waits on the disk. Events arriving while the backlog is full are
// dropped.
type dataLog struct {
	db      *sql.DB
	target  func() int
	rows    chan eventRow
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
	dropped int
}

func openDataLog(path string, target func() int) (*dataLog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open datalog %s: %w", path, err)
	}
	if err := makeTable(eventRow{}, eventsTable, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create %s table: %w", eventsTable, err)
	}
	d := &dataLog{
		db:     db,
		target: target,
		rows:   make(chan eventRow, dataLogBacklog),
		done:   make(chan struct{}),
	}
	go d.writer()
	return d, nil
}

func (d *dataLog) writer() {
	defer close(d.done)
	for r := range d.rows {
		if _, err := insertData(r, eventsTable, d.db); err != nil {
			log.Printf("Cube Error: datalog insert: %s\n", err)
		}
	}
}

func (d *dataLog) Observe(e behaviour.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	select {
	case d.rows <- rowFor(e, d.target()):
	default:
		d.dropped++
		if d.dropped%100 == 1 {
			log.Printf("Cube Error: datalog backlog full, %d events dropped\n", d.dropped)
		}
	}
}

// Close flushes the backlog and closes the database.
func (d *dataLog) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.rows)
	d.mu.Unlock()
	<-d.done
	return d.db.Close()
}
