/*
	Copyright (c) 2013-2024 The jacube authors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file, herein included
	as part of this header.

	managementinterface.go: HTTP status, settings, metrics and websocket control.
*/

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/websocket"
)

const statusPeriod = time.Second

// SettingMessage is a change requested over /control.
type SettingMessage struct {
	Setting string `json:"setting"`
	Value   int    `json:"value"`
}

// StatusMessage is what /getStatus returns and /control pushes.
type StatusMessage struct {
	State                string `json:"state"`
	Up                   int    `json:"up"`
	Nose                 int    `json:"nose"`
	Bearing              int    `json:"bearing"`
	HasBearing           bool   `json:"has_bearing"`
	Target               int    `json:"target"`
	Unhappiness          int    `json:"unhappiness"`
	AnimsUntilNoseChange int    `json:"anims_until_nose_change"`
	CyclesUntilNextAnim  int    `json:"cycles_until_next_anim"`
	Uptime               string `json:"uptime"`
}

var errUnknownSetting = errors.New("unknown setting")

type managementInterface struct {
	ctl       controller
	settings  settings
	gatherer  prometheus.Gatherer
	broadcast *uibroadcaster
}

func statusOf(ctl controller) StatusMessage {
	st := ctl.Status()
	o := st.Orientation
	return StatusMessage{
		State:                st.State.String(),
		Up:                   int(o.Up),
		Nose:                 int(o.Nose),
		Bearing:              o.Bearing,
		HasBearing:           o.HasBearing,
		Target:               st.Target,
		Unhappiness:          st.Unhappiness,
		AnimsUntilNoseChange: st.AnimsUntilNoseChange,
		CyclesUntilNextAnim:  st.CyclesUntilNextAnim,
		Uptime:               ctl.Uptime(),
	}
}

// applySetting carries out one /control message.
func applySetting(ctl controller, msg SettingMessage) error {
	switch msg.Setting {
	case "bearing":
		return ctl.SetTarget(msg.Value)
	case "nose":
		return ctl.SetNose(msg.Value)
	}
	return fmt.Errorf("%w %q", errUnknownSetting, msg.Setting)
}

// AJAX call - /getStatus. Responds with the orientation and behaviour state.
func (mi *managementInterface) handleStatusRequest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statusOf(mi.ctl))
}

// AJAX call - /getSettings. Responds with the settings the daemon is running with.
func (mi *managementInterface) handleSettingsGetRequest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(mi.settings)
}

func (mi *managementInterface) handleManagementConnection(conn *websocket.Conn) {
	mi.broadcast.AddSocket(conn)
	defer mi.broadcast.RemoveSocket(conn)

	for {
		var msg SettingMessage
		err := websocket.JSON.Receive(conn, &msg)
		if err == io.EOF {
			return
		} else if err != nil {
			logDbg("Cube Info: handleManagementConnection: %s\n", err)
			return
		}
		if err := applySetting(mi.ctl, msg); err != nil {
			log.Printf("Cube Error: /control %s=%d: %s\n", msg.Setting, msg.Value, err)
		}
	}
}

// statusSender pushes the status to websocket clients while any are connected.
func (mi *managementInterface) statusSender(ctx context.Context) {
	t := time.NewTicker(statusPeriod)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		if mi.broadcast.Clients() == 0 {
			continue
		}
		update, err := json.Marshal(statusOf(mi.ctl))
		if err != nil {
			continue
		}
		mi.broadcast.Send(update)
	}
}

func (mi *managementInterface) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/getStatus", mi.handleStatusRequest)
	mux.HandleFunc("/getSettings", mi.handleSettingsGetRequest)
	mux.Handle("/metrics", promhttp.HandlerFor(mi.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/control",
		func(w http.ResponseWriter, req *http.Request) {
			s := websocket.Server{
				Handler: websocket.Handler(mi.handleManagementConnection)}
			s.ServeHTTP(w, req)
		})
	return mux
}

// serve runs the interface on addr until ctx is cancelled.
func (mi *managementInterface) serve(ctx context.Context, addr string) {
	mi.broadcast = NewUIBroadcaster(ctx)
	go mi.statusSender(ctx)

	srv := &http.Server{Addr: addr, Handler: mi.handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("Cube Error: managementInterface ListenAndServe: %s\n", err)
	}
}
