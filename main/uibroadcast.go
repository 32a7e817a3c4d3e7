/*
	Copyright (c) 2013-2024 The jacube authors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file, herein included
	as part of this header.

	uibroadcast.go: Push status updates to every connected web client.
*/

package main

import (
	"context"
	"io"
	"sync"
	"time"
)

const socketWriteTimeout = time.Second

// socket is the part of a websocket the broadcaster needs.
type socket interface {
	io.Writer
	SetWriteDeadline(t time.Time) error
}

type uibroadcaster struct {
	mu       sync.Mutex
	sockets  []socket
	messages chan []byte
}

func NewUIBroadcaster(ctx context.Context) *uibroadcaster {
	u := &uibroadcaster{messages: make(chan []byte, 16)}
	go u.writer(ctx)
	return u
}

// Send queues msg for every client. If clients are too slow to keep up the
// message is dropped; the next status update replaces it anyway.
func (u *uibroadcaster) Send(msg []byte) {
	select {
	case u.messages <- msg:
	default:
	}
}

func (u *uibroadcaster) AddSocket(sock socket) {
	u.mu.Lock()
	u.sockets = append(u.sockets, sock)
	u.mu.Unlock()
}

func (u *uibroadcaster) RemoveSocket(sock socket) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i, s := range u.sockets {
		if s == sock {
			u.sockets = append(u.sockets[:i], u.sockets[i+1:]...)
			return
		}
	}
}

func (u *uibroadcaster) Clients() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.sockets)
}

func (u *uibroadcaster) writer(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-u.messages:
			u.broadcast(msg)
		}
	}
}

// broadcast writes msg to every socket, forgetting the ones that fail.
func (u *uibroadcaster) broadcast(msg []byte) {
	u.mu.Lock()
	defer u.mu.Unlock()
	writable := u.sockets[:0]
	for _, sock := range u.sockets {
		err := sock.SetWriteDeadline(time.Now().Add(socketWriteTimeout))
		_, err2 := sock.Write(msg)
		if err == nil && err2 == nil {
			writable = append(writable, sock)
		}
	}
	for i := len(writable); i < len(u.sockets); i++ {
		u.sockets[i] = nil
	}
	u.sockets = writable
}
