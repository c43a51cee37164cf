// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*HTTPServerService)(nil)

// fakeServer blocks in ListenAndServe until Shutdown, or fails at once
// when listenErr is set.
type fakeServer struct {
	listenErr   error
	shutdownErr error
	listens     atomic.Int32
	shutdowns   atomic.Int32
	started     chan struct{}
	stop        chan struct{}
	stopOnce    sync.Once
}

func newFakeServer() *fakeServer {
	return &fakeServer{started: make(chan struct{}, 1), stop: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	f.listens.Add(1)
	select {
	case f.started <- struct{}{}:
	default:
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	f.stopOnce.Do(func() { close(f.stop) })
	return f.shutdownErr
}

func waitStarted(t *testing.T, f *fakeServer) {
	t.Helper()
	select {
	case <-f.started:
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}
}

func TestNewHTTPServerService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		timeout time.Duration
		want    time.Duration
	}{
		{5 * time.Second, 5 * time.Second},
		{0, defaultShutdownTimeout},
		{-time.Second, defaultShutdownTimeout},
	}
	for _, tt := range tests {
		svc := NewHTTPServerService(newFakeServer(), tt.timeout)
		if svc.shutdownTimeout != tt.want {
			t.Errorf("timeout %v: got %v, want %v", tt.timeout, svc.shutdownTimeout, tt.want)
		}
		if svc.String() != "http-server" {
			t.Errorf("name = %q", svc.String())
		}
	}

	svc := NewHTTPServerService(&http.Server{Addr: ":8080"}, time.Second)
	if svc.addr != ":8080" {
		t.Errorf("addr = %q", svc.addr)
	}
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	t.Parallel()

	server := newFakeServer()
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	waitStarted(t, server)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if server.listens.Load() != 1 || server.shutdowns.Load() != 1 {
		t.Errorf("listens=%d shutdowns=%d", server.listens.Load(), server.shutdowns.Load())
	}
}

func TestHTTPServerService_Failures(t *testing.T) {
	t.Parallel()

	t.Run("listen error", func(t *testing.T) {
		t.Parallel()
		bindErr := errors.New("bind: address already in use")
		server := newFakeServer()
		server.listenErr = bindErr

		err := NewHTTPServerService(server, time.Second).Serve(context.Background())
		if !errors.Is(err, bindErr) {
			t.Errorf("Serve = %v, want %v", err, bindErr)
		}
	})

	t.Run("shutdown error", func(t *testing.T) {
		t.Parallel()
		shutdownErr := errors.New("shutdown timeout")
		server := newFakeServer()
		server.shutdownErr = shutdownErr
		svc := NewHTTPServerService(server, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()
		waitStarted(t, server)
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, shutdownErr) {
				t.Errorf("Serve = %v, want %v", err, shutdownErr)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return")
		}
	})
}

func TestHTTPServerService_UnderSupervisor(t *testing.T) {
	t.Parallel()

	server := newFakeServer()
	sup := suture.New("test", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(NewHTTPServerService(server, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	done := sup.ServeBackground(ctx)
	waitStarted(t, server)
	cancel()
	<-done

	if server.shutdowns.Load() < 1 {
		t.Error("Shutdown was not called")
	}
}
