package api

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRest() *Rest {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Rest{Logger: logger}
}

func TestServe_DrainsInFlightRequestsBeforeReturning(t *testing.T) {
	r := newTestRest()

	started := make(chan struct{})
	var handled atomic.Bool
	server := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(started)
		time.Sleep(150 * time.Millisecond)
		handled.Store(true)
		w.WriteHeader(http.StatusOK)
	})}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan struct{})
	go func() {
		r.serve(ctx, server, listener)
		close(served)
	}()

	statusCh := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + listener.Addr().String())
		if err != nil {
			statusCh <- 0
			return
		}
		resp.Body.Close()
		statusCh <- resp.StatusCode
	}()

	// Cancel while the request is still being handled.
	<-started
	cancel()

	select {
	case <-served:
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancellation")
	}

	assert.True(t, handled.Load(), "in-flight request finished before serve returned")
	assert.Equal(t, http.StatusOK, <-statusCh)
}

func TestServe_ReturnsWhenListenerCloses(t *testing.T) {
	r := newTestRest()
	server := &http.Server{Handler: http.NewServeMux()}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, listener.Close())

	served := make(chan struct{})
	go func() {
		r.serve(context.Background(), server, listener)
		close(served)
	}()

	select {
	case <-served:
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the listener closed")
	}
}
