package server

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8000",
		"8080":  ":8080",
		":9090": ":9090",
	}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Fatalf("normalizeAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNew_AppliesLimits(t *testing.T) {
	s := New("8081", http.NotFoundHandler())
	if s.Addr() != ":8081" {
		t.Fatalf("addr=%q", s.Addr())
	}
	if s.httpServer.ReadHeaderTimeout != readHeaderTimeout || s.httpServer.MaxHeaderBytes != maxHeaderBytes {
		t.Fatalf("limits not applied: %+v", s.httpServer)
	}
}

func TestRun_ReturnsNilAfterShutdown(t *testing.T) {
	s := New("0", http.NotFoundHandler())
	errc := make(chan error, 1)
	go func() { errc <- s.Run() }()

	time.Sleep(20 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run returned %v after graceful shutdown", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Run did not return")
	}
}
