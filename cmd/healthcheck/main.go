package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"
)

// Minimal liveness probe for container healthchecks. Exits 0 when the
// health endpoint answers 200, 1 otherwise.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	url := "http://" + probeAddr(os.Getenv("PAUTAPANEL_LISTEN_ADDR")) + "/api/v1/health"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		os.Exit(1)
	}

	resp, err := (&http.Client{Timeout: 2 * time.Second}).Do(req)
	if err != nil {
		os.Exit(1)
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}

// probeAddr rewrites a bind-all listen address to loopback. The probe runs
// inside the same container as the server, so loopback is always reachable.
func probeAddr(raw string) string {
	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return "127.0.0.1:8080"
	}
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, port)
}
