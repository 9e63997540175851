// Package netmon tracks reachability of the remote service so the
// views can show an offline indicator. A terminal has no browser
// online/offline events, so the status comes from a periodic probe.
package netmon

import (
	"context"
	"net/http"
	"time"
)

// Interval is how often the probe runs while the app is open.
const Interval = 15 * time.Second

// Status is the probe outcome history collapsed to one value.
type Status int

const (
	StatusUnknown Status = iota
	StatusOnline
	StatusOffline
)

// Next folds a probe result into the previous status and reports
// whether the status changed. The first probe always changes it.
func Next(prev Status, reachable bool) (Status, bool) {
	cur := StatusOffline
	if reachable {
		cur = StatusOnline
	}
	return cur, cur != prev
}

// Monitor probes the service endpoint.
type Monitor struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a monitor for the given API endpoint.
func New(endpoint string) *Monitor {
	return &Monitor{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Probe reports whether the endpoint is reachable. Any HTTP response
// counts as reachable, even an error status: the question is whether
// the network path is up, not whether a request would succeed.
func (m *Monitor) Probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.endpoint+"/health/time", nil)
	if err != nil {
		return false
	}
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
