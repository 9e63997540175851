package netmon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNextTransitions(t *testing.T) {
	cases := []struct {
		name        string
		prev        Status
		reachable   bool
		want        Status
		wantChanged bool
	}{
		{"first probe online", StatusUnknown, true, StatusOnline, true},
		{"first probe offline", StatusUnknown, false, StatusOffline, true},
		{"stays online", StatusOnline, true, StatusOnline, false},
		{"goes offline", StatusOnline, false, StatusOffline, true},
		{"stays offline", StatusOffline, false, StatusOffline, false},
		{"comes back", StatusOffline, true, StatusOnline, true},
	}
	for _, tc := range cases {
		got, changed := Next(tc.prev, tc.reachable)
		if got != tc.want || changed != tc.wantChanged {
			t.Errorf("%s: Next() = (%v, %v), want (%v, %v)", tc.name, got, changed, tc.want, tc.wantChanged)
		}
	}
}

func TestProbeReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if !New(srv.URL).Probe(context.Background()) {
		t.Error("Probe() = false for a live endpoint")
	}
}

func TestProbeCountsErrorStatusAsReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	if !New(srv.URL).Probe(context.Background()) {
		t.Error("Probe() = false for a reachable endpoint that rejects the request")
	}
}

func TestProbeUnreachable(t *testing.T) {
	if New("http://127.0.0.1:1").Probe(context.Background()) {
		t.Error("Probe() = true for an endpoint nobody listens on")
	}
}
