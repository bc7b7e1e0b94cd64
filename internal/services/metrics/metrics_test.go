package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCollectorGathers(t *testing.T) {
	sessions := 3
	c := New("receipts", func() int { return sessions })

	reg := prometheus.NewRegistry()
	if err := reg.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}

	c.ObserveBackendCall("GET", "/api/receipts/all", 200, 10*time.Millisecond)
	c.ObserveBackendCall("GET", "/api/receipts/all", 200, 20*time.Millisecond)
	c.ObserveBackendCall("GET", "/api/admin/users", 0, time.Second)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	byName := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				key := mf.GetName()
				for _, l := range m.GetLabel() {
					key += "|" + l.GetValue()
				}
				byName[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				byName[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}

	if got := byName["receipts_backend_requests_total|200|/api/receipts/all|GET"]; got != 2 {
		t.Errorf("receipts/all 200 count = %v (have %v)", got, byName)
	}
	if got := byName["receipts_backend_requests_total|error|/api/admin/users|GET"]; got != 1 {
		t.Errorf("transport error count = %v", got)
	}
	if got := byName["receipts_viewcache_sessions"]; got != 3 {
		t.Errorf("sessions gauge = %v", got)
	}
}
