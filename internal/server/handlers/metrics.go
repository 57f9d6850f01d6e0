package handlers

import (
	"fmt"
	"net/http"
	"time"
)

// HandleMetrics handles GET /metrics in the Prometheus text format.
func (h *Handlers) HandleMetrics(w http.ResponseWriter, _ *http.Request) {
	cs := h.cache.GetStats()
	es := h.broker.Stats()

	metrics := []struct {
		name, kind, help string
		value            any
	}{
		{"jokeraudit_uptime_seconds", "gauge", "Seconds since the server started.", int64(time.Since(h.started).Seconds())},
		{"jokeraudit_audits_total", "counter", "Audits completed.", h.audits.Load()},
		{"jokeraudit_audit_failures_total", "counter", "Audits that returned an error.", h.failures.Load()},
		{"jokeraudit_cache_items", "gauge", "Cached audit reports.", cs.ItemCount},
		{"jokeraudit_cache_hits_total", "counter", "Audit cache hits.", cs.Hits},
		{"jokeraudit_cache_misses_total", "counter", "Audit cache misses.", cs.Misses},
		{"jokeraudit_events_published_total", "counter", "Events accepted by the broker.", es.Published},
		{"jokeraudit_events_dropped_total", "counter", "Events dropped because the broker queue was full.", es.Dropped},
		{"jokeraudit_websocket_clients", "gauge", "Connected WebSocket clients.", h.wsHub.ClientCount()},
		{"jokeraudit_sse_clients", "gauge", "Connected SSE clients.", h.sseBroadcaster.ClientCount()},
	}

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	for _, m := range metrics {
		_, _ = fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n%s %v\n", m.name, m.help, m.name, m.kind, m.name, m.value)
	}
}
