package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/jokeraudit/internal/server/response"
	"github.com/agentstation/jokeraudit/pkg/logging"
)

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, _ *http.Request) {
	uptime := time.Since(h.started)

	response.OK(w, map[string]any{
		"uptime_seconds": int64(uptime.Seconds()),
		"uptime":         uptime.Round(time.Second).String(),
		"audits": map[string]uint64{
			"completed": h.audits.Load(),
			"failed":    h.failures.Load(),
		},
		"cache":  h.cache.GetStats(),
		"events": h.broker.Stats(),
		"clients": map[string]int{
			"websocket": h.wsHub.ClientCount(),
			"sse":       h.sseBroadcaster.ClientCount(),
		},
	})
}

// HandleCacheClear handles DELETE /api/v1/cache. The next audit of every
// input runs again.
func (h *Handlers) HandleCacheClear(w http.ResponseWriter, r *http.Request) {
	cleared := h.cache.Clear()
	logging.FromContext(r.Context()).Info().Int("cleared", cleared).Msg("Audit cache cleared")
	response.OK(w, map[string]int{"cleared": cleared})
}
