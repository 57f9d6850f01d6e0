package handlers

import (
	"net/http"
	"os"

	"github.com/agentstation/jokeraudit/internal/server/response"
)

// HandleHealth handles GET /health and GET /api/v1/health (liveness).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "jokeraudit",
		"version": h.app.Version(),
	})
}

// HandleReady handles GET /api/v1/ready. The server is ready when every
// configured input file can be read.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	inputs := configuredInputs(h.app.Settings())

	status := make(map[string]string, len(inputs))
	ready := true
	for name, path := range inputs {
		if _, err := os.Stat(path); err != nil {
			status[name] = err.Error()
			ready = false
			continue
		}
		status[name] = "ok"
	}

	if !ready {
		response.JSON(w, http.StatusServiceUnavailable, response.Response{
			Data:  map[string]any{"status": "not ready", "inputs": status},
			Error: &response.Error{Code: "SERVICE_UNAVAILABLE", Message: "Audit inputs are not readable"},
		})
		return
	}

	response.OK(w, map[string]any{
		"status": "ready",
		"inputs": status,
	})
}
