package handlers

import "net/http"

// HandleWebSocket handles WebSocket connections at /api/v1/updates/ws.
// Each client first receives a client.connected message with its ID, then
// every audit event.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	h.wsHub.ServeHTTP(w, r)
}

// HandleSSE handles Server-Sent Events at /api/v1/updates/stream.
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	h.sseBroadcaster.ServeHTTP(w, r)
}
