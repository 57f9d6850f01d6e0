package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/agentstation/jokeraudit/internal/server/response"
	"github.com/agentstation/jokeraudit/pkg/canonical"
	"github.com/agentstation/jokeraudit/pkg/errors"
)

// CanonicalizeRequest is the body of POST /api/v1/canonicalize.
type CanonicalizeRequest struct {
	Names []string `json:"names"`
}

// HandleCanonicalize handles GET /api/v1/canonicalize?name=...&name=...
// and POST /api/v1/canonicalize with a CanonicalizeRequest body.
func (h *Handlers) HandleCanonicalize(w http.ResponseWriter, r *http.Request) {
	var names []string
	switch r.Method {
	case http.MethodGet:
		names = r.URL.Query()["name"]
	case http.MethodPost:
		var req CanonicalizeRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", err.Error())
			return
		}
		names = req.Names
	default:
		response.MethodNotAllowed(w, r.Method)
		return
	}

	kept := names[:0:0]
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			kept = append(kept, n)
		}
	}
	if len(kept) == 0 {
		response.ErrorFromType(w, &errors.ValidationError{Field: "names", Message: "at least one name is required"})
		return
	}

	mappings := canonical.Default().Map(kept...)
	response.OK(w, map[string]any{
		"mappings": mappings,
		"count":    len(mappings),
	})
}
