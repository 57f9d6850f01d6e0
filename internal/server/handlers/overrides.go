package handlers

import (
	"net/http"
	"sort"

	"github.com/agentstation/jokeraudit/internal/matcher"
	"github.com/agentstation/jokeraudit/internal/server/response"
	"github.com/agentstation/jokeraudit/pkg/canonical"
	"github.com/agentstation/jokeraudit/pkg/errors"
)

// HandleOverrides handles GET /api/v1/overrides. The name query parameter
// filters by display name (glob, regex or substring) and may repeat.
func (h *Handlers) HandleOverrides(w http.ResponseWriter, r *http.Request) {
	keep, err := matcher.Filter(r.URL.Query()["name"]...)
	if err != nil {
		response.ErrorFromType(w, errors.WrapValidation("name", err))
		return
	}

	overrides := make([]canonical.Mapping, 0)
	for name, id := range canonical.OverrideTable() {
		if keep != nil && !keep(name) {
			continue
		}
		overrides = append(overrides, canonical.Mapping{Name: name, Identifier: id, Override: true})
	}
	sort.Slice(overrides, func(i, j int) bool { return overrides[i].Name < overrides[j].Name })

	response.OK(w, map[string]any{
		"overrides": overrides,
		"count":     len(overrides),
	})
}
