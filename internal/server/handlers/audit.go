package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/agentstation/jokeraudit"
	"github.com/agentstation/jokeraudit/cmd/application"
	"github.com/agentstation/jokeraudit/internal/cmd/hints"
	"github.com/agentstation/jokeraudit/internal/server/cache"
	"github.com/agentstation/jokeraudit/internal/server/events"
	"github.com/agentstation/jokeraudit/internal/server/response"
	"github.com/agentstation/jokeraudit/pkg/errors"
	"github.com/agentstation/jokeraudit/pkg/logging"
	"github.com/agentstation/jokeraudit/pkg/reconciler"
)

// maxBodyBytes bounds POST bodies.
const maxBodyBytes = 4 << 20

// CacheHeader reports whether a report came from the cache.
const CacheHeader = "X-Cache"

// AuditResponse is the data of a successful audit response.
type AuditResponse struct {
	Report      *reconciler.Report     `json:"report"`
	Completion  *reconciler.Completion `json:"completion,omitempty"`
	Suggestions map[string][]string    `json:"suggestions,omitempty"`
}

// AuditRequest is the body of POST /api/v1/audit. Identifiers, when given,
// replace the source text.
type AuditRequest struct {
	Document    string   `json:"document"`
	Source      string   `json:"source,omitempty"`
	Construct   string   `json:"construct,omitempty"`
	Identifiers []string `json:"identifiers,omitempty"`
	Target      *int     `json:"target,omitempty"`
	Hints       bool     `json:"hints,omitempty"`
}

func (req AuditRequest) validate() error {
	if strings.TrimSpace(req.Document) == "" {
		return &errors.ValidationError{Field: "document", Message: "cannot be empty"}
	}
	if strings.TrimSpace(req.Source) == "" && len(req.Identifiers) == 0 {
		return &errors.ValidationError{Field: "source", Message: "source or identifiers required"}
	}
	if req.Target != nil && *req.Target < 0 {
		return &errors.ValidationError{Field: "target", Value: *req.Target, Message: "cannot be negative"}
	}
	return nil
}

func (req AuditRequest) options() []jokeraudit.Option {
	opts := []jokeraudit.Option{jokeraudit.WithDocumentString(req.Document)}
	if len(req.Identifiers) > 0 {
		return append(opts, jokeraudit.WithIdentifiers(req.Identifiers...))
	}
	opts = append(opts, jokeraudit.WithSourceText(req.Source))
	if req.Construct != "" {
		opts = append(opts, jokeraudit.WithConstruct(req.Construct))
	}
	return opts
}

func (req AuditRequest) key() string {
	if len(req.Identifiers) > 0 {
		return cache.Key("audit", "identifiers", req.Document, strings.Join(req.Identifiers, "\n"))
	}
	return cache.Key("audit", "source", req.Document, req.Source, req.Construct)
}

// HandleAudit handles GET /api/v1/audit. It audits the configured inputs.
//
// Query parameters:
//   - target: expected joker count, 0 disables completion (default from settings)
//   - hints: "true" adds likely identifiers for missing names
//   - refresh: "true" drops the cached report and audits again
func (h *Handlers) HandleAudit(w http.ResponseWriter, r *http.Request) {
	settings := h.app.Settings()

	target, err := parseTarget(r.URL.Query().Get("target"), settings.Target)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	withHints, _ := strconv.ParseBool(r.URL.Query().Get("hints"))

	key := settingsKey(settings)
	if refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh")); refresh {
		h.cache.Delete(key)
	}
	report, hit, err := h.audit(r, key, settings.Options())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.writeReport(w, report, hit, target, withHints)
}

// HandleAuditPost handles POST /api/v1/audit. It audits the document and
// source sent in the body.
func (h *Handlers) HandleAuditPost(w http.ResponseWriter, r *http.Request) {
	var req AuditRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	report, hit, err := h.audit(r, req.key(), req.options())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	target := h.app.Settings().Target
	if req.Target != nil {
		target = *req.Target
	}
	h.writeReport(w, report, hit, target, req.Hints)
}

// audit returns the cached report for key, or runs a new audit and
// publishes its findings.
func (h *Handlers) audit(r *http.Request, key string, opts []jokeraudit.Option) (*reconciler.Report, bool, error) {
	logger := logging.FromContext(r.Context())

	if v, ok := h.cache.Get(key); ok {
		if report, ok := v.(*reconciler.Report); ok {
			logger.Debug().Msg("Audit served from cache")
			return report, true, nil
		}
	}

	client, err := h.app.Client(opts...)
	if err != nil {
		return nil, false, err
	}
	client.OnDuplicate(func(g reconciler.DuplicateGroup) {
		h.broker.Publish(events.DuplicateFound, g)
	})
	client.OnMissing(func(res reconciler.NameResult) {
		h.broker.Publish(events.MissingFound, res)
	})

	report, err := client.Audit(r.Context())
	if err != nil {
		h.failures.Add(1)
		logger.Warn().Err(err).Msg("Audit failed")
		return nil, false, err
	}
	h.audits.Add(1)

	h.broker.Publish(events.AuditCompleted, map[string]any{
		"summary": report.Summary(),
		"counts":  report.Counts,
	})
	h.cache.Set(key, report)
	return report, false, nil
}

func (h *Handlers) writeReport(w http.ResponseWriter, report *reconciler.Report, hit bool, target int, withHints bool) {
	resp := AuditResponse{Report: report}
	if target > 0 {
		c := report.Completion(target)
		resp.Completion = &c
	}
	if withHints {
		resp.Suggestions = hints.Suggest(report.MissingResults(), report.Undocumented, hints.DefaultSuggestions)
	}

	if hit {
		w.Header().Set(CacheHeader, "HIT")
	} else {
		w.Header().Set(CacheHeader, "MISS")
	}
	response.OK(w, resp)
}

// parseTarget reads the target query parameter, falling back to def.
func parseTarget(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.WrapValidation("target", err)
	}
	if n < 0 {
		return 0, &errors.ValidationError{Field: "target", Value: n, Message: "cannot be negative"}
	}
	return n, nil
}

// configuredInputs returns the files an audit of s reads, keyed by role.
func configuredInputs(s application.Settings) map[string]string {
	inputs := map[string]string{"document": s.Document}
	if inputs["document"] == "" {
		inputs["document"] = jokeraudit.DefaultDocumentPath
	}
	switch {
	case s.Registry != "":
		inputs["registry"] = s.Registry
	case s.Source != "":
		inputs["source"] = s.Source
	default:
		inputs["source"] = jokeraudit.DefaultSourcePath
	}
	return inputs
}

// settingsKey identifies an audit of the configured inputs. Modification
// times and sizes are part of the key, so edited files miss the cache.
func settingsKey(s application.Settings) string {
	parts := []string{"audit", "settings", s.Construct}
	for _, role := range []string{"document", "source", "registry"} {
		path, ok := configuredInputs(s)[role]
		if !ok {
			continue
		}
		parts = append(parts, role, path)
		if fi, err := os.Stat(path); err == nil {
			parts = append(parts, fi.ModTime().String(), strconv.FormatInt(fi.Size(), 10))
		}
	}
	return cache.Key(parts...)
}
