package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/jokeraudit/cmd/application"
	appmock "github.com/agentstation/jokeraudit/internal/cmd/application"
	"github.com/agentstation/jokeraudit/internal/server/cache"
	"github.com/agentstation/jokeraudit/internal/server/events"
	"github.com/agentstation/jokeraudit/internal/server/sse"
	ws "github.com/agentstation/jokeraudit/internal/server/websocket"
)

const document = `## Common Jokers

| # | Name | Cost | Effect | Unlock |
|---|------|------|--------|--------|
| 1 | Joker | $2 | +4 Mult | Start |
| 2 | Hack | $6 | Retrigger each played 2, 3, 4, or 5 | Start |
| 3 | 8 Ball | $5 | Create a Tarot card | Start |

## Uncommon Jokers

| # | Name | Cost | Effect | Unlock |
|---|------|------|--------|--------|
| 61 | Hack | $6 | Retrigger each played 2, 3, 4, or 5 | Start |
| 62 | Madness | $7 | Gain X0.5 Mult | Start |
`

const source = `make_jokers!(TheJoker, Hack, EightBall, Blueprint);`

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

type auditData struct {
	Report struct {
		Missing      []string       `json:"missing"`
		Undocumented []string       `json:"undocumented"`
		Counts       map[string]int `json:"counts"`
	} `json:"report"`
	Completion *struct {
		Target    int `json:"target"`
		Shortfall int `json:"shortfall"`
	} `json:"completion"`
	Suggestions map[string][]string `json:"suggestions"`
}

type harness struct {
	h        *Handlers
	broker   *events.Broker
	document string
	source   string
}

func newHarness(t *testing.T) harness {
	t.Helper()
	dir := t.TempDir()
	doc := filepath.Join(dir, "JOKERS.md")
	src := filepath.Join(dir, "joker.rs")
	require.NoError(t, os.WriteFile(doc, []byte(document), 0o600))
	require.NoError(t, os.WriteFile(src, []byte(source), 0o600))

	app := &appmock.Mock{
		SettingsFunc: func() application.Settings {
			s := application.DefaultSettings()
			s.Document, s.Source = doc, src
			return s
		},
	}

	logger := zerolog.Nop()
	broker := events.NewBroker(&logger)
	h := New(app, cache.New(time.Minute), broker, ws.NewHub(&logger), sse.NewBroadcaster(&logger), &logger)
	return harness{h: h, broker: broker, document: doc, source: src}
}

func serve(handler http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(method, target, &buf))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestHandleHealth(t *testing.T) {
	hs := newHarness(t)
	w := serve(hs.h.HandleHealth, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var data map[string]string
	decode(t, w, &data)
	assert.Equal(t, map[string]string{"status": "healthy", "service": "jokeraudit", "version": "dev"}, data)
}

func TestHandleReady(t *testing.T) {
	hs := newHarness(t)

	w := serve(hs.h.HandleReady, http.MethodGet, "/api/v1/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, os.Remove(hs.source))
	w = serve(hs.h.HandleReady, http.MethodGet, "/api/v1/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var data struct {
		Inputs map[string]string `json:"inputs"`
	}
	env := decode(t, w, nil)
	require.NotNil(t, env.Error)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "ok", data.Inputs["document"])
	assert.NotEqual(t, "ok", data.Inputs["source"])
}

func TestHandleAudit(t *testing.T) {
	hs := newHarness(t)

	w := serve(hs.h.HandleAudit, http.MethodGet, "/api/v1/audit?target=10&hints=true", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))

	var data auditData
	decode(t, w, &data)
	assert.Equal(t, []string{"Madness"}, data.Report.Missing)
	assert.Equal(t, []string{"Blueprint"}, data.Report.Undocumented)
	assert.Equal(t, 1, data.Report.Counts["duplicates"])
	require.NotNil(t, data.Completion)
	assert.Equal(t, 10, data.Completion.Target)
	assert.Equal(t, 6, data.Completion.Shortfall)

	// duplicate, missing and completed events
	assert.Equal(t, uint64(3), hs.broker.Stats().Published)

	w = serve(hs.h.HandleAudit, http.MethodGet, "/api/v1/audit?target=0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get(CacheHeader))
	data = auditData{}
	decode(t, w, &data)
	assert.Nil(t, data.Completion)
	assert.Equal(t, uint64(3), hs.broker.Stats().Published, "cache hits publish nothing")
}

func TestHandleAudit_FileChangeMissesCache(t *testing.T) {
	hs := newHarness(t)

	w := serve(hs.h.HandleAudit, http.MethodGet, "/api/v1/audit", nil)
	require.Equal(t, http.StatusOK, w.Code)

	updated := strings.Replace(source, "Blueprint", "Blueprint, Madness", 1)
	require.NoError(t, os.WriteFile(hs.source, []byte(updated), 0o600))

	w = serve(hs.h.HandleAudit, http.MethodGet, "/api/v1/audit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))

	var data auditData
	decode(t, w, &data)
	assert.Empty(t, data.Report.Missing)
}

func TestHandleAudit_Errors(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		prepare func(hs harness)
		status  int
		code    string
	}{
		{name: "bad target", target: "/api/v1/audit?target=many", status: 400, code: "BAD_REQUEST"},
		{name: "negative target", target: "/api/v1/audit?target=-1", status: 400, code: "BAD_REQUEST"},
		{
			name:    "missing document",
			target:  "/api/v1/audit",
			prepare: func(hs harness) { _ = os.Remove(hs.document) },
			status:  503,
			code:    "SERVICE_UNAVAILABLE",
		},
		{
			name:   "no registration construct",
			target: "/api/v1/audit",
			prepare: func(hs harness) {
				_ = os.WriteFile(hs.source, []byte("fn main() {}"), 0o600)
			},
			status: 422,
			code:   "UNPROCESSABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := newHarness(t)
			if tt.prepare != nil {
				tt.prepare(hs)
			}
			w := serve(hs.h.HandleAudit, http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.status, w.Code)
			env := decode(t, w, nil)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestHandleAuditPost(t *testing.T) {
	target := 5

	tests := []struct {
		name      string
		body      any
		status    int
		missing   []string
		shortfall int
	}{
		{
			name:    "source text",
			body:    AuditRequest{Document: document, Source: source},
			status:  200,
			missing: []string{"Madness"},
		},
		{
			name:      "identifiers",
			body:      AuditRequest{Document: document, Identifiers: []string{"TheJoker", "Hack", "EightBall", "Madness"}, Target: &target},
			status:    200,
			missing:   []string{},
			shortfall: 1,
		},
		{
			name:    "custom construct",
			body:    AuditRequest{Document: document, Source: "make_spectrals!(TheJoker);", Construct: "make_spectrals!"},
			status:  200,
			missing: []string{"Hack", "8 Ball", "Madness"},
		},
		{name: "empty document", body: AuditRequest{Source: source}, status: 400},
		{name: "no source", body: AuditRequest{Document: document}, status: 400},
		{name: "invalid json", body: "{", status: 400},
		{name: "unknown field", body: `{"document":"x","sauce":"y"}`, status: 400},
		{name: "construct absent", body: AuditRequest{Document: document, Source: "fn main() {}"}, status: 422},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := newHarness(t)
			w := serve(hs.h.HandleAuditPost, http.MethodPost, "/api/v1/audit", tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status != http.StatusOK {
				return
			}

			var data auditData
			decode(t, w, &data)
			assert.ElementsMatch(t, tt.missing, data.Report.Missing)
			if tt.shortfall > 0 {
				require.NotNil(t, data.Completion)
				assert.Equal(t, tt.shortfall, data.Completion.Shortfall)
			}
		})
	}
}

func TestHandleAuditPost_Cached(t *testing.T) {
	hs := newHarness(t)
	body := AuditRequest{Document: document, Source: source}

	w := serve(hs.h.HandleAuditPost, http.MethodPost, "/api/v1/audit", body)
	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))
	w = serve(hs.h.HandleAuditPost, http.MethodPost, "/api/v1/audit", body)
	assert.Equal(t, "HIT", w.Header().Get(CacheHeader))

	body.Source = source + "\n"
	w = serve(hs.h.HandleAuditPost, http.MethodPost, "/api/v1/audit", body)
	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))
}

func TestHandleCanonicalize(t *testing.T) {
	type mapping struct {
		Name       string `json:"name"`
		Identifier string `json:"identifier"`
		Override   bool   `json:"override"`
	}
	var data struct {
		Mappings []mapping `json:"mappings"`
		Count    int       `json:"count"`
	}

	hs := newHarness(t)
	w := serve(hs.h.HandleCanonicalize, http.MethodGet, "/api/v1/canonicalize?name=Joker&name=Blue+Joker", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &data)
	assert.Equal(t, 2, data.Count)
	assert.Equal(t, []mapping{
		{Name: "Joker", Identifier: "TheJoker", Override: true},
		{Name: "Blue Joker", Identifier: "BlueJoker"},
	}, data.Mappings)

	w = serve(hs.h.HandleCanonicalize, http.MethodPost, "/api/v1/canonicalize", CanonicalizeRequest{Names: []string{" 8 Ball ", ""}})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &data)
	assert.Equal(t, []mapping{{Name: "8 Ball", Identifier: "EightBall", Override: true}}, data.Mappings)

	w = serve(hs.h.HandleCanonicalize, http.MethodGet, "/api/v1/canonicalize", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(hs.h.HandleCanonicalize, http.MethodDelete, "/api/v1/canonicalize", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleOverrides(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
		names  []string
	}{
		{name: "glob", target: "/api/v1/overrides?name=*-*", status: 200, names: []string{"Mail-In Rebate", "Riff-Raff"}},
		{name: "two patterns", target: "/api/v1/overrides?name=Joker&name=8*", status: 200, names: []string{"8 Ball", "Joker"}},
		{name: "invalid regex", target: "/api/v1/overrides?name=%5B", status: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := newHarness(t)
			w := serve(hs.h.HandleOverrides, http.MethodGet, tt.target, nil)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status != http.StatusOK {
				return
			}

			var data struct {
				Overrides []struct {
					Name string `json:"name"`
				} `json:"overrides"`
			}
			decode(t, w, &data)
			var names []string
			for _, o := range data.Overrides {
				names = append(names, o.Name)
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func TestHandleOverrides_All(t *testing.T) {
	hs := newHarness(t)
	w := serve(hs.h.HandleOverrides, http.MethodGet, "/api/v1/overrides", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Count int `json:"count"`
	}
	decode(t, w, &data)
	assert.GreaterOrEqual(t, data.Count, 9)
}

func TestHandleAudit_Refresh(t *testing.T) {
	hs := newHarness(t)

	w := serve(hs.h.HandleAudit, http.MethodGet, "/api/v1/audit", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(hs.h.HandleAudit, http.MethodGet, "/api/v1/audit?refresh=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))
	assert.Equal(t, uint64(6), hs.broker.Stats().Published, "a refreshed audit publishes again")

	w = serve(hs.h.HandleAudit, http.MethodGet, "/api/v1/audit", nil)
	assert.Equal(t, "HIT", w.Header().Get(CacheHeader))
}

func TestHandleCacheClear(t *testing.T) {
	hs := newHarness(t)
	serve(hs.h.HandleAudit, http.MethodGet, "/api/v1/audit", nil)
	serve(hs.h.HandleAuditPost, http.MethodPost, "/api/v1/audit", AuditRequest{
		Document:    document,
		Identifiers: []string{"TheJoker"},
	})

	w := serve(hs.h.HandleCacheClear, http.MethodDelete, "/api/v1/cache", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data map[string]int
	decode(t, w, &data)
	assert.Equal(t, map[string]int{"cleared": 2}, data)

	w = serve(hs.h.HandleAudit, http.MethodGet, "/api/v1/audit", nil)
	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))
}

func TestHandleStatsAndMetrics(t *testing.T) {
	hs := newHarness(t)
	serve(hs.h.HandleAudit, http.MethodGet, "/api/v1/audit", nil)
	serve(hs.h.HandleAudit, http.MethodGet, "/api/v1/audit", nil)

	w := serve(hs.h.HandleStats, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Audits map[string]uint64 `json:"audits"`
		Cache  cache.Stats       `json:"cache"`
		Events events.Stats      `json:"events"`
	}
	decode(t, w, &data)
	assert.Equal(t, map[string]uint64{"completed": 1, "failed": 0}, data.Audits)
	assert.Equal(t, cache.Stats{ItemCount: 1, Hits: 1, Misses: 1}, data.Cache)
	assert.Equal(t, uint64(3), data.Events.Published)

	w = serve(hs.h.HandleMetrics, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "# TYPE jokeraudit_audits_total counter\njokeraudit_audits_total 1\n")
	assert.Contains(t, body, "jokeraudit_cache_hits_total 1\n")
	assert.Contains(t, body, "jokeraudit_websocket_clients 0\n")
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "", want: 150},
		{raw: "0", want: 0},
		{raw: "42", want: 42},
		{raw: "-3", wantErr: true},
		{raw: "lots", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseTarget(tt.raw, 150)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfiguredInputs(t *testing.T) {
	tests := []struct {
		name     string
		settings application.Settings
		want     map[string]string
	}{
		{
			name:     "defaults",
			settings: application.Settings{},
			want:     map[string]string{"document": "JOKERS.md", "source": "core/src/joker.rs"},
		},
		{
			name:     "registry replaces source",
			settings: application.Settings{Document: "d.md", Source: "s.rs", Registry: "r.yaml"},
			want:     map[string]string{"document": "d.md", "registry": "r.yaml"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, configuredInputs(tt.settings))
		})
	}
}
