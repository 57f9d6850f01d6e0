package jokeraudit

import (
	"sync"

	"github.com/agentstation/jokeraudit/pkg/reconciler"
)

// Hook function types for audit findings.
type (
	// MissingHook is called for each documented name with no implementation.
	MissingHook func(result reconciler.NameResult)

	// DuplicateHook is called for each name listed more than once.
	DuplicateHook func(group reconciler.DuplicateGroup)
)

// Hooks provides access to event callback registration.
type Hooks interface {
	OnMissing(fn MissingHook)
	OnDuplicate(fn DuplicateHook)
}

// hooks manages finding callbacks.
type hooks struct {
	mu          sync.RWMutex
	onMissing   []MissingHook
	onDuplicate []DuplicateHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnMissing registers a callback for missing names.
func (h *hooks) OnMissing(fn MissingHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onMissing = append(h.onMissing, fn)
}

// OnDuplicate registers a callback for duplicate groups.
func (h *hooks) OnDuplicate(fn DuplicateHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDuplicate = append(h.onDuplicate, fn)
}

// trigger fires hooks in report order: duplicates first, then missing names.
func (h *hooks) trigger(report *reconciler.Report) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, g := range report.Duplicates {
		for _, fn := range h.onDuplicate {
			fn(g)
		}
	}
	for _, res := range report.MissingResults() {
		for _, fn := range h.onMissing {
			fn(res)
		}
	}
}
