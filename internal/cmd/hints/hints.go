// Package hints provides actionable user guidance for CLI operations.
package hints

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/jokeraudit/pkg/reconciler"
)

// Hint represents actionable user guidance.
type Hint struct {
	Message string   `json:"message" yaml:"message"`
	Command string   `json:"command,omitempty" yaml:"command,omitempty"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// New creates a new hint with the given message.
func New(message string) *Hint {
	return &Hint{Message: message}
}

// NewCommand creates a new hint with a specific command.
func NewCommand(message, command string) *Hint {
	return &Hint{Message: message, Command: command}
}

// WithTags adds tags to the hint for context-aware filtering.
func (h *Hint) WithTags(tags ...string) *Hint {
	h.Tags = append(h.Tags, tags...)
	return h
}

// HasTag checks if the hint has a specific tag.
func (h *Hint) HasTag(tag string) bool {
	return slices.Contains(h.Tags, tag)
}

// String returns a string representation of the hint.
func (h *Hint) String() string {
	parts := []string{fmt.Sprintf("Tip: %s", h.Message)}
	if h.Command != "" {
		parts = append(parts, fmt.Sprintf("   Run: %s", h.Command))
	}
	return strings.Join(parts, "\n")
}

// Context describes the audit a hint is generated for.
type Context struct {
	Command     string
	Report      *reconciler.Report
	Target      int
	Filtered    bool // a --name filter narrowed the tables
	Suggestions bool // "did you mean" candidates were already shown
	Wide        bool
}

// Provider generates contextual hints based on the current context.
type Provider interface {
	GetHints(ctx Context) []*Hint
	Name() string
}

// ProviderFunc is an adapter to allow functions to be used as Providers.
type ProviderFunc func(Context) []*Hint

// GetHints calls the function.
func (f ProviderFunc) GetHints(ctx Context) []*Hint {
	return f(ctx)
}

// Name returns the function name (generic).
func (f ProviderFunc) Name() string {
	return "func"
}

// Registry manages hint providers and generates contextual hints.
type Registry struct {
	providers []Provider
	config    RegistryConfig
}

// RegistryConfig configures hint generation behavior.
type RegistryConfig struct {
	MaxHints    int      // Maximum number of hints to return
	ExcludeTags []string // Exclude hints with these tags
	Enabled     bool
}

// DefaultMaxHints is how many hints a registry returns unless configured.
const DefaultMaxHints = 3

// NewRegistry creates a new hint registry.
func NewRegistry() *Registry {
	return &Registry{
		config: RegistryConfig{MaxHints: DefaultMaxHints, Enabled: true},
	}
}

// WithConfig sets the registry configuration.
func (r *Registry) WithConfig(config RegistryConfig) *Registry {
	r.config = config
	return r
}

// Register adds a hint provider to the registry.
func (r *Registry) Register(provider Provider) {
	r.providers = append(r.providers, provider)
}

// RegisterFunc registers a function as a hint provider.
func (r *Registry) RegisterFunc(name string, fn func(Context) []*Hint) {
	r.Register(&namedProvider{name: name, fn: ProviderFunc(fn)})
}

// GetHints generates hints for the given context, in provider order.
func (r *Registry) GetHints(ctx Context) []*Hint {
	if !r.config.Enabled {
		return nil
	}

	var hints []*Hint
	for _, provider := range r.providers {
		for _, hint := range provider.GetHints(ctx) {
			if !r.excluded(hint) {
				hints = append(hints, hint)
			}
		}
	}

	if r.config.MaxHints > 0 && len(hints) > r.config.MaxHints {
		hints = hints[:r.config.MaxHints]
	}
	return hints
}

func (r *Registry) excluded(hint *Hint) bool {
	for _, tag := range r.config.ExcludeTags {
		if hint.HasTag(tag) {
			return true
		}
	}
	return false
}

type namedProvider struct {
	name string
	fn   ProviderFunc
}

func (p *namedProvider) GetHints(ctx Context) []*Hint {
	return p.fn.GetHints(ctx)
}

func (p *namedProvider) Name() string {
	return p.name
}
