package reconciler

import (
	"strings"

	"github.com/agentstation/jokeraudit/pkg/canonical"
	"github.com/agentstation/jokeraudit/pkg/errors"
)

// options configures a reconciler.
type options struct {
	canonicalizer canonical.Canonicalizer
}

func defaultOptions() *options {
	return &options{canonicalizer: canonical.Default()}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithCanonicalizer sets the canonicalizer used to derive identifiers.
func WithCanonicalizer(c canonical.Canonicalizer) Option {
	return func(o *options) error {
		o.canonicalizer = c
		return nil
	}
}

// WithOverrides adds exact display name to identifier mappings on top of the
// built-in table. Blank names or identifiers are rejected.
func WithOverrides(extra map[string]string) Option {
	return func(o *options) error {
		for name, id := range extra {
			if strings.TrimSpace(name) == "" {
				return &errors.ValidationError{Field: "overrides", Value: name, Message: "display name cannot be blank"}
			}
			if strings.TrimSpace(id) == "" {
				return &errors.ValidationError{Field: "overrides", Value: name, Message: "identifier cannot be blank"}
			}
		}
		o.canonicalizer = o.canonicalizer.WithOverrides(extra)
		return nil
	}
}
