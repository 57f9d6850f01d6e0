package jokeraudit

import (
	"io"
	"strings"

	"github.com/agentstation/jokeraudit/pkg/canonical"
	"github.com/agentstation/jokeraudit/pkg/errors"
	"github.com/agentstation/jokeraudit/pkg/extract"
)

// Default input locations, relative to the engine repository root.
const (
	DefaultDocumentPath = "JOKERS.md"
	DefaultSourcePath   = "core/src/joker.rs"

	// DefaultTarget is the number of jokers in the base game.
	DefaultTarget = 150
)

// options holds the inputs of an audit.
type options struct {
	documentPath string
	document     []byte // in-memory document, used when inline is set
	inline       bool

	sourcePath   string
	registryPath string  // wins over sourcePath
	sourceText   *string // wins over both paths
	construct    string
	source       extract.IdentifierSource // wins over everything above

	canonicalizer canonical.Canonicalizer
}

func defaults() *options {
	return &options{
		documentPath:  DefaultDocumentPath,
		sourcePath:    DefaultSourcePath,
		construct:     extract.DefaultConstruct,
		canonicalizer: canonical.Default(),
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Option is a function that configures a Client.
type Option func(*options) error

// WithDocumentPath sets the reference document file. Like the other document
// options, the last one given wins.
func WithDocumentPath(path string) Option {
	return func(o *options) error {
		if strings.TrimSpace(path) == "" {
			return &errors.ValidationError{Field: "document", Message: "path cannot be empty"}
		}
		o.documentPath = path
		o.document, o.inline = nil, false
		return nil
	}
}

// WithDocument reads the reference document from r once, so every audit sees
// the same snapshot.
func WithDocument(r io.Reader) Option {
	return func(o *options) error {
		if r == nil {
			return &errors.ValidationError{Field: "document", Message: "reader cannot be nil"}
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return errors.NewInputError("document", "", err)
		}
		o.document, o.inline = data, true
		return nil
	}
}

// WithDocumentString uses doc as the reference document.
func WithDocumentString(doc string) Option {
	return func(o *options) error {
		o.document, o.inline = []byte(doc), true
		return nil
	}
}

// WithSourcePath sets the engine source file holding the registration construct.
func WithSourcePath(path string) Option {
	return func(o *options) error {
		if strings.TrimSpace(path) == "" {
			return &errors.ValidationError{Field: "source", Message: "path cannot be empty"}
		}
		o.sourcePath = path
		return nil
	}
}

// WithSourceText uses text as the engine source.
func WithSourceText(text string) Option {
	return func(o *options) error {
		o.sourceText = &text
		return nil
	}
}

// WithRegistryPath reads identifiers from a YAML or JSON registry export
// instead of the engine source.
func WithRegistryPath(path string) Option {
	return func(o *options) error {
		if !extract.IsRegistryFile(path) {
			return &errors.ValidationError{Field: "registry", Value: path, Message: "must be a .yaml, .yml or .json file"}
		}
		o.registryPath = path
		return nil
	}
}

// WithConstruct sets the registration macro name, "make_jokers!" by default.
func WithConstruct(construct string) Option {
	return func(o *options) error {
		if strings.TrimSpace(construct) == "" {
			return &errors.ValidationError{Field: "construct", Message: "cannot be empty"}
		}
		o.construct = construct
		return nil
	}
}

// WithIdentifierSource replaces file-based identifier extraction.
func WithIdentifierSource(src extract.IdentifierSource) Option {
	return func(o *options) error {
		if src == nil {
			return &errors.ValidationError{Field: "source", Message: "identifier source cannot be nil"}
		}
		o.source = src
		return nil
	}
}

// WithIdentifiers uses a fixed identifier list.
func WithIdentifiers(ids ...string) Option {
	return WithIdentifierSource(extract.StaticSource(ids))
}

// WithCanonicalizer sets the canonicalizer used by the reconciler.
func WithCanonicalizer(c canonical.Canonicalizer) Option {
	return func(o *options) error {
		o.canonicalizer = c
		return nil
	}
}
