package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/jokeraudit/pkg/catalog"
	"github.com/agentstation/jokeraudit/pkg/errors"
)

// DefaultConstruct is the registration macro in the engine source.
const DefaultConstruct = "make_jokers!"

// identifierToken matches identifier-shaped tokens inside the construct.
var identifierToken = regexp.MustCompile(`[A-Z][a-zA-Z0-9]*`)

// identifierShape is identifierToken anchored to a whole string.
var identifierShape = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)

// stopList holds words from comments inside the construct that look like
// identifiers. Matching is exact.
var stopList = []string{"Missing", "jokers", "adding", "to", "reach", "total"}

// StopList returns a copy of the tokens discarded by MacroSource.
func StopList() []string {
	return slices.Clone(stopList)
}

// IdentifierSource yields the implemented identifier set.
type IdentifierSource interface {
	Identifiers(ctx context.Context) (catalog.Identifiers, error)
}

// IdentifierSourceFunc adapts a function to IdentifierSource.
type IdentifierSourceFunc func(ctx context.Context) (catalog.Identifiers, error)

// Identifiers calls f.
func (f IdentifierSourceFunc) Identifiers(ctx context.Context) (catalog.Identifiers, error) {
	return f(ctx)
}

// StaticSource is an identifier set that is already known.
type StaticSource []string

// Identifiers returns the static identifiers.
func (s StaticSource) Identifiers(ctx context.Context) (catalog.Identifiers, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Identifiers{}, err
	}
	return catalog.NewIdentifiers(s...), nil
}

// MacroSource recovers identifiers from the argument list of a registration
// macro in engine source text. It is a best-effort pattern match: every
// capitalized alphanumeric run between `<construct>(` and the first `);` is a
// candidate, minus the stop list.
type MacroSource struct {
	Name      string // used in errors and logs
	Text      string
	Construct string // defaults to DefaultConstruct
}

// NewMacroSource creates a MacroSource over text.
func NewMacroSource(name, text, construct string) *MacroSource {
	return &MacroSource{Name: name, Text: text, Construct: construct}
}

func (m *MacroSource) construct() string {
	if m.Construct == "" {
		return DefaultConstruct
	}
	return m.Construct
}

// Identifiers implements IdentifierSource.
func (m *MacroSource) Identifiers(ctx context.Context) (catalog.Identifiers, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Identifiers{}, err
	}
	pattern := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(m.construct()) + `\((.*?)\);`)
	match := pattern.FindStringSubmatch(m.Text)
	if match == nil {
		return catalog.Identifiers{}, errors.NewRegistrationNotFoundError(m.construct(), m.Name)
	}

	var ids catalog.Identifiers
	for _, tok := range identifierToken.FindAllString(match[1], -1) {
		if slices.Contains(stopList, tok) {
			continue
		}
		ids.Add(tok)
	}
	return ids, nil
}

// ParseMacro is a convenience wrapper for a one-off MacroSource.
func ParseMacro(text, construct string) (catalog.Identifiers, error) {
	return NewMacroSource("", text, construct).Identifiers(context.Background())
}

// registryKeys are the mapping keys a registry export may list identifiers under.
var registryKeys = []string{"identifiers", "jokers"}

// RegistrySource reads a structured registry export in YAML or JSON: either a
// bare sequence of identifiers or a mapping with an `identifiers` or `jokers`
// sequence. Entries that are not identifier-shaped are ignored.
type RegistrySource struct {
	Name string
	Data []byte
}

// NewRegistrySource creates a RegistrySource over data.
func NewRegistrySource(name string, data []byte) *RegistrySource {
	return &RegistrySource{Name: name, Data: data}
}

// Identifiers implements IdentifierSource.
func (r *RegistrySource) Identifiers(ctx context.Context) (catalog.Identifiers, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Identifiers{}, err
	}

	var doc any
	if err := yaml.Unmarshal(r.Data, &doc); err != nil {
		return catalog.Identifiers{}, errors.WrapParse(r.format(), r.Name, err)
	}

	list, err := registryList(doc)
	if err != nil {
		return catalog.Identifiers{}, errors.NewParseError(r.format(), r.Name, err.Error(), err)
	}

	var ids catalog.Identifiers
	for _, item := range list {
		s, ok := item.(string)
		if !ok || !identifierShape.MatchString(s) {
			continue
		}
		ids.Add(s)
	}
	if ids.Len() == 0 {
		return catalog.Identifiers{}, errors.NewRegistrationNotFoundError("identifiers", r.Name)
	}
	return ids, nil
}

func (r *RegistrySource) format() string {
	if strings.EqualFold(filepath.Ext(r.Name), ".json") {
		return "json"
	}
	return "yaml"
}

func registryList(doc any) ([]any, error) {
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case map[string]any:
		for _, key := range registryKeys {
			raw, ok := v[key]
			if !ok {
				continue
			}
			list, ok := raw.([]any)
			if !ok {
				return nil, fmt.Errorf("%q must be a sequence, got %T", key, raw)
			}
			return list, nil
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected registry document of type %T", doc)
	}
}

// IsRegistryFile reports whether path looks like a structured registry export.
func IsRegistryFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
