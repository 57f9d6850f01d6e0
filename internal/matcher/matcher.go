// Package matcher selects joker display names with glob or regex patterns.
// The audit command uses it to narrow tables to the names a reviewer asked for.
package matcher

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
	// Auto attempts to detect the pattern type.
	Auto
)

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Matcher matches display names against one pattern.
type Matcher interface {
	// Match checks if the name matches the pattern.
	Match(name string) bool
	// MatchAll returns the matching names in input order.
	MatchAll(names ...string) []string
	// Pattern returns the original pattern string.
	Pattern() string
	// Type returns the pattern type being used.
	Type() PatternType
}

// Options configures the matcher behavior.
type Options struct {
	// CaseInsensitive makes matching case-insensitive
	CaseInsensitive bool
	// Anchored adds ^ and $ to regex patterns if not present
	Anchored bool
}

// DefaultOptions returns the options used by the CLI: names match
// case-insensitively and regexes must match the whole name.
func DefaultOptions() *Options {
	return &Options{CaseInsensitive: true, Anchored: true}
}

type matcher struct {
	pattern         string
	patternType     PatternType
	compiled        *regexp.Regexp
	glob            string
	caseInsensitive bool
}

// New creates a Matcher for pattern. A nil opts uses DefaultOptions.
func New(patternType PatternType, pattern string, opts *Options) (Matcher, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	m := &matcher{pattern: pattern, patternType: patternType}
	if patternType == Auto {
		m.patternType = detectPatternType(pattern)
	}
	if err := m.compile(opts); err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", pattern, err)
	}
	return m, nil
}

// MustNew creates a new Matcher and panics if there's an error.
func MustNew(patternType PatternType, pattern string, opts *Options) Matcher {
	m, err := New(patternType, pattern, opts)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *matcher) compile(opts *Options) error {
	m.caseInsensitive = opts.CaseInsensitive

	switch m.patternType {
	case Glob:
		m.glob = m.pattern
		if opts.CaseInsensitive {
			m.glob = strings.ToLower(m.glob)
		}
		if _, err := path.Match(m.glob, ""); err != nil {
			return fmt.Errorf("invalid glob pattern: %w", err)
		}
	case Regex:
		pattern := m.pattern
		if opts.Anchored {
			if !strings.HasPrefix(pattern, "^") {
				pattern = "^(?:" + pattern
			} else {
				pattern = "^(?:" + pattern[1:]
			}
			pattern = strings.TrimSuffix(pattern, "$") + ")$"
		}
		if opts.CaseInsensitive {
			pattern = "(?i)" + pattern
		}
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid regex pattern: %w", err)
		}
		m.compiled = compiled
	default:
		return fmt.Errorf("unsupported pattern type: %v", m.patternType)
	}
	return nil
}

// Match implements Matcher.
func (m *matcher) Match(name string) bool {
	switch m.patternType {
	case Glob:
		if m.caseInsensitive {
			name = strings.ToLower(name)
		}
		matched, _ := path.Match(m.glob, name)
		return matched
	case Regex:
		return m.compiled.MatchString(name)
	default:
		return false
	}
}

// MatchAll implements Matcher.
func (m *matcher) MatchAll(names ...string) []string {
	results := make([]string, 0)
	for _, name := range names {
		if m.Match(name) {
			results = append(results, name)
		}
	}
	return results
}

// Pattern implements Matcher.
func (m *matcher) Pattern() string {
	return m.pattern
}

// Type implements Matcher.
func (m *matcher) Type() PatternType {
	return m.patternType
}

// detectPatternType treats a pattern as a regex when it carries regex-only
// syntax, and as a glob otherwise. Plain names are globs that match themselves.
func detectPatternType(pattern string) PatternType {
	regexIndicators := []string{
		"^", "$", "\\d", "\\w", "\\s", "\\b",
		"(?", ".*", ".+", "{", "}", "+", "|", "(", ")",
	}
	for _, indicator := range regexIndicators {
		if strings.Contains(pattern, indicator) {
			return Regex
		}
	}
	return Glob
}

// MultiMatcher matches when any of its patterns match.
type MultiMatcher struct {
	matchers []Matcher
}

// NewMultiMatcher creates a matcher with multiple patterns.
func NewMultiMatcher(patterns []string, patternType PatternType, opts *Options) (*MultiMatcher, error) {
	mm := &MultiMatcher{matchers: make([]Matcher, 0, len(patterns))}
	for _, pattern := range patterns {
		m, err := New(patternType, pattern, opts)
		if err != nil {
			return nil, err
		}
		mm.matchers = append(mm.matchers, m)
	}
	return mm, nil
}

// Match returns true if any pattern matches.
func (mm *MultiMatcher) Match(name string) bool {
	for _, m := range mm.matchers {
		if m.Match(name) {
			return true
		}
	}
	return false
}

// MatchAll returns the distinct names that match any pattern, in input order.
func (mm *MultiMatcher) MatchAll(names ...string) []string {
	results := make([]string, 0)
	seen := make(map[string]bool)
	for _, name := range names {
		if !seen[name] && mm.Match(name) {
			results = append(results, name)
			seen[name] = true
		}
	}
	return results
}

// Len returns the number of patterns.
func (mm *MultiMatcher) Len() int {
	return len(mm.matchers)
}

// Filter compiles patterns with auto detection and default options into a
// predicate. No patterns yields a nil predicate, which keeps every name.
func Filter(patterns ...string) (func(string) bool, error) {
	var nonEmpty []string
	for _, p := range patterns {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, nil
	}
	mm, err := NewMultiMatcher(nonEmpty, Auto, nil)
	if err != nil {
		return nil, err
	}
	return mm.Match, nil
}
