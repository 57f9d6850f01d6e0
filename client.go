// Package jokeraudit checks a joker reference document against the joker
// identifiers registered in the game engine.
//
// An audit reads the document (JOKERS.md by default) and the engine source
// (core/src/joker.rs by default), extracts entries and identifiers, and
// reconciles them into a report of missing and duplicated names.
//
// Example usage:
//
//	client, err := jokeraudit.New(
//	    jokeraudit.WithDocumentPath("JOKERS.md"),
//	    jokeraudit.WithSourcePath("core/src/joker.rs"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client.OnDuplicate(func(g reconciler.DuplicateGroup) {
//	    log.Printf("%s is listed %d times", g.Name, len(g.Entries))
//	})
//
//	report, err := client.Audit(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Summary())
package jokeraudit

import (
	"bytes"
	"context"
	"sync"

	"github.com/agentstation/jokeraudit/pkg/extract"
	"github.com/agentstation/jokeraudit/pkg/logging"
	"github.com/agentstation/jokeraudit/pkg/reconciler"
)

// Compile-time interface check.
var _ Client = (*client)(nil)

// Auditor runs audits.
type Auditor interface {
	// Audit reads both inputs and reconciles them. Unreadable inputs and a
	// missing registration construct abort the audit with no report.
	Audit(ctx context.Context) (*reconciler.Report, error)

	// Last returns the report of the most recent successful audit.
	Last() (*reconciler.Report, bool)
}

// Client audits a document against an engine source and fires hooks for
// each finding.
type Client interface {
	Auditor
	Hooks
}

type client struct {
	options    *options
	reconciler reconciler.Reconciler
	hooks      *hooks

	mu   sync.RWMutex
	last *reconciler.Report
}

// New creates a Client with the given options.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}
	r, err := reconciler.New(reconciler.WithCanonicalizer(o.canonicalizer))
	if err != nil {
		return nil, err
	}
	return &client{options: o, reconciler: r, hooks: newHooks()}, nil
}

// Audit implements Auditor.
func (c *client) Audit(ctx context.Context) (*reconciler.Report, error) {
	ctx = logging.WithOperation(ctx, "audit")

	doc, err := c.document(ctx)
	if err != nil {
		return nil, err
	}
	src, err := c.identifierSource(ctx)
	if err != nil {
		return nil, err
	}

	res, err := extract.Extract(ctx, bytes.NewReader(doc), src)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("Extraction failed")
		return nil, err
	}

	report := c.reconciler.Reconcile(res.Entries, res.Identifiers)
	logging.FromContext(ctx).Info().
		Int("implemented", report.Counts.Implemented).
		Int("unique", report.Counts.Unique).
		Int("duplicates", report.Counts.Duplicates).
		Int("missing", report.Counts.Missing).
		Msg("Audit complete")

	c.mu.Lock()
	c.last = report
	c.mu.Unlock()

	c.hooks.trigger(report)
	return report, nil
}

// Last implements Auditor.
func (c *client) Last() (*reconciler.Report, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last, c.last != nil
}

// OnMissing implements Hooks.
func (c *client) OnMissing(fn MissingHook) {
	c.hooks.OnMissing(fn)
}

// OnDuplicate implements Hooks.
func (c *client) OnDuplicate(fn DuplicateHook) {
	c.hooks.OnDuplicate(fn)
}

func (c *client) document(ctx context.Context) ([]byte, error) {
	if c.options.inline {
		return c.options.document, nil
	}
	logging.FromContext(logging.WithDocument(ctx, c.options.documentPath)).Debug().Msg("Reading document")
	return extract.ReadFile("document", c.options.documentPath)
}

func (c *client) identifierSource(ctx context.Context) (extract.IdentifierSource, error) {
	o := c.options
	switch {
	case o.source != nil:
		return o.source, nil
	case o.sourceText != nil:
		return extract.NewMacroSource("source", *o.sourceText, o.construct), nil
	case o.registryPath != "":
		logging.FromContext(logging.WithSource(ctx, o.registryPath)).Debug().Msg("Reading registry export")
		return extract.OpenSource(o.registryPath, o.construct)
	default:
		logging.FromContext(logging.WithSource(ctx, o.sourcePath)).Debug().
			Str("construct", o.construct).Msg("Reading engine source")
		return extract.OpenSource(o.sourcePath, o.construct)
	}
}
