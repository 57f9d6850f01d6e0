package extract

import (
	"context"
	"io"
	"os"

	"github.com/agentstation/jokeraudit/pkg/catalog"
	"github.com/agentstation/jokeraudit/pkg/errors"
	"github.com/agentstation/jokeraudit/pkg/logging"
)

// Result is the structured output of one extraction run.
type Result struct {
	Entries     []catalog.Entry     `json:"entries" yaml:"entries"`
	Identifiers catalog.Identifiers `json:"identifiers" yaml:"identifiers"`
	Stats       Stats               `json:"stats" yaml:"stats"`
}

// Extract parses the document and queries src. Either failure aborts the run
// and no partial result is returned. Skipped and malformed lines are not errors.
func Extract(ctx context.Context, doc io.Reader, src IdentifierSource) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.NewValidationError("source", nil, "identifier source is required")
	}
	if doc == nil {
		return nil, errors.NewValidationError("document", nil, "document reader is required")
	}

	ids, err := src.Identifiers(ctx)
	if err != nil {
		return nil, err
	}

	entries, stats, err := ParseDocument(doc)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	for _, m := range stats.Malformed {
		logger.Debug().Int("line", m.Line).Str("text", m.Text).Msg("Skipped malformed row")
	}
	logger.Debug().
		Int("rows", stats.Rows).
		Int("headers", stats.Headers).
		Int("skipped", stats.Skipped).
		Int("malformed", len(stats.Malformed)).
		Int("identifiers", ids.Len()).
		Msg("Extracted audit inputs")

	return &Result{Entries: entries, Identifiers: ids, Stats: stats}, nil
}

// ReadFile reads an input file. Any failure is an InputError labelled with
// input ("document", "source" or "registry").
func ReadFile(input, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.NewInputError(input, path, errors.New("no path given"))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInputError(input, path, err)
	}
	return data, nil
}

// OpenSource reads path and returns the identifier source for it: a
// RegistrySource for .yaml, .yml and .json files, a MacroSource otherwise.
func OpenSource(path, construct string) (IdentifierSource, error) {
	if IsRegistryFile(path) {
		data, err := ReadFile("registry", path)
		if err != nil {
			return nil, err
		}
		return NewRegistrySource(path, data), nil
	}
	data, err := ReadFile("source", path)
	if err != nil {
		return nil, err
	}
	return NewMacroSource(path, string(data), construct), nil
}
