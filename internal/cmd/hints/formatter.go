package hints

import (
	"fmt"
	"io"

	"github.com/agentstation/jokeraudit/internal/cmd/output"
)

// Display writes hints after command output. Hints are only shown for
// tabular formats so JSON and YAML stay machine-readable.
func Display(w io.Writer, format output.Format, hints []*Hint) error {
	if len(hints) == 0 || !format.Tabular() {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, hint := range hints {
		if _, err := fmt.Fprintln(w, hint.String()); err != nil {
			return err
		}
	}
	return nil
}
