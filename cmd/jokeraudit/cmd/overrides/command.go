// Package overrides provides the overrides command, which prints the display
// names the general canonicalization rule cannot handle.
package overrides

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/jokeraudit/cmd/application"
	"github.com/agentstation/jokeraudit/internal/cmd/output"
	"github.com/agentstation/jokeraudit/internal/cmd/table"
	"github.com/agentstation/jokeraudit/internal/matcher"
	"github.com/agentstation/jokeraudit/pkg/canonical"
	"github.com/agentstation/jokeraudit/pkg/errors"
)

// NewCommand creates the overrides command.
func NewCommand(app application.Application) *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:     "overrides",
		GroupID: "management",
		Short:   "List the canonicalization override table",
		Long: `Overrides lists every display name whose identifier comes from the
override table, next to what the general rule alone would produce.`,
		Example: `  jokeraudit overrides
  jokeraudit overrides --name "*-*"
  jokeraudit overrides -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			keep, err := matcher.Filter(names...)
			if err != nil {
				return &errors.ValidationError{Field: "name", Value: names, Message: err.Error()}
			}

			entries := canonical.OverrideTable()
			if keep != nil {
				for name := range entries {
					if !keep(name) {
						delete(entries, name)
					}
				}
			}

			format := output.DetectFormat(app.OutputFormat())
			return output.Write(cmd.OutOrStdout(), format, entries, func(bool) []table.Section {
				return []table.Section{{Data: table.OverridesData(entries)}}
			})
		},
	}

	cmd.Flags().StringSliceVarP(&names, "name", "n", nil, "only show display names matching these glob or regex patterns")
	return cmd
}
