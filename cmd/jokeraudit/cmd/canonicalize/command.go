// Package canonicalize provides the canonicalize command, which shows the
// identifier each display name maps to.
package canonicalize

import (
	"bufio"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/jokeraudit/cmd/application"
	"github.com/agentstation/jokeraudit/internal/cmd/output"
	"github.com/agentstation/jokeraudit/internal/cmd/table"
	"github.com/agentstation/jokeraudit/pkg/canonical"
	"github.com/agentstation/jokeraudit/pkg/errors"
)

// NewCommand creates the canonicalize command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "canonicalize [names...]",
		GroupID: "core",
		Aliases: []string{"canon", "id"},
		Short:   "Show the identifier a display name maps to",
		Long: `Canonicalize maps joker display names to engine identifiers, using the
override table first and the general rule otherwise.

Names are read from the arguments, or one per line from stdin when no
arguments are given. Blank lines are skipped.`,
		Example: `  jokeraudit canonicalize "8 Ball" "Oops! All 6s"
  jokeraudit canonicalize "Riff-Raff" -o json
  printf 'Joker\nMail-In Rebate\n' | jokeraudit canonicalize`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				var err error
				if names, err = readNames(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			if len(names) == 0 {
				return &errors.ValidationError{Field: "names", Message: "no names given"}
			}

			mappings := canonical.Default().Map(names...)
			app.Logger().Debug().Int("names", len(mappings)).Msg("Canonicalized names")

			format := output.DetectFormat(app.OutputFormat())
			return output.Write(cmd.OutOrStdout(), format, mappings, func(bool) []table.Section {
				return []table.Section{{Data: table.MappingsData(mappings)}}
			})
		},
	}
	return cmd
}

// readNames reads one name per line, trimming surrounding whitespace.
func readNames(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewInputError("names", "stdin", err)
	}
	return names, nil
}
