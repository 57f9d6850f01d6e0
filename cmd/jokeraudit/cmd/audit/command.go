// Package audit provides the audit command, which reconciles the joker
// reference document with the engine's registered identifiers.
package audit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/jokeraudit/cmd/application"
	"github.com/agentstation/jokeraudit/internal/cmd/hints"
	"github.com/agentstation/jokeraudit/internal/cmd/output"
	"github.com/agentstation/jokeraudit/internal/cmd/table"
	"github.com/agentstation/jokeraudit/internal/matcher"
	"github.com/agentstation/jokeraudit/pkg/errors"
	"github.com/agentstation/jokeraudit/pkg/logging"
	"github.com/agentstation/jokeraudit/pkg/reconciler"
)

// ErrFindings is returned by --strict audits that find missing or duplicate names.
var ErrFindings = errors.New("audit found missing or duplicate jokers")

// Result is the raw output of an audit, written as-is for json and yaml.
type Result struct {
	Report      *reconciler.Report     `json:"report" yaml:"report"`
	Completion  *reconciler.Completion `json:"completion,omitempty" yaml:"completion,omitempty"`
	Suggestions map[string][]string    `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// Flags holds the audit command flags.
type Flags struct {
	Document  string
	Source    string
	Registry  string
	Construct string
	Target    int
	Names     []string
	Hints     bool
	Strict    bool
}

// NewCommand creates the audit command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "audit",
		GroupID: "core",
		Aliases: []string{"check", "reconcile"},
		Short:   "Compare the joker document with the engine registry",
		Long: `Audit reads the joker reference document and the engine's registration
construct, maps every documented name to an identifier, and reports:

  - names documented more than once
  - documented names with no registered identifier
  - registered identifiers that no documented name maps to (wide output)

Counts always cover the whole document. --name only narrows the tables.`,
		Example: `  jokeraudit audit
  jokeraudit audit --document docs/JOKERS.md --source core/src/joker.rs
  jokeraudit audit --registry jokers.yaml -o json
  jokeraudit audit --name "*Joker*" -o wide
  jokeraudit audit --hints --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Document, "document", "d", "", "reference document (default from config, then JOKERS.md)")
	cmd.Flags().StringVarP(&flags.Source, "source", "s", "", "engine source holding the registration construct")
	cmd.Flags().StringVarP(&flags.Registry, "registry", "r", "", "YAML or JSON identifier export, used instead of --source")
	cmd.Flags().StringVar(&flags.Construct, "construct", "", "registration macro name")
	cmd.Flags().IntVarP(&flags.Target, "target", "t", 0, "expected number of jokers, 0 to hide completion")
	cmd.Flags().StringSliceVarP(&flags.Names, "name", "n", nil, "only show names matching these glob or regex patterns")
	cmd.Flags().BoolVar(&flags.Hints, "hints", false, "suggest undocumented identifiers for missing names")
	cmd.Flags().BoolVar(&flags.Strict, "strict", false, "exit with an error when anything is missing or duplicated")

	return cmd
}

// tipRegistry builds the hint registry for a run. --quiet turns tips off and
// --strict drops next-step suggestions, keeping troubleshooting ones.
func tipRegistry(cmd *cobra.Command, flags *Flags) *hints.Registry {
	quiet, _ := cmd.Flags().GetBool("quiet")
	cfg := hints.RegistryConfig{MaxHints: hints.DefaultMaxHints, Enabled: !quiet}
	if flags.Strict {
		cfg.ExcludeTags = []string{"next-step"}
	}
	return hints.Defaults().WithConfig(cfg)
}

// settings merges changed flags over the configured settings.
func settings(cmd *cobra.Command, base application.Settings, flags *Flags) application.Settings {
	s := base
	changed := cmd.Flags().Changed
	if changed("document") {
		s.Document = flags.Document
	}
	if changed("source") {
		s.Source = flags.Source
		s.Registry = ""
	}
	if changed("registry") {
		s.Registry = flags.Registry
	}
	if changed("construct") {
		s.Construct = flags.Construct
	}
	if changed("target") {
		s.Target = flags.Target
	}
	return s
}

func run(cmd *cobra.Command, app application.Application, flags *Flags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	s := settings(cmd, app.Settings(), flags)

	keep, err := matcher.Filter(flags.Names...)
	if err != nil {
		return &errors.ValidationError{Field: "name", Value: flags.Names, Message: err.Error()}
	}

	client, err := app.Client(s.Options()...)
	if err != nil {
		return err
	}
	client.OnDuplicate(func(g reconciler.DuplicateGroup) {
		logger.Debug().Str("name", g.Name).Int("occurrences", len(g.Entries)).Msg("Duplicate name")
	})
	client.OnMissing(func(res reconciler.NameResult) {
		logger.Debug().Str("name", res.Name).Str("identifier", res.Identifier).Msg("Missing implementation")
	})

	report, err := client.Audit(ctx)
	if err != nil {
		return err
	}

	result := Result{Report: report}
	if s.Target > 0 {
		comp := report.Completion(s.Target)
		result.Completion = &comp
	}
	if flags.Hints {
		result.Suggestions = hints.Suggest(report.MissingResults(), report.Undocumented, hints.DefaultSuggestions)
	}

	format := output.DetectFormat(app.OutputFormat())
	view := table.AuditView{
		Report: report,
		Target: s.Target,
		Keep:   keep,
		Hints:  result.Suggestions,
	}
	if err := output.Write(cmd.OutOrStdout(), format, result, func(wide bool) []table.Section {
		view.Wide = wide
		return table.AuditSections(view)
	}); err != nil {
		return err
	}

	tips := tipRegistry(cmd, flags).GetHints(hints.Context{
		Command:     "audit",
		Report:      report,
		Target:      s.Target,
		Filtered:    keep != nil,
		Suggestions: flags.Hints,
		Wide:        format == output.FormatWide,
	})
	if err := hints.Display(cmd.ErrOrStderr(), format, tips); err != nil {
		return err
	}

	if flags.Strict && !report.Clean() {
		return fmt.Errorf("%w: %s", ErrFindings, report.Summary())
	}
	return nil
}

