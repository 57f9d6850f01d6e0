// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	md "github.com/nao1215/markdown"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/jokeraudit/internal/cmd/table"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatWide represents wide table output format.
	FormatWide Format = "wide"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatMarkdown represents a markdown document.
	FormatMarkdown Format = "markdown"
	// FormatText represents plain text lines.
	FormatText Format = "text"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatTable, FormatWide, FormatJSON, FormatYAML, FormatMarkdown, FormatText}
}

// Tabular reports whether f renders table sections rather than raw data.
func (f Format) Tabular() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return false
	}
	return true
}

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// NewFormatter creates appropriate formatter based on format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	case FormatText:
		return &TextFormatter{}
	case FormatWide:
		return &TableFormatter{Wide: true}
	default:
		return &TableFormatter{}
	}
}

// Write formats the result of a command. Raw data goes to JSON and YAML;
// tabular formats get the sections built by tabular.
func Write(w io.Writer, format Format, raw any, tabular func(wide bool) []table.Section) error {
	formatter := NewFormatter(format)
	if !format.Tabular() || tabular == nil {
		return formatter.Format(w, raw)
	}
	return formatter.Format(w, tabular(format == FormatWide))
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// sections normalizes the tabular inputs every table-like formatter accepts.
func sections(data any) ([]table.Section, bool) {
	switch v := data.(type) {
	case []table.Section:
		return v, true
	case table.Section:
		return []table.Section{v}, true
	case table.Data:
		return []table.Section{{Data: v}}, true
	case Data:
		return []table.Section{{Data: table.Data(v)}}, true
	default:
		return nil, false
	}
}

// TableFormatter outputs table format.
type TableFormatter struct {
	Wide bool
}

// Format outputs data in table format. Data that is not tabular falls back to JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	secs, ok := sections(data)
	if !ok {
		return (&JSONFormatter{Indent: "  "}).Format(w, data)
	}
	for i, s := range secs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if s.Title != "" {
			fmt.Fprintf(w, "%s\n", s.Title)
		}
		if s.Data.Empty() && s.Title != "" {
			fmt.Fprintln(w, "  (none)")
		} else if err := f.formatTable(w, s.Data); err != nil {
			return err
		}
		for _, note := range s.Notes {
			fmt.Fprintln(w, note)
		}
	}
	return nil
}

func (f *TableFormatter) formatTable(w io.Writer, data table.Data) error {
	config := tablewriter.Config{}

	if len(data.ColumnAlignment) > 0 {
		twAlign := make([]tw.Align, len(data.ColumnAlignment))
		for i, align := range data.ColumnAlignment {
			switch align {
			case table.AlignLeft:
				twAlign[i] = tw.AlignLeft
			case table.AlignCenter:
				twAlign[i] = tw.AlignCenter
			case table.AlignRight:
				twAlign[i] = tw.AlignRight
			default:
				twAlign[i] = tw.Skip
			}
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: twAlign}
		config.Row.Alignment = tw.CellAlignment{PerColumn: twAlign}
	}

	tbl := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		tbl.Header(headers...)
	}

	for _, row := range data.Rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		if err := tbl.Append(cells...); err != nil {
			return err
		}
	}

	return tbl.Render()
}

// MarkdownFormatter renders sections as a markdown document.
type MarkdownFormatter struct {
	Title string // optional H1
}

// Format implements the Formatter interface. Data that is not tabular is
// written as a JSON code block.
func (f *MarkdownFormatter) Format(w io.Writer, data any) error {
	doc := md.NewMarkdown(w)
	if f.Title != "" {
		doc.H1(f.Title)
	}

	secs, ok := sections(data)
	if !ok {
		raw, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return err
		}
		doc.CodeBlocks(md.SyntaxHighlightJSON, string(raw))
		return doc.Build()
	}

	for _, s := range secs {
		if s.Title != "" {
			doc.H2(s.Title)
		}
		if s.Data.Empty() {
			doc.PlainText(md.Italic("None")).LF()
		} else {
			doc.Table(md.TableSet{Header: headerCells(s.Data), Rows: s.Data.Rows})
		}
		if len(s.Notes) > 0 {
			doc.BulletList(s.Notes...)
		}
	}
	return doc.Build()
}

// headerCells title-cases headers and fills blank ones, which markdown
// tables cannot render.
func headerCells(data table.Data) []string {
	caser := cases.Title(language.English)
	out := make([]string, len(data.Headers))
	for i, h := range data.Headers {
		if h == "" {
			h = "status"
		}
		out[i] = caser.String(h)
	}
	return out
}

// TextFormatter writes one line per row, cells joined by " | ".
type TextFormatter struct{}

// Format implements the Formatter interface. Data that is not tabular is
// written with %v.
func (f *TextFormatter) Format(w io.Writer, data any) error {
	secs, ok := sections(data)
	if !ok {
		_, err := fmt.Fprintf(w, "%v\n", data)
		return err
	}
	for i, s := range secs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if s.Title != "" {
			fmt.Fprintf(w, "%s:\n", s.Title)
		}
		for _, row := range s.Data.Rows {
			cells := make([]string, 0, len(row))
			for _, c := range row {
				if c != "" {
					cells = append(cells, c)
				}
			}
			fmt.Fprintf(w, "  %s\n", strings.Join(cells, " | "))
		}
		for _, note := range s.Notes {
			fmt.Fprintf(w, "%s\n", note)
		}
	}
	return nil
}

// Data represents data formatted for table output.
type Data table.Data

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	if format == "" {
		return format, nil
	}
	for _, f := range Formats() {
		if f == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("invalid format %q: must be one of: table, wide, json, yaml, markdown, text", s)
}
