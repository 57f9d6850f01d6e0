package hints

import (
	"fmt"
)

const auditCommand = "audit"

// RegisterAuditProviders registers the hint providers for audit results.
func RegisterAuditProviders(registry *Registry) {
	registry.RegisterFunc("missing", missingHintProvider)
	registry.RegisterFunc("duplicates", duplicateHintProvider)
	registry.RegisterFunc("undocumented", undocumentedHintProvider)
	registry.RegisterFunc("filter", filterHintProvider)
}

// Defaults returns a registry with the audit providers registered.
func Defaults() *Registry {
	r := NewRegistry()
	RegisterAuditProviders(r)
	return r
}

func missingHintProvider(ctx Context) []*Hint {
	if ctx.Command != auditCommand || ctx.Report == nil || ctx.Report.Counts.Missing == 0 {
		return nil
	}
	var hints []*Hint
	if !ctx.Suggestions {
		hints = append(hints, NewCommand(
			"Compare missing names with the closest unlisted identifiers",
			"jokeraudit audit --hints",
		).WithTags("missing", "next-step"))
	}
	hints = append(hints, NewCommand(
		"Check how a missing name canonicalizes",
		fmt.Sprintf("jokeraudit canonicalize %q", ctx.Report.Missing[0]),
	).WithTags("missing", "troubleshooting"))
	return hints
}

func duplicateHintProvider(ctx Context) []*Hint {
	if ctx.Command != auditCommand || ctx.Report == nil {
		return nil
	}
	for _, g := range ctx.Report.Duplicates {
		if g.CrossSection() {
			return []*Hint{New(fmt.Sprintf(
				"%s is listed under more than one rarity; keep the listing that matches the engine", g.Name,
			)).WithTags("duplicates")}
		}
	}
	return nil
}

func undocumentedHintProvider(ctx Context) []*Hint {
	if ctx.Command != auditCommand || ctx.Report == nil || ctx.Wide || ctx.Report.Counts.Undocumented == 0 {
		return nil
	}
	return []*Hint{NewCommand(
		fmt.Sprintf("%d implemented identifiers have no documented name", ctx.Report.Counts.Undocumented),
		"jokeraudit audit -o wide",
	).WithTags("undocumented", "next-step")}
}

func filterHintProvider(ctx Context) []*Hint {
	if ctx.Command != auditCommand || !ctx.Filtered {
		return nil
	}
	return []*Hint{New("Counts cover the whole document; --name only narrows the tables").WithTags("filter")}
}
