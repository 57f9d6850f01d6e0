package hints

import (
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/agentstation/jokeraudit/pkg/canonical"
	"github.com/agentstation/jokeraudit/pkg/reconciler"
)

// DefaultSuggestions is the number of candidates kept per missing name.
const DefaultSuggestions = 3

// Suggest pairs each missing name with the candidate identifiers that look
// most like its canonical identifier. Both sides are folded first, so case,
// accents and punctuation never prevent a match. An identical fold ranks
// first, then candidates containing the folded identifier as a subsequence,
// then candidates that are a subsequence of it. Names without a candidate
// are left out of the map.
func Suggest(missing []reconciler.NameResult, candidates []string, limit int) map[string][]string {
	if limit <= 0 {
		limit = DefaultSuggestions
	}
	folded := make([]string, len(candidates))
	for i, c := range candidates {
		folded[i] = canonical.Fold(c)
	}

	out := make(map[string][]string)
	for _, res := range missing {
		want := canonical.Fold(res.Identifier)
		if want == "" {
			continue
		}

		var picks []int
		add := func(i int) {
			if !slices.Contains(picks, i) {
				picks = append(picks, i)
			}
		}
		for i, f := range folded {
			if f == want {
				add(i)
			}
		}
		for _, m := range fuzzy.Find(want, folded) {
			add(m.Index)
		}
		for i, f := range folded {
			if f != "" && len(fuzzy.Find(f, []string{want})) > 0 {
				add(i)
			}
		}

		if len(picks) == 0 {
			continue
		}
		if len(picks) > limit {
			picks = picks[:limit]
		}
		names := make([]string, len(picks))
		for i, p := range picks {
			names[i] = candidates[p]
		}
		out[res.Name] = names
	}
	return out
}
