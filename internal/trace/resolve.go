package trace

import "github.com/chaitenyachand/ProjectIQ/internal/model"

// extractedItem is the resolver's flat view of one extracted objective or
// requirement.
type extractedItem struct {
	ID               string
	Kind             model.NodeKind
	Label            string
	Source           string // free-text sourcing reference from extraction
	SourceQuote      string
	CitationVerified *bool
}

// attribution is the resolver's verdict for one extracted item.
type attribution struct {
	Item extractedItem
	// SourceIndex is the registry index of the matched data source, or -1
	// when the item is unattributed.
	SourceIndex int
	// Ambiguous is set when the item's source text matched nothing exactly
	// and ambiguity marking suppressed the first-source fallback.
	Ambiguous bool
}

// resolveAttributions matches each extracted item against the source
// registry. Extraction output is produced by an external, imprecise process
// and cannot be trusted to reference sources by stable identifier, so the
// resolver degrades instead of failing:
//
//  1. exact match on origin type
//  2. exact match on identifier
//  3. exact match on display name
//  4. fallback to the first source in registry order (the dominant
//     single-source case; a heuristic, not a guarantee) unless markAmbiguous
//     is set, in which case the item is reported as ambiguous
//  5. with an empty registry the item is unattributed
func resolveAttributions(sources []model.DataSource, items []extractedItem, markAmbiguous bool) []attribution {
	attrs := make([]attribution, 0, len(items))
	for _, item := range items {
		attrs = append(attrs, resolveOne(sources, item, markAmbiguous))
	}
	return attrs
}

func resolveOne(sources []model.DataSource, item extractedItem, markAmbiguous bool) attribution {
	a := attribution{Item: item, SourceIndex: -1}
	if len(sources) == 0 {
		return a
	}

	if idx := matchSource(sources, item.Source); idx >= 0 {
		a.SourceIndex = idx
		return a
	}

	if markAmbiguous {
		a.Ambiguous = true
		return a
	}
	a.SourceIndex = 0
	return a
}

// matchSource runs the exact-match strategy chain over the registry,
// returning the index of the first source matched or -1. Each strategy is
// exhausted across the whole registry before the next is tried, so an
// identifier match on a later source beats a display-name match on an
// earlier one.
func matchSource(sources []model.DataSource, ref string) int {
	if ref == "" {
		return -1
	}
	for i, s := range sources {
		if ref == string(s.OriginType) {
			return i
		}
	}
	for i, s := range sources {
		if ref == s.Identifier {
			return i
		}
	}
	for i, s := range sources {
		if ref == s.DisplayName {
			return i
		}
	}
	return -1
}
