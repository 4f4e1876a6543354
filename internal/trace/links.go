package trace

import "github.com/chaitenyachand/ProjectIQ/internal/model"

// buildLinks emits the directed edge set of the graph in a stable order:
// source→objective links first, then source→requirement links in requirement
// list order, then requirement→task links in task list order. The order only
// matters for deterministic comparison; the link set is logically unordered.
//
// Links whose endpoints do not resolve to a known node are dropped, never
// emitted with a missing endpoint.
func buildLinks(sources []model.DataSource, attrs []attribution, tasks []*model.Task) []model.TraceLink {
	links := make([]model.TraceLink, 0, len(attrs)+len(tasks))

	requirementIDs := make(map[string]bool)
	for _, kind := range []model.NodeKind{model.NodeObjective, model.NodeRequirement} {
		for _, a := range attrs {
			if a.Item.Kind != kind {
				continue
			}
			if a.Item.Kind == model.NodeRequirement {
				requirementIDs[a.Item.ID] = true
			}
			if a.SourceIndex < 0 || a.SourceIndex >= len(sources) {
				continue
			}
			links = append(links, model.TraceLink{
				From:    sources[a.SourceIndex].Identifier,
				To:      a.Item.ID,
				Excerpt: a.Item.SourceQuote,
			})
		}
	}

	for _, t := range tasks {
		if t == nil || t.RequirementID == "" {
			continue
		}
		// Orphan tasks referencing an unknown requirement get no link.
		if !requirementIDs[t.RequirementID] {
			continue
		}
		links = append(links, model.TraceLink{
			From: t.RequirementID,
			To:   t.ID,
		})
	}

	return links
}
