package trace

import "github.com/chaitenyachand/ProjectIQ/internal/model"

// summarize computes aggregate coverage metrics over a graph snapshot.
// Ratios are exact values in [0,1]; no rounding happens here. Both ratios
// are defined as 0 when there are no requirements.
func summarize(nodes []model.GraphNode, links []model.TraceLink, reqs []model.Requirement) *model.CoverageSummary {
	summary := &model.CoverageSummary{
		NodeCounts: make(map[model.NodeKind]int),
	}

	kinds := make(map[string]model.NodeKind, len(nodes))
	for _, n := range nodes {
		summary.NodeCounts[n.Kind]++
		kinds[n.ID] = n.Kind
	}

	sourced := make(map[string]bool)
	tasked := make(map[string]bool)
	for _, l := range links {
		if kinds[l.From] == model.NodeSource && kinds[l.To] == model.NodeRequirement {
			sourced[l.To] = true
		}
		if kinds[l.From] == model.NodeRequirement && kinds[l.To] == model.NodeTask {
			tasked[l.From] = true
		}
	}

	if total := summary.NodeCounts[model.NodeRequirement]; total > 0 {
		summary.SourceCoverage = float64(len(sourced)) / float64(total)
		summary.TaskCoverage = float64(len(tasked)) / float64(total)
	}

	for _, r := range reqs {
		if r.CitationVerified != nil && !*r.CitationVerified {
			summary.UnverifiedCitations++
		}
	}

	return summary
}
