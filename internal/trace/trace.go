package trace

import (
	"errors"

	"github.com/chaitenyachand/ProjectIQ/internal/model"
)

// ErrNilBRD is returned when BuildGraph is handed a nil BRD record. This is
// a programmer error in the calling layer, not a data-quality issue; all
// malformed-but-present data degrades to the unattributed/empty-coverage
// paths instead of erroring.
var ErrNilBRD = errors.New("trace: nil BRD")

// Option configures graph construction.
type Option func(*options)

type options struct {
	markAmbiguous bool
}

// MarkAmbiguous disables the first-source attribution fallback: items whose
// source text matches nothing in the registry are reported in
// TraceGraph.Ambiguous instead of being guessed onto the first source.
// The default (fallback enabled) preserves the behavior the product was
// built around for single-source BRDs.
func MarkAmbiguous() Option {
	return func(o *options) { o.markAmbiguous = true }
}

// BuildGraph reconstructs the full traceability graph for a BRD and its
// tasks: the source registry, the node set, the directed links between
// sources, objectives, requirements, and tasks, and the coverage summary.
//
// BuildGraph is pure and deterministic: it mutates neither argument, and
// re-running it on unchanged inputs yields identical output. A nil task
// slice is treated as an empty task list.
func BuildGraph(brd *model.BRD, tasks []*model.Task, opts ...Option) (*model.TraceGraph, error) {
	if brd == nil {
		return nil, ErrNilBRD
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	sources := BuildRegistry(brd.RawSources)
	reqs := brd.Requirements()
	items := flattenItems(brd.BusinessObjectives, reqs)
	attrs := resolveAttributions(sources, items, o.markAmbiguous)
	nodes := buildNodes(sources, items, tasks)
	links := buildLinks(sources, attrs, tasks)

	graph := &model.TraceGraph{
		Sources: sources,
		Nodes:   nodes,
		Links:   links,
		Summary: summarize(nodes, links, reqs),
	}
	for _, a := range attrs {
		if a.Ambiguous {
			graph.Ambiguous = append(graph.Ambiguous, a.Item.ID)
		}
	}
	return graph, nil
}

// flattenItems collapses objectives and requirements into the single ordered
// list the resolver works over: objectives first, then requirements in BRD
// order (functional before non-functional).
func flattenItems(objectives []model.Objective, reqs []model.Requirement) []extractedItem {
	items := make([]extractedItem, 0, len(objectives)+len(reqs))
	for _, obj := range objectives {
		items = append(items, extractedItem{
			ID:               obj.ID,
			Kind:             model.NodeObjective,
			Label:            obj.Description,
			Source:           obj.Source,
			SourceQuote:      obj.SourceQuote,
			CitationVerified: obj.CitationVerified,
		})
	}
	for _, req := range reqs {
		label := req.Title
		if label == "" {
			label = req.Description
		}
		items = append(items, extractedItem{
			ID:               req.ID,
			Kind:             model.NodeRequirement,
			Label:            label,
			Source:           req.Source,
			SourceQuote:      req.SourceQuote,
			CitationVerified: req.CitationVerified,
		})
	}
	return items
}

// buildNodes assembles the node set: data sources, then extracted items,
// then tasks, preserving input order throughout.
func buildNodes(sources []model.DataSource, items []extractedItem, tasks []*model.Task) []model.GraphNode {
	nodes := make([]model.GraphNode, 0, len(sources)+len(items)+len(tasks))
	for _, s := range sources {
		nodes = append(nodes, model.GraphNode{
			ID:    s.Identifier,
			Kind:  model.NodeSource,
			Label: s.DisplayName,
		})
	}
	for _, item := range items {
		nodes = append(nodes, model.GraphNode{
			ID:    item.ID,
			Kind:  item.Kind,
			Label: item.Label,
		})
	}
	for _, t := range tasks {
		if t == nil {
			continue
		}
		nodes = append(nodes, model.GraphNode{
			ID:    t.ID,
			Kind:  model.NodeTask,
			Label: t.Title,
		})
	}
	return nodes
}
