package model

// OriginType categorizes where a raw source came from.
// Well-known constants are provided below; anything else degrades to
// OriginDocument when a registry is built.
type OriginType string

const (
	OriginEmail      OriginType = "email"
	OriginChat       OriginType = "chat"
	OriginTranscript OriginType = "transcript"
	OriginDocument   OriginType = "document"
	OriginText       OriginType = "text"
)

// String returns the string representation of the origin type.
func (o OriginType) String() string {
	return string(o)
}

// IsValid checks whether the origin type is a known value.
func (o OriginType) IsValid() bool {
	switch o {
	case OriginEmail, OriginChat, OriginTranscript, OriginDocument, OriginText:
		return true
	}
	return false
}

// DataSource is the registry view of one raw source: the same input with a
// stable, sequential identifier attached. DataSources are derived on every
// pipeline run and never persisted.
type DataSource struct {
	// Identifier is "SRC-N", N being the 1-based position of the source in
	// the BRD's raw-source list. Reordering that list is a breaking change
	// to identifier stability.
	Identifier  string            `json:"identifier"`
	OriginType  OriginType        `json:"origin_type"`
	DisplayName string            `json:"display_name"`
	RawContent  string            `json:"raw_content,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// NodeKind classifies a traceability graph node.
type NodeKind string

const (
	NodeSource      NodeKind = "source"
	NodeObjective   NodeKind = "objective"
	NodeRequirement NodeKind = "requirement"
	NodeTask        NodeKind = "task"
)

// String returns the string representation of the node kind.
func (k NodeKind) String() string {
	return string(k)
}

// GraphNode is a node in the traceability graph: a data source, objective,
// requirement, or task.
type GraphNode struct {
	ID    string   `json:"id"`
	Kind  NodeKind `json:"kind"`
	Label string   `json:"label"`
}

// TraceLink is a directed edge in the traceability graph. Both endpoints are
// guaranteed to exist in the graph's node set; dangling links are dropped
// during construction.
type TraceLink struct {
	From string `json:"from"`
	To   string `json:"to"`
	// Excerpt is a verbatim quote from the source supporting the link,
	// when the extraction provided one.
	Excerpt string `json:"excerpt,omitempty"`
}

// CoverageSummary aggregates a traceability graph snapshot. It is recomputed
// on demand and never stored.
type CoverageSummary struct {
	NodeCounts map[NodeKind]int `json:"node_counts"`
	// SourceCoverage is the fraction of requirements with at least one
	// inbound link from a data source, in [0,1]. Zero when there are no
	// requirements.
	SourceCoverage float64 `json:"source_coverage"`
	// TaskCoverage is the fraction of requirements with at least one
	// outbound link to a task, in [0,1]. Zero when there are no requirements.
	TaskCoverage float64 `json:"task_coverage"`
	// UnverifiedCitations counts requirements whose extracted record marks
	// citation verification as failed.
	UnverifiedCitations int `json:"unverified_citations"`
}

// TraceGraph is the full traceability view of a BRD: the source registry,
// node set, link set, and coverage summary. It is a pure function of the
// BRD and task records and does not outlive a single request.
type TraceGraph struct {
	Sources []DataSource      `json:"sources"`
	Nodes   []GraphNode       `json:"nodes"`
	Links   []TraceLink       `json:"links"`
	Summary *CoverageSummary  `json:"summary"`
	// Ambiguous lists the IDs of items whose source text matched nothing in
	// the registry, when ambiguity marking is enabled. Empty under the
	// default first-source fallback.
	Ambiguous []string `json:"ambiguous,omitempty"`
}
