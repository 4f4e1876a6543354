package model

// BRDFilter holds criteria for querying BRDs.
type BRDFilter struct {
	ProjectID string      `json:"project_id,omitempty"`
	Status    []BRDStatus `json:"status,omitempty"`
	Search    string      `json:"search,omitempty"` // full-text search on title/executive summary
	Sort      string      `json:"sort,omitempty"`   // e.g. "-created_at", "title"; prefix "-" = descending
	Limit     int         `json:"limit,omitempty"`
	Offset    int         `json:"offset,omitempty"`
}

// TaskFilter holds criteria for querying tasks.
type TaskFilter struct {
	BRDID         string       `json:"brd_id,omitempty"`
	Status        []TaskStatus `json:"status,omitempty"`
	RequirementID string       `json:"requirement_id,omitempty"`
	Assignee      string       `json:"assignee,omitempty"`
	Search        string       `json:"search,omitempty"`
	Sort          string       `json:"sort,omitempty"`
	Limit         int          `json:"limit,omitempty"`
	Offset        int          `json:"offset,omitempty"`
}
