// Package export implements periodic JSONL backups of the ProjectIQ store
// to external destinations (S3-compatible storage, git).
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/chaitenyachand/ProjectIQ/internal/model"
	"github.com/chaitenyachand/ProjectIQ/internal/store"
)

// SnapshotVersion identifies the JSONL snapshot format. Bump when the
// header or record shapes change.
const SnapshotVersion = "1"

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version   string    `json:"version"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	BRDCount  int       `json:"brd_count"`
	TaskCount int       `json:"task_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ExportJSONL writes all BRDs and tasks from the store as JSONL to w.
// Records are sorted by ID so repeated exports of the same data are
// byte-identical apart from the header timestamp.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	// Fetch all BRDs (no filter, no limit). Sections are embedded.
	brds, _, err := s.ListBRDs(ctx, model.BRDFilter{Sort: "created_at"})
	if err != nil {
		return fmt.Errorf("list brds: %w", err)
	}
	sort.Slice(brds, func(i, j int) bool {
		return brds[i].ID < brds[j].ID
	})

	tasks, _, err := s.ListTasks(ctx, model.TaskFilter{Sort: "created_at"})
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].ID < tasks[j].ID
	})

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:   SnapshotVersion,
		Type:      "header",
		Timestamp: time.Now().UTC(),
		BRDCount:  len(brds),
		TaskCount: len(tasks),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, b := range brds {
		if err := enc.Encode(record{Type: "brd", Data: b}); err != nil {
			return fmt.Errorf("encode brd %s: %w", b.ID, err)
		}
	}

	for _, t := range tasks {
		if err := enc.Encode(record{Type: "task", Data: t}); err != nil {
			return fmt.Errorf("encode task %s: %w", t.ID, err)
		}
	}

	return nil
}
