package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/chaitenyachand/ProjectIQ/internal/model"
	"github.com/chaitenyachand/ProjectIQ/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printBRDTable(brd *model.BRD) {
	fmt.Printf("ID:          %s\n", brd.ID)
	if brd.ProjectID != "" {
		fmt.Printf("Project:     %s\n", brd.ProjectID)
	}
	fmt.Printf("Title:       %s\n", brd.Title)
	fmt.Printf("Status:      %s\n", ui.RenderStatus(brd.Status.String()))
	if brd.ExecutiveSummary != "" {
		fmt.Printf("Summary:     %s\n", brd.ExecutiveSummary)
	}
	fmt.Printf("Sources:     %d\n", len(brd.RawSources))
	if brd.HasUnverifiedCitations {
		fmt.Printf("Citations:   %s\n", ui.RenderWarning("unverified citations present"))
	}
	fmt.Printf("Created By:  %s\n", brd.CreatedBy)
	if !brd.CreatedAt.IsZero() {
		fmt.Printf("Created At:  %s\n", brd.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if !brd.UpdatedAt.IsZero() {
		fmt.Printf("Updated At:  %s\n", brd.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	if len(brd.BusinessObjectives) > 0 {
		fmt.Println()
		fmt.Println("Business Objectives:")
		for _, o := range brd.BusinessObjectives {
			printExtractedItem(o.ID, o.Description, o.Priority, o.SourceQuote, o.CitationVerified)
		}
	}
	if len(brd.FunctionalRequirements) > 0 {
		fmt.Println()
		fmt.Println("Functional Requirements:")
		for _, r := range brd.FunctionalRequirements {
			printExtractedItem(r.ID, requirementText(r), r.Priority, r.SourceQuote, r.CitationVerified)
		}
	}
	if len(brd.NonFunctionalRequirements) > 0 {
		fmt.Println()
		fmt.Println("Non-Functional Requirements:")
		for _, r := range brd.NonFunctionalRequirements {
			printExtractedItem(r.ID, requirementText(r), r.Priority, r.SourceQuote, r.CitationVerified)
		}
	}
}

func requirementText(r model.Requirement) string {
	if r.Title != "" {
		return r.Title
	}
	return r.Description
}

func printExtractedItem(id, text string, priority model.Priority, quote string, verified *bool) {
	line := fmt.Sprintf("  %s: %s", ui.RenderAccent(id), text)
	if priority != "" {
		line += fmt.Sprintf(" [%s]", priority)
	}
	fmt.Println(line)
	if quote != "" {
		marker := ""
		if verified != nil && !*verified {
			marker = " " + ui.RenderWarning("(unverified)")
		}
		fmt.Printf("      %s%s\n", ui.RenderMuted("\""+quote+"\""), marker)
	}
}

func printBRDListTable(brds []*model.BRD, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPROJECT\tTITLE\tSOURCES\tUPDATED")
	for _, b := range brds {
		title := b.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			b.ID,
			b.Status,
			b.ProjectID,
			title,
			len(b.RawSources),
			b.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}
	w.Flush()
	fmt.Printf("\n%d brds (%d total)\n", len(brds), total)
}

func printTaskTable(task *model.Task) {
	fmt.Printf("ID:          %s\n", task.ID)
	fmt.Printf("BRD:         %s\n", task.BRDID)
	fmt.Printf("Title:       %s\n", task.Title)
	fmt.Printf("Status:      %s\n", ui.RenderStatus(task.Status.String()))
	if task.Priority != "" {
		fmt.Printf("Priority:    %s\n", task.Priority)
	}
	if task.RequirementID != "" {
		fmt.Printf("Requirement: %s\n", task.RequirementID)
	}
	if task.EstimateHours > 0 {
		fmt.Printf("Estimate:    %gh\n", task.EstimateHours)
	}
	if task.Assignee != "" {
		fmt.Printf("Assignee:    %s\n", task.Assignee)
	}
	if task.Description != "" {
		fmt.Printf("Description: %s\n", task.Description)
	}
	fmt.Printf("Created By:  %s\n", task.CreatedBy)
	if !task.CreatedAt.IsZero() {
		fmt.Printf("Created At:  %s\n", task.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if task.CompletedAt != nil {
		fmt.Printf("Completed:   %s\n", task.CompletedAt.Format("2006-01-02 15:04:05"))
	}
}

func printTaskListTable(tasks []*model.Task, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tREQ\tPRIORITY\tTITLE\tASSIGNEE")
	for _, t := range tasks {
		title := t.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.Status,
			t.RequirementID,
			t.Priority,
			title,
			t.Assignee,
		)
	}
	w.Flush()
	fmt.Printf("\n%d tasks (%d total)\n", len(tasks), total)
}

func printTraceTable(graph *model.TraceGraph) {
	if len(graph.Sources) > 0 {
		fmt.Println("Sources:")
		for _, s := range graph.Sources {
			fmt.Printf("  %s  %s (%s)\n", ui.RenderAccent(s.Identifier), s.DisplayName, s.OriginType)
		}
		fmt.Println()
	}

	fmt.Println("Links:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, l := range graph.Links {
		excerpt := l.Excerpt
		if len(excerpt) > 60 {
			excerpt = excerpt[:57] + "..."
		}
		fmt.Fprintf(w, "  %s\t->\t%s\t%s\n", l.From, l.To, ui.RenderMuted(excerpt))
	}
	w.Flush()

	if s := graph.Summary; s != nil {
		fmt.Println()
		fmt.Printf("Coverage: source %.0f%%, task %.0f%%\n", s.SourceCoverage*100, s.TaskCoverage*100)
		if s.UnverifiedCitations > 0 {
			fmt.Println(ui.RenderWarning(fmt.Sprintf("%d unverified citations", s.UnverifiedCitations)))
		}
	}
	if len(graph.Ambiguous) > 0 {
		fmt.Printf("Ambiguous: %v\n", graph.Ambiguous)
	}
}

func printEventsTable(events []*model.Event) {
	for _, e := range events {
		ts := e.CreatedAt.Format("2006-01-02 15:04:05")
		fmt.Printf("[%s] %s %s\n", ui.RenderMuted(ts), ui.RenderAccent(e.Topic), e.Actor)
	}
}
