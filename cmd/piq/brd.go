package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chaitenyachand/ProjectIQ/internal/client"
	"github.com/chaitenyachand/ProjectIQ/internal/model"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:     "create <title>",
	Short:   "Create a new draft BRD",
	GroupID: "brds",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]

		projectID, _ := cmd.Flags().GetString("project")
		sourceFiles, _ := cmd.Flags().GetStringArray("source")
		sourceType, _ := cmd.Flags().GetString("source-type")

		var sources []model.RawSource
		for _, path := range sourceFiles {
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading source %s: %w", path, err)
			}
			sources = append(sources, model.RawSource{
				Type:    sourceType,
				Name:    path,
				Content: string(content),
			})
		}

		req := &client.CreateBRDRequest{
			ProjectID: projectID,
			Title:     title,
			Sources:   sources,
			CreatedBy: actor,
		}

		brd, err := iqClient.CreateBRD(context.Background(), req)
		if err != nil {
			return fmt.Errorf("creating brd: %w", err)
		}

		if jsonOutput {
			printJSON(brd)
		} else {
			printBRDTable(brd)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show details of a BRD",
	GroupID: "brds",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		brd, err := iqClient.GetBRD(context.Background(), id)
		if err != nil {
			return fmt.Errorf("getting brd %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(brd)
		} else {
			printBRDTable(brd)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List BRDs",
	GroupID: "brds",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetString("project")
		status, _ := cmd.Flags().GetStringSlice("status")
		search, _ := cmd.Flags().GetString("search")
		sort, _ := cmd.Flags().GetString("sort")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		resp, err := iqClient.ListBRDs(context.Background(), &client.ListBRDsRequest{
			ProjectID: projectID,
			Status:    status,
			Search:    search,
			Sort:      sort,
			Limit:     limit,
			Offset:    offset,
		})
		if err != nil {
			return fmt.Errorf("listing brds: %w", err)
		}

		if jsonOutput {
			printJSON(resp.BRDs)
		} else {
			printBRDListTable(resp.BRDs, resp.Total)
		}
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Update a BRD",
	GroupID: "brds",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		req := &client.UpdateBRDRequest{Actor: actor}
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			req.Title = &title
		}
		if cmd.Flags().Changed("status") {
			status, _ := cmd.Flags().GetString("status")
			req.Status = &status
		}
		if cmd.Flags().Changed("project") {
			projectID, _ := cmd.Flags().GetString("project")
			req.ProjectID = &projectID
		}

		brd, err := iqClient.UpdateBRD(context.Background(), id, req)
		if err != nil {
			return fmt.Errorf("updating brd %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(brd)
		} else {
			printBRDTable(brd)
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a BRD and its tasks",
	GroupID: "brds",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		if err := iqClient.DeleteBRD(context.Background(), id); err != nil {
			return fmt.Errorf("deleting brd %s: %w", id, err)
		}
		fmt.Printf("brd %s deleted\n", id)
		return nil
	},
}

var extractCmd = &cobra.Command{
	Use:     "extract <id>",
	Short:   "Run extraction on a BRD's raw sources",
	GroupID: "brds",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		projectContext, _ := cmd.Flags().GetString("context")

		brd, err := iqClient.ExtractBRD(context.Background(), id, projectContext, actor)
		if err != nil {
			return fmt.Errorf("extracting brd %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(brd)
		} else {
			printBRDTable(brd)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringP("project", "p", "", "project ID")
	createCmd.Flags().StringArrayP("source", "s", nil, "source file to attach (repeatable)")
	createCmd.Flags().String("source-type", "document", "origin type for attached sources")

	listCmd.Flags().StringP("project", "p", "", "filter by project ID")
	listCmd.Flags().StringSlice("status", nil, "filter by status (repeatable)")
	listCmd.Flags().String("search", "", "full-text search on title and summary")
	listCmd.Flags().String("sort", "", "sort order (e.g. -updated_at)")
	listCmd.Flags().Int("limit", 50, "maximum results")
	listCmd.Flags().Int("offset", 0, "results offset")

	updateCmd.Flags().String("title", "", "new title")
	updateCmd.Flags().String("status", "", "new status")
	updateCmd.Flags().StringP("project", "p", "", "new project ID")

	extractCmd.Flags().String("context", "", "project context passed to the extraction service")
}
