package main

import (
	"context"
	"fmt"

	"github.com/chaitenyachand/ProjectIQ/internal/client"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Short:   "Manage tasks derived from BRDs",
	GroupID: "tasks",
}

var taskCreateCmd = &cobra.Command{
	Use:   "create <brd-id> <title>",
	Short: "Create a task under a BRD",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		brdID, title := args[0], args[1]

		description, _ := cmd.Flags().GetString("description")
		priority, _ := cmd.Flags().GetString("priority")
		requirementID, _ := cmd.Flags().GetString("requirement")
		estimate, _ := cmd.Flags().GetFloat64("estimate")
		assignee, _ := cmd.Flags().GetString("assignee")

		task, err := iqClient.CreateTask(context.Background(), &client.CreateTaskRequest{
			BRDID:         brdID,
			Title:         title,
			Description:   description,
			Priority:      priority,
			RequirementID: requirementID,
			EstimateHours: estimate,
			Assignee:      assignee,
			CreatedBy:     actor,
		})
		if err != nil {
			return fmt.Errorf("creating task: %w", err)
		}

		if jsonOutput {
			printJSON(task)
		} else {
			printTaskTable(task)
		}
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show details of a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		task, err := iqClient.GetTask(context.Background(), id)
		if err != nil {
			return fmt.Errorf("getting task %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(task)
		} else {
			printTaskTable(task)
		}
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list [<brd-id>]",
	Short: "List tasks, optionally scoped to a BRD",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &client.ListTasksRequest{}
		if len(args) == 1 {
			req.BRDID = args[0]
		}

		req.Status, _ = cmd.Flags().GetStringSlice("status")
		req.RequirementID, _ = cmd.Flags().GetString("requirement")
		req.Assignee, _ = cmd.Flags().GetString("assignee")
		req.Search, _ = cmd.Flags().GetString("search")
		req.Sort, _ = cmd.Flags().GetString("sort")
		req.Limit, _ = cmd.Flags().GetInt("limit")
		req.Offset, _ = cmd.Flags().GetInt("offset")

		resp, err := iqClient.ListTasks(context.Background(), req)
		if err != nil {
			return fmt.Errorf("listing tasks: %w", err)
		}

		if jsonOutput {
			printJSON(resp.Tasks)
		} else {
			printTaskListTable(resp.Tasks, resp.Total)
		}
		return nil
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		req := &client.UpdateTaskRequest{Actor: actor}
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			req.Title = &title
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			req.Description = &description
		}
		if cmd.Flags().Changed("status") {
			status, _ := cmd.Flags().GetString("status")
			req.Status = &status
		}
		if cmd.Flags().Changed("priority") {
			priority, _ := cmd.Flags().GetString("priority")
			req.Priority = &priority
		}
		if cmd.Flags().Changed("requirement") {
			requirementID, _ := cmd.Flags().GetString("requirement")
			req.RequirementID = &requirementID
		}
		if cmd.Flags().Changed("estimate") {
			estimate, _ := cmd.Flags().GetFloat64("estimate")
			req.EstimateHours = &estimate
		}
		if cmd.Flags().Changed("assignee") {
			assignee, _ := cmd.Flags().GetString("assignee")
			req.Assignee = &assignee
		}

		task, err := iqClient.UpdateTask(context.Background(), id, req)
		if err != nil {
			return fmt.Errorf("updating task %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(task)
		} else {
			printTaskTable(task)
		}
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		status := "done"

		task, err := iqClient.UpdateTask(context.Background(), id, &client.UpdateTaskRequest{
			Status: &status,
			Actor:  actor,
		})
		if err != nil {
			return fmt.Errorf("completing task %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(task)
		} else {
			printTaskTable(task)
		}
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		if err := iqClient.DeleteTask(context.Background(), id); err != nil {
			return fmt.Errorf("deleting task %s: %w", id, err)
		}
		fmt.Printf("task %s deleted\n", id)
		return nil
	},
}

func init() {
	taskCreateCmd.Flags().StringP("description", "d", "", "task description")
	taskCreateCmd.Flags().StringP("priority", "p", "", "priority (high, medium, low)")
	taskCreateCmd.Flags().StringP("requirement", "r", "", "requirement ID this task implements (e.g. FR-3)")
	taskCreateCmd.Flags().Float64P("estimate", "e", 0, "estimate in hours")
	taskCreateCmd.Flags().String("assignee", "", "assignee")

	taskListCmd.Flags().StringSlice("status", nil, "filter by status (repeatable)")
	taskListCmd.Flags().StringP("requirement", "r", "", "filter by requirement ID")
	taskListCmd.Flags().String("assignee", "", "filter by assignee")
	taskListCmd.Flags().String("search", "", "full-text search on title and description")
	taskListCmd.Flags().String("sort", "", "sort order (e.g. -created_at)")
	taskListCmd.Flags().Int("limit", 50, "maximum results")
	taskListCmd.Flags().Int("offset", 0, "results offset")

	taskUpdateCmd.Flags().String("title", "", "new title")
	taskUpdateCmd.Flags().StringP("description", "d", "", "new description")
	taskUpdateCmd.Flags().String("status", "", "new status")
	taskUpdateCmd.Flags().StringP("priority", "p", "", "new priority")
	taskUpdateCmd.Flags().StringP("requirement", "r", "", "new requirement ID")
	taskUpdateCmd.Flags().Float64P("estimate", "e", 0, "new estimate in hours")
	taskUpdateCmd.Flags().String("assignee", "", "new assignee")

	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}
