package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:     "trace <brd-id>",
	Short:   "Show the traceability graph for a BRD",
	GroupID: "views",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		markAmbiguous, _ := cmd.Flags().GetBool("ambiguous")

		graph, err := iqClient.GetTrace(context.Background(), id, markAmbiguous)
		if err != nil {
			return fmt.Errorf("getting trace for %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(graph)
		} else {
			printTraceTable(graph)
		}
		return nil
	},
}

var eventsCmd = &cobra.Command{
	Use:     "events <brd-id>",
	Short:   "Show the event history of a BRD",
	GroupID: "views",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		events, err := iqClient.GetEvents(context.Background(), id)
		if err != nil {
			return fmt.Errorf("getting events for %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(events)
		} else {
			printEventsTable(events)
		}
		return nil
	},
}

func init() {
	traceCmd.Flags().Bool("ambiguous", false, "mark unresolvable items instead of falling back to the first source")
}
