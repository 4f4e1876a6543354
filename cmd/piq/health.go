package main

import (
	"context"
	"fmt"

	"github.com/chaitenyachand/ProjectIQ/internal/ui"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:     "health",
	Short:   "Check the health of the ProjectIQ service",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := iqClient.Health(context.Background())
		if err != nil {
			return fmt.Errorf("checking health of %s: %w", httpURL, err)
		}

		if jsonOutput {
			printJSON(map[string]string{"status": status, "url": httpURL})
		} else {
			fmt.Printf("%s %s\n", ui.RenderStatus(status), httpURL)
		}

		if status != "ok" {
			return fmt.Errorf("%s is unhealthy: %s", httpURL, status)
		}
		return nil
	},
}
