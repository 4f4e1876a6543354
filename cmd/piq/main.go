package main

import (
	"os"
	"os/exec"
	"strings"

	"github.com/chaitenyachand/ProjectIQ/internal/client"
	"github.com/chaitenyachand/ProjectIQ/internal/ui"
	"github.com/spf13/cobra"
)

var (
	httpURL    string
	jsonOutput bool
	actor      string

	iqClient client.IQClient
)

func defaultActor() string {
	out, err := exec.Command("git", "config", "user.name").Output()
	if err == nil {
		name := strings.TrimSpace(string(out))
		if name != "" {
			return name
		}
	}
	return "unknown"
}

func defaultHTTPURL() string {
	if s := os.Getenv("PIQ_HTTP_URL"); s != "" {
		return s
	}
	if u := activeRemoteURL(); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func authToken() string {
	if t := os.Getenv("PIQ_TOKEN"); t != "" {
		return t
	}
	return activeRemoteToken()
}

var rootCmd = &cobra.Command{
	Use:   "piq <command>",
	Short: "CLI client for the ProjectIQ service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		iqClient = client.NewHTTPClient(httpURL, authToken())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if iqClient != nil {
			iqClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpURL, "http-url", defaultHTTPURL(), "HTTP server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&actor, "actor", defaultActor(), "actor name for created_by fields")

	rootCmd.AddGroup(
		&cobra.Group{ID: "brds", Title: "BRDs:"},
		&cobra.Group{ID: "tasks", Title: "Tasks:"},
		&cobra.Group{ID: "views", Title: "Views:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	if !ui.ShouldUseColor() {
		ui.ForceNoColor()
	}

	// BRDs
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(extractCmd)

	// Tasks
	rootCmd.AddCommand(taskCmd)

	// Views
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(watchCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(remoteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
