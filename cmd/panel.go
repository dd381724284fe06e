package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-panel/internal/render"
	"github.com/naka-gawa/github-panel/internal/usecase"
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Runs one load cycle and prints the GitHub panel",
	Long: `Fetches the profile and the six most recently updated repositories of a GitHub
account and prints the resulting panel as text, HTML or JSON. When loading fails
the fallback block is printed instead and the command exits with status 1.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output != "text" && output != "html" && output != "json" {
			return fmt.Errorf("unknown output format %q, expected text, html or json", output)
		}

		cfg, log, githubGateway, err := setup(cmd)
		if err != nil {
			return err
		}

		controller := usecase.NewPanelController(githubGateway, log, panelOptions(cfg))
		panel := &render.Panel{}
		loadErr := controller.Mount(cmd.Context(), panel)

		out := cmd.OutOrStdout()
		switch output {
		case "html":
			err = render.WriteHTML(out, panel)
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			err = enc.Encode(panel)
		default:
			err = render.WriteText(out, panel)
		}
		if err != nil {
			return fmt.Errorf("failed to write panel: %w", err)
		}

		if loadErr != nil {
			// The fallback block is the user-facing output; the cause was already logged.
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(panelCmd)
	panelCmd.Flags().StringP("output", "o", "text", "Output format: text, html or json")
}
