// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-panel/internal/config"
	"github.com/naka-gawa/github-panel/internal/gateway"
	"github.com/naka-gawa/github-panel/internal/logger"
	"github.com/naka-gawa/github-panel/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "github-panel",
	Short: "Renders the live GitHub panel of a portfolio site.",
	Long: `github-panel loads a GitHub account's profile and its most recently updated
repositories, and renders them as the portfolio's GitHub panel. It can print a
single panel or serve the portfolio page.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringP("user", "u", "", "GitHub account to load (overrides GITHUB_ACCOUNT)")
	rootCmd.PersistentFlags().Bool("concurrent", false, "Fetch profile and repositories in parallel")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Bound on one load cycle (overrides PANEL_TIMEOUT)")
}

// setup loads the configuration, applies flag overrides and builds the shared dependencies.
func setup(cmd *cobra.Command) (*config.Config, *logrus.Logger, *gateway.GitHubGateway, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	flags := cmd.Flags()
	if user, _ := flags.GetString("user"); user != "" {
		cfg.Account = user
	}
	if flags.Changed("concurrent") {
		cfg.Concurrent, _ = flags.GetBool("concurrent")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	verbose, _ := flags.GetBool("verbose")
	log := logger.New(cfg.LogLevel, verbose)

	githubGateway, err := gateway.NewGitHubGateway(gateway.Options{
		Token:            cfg.Token,
		BaseURL:          cfg.APIBaseURL,
		MaxRateLimitWait: cfg.RateLimitMaxWait,
	}, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, githubGateway, nil
}

func panelOptions(cfg *config.Config) usecase.PanelOptions {
	return usecase.PanelOptions{
		Account:     cfg.Account,
		FallbackURL: cfg.FallbackProfileURL(),
		Concurrent:  cfg.Concurrent,
		Timeout:     cfg.Timeout,
	}
}
