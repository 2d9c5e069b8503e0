// github-mcp: a GitHub/Linear bridge MCP server.
//
// Exposes tools that triage issues between GitHub (engineering work)
// and Linear (business work), create coordinated hybrid issue pairs,
// and wrap the day-to-day GitHub operations (issues, branches, pull
// requests).
//
// Usage:
//
//	github-mcp serve     # Start the MCP server (stdio transport)
//	github-mcp update    # Update to the latest release
//	github-mcp version   # Print the version
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ibraheem4/github-mcp/internal/config"
	"github.com/ibraheem4/github-mcp/internal/logging"
	bridgeserver "github.com/ibraheem4/github-mcp/internal/server"
	"github.com/ibraheem4/github-mcp/internal/updater"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "update":
		runUpdate()
	case "--version", "-v", "version":
		fmt.Printf("github-mcp v%s\n", bridgeserver.Version)
	case "--help", "-h", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	s, err := bridgeserver.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Best-effort version check on stderr; stdout belongs to the
	// MCP transport.
	go checkForUpdates()

	logger.Info("starting MCP server",
		zap.String("version", bridgeserver.Version),
		zap.Bool("github", cfg.HasGitHub()),
		zap.Bool("linear", cfg.HasLinear()),
	)

	return server.ServeStdio(s)
}

func checkForUpdates() {
	result := updater.CheckVersion(bridgeserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\nUpdate available: v%s -> v%s\nRun: github-mcp update\nRelease: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

func runUpdate() {
	fmt.Fprintln(os.Stderr, "Checking for updates...")

	result := updater.CheckVersion(bridgeserver.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(os.Stderr, "Already at the latest version (v%s)\n", result.CurrentVersion)
		return
	}

	fmt.Fprintf(os.Stderr, "Updating v%s -> v%s...\n", result.CurrentVersion, result.LatestVersion)
	if err := updater.SelfUpdate(bridgeserver.Version); err != nil {
		fmt.Fprintf(os.Stderr, "Update failed: %v\n\nDownload manually from:\n%s\n", err, result.ReleaseURL)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Updated to v%s. Restart github-mcp to use the new version.\n", result.LatestVersion)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `github-mcp v%s - GitHub/Linear bridge MCP server

Usage:
  github-mcp serve     Start the MCP server (stdio transport)
  github-mcp update    Update to the latest release
  github-mcp version   Print the version

Configuration (environment or .env):
  GITHUB_TOKEN      GitHub personal access token (enables the GitHub toolset)
  GITHUB_OWNER      Default repository owner (optional)
  GITHUB_REPO       Default repository name (optional)
  LINEAR_API_KEY    Linear API key (enables hybrid issues, with LINEAR_TEAM_ID)
  LINEAR_TEAM_ID    Default Linear team
  LOG_LEVEL         debug | info | warn | error (default info)
`, bridgeserver.Version)
}
