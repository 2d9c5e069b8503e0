// Package config loads the bridge configuration from the environment.
//
// A .env file in the working directory is honored when present
// (MCP hosts typically launch the server without a login shell, so
// dotenv is the common way to hand it credentials). Real environment
// variables win over .env entries.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup. Tracker
// credentials are optional: a missing credential disables that
// tracker's toolset rather than failing startup.
type Config struct {
	// GitHubToken is a personal access token with repo scope.
	GitHubToken string
	// GitHubOwner and GitHubRepo are optional defaults applied when a
	// tool call omits owner/repo.
	GitHubOwner string
	GitHubRepo  string

	// LinearAPIKey is a Linear workspace API key.
	LinearAPIKey string
	// LinearTeamID is the default team for business-side issues.
	LinearTeamID string

	// LogLevel is a zap level string: debug, info, warn, error.
	LogLevel string
}

// Load reads the configuration from .env (if present) and the
// environment.
func Load() Config {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	return Config{
		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		GitHubOwner:  os.Getenv("GITHUB_OWNER"),
		GitHubRepo:   os.Getenv("GITHUB_REPO"),
		LinearAPIKey: os.Getenv("LINEAR_API_KEY"),
		LinearTeamID: os.Getenv("LINEAR_TEAM_ID"),
		LogLevel:     getenvDefault("LOG_LEVEL", "info"),
	}
}

// HasGitHub reports whether the GitHub toolset can be enabled.
func (c Config) HasGitHub() bool { return c.GitHubToken != "" }

// HasLinear reports whether the Linear toolset can be enabled.
func (c Config) HasLinear() bool { return c.LinearAPIKey != "" && c.LinearTeamID != "" }

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
