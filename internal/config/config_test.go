package config

import "testing"

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_OWNER", "acme")
	t.Setenv("GITHUB_REPO", "widgets")
	t.Setenv("LINEAR_API_KEY", "lin_api_test")
	t.Setenv("LINEAR_TEAM_ID", "team-1")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.GitHubToken != "ghp_test" {
		t.Errorf("GitHubToken = %q", cfg.GitHubToken)
	}
	if cfg.GitHubOwner != "acme" || cfg.GitHubRepo != "widgets" {
		t.Errorf("owner/repo = %q/%q", cfg.GitHubOwner, cfg.GitHubRepo)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if !cfg.HasGitHub() {
		t.Error("HasGitHub() = false")
	}
	if !cfg.HasLinear() {
		t.Error("HasLinear() = false")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("LINEAR_API_KEY", "")
	t.Setenv("LINEAR_TEAM_ID", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info default", cfg.LogLevel)
	}
	if cfg.HasGitHub() {
		t.Error("HasGitHub() = true without a token")
	}
	if cfg.HasLinear() {
		t.Error("HasLinear() = true without credentials")
	}
}

func TestHasLinear_RequiresBothKeyAndTeam(t *testing.T) {
	cfg := Config{LinearAPIKey: "key"}
	if cfg.HasLinear() {
		t.Error("HasLinear() = true without a team ID")
	}
	cfg = Config{LinearTeamID: "team"}
	if cfg.HasLinear() {
		t.Error("HasLinear() = true without an API key")
	}
}
