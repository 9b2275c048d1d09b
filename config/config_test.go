/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

package config_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/octoagent/octoagent/config"
)

func processWith(t *testing.T, vars map[string]string) (*config.Environment, error) {
	t.Helper()
	var env config.Environment
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &env,
		Lookuper: envconfig.MapLookuper(vars),
	})
	return &env, err
}

func TestMissingGitHubTokenFails(t *testing.T) {
	t.Parallel()
	_, err := processWith(t, map[string]string{})
	if err == nil {
		t.Fatal("expected error for missing GITHUB_TOKEN")
	}
	if !strings.Contains(err.Error(), "GITHUB_TOKEN") {
		t.Fatalf("error should name the missing variable, got: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	t.Parallel()
	env, err := processWith(t, map[string]string{
		"GITHUB_TOKEN": "ghp_test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.GitHubHost != config.DefaultGitHubHost {
		t.Errorf("GitHubHost = %q, want %q", env.GitHubHost, config.DefaultGitHubHost)
	}
	if env.LLMSource != config.DefaultLLMSource {
		t.Errorf("LLMSource = %q, want %q", env.LLMSource, config.DefaultLLMSource)
	}
	if env.Port != 9999 {
		t.Errorf("Port = %d, want 9999", env.Port)
	}
	if env.ModelTimeout != 2*time.Minute {
		t.Errorf("ModelTimeout = %v, want 2m", env.ModelTimeout)
	}
	if env.GitHubTimeout != 30*time.Second {
		t.Errorf("GitHubTimeout = %v, want 30s", env.GitHubTimeout)
	}
}

func TestOverrides(t *testing.T) {
	t.Parallel()
	env, err := processWith(t, map[string]string{
		"GITHUB_TOKEN":  "ghp_test",
		"GITHUB_HOST":   "github.example.com",
		"GITHUB_OWNER":  "acme",
		"GITHUB_REPO":   "widgets",
		"LLM_SOURCE":    "openai",
		"LLM_API_KEY":   "sk-test",
		"TOOL_LLM_NAME": "gpt-4o-mini",
		"TOOL_LLM_URL":  "https://llm.internal/v1",
		"PORT":          "8080",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.GitHubHost != "github.example.com" {
		t.Errorf("GitHubHost = %q", env.GitHubHost)
	}
	if env.GitHubOwner != "acme" || env.GitHubRepo != "widgets" {
		t.Errorf("owner/repo = %q/%q", env.GitHubOwner, env.GitHubRepo)
	}
	if env.LLMSource != "openai" || env.ToolLLMName != "gpt-4o-mini" {
		t.Errorf("LLM config = %q/%q", env.LLMSource, env.ToolLLMName)
	}
	if env.Port != 8080 {
		t.Errorf("Port = %d", env.Port)
	}
}

func TestLoadReadsProcessEnvironment(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_from_process")
	env, err := config.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.GitHubToken != "ghp_from_process" {
		t.Errorf("GitHubToken = %q", env.GitHubToken)
	}
}
