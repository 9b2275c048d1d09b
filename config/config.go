/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package config resolves the agent's runtime configuration from the process
// environment, with an optional .env override for local development.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	// DefaultGitHubHost is the host used when GITHUB_HOST is not set.
	DefaultGitHubHost = "github.com"

	// DefaultLLMSource is the model provider used when LLM_SOURCE is not set.
	DefaultLLMSource = "google"
)

// Environment is the resolved runtime configuration. It is built once at
// startup and treated as read-only thereafter.
type Environment struct {
	// GitHubToken authenticates all GitHub API calls. Startup fails without it.
	GitHubToken string `env:"GITHUB_TOKEN,required"`
	GitHubOwner string `env:"GITHUB_OWNER"`
	GitHubRepo  string `env:"GITHUB_REPO"`
	GitHubHost  string `env:"GITHUB_HOST,default=github.com"`

	// LLMSource selects the chat model provider: "google" (default),
	// "anthropic", or anything else for an OpenAI-compatible endpoint.
	LLMSource string `env:"LLM_SOURCE,default=google"`
	LLMAPIKey string `env:"LLM_API_KEY"`

	// ToolLLMName and ToolLLMURL configure the model name and base URL for
	// OpenAI-compatible providers. Ignored when LLMSource is "google".
	ToolLLMName string `env:"TOOL_LLM_NAME"`
	ToolLLMURL  string `env:"TOOL_LLM_URL"`

	Port int `env:"PORT,default=9999"`

	// Per-call deadlines for the two classes of external calls a turn makes.
	ModelTimeout  time.Duration `env:"MODEL_TIMEOUT,default=2m"`
	GitHubTimeout time.Duration `env:"GITHUB_TIMEOUT,default=30s"`

	// JWTSecret enables HS256 verification of bearer tokens when set.
	// When empty the auth gate only checks header shape.
	JWTSecret string `env:"AUTH_JWT_SECRET"`
}

// Load reads the environment, applying a local .env file first if one exists.
// A missing .env is not an error; a missing GITHUB_TOKEN is.
func Load(ctx context.Context) (*Environment, error) {
	// Best-effort: real deployments set the environment directly.
	_ = godotenv.Load()

	var env Environment
	if err := envconfig.Process(ctx, &env); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}
	return &env, nil
}
