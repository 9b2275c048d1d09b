/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package main runs the GitHub A2A agent: an HTTP front door over a
// tool-calling agent loop backed by a configurable chat model provider.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainguard-dev/clog"

	"github.com/octoagent/octoagent/agent"
	"github.com/octoagent/octoagent/config"
	"github.com/octoagent/octoagent/githubtool"
	"github.com/octoagent/octoagent/llm"
	"github.com/octoagent/octoagent/llm/anthropicmodel"
	"github.com/octoagent/octoagent/llm/googlemodel"
	"github.com/octoagent/octoagent/llm/openaimodel"
	"github.com/octoagent/octoagent/server"
	"github.com/octoagent/octoagent/server/auth"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	env, err := config.Load(ctx)
	if err != nil {
		clog.FatalContextf(ctx, "loading configuration: %v", err)
	}

	model, err := newModel(ctx, env)
	if err != nil {
		clog.FatalContextf(ctx, "creating chat model: %v", err)
	}
	clog.InfoContextf(ctx, "Using %s model via LLM_SOURCE=%s", model.Name(), env.LLMSource)

	gh, err := githubtool.NewClient(ctx, env)
	if err != nil {
		clog.FatalContextf(ctx, "creating GitHub client: %v", err)
	}

	a, err := agent.New(
		model,
		githubtool.NewToolset(gh, env.GitHubTimeout),
		agent.NewStore(),
		agent.WithModelTimeout(env.ModelTimeout),
	)
	if err != nil {
		clog.FatalContextf(ctx, "creating agent: %v", err)
	}

	verifier := auth.Insecure()
	if env.JWTSecret != "" {
		verifier = auth.HMAC([]byte(env.JWTSecret))
	}

	srv := server.New(a, server.DefaultCard(env.Port), verifier)

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			clog.ErrorContextf(shutdownCtx, "shutting down server: %v", err)
		}
	}()

	addr := fmt.Sprintf("0.0.0.0:%d", env.Port)
	clog.InfoContextf(ctx, "Starting GitHub A2A agent on %s", addr)
	if err := srv.Start(addr); err != nil {
		clog.FatalContextf(ctx, "server failed: %v", err)
	}
}

// newModel selects the chat model provider from LLM_SOURCE: "google" is the
// default, "anthropic" targets Claude, anything else is treated as an
// OpenAI-compatible endpoint configured by TOOL_LLM_NAME and TOOL_LLM_URL.
func newModel(ctx context.Context, env *config.Environment) (llm.ChatModel, error) {
	switch env.LLMSource {
	case config.DefaultLLMSource:
		return googlemodel.New(ctx, env.LLMAPIKey)
	case "anthropic":
		return anthropicmodel.New(env.LLMAPIKey)
	default:
		return openaimodel.New(env.LLMAPIKey, env.ToolLLMName, env.ToolLLMURL)
	}
}
