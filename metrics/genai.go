/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics provides OpenTelemetry counters for model token usage and
// tool calls. Counters degrade to no-ops if instrument creation fails, so a
// misconfigured meter never takes the agent down.
package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// MeterName is shared across all model providers; the model name is a
// dimension on each recorded metric.
const MeterName = "octoagent.agent"

// GenAI records token usage and tool-call counts for agent turns.
type GenAI struct {
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	toolCalls        metric.Int64Counter
}

// NewGenAI creates the counters on the shared meter.
func NewGenAI() *GenAI {
	meter := otel.Meter(MeterName, metric.WithInstrumentationVersion("1.0.0"))

	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt token counter, disabling", "error", err)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion token counter, disabling", "error", err)
		completionTokens = noop.Int64Counter{}
	}

	toolCalls, err := meter.Int64Counter("genai.tool.calls",
		metric.WithDescription("The number of tool calls made during turns"),
		metric.WithUnit("{calls}"))
	if err != nil {
		slog.Warn("Failed to create tool call counter, disabling", "error", err)
		toolCalls = noop.Int64Counter{}
	}

	return &GenAI{
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		toolCalls:        toolCalls,
	}
}

// RecordTokens records prompt and completion token usage for one model call.
func (m *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64) {
	attrs := metric.WithAttributes(attribute.String("model", model))
	m.promptTokens.Add(ctx, promptTokens, attrs)
	m.completionTokens.Add(ctx, completionTokens, attrs)
}

// RecordToolCall records one tool invocation.
func (m *GenAI) RecordToolCall(ctx context.Context, model, tool string) {
	m.toolCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("model", model),
		attribute.String("tool", tool),
	))
}
