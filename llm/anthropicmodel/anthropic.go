/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package anthropicmodel implements llm.ChatModel on the Anthropic Messages API.
package anthropicmodel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/octoagent/octoagent/llm"
	"github.com/octoagent/octoagent/metrics"
)

// DefaultModel is used when no model override is configured.
const DefaultModel = "claude-sonnet-4-5"

// Model is a Claude chat model.
type Model struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
	genai       *metrics.GenAI
}

// Option configures a Model.
type Option func(*Model)

// WithModel overrides the default model identifier.
func WithModel(name string) Option {
	return func(m *Model) { m.model = name }
}

// WithTemperature overrides the default sampling temperature.
func WithTemperature(t float64) Option {
	return func(m *Model) { m.temperature = t }
}

// New creates a Claude chat model authenticated with the given API key.
func New(apiKey string, opts ...Option) (*Model, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	m := &Model{
		client:      anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:       DefaultModel,
		maxTokens:   8192,
		temperature: 0.1,
		genai:       metrics.NewGenAI(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Name implements llm.ChatModel.
func (m *Model) Name() string { return m.model }

// Generate implements llm.ChatModel.
func (m *Model) Generate(ctx context.Context, system string, history []llm.Message, tools []llm.Definition) (llm.Message, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(m.model),
		MaxTokens: m.maxTokens,
		Messages:  messages(history),
		System:    []anthropic.TextBlockParam{{Text: system}},
	}
	params.Temperature = anthropic.Float(m.temperature)
	if len(tools) > 0 {
		params.Tools = definitions(tools)
	}

	message, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return llm.Message{}, fmt.Errorf("creating message with model %q: %w", m.model, err)
	}

	m.genai.RecordTokens(ctx, m.model, message.Usage.InputTokens, message.Usage.OutputTokens)

	out := llm.Message{Role: llm.RoleAssistant}
	for _, content := range message.Content {
		switch content.Type {
		case "text":
			out.Text += content.Text
		case "tool_use":
			args := map[string]any{}
			if len(content.Input) > 0 {
				if err := json.Unmarshal(content.Input, &args); err != nil {
					return llm.Message{}, fmt.Errorf("decoding tool input for %q: %w", content.Name, err)
				}
			}
			out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
				ID:   content.ID,
				Name: content.Name,
				Args: args,
			})
		}
	}

	if out.Text == "" && len(out.ToolCalls) == 0 {
		return llm.Message{}, errors.New("empty response from model")
	}
	return out, nil
}

// messages converts the neutral history into Messages API params. Tool
// observations become tool_result blocks in user messages, matching what
// the API expects after an assistant tool_use turn.
func messages(history []llm.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleUser:
			out = append(out, anthropic.MessageParam{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(msg.Text),
				},
			})
		case llm.RoleAssistant:
			var blocks []anthropic.ContentBlockParamUnion
			if msg.Text != "" {
				blocks = append(blocks, anthropic.NewTextBlock(msg.Text))
			}
			for _, call := range msg.ToolCalls {
				raw, _ := json.Marshal(call.Args)
				blocks = append(blocks, anthropic.ContentBlockParamUnion{
					OfToolUse: &anthropic.ToolUseBlockParam{
						ID:    call.ID,
						Name:  call.Name,
						Input: json.RawMessage(raw),
					},
				})
			}
			out = append(out, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleAssistant,
				Content: blocks,
			})
		case llm.RoleTool:
			raw, _ := json.Marshal(msg.Result.Payload)
			out = append(out, anthropic.MessageParam{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{{
					OfToolResult: &anthropic.ToolResultBlockParam{
						ToolUseID: msg.Result.CallID,
						Content: []anthropic.ToolResultBlockParamContentUnion{{
							OfText: &anthropic.TextBlockParam{Text: string(raw)},
						}},
					},
				}},
			})
		}
	}
	return out
}

// definitions converts the neutral tool schemas to Claude tool params.
func definitions(tools []llm.Definition) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, def := range tools {
		properties := make(map[string]any, len(def.Parameters))
		required := []string{}
		for _, p := range def.Parameters {
			properties[p.Name] = map[string]any{
				"type":        p.Type,
				"description": p.Description,
			}
			if p.Required {
				required = append(required, p.Name)
			}
		}
		out = append(out, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        def.Name,
				Description: anthropic.String(def.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Type:       "object",
					Properties: properties,
					Required:   required,
				},
			},
		})
	}
	return out
}
