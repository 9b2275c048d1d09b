/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package openaimodel implements llm.ChatModel on the OpenAI chat completions
// API. A custom base URL points it at any OpenAI-compatible gateway.
package openaimodel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/octoagent/octoagent/llm"
	"github.com/octoagent/octoagent/metrics"
)

// Model is an OpenAI-compatible chat model.
type Model struct {
	client openai.Client
	model  string
	genai  *metrics.GenAI
}

// New creates a chat model for the named deployment. baseURL is optional;
// when empty the client talks to api.openai.com.
func New(apiKey, model, baseURL string) (*Model, error) {
	if model == "" {
		return nil, errors.New("model name is required (TOOL_LLM_NAME)")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Model{
		client: openai.NewClient(opts...),
		model:  model,
		genai:  metrics.NewGenAI(),
	}, nil
}

// Name implements llm.ChatModel.
func (m *Model) Name() string { return m.model }

// Generate implements llm.ChatModel.
func (m *Model) Generate(ctx context.Context, system string, history []llm.Message, tools []llm.Definition) (llm.Message, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(m.model),
		Messages: messages(system, history),
	}
	if len(tools) > 0 {
		params.Tools = definitions(tools)
	}
	params.Temperature = openai.Float(0)

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return llm.Message{}, fmt.Errorf("chat completion with model %q: %w", m.model, err)
	}

	m.genai.RecordTokens(ctx, m.model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return llm.Message{}, errors.New("empty response from model")
	}
	choice := resp.Choices[0].Message

	out := llm.Message{Role: llm.RoleAssistant, Text: choice.Content}
	for _, tc := range choice.ToolCalls {
		args := map[string]any{}
		if raw := tc.Function.Arguments; raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return llm.Message{}, fmt.Errorf("decoding tool arguments for %q: %w", tc.Function.Name, err)
			}
		}
		out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Args: args,
		})
	}

	if out.Text == "" && len(out.ToolCalls) == 0 {
		return llm.Message{}, errors.New("unexpected response format from model")
	}
	return out, nil
}

// messages converts the neutral history into chat-completion params, with
// the system instruction first.
func messages(system string, history []llm.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	out = append(out, openai.SystemMessage(system))

	for _, msg := range history {
		switch msg.Role {
		case llm.RoleUser:
			out = append(out, openai.UserMessage(msg.Text))
		case llm.RoleAssistant:
			if len(msg.ToolCalls) == 0 {
				out = append(out, openai.AssistantMessage(msg.Text))
				continue
			}
			assistant := openai.ChatCompletionAssistantMessageParam{}
			if msg.Text != "" {
				assistant.Content.OfString = openai.String(msg.Text)
			}
			for _, call := range msg.ToolCalls {
				raw, _ := json.Marshal(call.Args)
				assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
					OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
						ID: call.ID,
						Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
							Name:      call.Name,
							Arguments: string(raw),
						},
					},
				})
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})
		case llm.RoleTool:
			raw, _ := json.Marshal(msg.Result.Payload)
			out = append(out, openai.ToolMessage(string(raw), msg.Result.CallID))
		}
	}
	return out
}

// definitions converts the neutral tool schemas to function tools.
func definitions(tools []llm.Definition) []openai.ChatCompletionToolUnionParam {
	out := make([]openai.ChatCompletionToolUnionParam, 0, len(tools))
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
		out = append(out, openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        def.Name,
			Description: openai.String(def.Description),
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": properties,
				"required":   required,
			},
		}))
	}
	return out
}
