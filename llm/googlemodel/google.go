/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package googlemodel implements llm.ChatModel on Google's Generative AI SDK
// (Gemini API backend, API-key auth).
package googlemodel

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"

	"github.com/octoagent/octoagent/llm"
	"github.com/octoagent/octoagent/metrics"
)

// DefaultModel matches the provider default for this agent.
const DefaultModel = "gemini-2.0-flash"

// Model is a Gemini-backed chat model.
type Model struct {
	client          *genai.Client
	model           string
	temperature     float32
	maxOutputTokens int32
	genai           *metrics.GenAI
}

// Option customizes a Model.
type Option func(*Model)

// WithModel overrides the Gemini model name.
func WithModel(name string) Option {
	return func(m *Model) { m.model = name }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(m *Model) { m.temperature = t }
}

// New creates a Gemini chat model. An empty apiKey falls back to the SDK's
// own environment lookup (GEMINI_API_KEY / GOOGLE_API_KEY).
func New(ctx context.Context, apiKey string, opts ...Option) (*Model, error) {
	cfg := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating Google AI client: %w", err)
	}

	m := &Model{
		client:          client,
		model:           DefaultModel,
		temperature:     0.1,
		maxOutputTokens: 8192,
		genai:           metrics.NewGenAI(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Name implements llm.ChatModel.
func (m *Model) Name() string { return m.model }

// Generate implements llm.ChatModel with a single stateless content call;
// the caller owns the history.
func (m *Model) Generate(ctx context.Context, system string, history []llm.Message, tools []llm.Definition) (llm.Message, error) {
	log := clog.FromContext(ctx)

	config := &genai.GenerateContentConfig{
		Temperature:     ptr(m.temperature),
		MaxOutputTokens: m.maxOutputTokens,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
	}
	if len(tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(tools))
		for _, def := range tools {
			decls = append(decls, declaration(def))
		}
		config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.model, contents(history), config)
	if err != nil {
		return llm.Message{}, fmt.Errorf("generating content with model %q: %w", m.model, err)
	}

	if resp.UsageMetadata != nil {
		m.genai.RecordTokens(ctx, m.model,
			int64(resp.UsageMetadata.PromptTokenCount),
			int64(resp.UsageMetadata.CandidatesTokenCount))
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return llm.Message{}, errors.New("no content generated")
	}

	out := llm.Message{Role: llm.RoleAssistant}
	for i, part := range resp.Candidates[0].Content.Parts {
		switch {
		case part.Thought:
			// Reasoning parts are not part of the conversation contract.
		case part.FunctionCall != nil:
			out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
				ID:   part.FunctionCall.ID,
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			})
		case part.Text != "":
			out.Text = part.Text
		default:
			log.With("part_index", i).Warn("Found part with unexpected content")
		}
	}

	if out.Text == "" && len(out.ToolCalls) == 0 {
		return llm.Message{}, errors.New("unexpected response format from model")
	}
	return out, nil
}

// contents converts the neutral history into Gemini contents. Tool results
// travel back as user-role function responses, mirroring how the SDK's chat
// sessions shape them.
func contents(history []llm.Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleUser:
			out = append(out, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: msg.Text}},
			})
		case llm.RoleAssistant:
			var parts []*genai.Part
			if msg.Text != "" {
				parts = append(parts, &genai.Part{Text: msg.Text})
			}
			for _, call := range msg.ToolCalls {
				parts = append(parts, &genai.Part{FunctionCall: &genai.FunctionCall{
					ID:   call.ID,
					Name: call.Name,
					Args: call.Args,
				}})
			}
			out = append(out, &genai.Content{Role: "model", Parts: parts})
		case llm.RoleTool:
			out = append(out, &genai.Content{
				Role: "user",
				Parts: []*genai.Part{{FunctionResponse: &genai.FunctionResponse{
					ID:       msg.Result.CallID,
					Name:     msg.Result.Name,
					Response: msg.Result.Payload,
				}}},
			})
		}
	}
	return out
}

// declaration converts a neutral tool definition to a Gemini declaration.
func declaration(def llm.Definition) *genai.FunctionDeclaration {
	properties := make(map[string]*genai.Schema, len(def.Parameters))
	var required []string
	for _, p := range def.Parameters {
		properties[p.Name] = &genai.Schema{
			Type:        schemaType(p.Type),
			Description: p.Description,
		}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return &genai.FunctionDeclaration{
		Name:        def.Name,
		Description: def.Description,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: properties,
			Required:   required,
		},
	}
}

func schemaType(t string) genai.Type {
	switch t {
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "number":
		return genai.TypeNumber
	default:
		return genai.TypeString
	}
}

func ptr[T any](v T) *T {
	return &v
}
