/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

package llm

import (
	"context"
	"strings"
)

// Role identifies who produced a message in a conversation thread.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a provider-independent representation of a model-issued tool call.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// ToolResult pairs a tool call with the payload observed when executing it.
type ToolResult struct {
	CallID  string
	Name    string
	Payload map[string]any
}

// Message is one entry in a conversation thread. Assistant messages carry
// text and/or tool calls; tool messages carry exactly one result.
type Message struct {
	Role      Role
	Text      string
	ToolCalls []ToolCall
	Result    *ToolResult
}

// UserMessage wraps plain user input as a thread message.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// ToolResultMessage wraps a tool's payload as the observation appended
// immediately after its triggering call.
func ToolResultMessage(call ToolCall, payload map[string]any) Message {
	return Message{
		Role: RoleTool,
		Result: &ToolResult{
			CallID:  call.ID,
			Name:    call.Name,
			Payload: payload,
		},
	}
}

// Definition describes a tool's schema (name, description, parameters) in
// provider-neutral form. Providers translate it to their own declarations.
type Definition struct {
	Name        string
	Description string
	Parameters  []Parameter
}

// Parameter describes a single tool parameter.
type Parameter struct {
	Name        string
	Type        string // "string", "integer", "boolean", "number"
	Description string
	Required    bool
}

// ChatModel is a chat-completion model capable of tool calling.
type ChatModel interface {
	// Name returns the provider's model identifier, used as a metrics dimension.
	Name() string

	// Generate produces the model's next message given the system instruction,
	// the full thread history, and the available tool schemas. The returned
	// message is always an assistant message.
	Generate(ctx context.Context, system string, history []Message, tools []Definition) (Message, error)
}

// transientMarkers are substrings that indicate a retryable provider error:
// rate limits, quota exhaustion, and transient server-side failures.
var transientMarkers = []string{
	"429",
	"rate limit",
	"rate_limit",
	"resource_exhausted",
	"quota",
	"overloaded",
	"503",
	"529",
	"unavailable",
}

// IsTransient reports whether a model-API error is worth retrying.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
