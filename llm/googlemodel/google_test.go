/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

package googlemodel

import (
	"testing"

	"google.golang.org/genai"

	"github.com/octoagent/octoagent/llm"
)

func TestContentsConversion(t *testing.T) {
	t.Parallel()
	history := []llm.Message{
		llm.UserMessage("read acme/widgets#42"),
		{
			Role: llm.RoleAssistant,
			ToolCalls: []llm.ToolCall{{
				ID:   "call-1",
				Name: "read_github_issue",
				Args: map[string]any{"issue_number": float64(42)},
			}},
		},
		llm.ToolResultMessage(
			llm.ToolCall{ID: "call-1", Name: "read_github_issue"},
			map[string]any{"title": "Widget crashes on load"},
		),
	}

	got := contents(history)
	if len(got) != 3 {
		t.Fatalf("len(contents) = %d, want 3", len(got))
	}
	if got[0].Role != "user" || got[0].Parts[0].Text != "read acme/widgets#42" {
		t.Errorf("user content = %+v", got[0])
	}
	if got[1].Role != "model" || got[1].Parts[0].FunctionCall == nil {
		t.Fatalf("assistant content = %+v", got[1])
	}
	if got[1].Parts[0].FunctionCall.Name != "read_github_issue" {
		t.Errorf("function call name = %q", got[1].Parts[0].FunctionCall.Name)
	}
	if got[2].Role != "user" || got[2].Parts[0].FunctionResponse == nil {
		t.Fatalf("tool content = %+v", got[2])
	}
	if got[2].Parts[0].FunctionResponse.Response["title"] != "Widget crashes on load" {
		t.Errorf("function response = %+v", got[2].Parts[0].FunctionResponse)
	}
}

func TestDeclarationConversion(t *testing.T) {
	t.Parallel()
	decl := declaration(llm.Definition{
		Name:        "read_github_issue",
		Description: "Read a GitHub issue",
		Parameters: []llm.Parameter{
			{Name: "repo_owner", Type: "string", Required: true},
			{Name: "issue_number", Type: "integer", Required: true},
			{Name: "verbose", Type: "boolean"},
		},
	})

	if decl.Name != "read_github_issue" {
		t.Errorf("name = %q", decl.Name)
	}
	if decl.Parameters.Type != genai.TypeObject {
		t.Errorf("parameters type = %v", decl.Parameters.Type)
	}
	if got := decl.Parameters.Properties["issue_number"].Type; got != genai.TypeInteger {
		t.Errorf("issue_number type = %v", got)
	}
	if got := len(decl.Parameters.Required); got != 2 {
		t.Errorf("required = %v", decl.Parameters.Required)
	}
}
