/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

package llm_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/octoagent/octoagent/llm"
)

func TestIsTransient(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED"), true},
		{errors.New("anthropic: overloaded_error"), true},
		{errors.New("503 Service Unavailable"), true},
		{errors.New("openai: rate_limit_exceeded"), true},
		{errors.New("404 Not Found"), false},
		{errors.New("invalid request"), false},
	}
	for _, tc := range tests {
		if got := llm.IsTransient(tc.err); got != tc.want {
			t.Errorf("IsTransient(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestToolResultMessage(t *testing.T) {
	t.Parallel()
	call := llm.ToolCall{ID: "call-1", Name: "read_github_issue", Args: map[string]any{"issue_number": float64(42)}}
	payload := map[string]any{"title": "Widget crashes on load"}

	got := llm.ToolResultMessage(call, payload)
	want := llm.Message{
		Role: llm.RoleTool,
		Result: &llm.ToolResult{
			CallID:  "call-1",
			Name:    "read_github_issue",
			Payload: payload,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToolResultMessage mismatch (-want +got):\n%s", diff)
	}
}
