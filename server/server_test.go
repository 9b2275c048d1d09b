/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

package server_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-github/v84/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octoagent/octoagent/agent"
	"github.com/octoagent/octoagent/githubtool"
	"github.com/octoagent/octoagent/llm"
	"github.com/octoagent/octoagent/server"
	"github.com/octoagent/octoagent/server/auth"
)

// fakeRunner replays a fixed event sequence and records what it was asked.
type fakeRunner struct {
	events    []agent.Event
	query     string
	contextID string
}

func (r *fakeRunner) Stream(_ context.Context, query, contextID string) <-chan agent.Event {
	r.query = query
	r.contextID = contextID

	ch := make(chan agent.Event, len(r.events))
	for _, ev := range r.events {
		ch <- ev
	}
	close(ch)
	return ch
}

func newTestServer(runner server.Runner) *httptest.Server {
	srv := server.New(runner, server.DefaultCard(9999), auth.Insecure())
	return httptest.NewServer(srv.Handler())
}

func postRPC(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeResult(t *testing.T, resp *http.Response, result any) {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		JSONRPC string          `json:"jsonrpc"`
		Result  json.RawMessage `json:"result"`
		Error   *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Nil(t, envelope.Error)
	require.NoError(t, json.Unmarshal(envelope.Result, result))
}

func TestCardServedWithoutAuth(t *testing.T) {
	ts := newTestServer(&fakeRunner{})
	defer ts.Close()

	for _, path := range []string{"/.well-known/agent-card.json", "/.well-known/agent.json"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)

		var card server.AgentCard
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&card))
		resp.Body.Close()

		assert.Equal(t, "GitHub A2A Agent", card.Name)
		assert.True(t, card.Capabilities.Streaming)
		require.Len(t, card.Skills, 2)
		assert.Equal(t, "read_issue", card.Skills[0].ID)
		assert.Equal(t, "open_pr", card.Skills[1].ID)
	}
}

func TestRPCRequiresAuth(t *testing.T) {
	ts := newTestServer(&fakeRunner{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Missing or invalid Authorization header", body["detail"])
}

func TestMessageSend(t *testing.T) {
	runner := &fakeRunner{events: []agent.Event{
		{Content: "Invoking GitHub API..."},
		{Content: "Processing GitHub API response..."},
		{TaskComplete: true, Content: "Issue #42 is titled Widget crashes on load."},
	}}
	ts := newTestServer(runner)
	defer ts.Close()

	resp := postRPC(t, ts.URL+"/", `{
		"jsonrpc": "2.0",
		"id": 1,
		"method": "message/send",
		"params": {
			"message": {
				"kind": "message",
				"messageId": "m1",
				"role": "user",
				"contextId": "ctx-42",
				"parts": [{"kind": "text", "text": "read issue 42"}]
			}
		}
	}`)

	var task server.Task
	decodeResult(t, resp, &task)

	assert.Equal(t, "task", task.Kind)
	assert.Equal(t, "ctx-42", task.ContextID)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "completed", task.Status.State)
	require.NotNil(t, task.Status.Message)
	require.Len(t, task.Status.Message.Parts, 1)
	assert.Contains(t, task.Status.Message.Parts[0].Text, "Issue #42")

	assert.Equal(t, "read issue 42", runner.query)
	assert.Equal(t, "ctx-42", runner.contextID)
}

func TestMessageSendGeneratesContextID(t *testing.T) {
	runner := &fakeRunner{events: []agent.Event{
		{RequireUserInput: true, Content: "Which repository?"},
	}}
	ts := newTestServer(runner)
	defer ts.Close()

	resp := postRPC(t, ts.URL+"/", `{
		"jsonrpc": "2.0",
		"id": 1,
		"method": "message/send",
		"params": {
			"message": {
				"kind": "message",
				"messageId": "m1",
				"role": "user",
				"parts": [{"kind": "text", "text": "open a PR"}]
			}
		}
	}`)

	var task server.Task
	decodeResult(t, resp, &task)

	assert.NotEmpty(t, task.ContextID)
	assert.Equal(t, task.ContextID, runner.contextID)
	assert.Equal(t, "input-required", task.Status.State)
}

func TestMessageStream(t *testing.T) {
	runner := &fakeRunner{events: []agent.Event{
		{Content: "Invoking GitHub API..."},
		{TaskComplete: true, Content: "Done."},
	}}
	ts := newTestServer(runner)
	defer ts.Close()

	resp := postRPC(t, ts.URL+"/", `{
		"jsonrpc": "2.0",
		"id": 7,
		"method": "message/stream",
		"params": {
			"message": {
				"kind": "message",
				"messageId": "m1",
				"role": "user",
				"contextId": "ctx-s",
				"parts": [{"kind": "text", "text": "read issue 1"}]
			}
		}
	}`)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	var updates []server.StatusUpdate
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var envelope struct {
			Result server.StatusUpdate `json:"result"`
		}
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &envelope))
		updates = append(updates, envelope.Result)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, updates, 2)

	assert.Equal(t, "working", updates[0].Status.State)
	assert.False(t, updates[0].Final)
	assert.Equal(t, "Invoking GitHub API...", updates[0].Status.Message.Parts[0].Text)

	assert.Equal(t, "completed", updates[1].Status.State)
	assert.True(t, updates[1].Final)
	assert.Equal(t, "ctx-s", updates[1].ContextID)
}

func TestUnknownMethod(t *testing.T) {
	ts := newTestServer(&fakeRunner{})
	defer ts.Close()

	resp := postRPC(t, ts.URL+"/", `{"jsonrpc": "2.0", "id": 1, "method": "tasks/get", "params": {}}`)
	defer resp.Body.Close()

	var envelope struct {
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, -32601, envelope.Error.Code)
}

func TestInvalidParams(t *testing.T) {
	ts := newTestServer(&fakeRunner{})
	defer ts.Close()

	for _, params := range []string{`{}`, `{"message": {"parts": []}}`, `"not-an-object"`} {
		resp := postRPC(t, ts.URL+"/", `{"jsonrpc": "2.0", "id": 1, "method": "message/send", "params": `+params+`}`)

		var envelope struct {
			Error *struct {
				Code int `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		resp.Body.Close()
		require.NotNil(t, envelope.Error, "params %s", params)
		assert.Equal(t, -32602, envelope.Error.Code)
	}
}

// scriptedModel drives the real agent loop without a live provider.
type scriptedModel struct {
	script []llm.Message
	calls  int
}

func (m *scriptedModel) Name() string { return "scripted-model" }

func (m *scriptedModel) Generate(context.Context, string, []llm.Message, []llm.Definition) (llm.Message, error) {
	msg := m.script[m.calls]
	m.calls++
	return msg, nil
}

// TestReadIssueEndToEnd exercises the full path: JSON-RPC front door, agent
// loop, tool dispatch, and a fake GitHub backend.
func TestReadIssueEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/issues/42", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"number": 42,
			"title": "Widget crashes on load",
			"state": "open",
			"html_url": "https://github.com/acme/widgets/issues/42"
		}`))
	})
	gh := httptest.NewServer(mux)
	defer gh.Close()

	client := github.NewClient(nil)
	baseURL, err := url.Parse(gh.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL
	client.UploadURL = baseURL

	model := &scriptedModel{script: []llm.Message{
		{
			Role: llm.RoleAssistant,
			ToolCalls: []llm.ToolCall{{
				ID:   "call-1",
				Name: string(githubtool.ToolReadIssue),
				Args: map[string]any{
					"repo_owner":   "acme",
					"repo_name":    "widgets",
					"issue_number": float64(42),
				},
			}},
		},
		{
			Role: llm.RoleAssistant,
			Text: "```json\n{\"status\":\"completed\",\"message\":\"Issue #42 is titled Widget crashes on load.\"}\n```",
		},
	}}

	a, err := agent.New(model, githubtool.NewToolset(client, 5*time.Second), agent.NewStore())
	require.NoError(t, err)

	ts := newTestServer(a)
	defer ts.Close()

	resp := postRPC(t, ts.URL+"/", `{
		"jsonrpc": "2.0",
		"id": 1,
		"method": "message/send",
		"params": {
			"message": {
				"kind": "message",
				"messageId": "m1",
				"role": "user",
				"contextId": "e2e",
				"parts": [{"kind": "text", "text": "{\"skill_id\": \"read_issue\", \"issue_url\": \"https://github.com/acme/widgets/issues/42\"}"}]
			}
		}
	}`)

	var task server.Task
	decodeResult(t, resp, &task)

	assert.Equal(t, "completed", task.Status.State)
	require.NotNil(t, task.Status.Message)
	assert.Contains(t, task.Status.Message.Parts[0].Text, "Widget crashes on load")
}
