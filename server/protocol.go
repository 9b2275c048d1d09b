/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/octoagent/octoagent/agent"
)

// JSON-RPC 2.0 framing for the A2A message endpoints.

const (
	methodMessageSend   = "message/send"
	methodMessageStream = "message/stream"

	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func okResponse(id json.RawMessage, result any) rpcResponse {
	return rpcResponse{JSONRPC: "2.0", ID: id, Result: result}
}

func errResponse(id json.RawMessage, code int, message string) rpcResponse {
	return rpcResponse{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: message}}
}

// Part is a single content fragment of a message. Only text parts are
// produced and consumed here.
type Part struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
}

// Message is an A2A message envelope, inbound (role "user") or outbound
// (role "agent").
type Message struct {
	Kind      string `json:"kind"`
	MessageID string `json:"messageId"`
	Role      string `json:"role"`
	Parts     []Part `json:"parts"`
	ContextID string `json:"contextId,omitempty"`
	TaskID    string `json:"taskId,omitempty"`
}

// text concatenates the message's text parts into the user query.
func (m Message) text() string {
	var sb strings.Builder
	for _, part := range m.Parts {
		if part.Kind == "text" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// messageSendParams is the params object shared by message/send and
// message/stream.
type messageSendParams struct {
	Message Message `json:"message"`
}

// Task states surfaced to clients.
const (
	stateWorking       = "working"
	stateCompleted     = "completed"
	stateInputRequired = "input-required"
)

// TaskStatus is the current state of a task plus the agent message that
// produced it.
type TaskStatus struct {
	State   string   `json:"state"`
	Message *Message `json:"message,omitempty"`
}

// Task is the terminal snapshot returned by message/send.
type Task struct {
	Kind      string     `json:"kind"`
	ID        string     `json:"id"`
	ContextID string     `json:"contextId"`
	Status    TaskStatus `json:"status"`
}

// StatusUpdate is one frame of a message/stream response.
type StatusUpdate struct {
	Kind      string     `json:"kind"`
	TaskID    string     `json:"taskId"`
	ContextID string     `json:"contextId"`
	Status    TaskStatus `json:"status"`
	Final     bool       `json:"final"`
}

// eventStatus maps an agent event to a task status. Progress events map to
// working; the terminal event maps to completed or input-required.
func eventStatus(ev agent.Event, taskID, contextID string) TaskStatus {
	state := stateWorking
	switch {
	case ev.TaskComplete:
		state = stateCompleted
	case ev.RequireUserInput:
		state = stateInputRequired
	}
	return TaskStatus{
		State: state,
		Message: &Message{
			Kind:      "message",
			MessageID: uuid.NewString(),
			Role:      "agent",
			Parts:     []Part{{Kind: "text", Text: ev.Content}},
			ContextID: contextID,
			TaskID:    taskID,
		},
	}
}

// terminal reports whether the event ends the turn.
func terminal(ev agent.Event) bool {
	return ev.TaskComplete || ev.RequireUserInput
}
