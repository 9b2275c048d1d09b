/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package server is the A2A front door: it serves the agent card for
// discovery and the JSON-RPC message endpoints, streaming status updates
// over SSE for message/stream.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chainguard-dev/clog"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/octoagent/octoagent/agent"
	"github.com/octoagent/octoagent/server/auth"
)

// Runner produces the event stream for one conversation turn. *agent.Agent
// satisfies it.
type Runner interface {
	Stream(ctx context.Context, query, contextID string) <-chan agent.Event
}

// Server serves the agent over HTTP.
type Server struct {
	echo   *echo.Echo
	runner Runner
	card   AgentCard
}

// New wires the runner and card into an echo server with the bearer gate
// installed.
func New(runner Runner, card AgentCard, verifier auth.Verifier) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(auth.Middleware(verifier))

	s := &Server{
		echo:   e,
		runner: runner,
		card:   card,
	}

	e.GET("/.well-known/agent-card.json", s.handleCard)
	// Older clients fetch the pre-rename card path.
	e.GET("/.well-known/agent.json", s.handleCard)
	e.POST("/", s.handleRPC)

	return s
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Start blocks serving on addr until the listener fails or Shutdown is called.
func (s *Server) Start(addr string) error {
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serving on %s: %w", addr, err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleCard(c echo.Context) error {
	return c.JSON(http.StatusOK, s.card)
}

func (s *Server) handleRPC(c echo.Context) error {
	var req rpcRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusOK, errResponse(nil, codeParseError, "Invalid JSON payload"))
	}

	switch req.Method {
	case methodMessageSend:
		return s.handleSend(c, req)
	case methodMessageStream:
		return s.handleStream(c, req)
	default:
		return c.JSON(http.StatusOK, errResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method)))
	}
}

// turnInput validates params and resolves the query and ids for a turn.
func turnInput(req rpcRequest) (query, taskID, contextID string, ok bool) {
	var params messageSendParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return "", "", "", false
	}
	query = params.Message.text()
	if query == "" {
		return "", "", "", false
	}
	contextID = params.Message.ContextID
	if contextID == "" {
		contextID = uuid.NewString()
	}
	return query, uuid.NewString(), contextID, true
}

func (s *Server) handleSend(c echo.Context, req rpcRequest) error {
	ctx := c.Request().Context()
	log := clog.FromContext(ctx)

	query, taskID, contextID, ok := turnInput(req)
	if !ok {
		return c.JSON(http.StatusOK, errResponse(req.ID, codeInvalidParams, "Invalid params: message with text parts is required"))
	}

	log.With("context_id", contextID).With("task_id", taskID).Info("Handling message/send")

	var last agent.Event
	for ev := range s.runner.Stream(ctx, query, contextID) {
		last = ev
	}

	task := Task{
		Kind:      "task",
		ID:        taskID,
		ContextID: contextID,
		Status:    eventStatus(last, taskID, contextID),
	}
	return c.JSON(http.StatusOK, okResponse(req.ID, task))
}

func (s *Server) handleStream(c echo.Context, req rpcRequest) error {
	ctx := c.Request().Context()
	log := clog.FromContext(ctx)

	query, taskID, contextID, ok := turnInput(req)
	if !ok {
		return c.JSON(http.StatusOK, errResponse(req.ID, codeInvalidParams, "Invalid params: message with text parts is required"))
	}

	log.With("context_id", contextID).With("task_id", taskID).Info("Handling message/stream")

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)

	for ev := range s.runner.Stream(ctx, query, contextID) {
		update := StatusUpdate{
			Kind:      "status-update",
			TaskID:    taskID,
			ContextID: contextID,
			Status:    eventStatus(ev, taskID, contextID),
			Final:     terminal(ev),
		}
		if err := writeFrame(resp, okResponse(req.ID, update)); err != nil {
			return err
		}
	}
	return nil
}

// writeFrame emits one SSE data frame and flushes it to the client.
func writeFrame(resp *echo.Response, payload rpcResponse) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding stream frame: %w", err)
	}
	if _, err := fmt.Fprintf(resp, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("writing stream frame: %w", err)
	}
	resp.Flush()
	return nil
}
