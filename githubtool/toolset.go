/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

package githubtool

import (
	"context"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"

	"github.com/octoagent/octoagent/llm"
)

// ToolName tags the closed set of tools the agent can invoke.
type ToolName string

const (
	ToolReadIssue       ToolName = "read_github_issue"
	ToolOpenPullRequest ToolName = "open_github_pr"
)

// Toolset executes the agent's GitHub operations. Every call is a single
// round trip against the live API, bounded by the configured timeout; failures
// are returned to the model as-is with no retry.
type Toolset struct {
	gh      *github.Client
	timeout time.Duration
}

// NewToolset wraps an authenticated client. A zero timeout disables the
// per-call deadline.
func NewToolset(gh *github.Client, timeout time.Duration) *Toolset {
	return &Toolset{gh: gh, timeout: timeout}
}

// Definitions returns the schemas for the two tools, in the neutral form the
// model providers translate to their own declarations.
func (t *Toolset) Definitions() []llm.Definition {
	return Definitions()
}

// Definitions returns the tool schemas advertised to the model.
func Definitions() []llm.Definition {
	return []llm.Definition{
		{
			Name: string(ToolReadIssue),
			Description: "Read details of a GitHub issue given its numeric ID, the name of the repository " +
				"hosting it, and the name of the owner of the repo. Returns the issue's key fields.",
			Parameters: []llm.Parameter{
				{Name: "repo_owner", Type: "string", Description: "Owner of the GitHub repository hosting the issue", Required: true},
				{Name: "repo_name", Type: "string", Description: "Name of the GitHub repository hosting the issue", Required: true},
				{Name: "issue_number", Type: "integer", Description: "GitHub issue's numeric ID", Required: true},
			},
		},
		{
			Name: string(ToolOpenPullRequest),
			Description: "Create a pull request on GitHub. Either the related_issue parameter or the " +
				"title and body parameters are required. When related_issue is provided, the PR takes its " +
				"title and body from that issue and explicit title/body are not honored.",
			Parameters: []llm.Parameter{
				{Name: "repo_owner", Type: "string", Description: "Owner of the GitHub repository where the PR should be created", Required: true},
				{Name: "repo_name", Type: "string", Description: "Name of the GitHub repository where the PR should be created", Required: true},
				{Name: "head_branch", Type: "string", Description: "The name of the branch containing the commits", Required: true},
				{Name: "base_branch", Type: "string", Description: "The branch you want to merge into", Required: true},
				{Name: "title", Type: "string", Description: "Pull request title; not honored if related_issue is provided", Required: false},
				{Name: "body", Type: "string", Description: "Pull request body text; not honored if related_issue is provided", Required: false},
				{Name: "related_issue", Type: "integer", Description: "ID of the issue that the PR relates to", Required: false},
			},
		},
	}
}

// Execute dispatches a single tool call. The returned payload becomes the
// observation appended to the thread: either the operation's record or a
// model-visible {"error": ...} map. Dispatch is an explicit match on the
// tool tag; unknown names are an error payload, never a panic.
func (t *Toolset) Execute(ctx context.Context, call llm.ToolCall) map[string]any {
	log := clog.FromContext(ctx).With("tool", call.Name).With("call_id", call.ID)

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	switch ToolName(call.Name) {
	case ToolReadIssue:
		args, errPayload := readIssueArgs(call.Args)
		if errPayload != nil {
			log.With("error", errPayload["error"]).Warn("Bad tool arguments")
			return errPayload
		}
		record, err := t.readIssue(ctx, args)
		if err != nil {
			log.With("error", err).Warn("Tool execution failed")
			return errorPayload(err)
		}
		return record

	case ToolOpenPullRequest:
		args, errPayload := openPullRequestArgs(call.Args)
		if errPayload != nil {
			log.With("error", errPayload["error"]).Warn("Bad tool arguments")
			return errPayload
		}
		record, err := t.openPullRequest(ctx, args)
		if err != nil {
			log.With("error", err).Warn("Tool execution failed")
			return errorPayload(err)
		}
		return record

	default:
		log.Warn("Unknown tool requested by model")
		return errorPayload(fmt.Errorf("unknown tool: %q", call.Name))
	}
}
