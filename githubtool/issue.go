/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

package githubtool

import (
	"context"
	"fmt"
	"time"
)

// ReadIssueArgs are the typed arguments for the read_github_issue tool.
type ReadIssueArgs struct {
	Owner  string
	Repo   string
	Number int
}

func readIssueArgs(args map[string]any) (ReadIssueArgs, map[string]any) {
	var out ReadIssueArgs
	var errPayload map[string]any

	if out.Owner, errPayload = extract[string](args, "repo_owner"); errPayload != nil {
		return out, errPayload
	}
	if out.Repo, errPayload = extract[string](args, "repo_name"); errPayload != nil {
		return out, errPayload
	}
	if out.Number, errPayload = extract[int](args, "issue_number"); errPayload != nil {
		return out, errPayload
	}
	return out, nil
}

// readIssue fetches one issue and shapes it as the record the model sees.
func (t *Toolset) readIssue(ctx context.Context, args ReadIssueArgs) (map[string]any, error) {
	issue, _, err := t.gh.Issues.Get(ctx, args.Owner, args.Repo, args.Number)
	if err != nil {
		return nil, fmt.Errorf("fetching issue %s/%s#%d: %w", args.Owner, args.Repo, args.Number, err)
	}

	return map[string]any{
		"url":        issue.GetHTMLURL(),
		"title":      issue.GetTitle(),
		"body":       issue.GetBody(),
		"state":      issue.GetState(),
		"created_at": issue.GetCreatedAt().Format(time.RFC3339),
		"updated_at": issue.GetUpdatedAt().Format(time.RFC3339),
	}, nil
}
