/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

package githubtool

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v84/github"
)

// OpenPullRequestArgs are the typed arguments for the open_github_pr tool.
// RelatedIssue of zero means "not supplied".
type OpenPullRequestArgs struct {
	Owner        string
	Repo         string
	HeadBranch   string
	BaseBranch   string
	Title        string
	Body         string
	RelatedIssue int
}

func openPullRequestArgs(args map[string]any) (OpenPullRequestArgs, map[string]any) {
	var out OpenPullRequestArgs
	var errPayload map[string]any

	if out.Owner, errPayload = extract[string](args, "repo_owner"); errPayload != nil {
		return out, errPayload
	}
	if out.Repo, errPayload = extract[string](args, "repo_name"); errPayload != nil {
		return out, errPayload
	}
	if out.HeadBranch, errPayload = extract[string](args, "head_branch"); errPayload != nil {
		return out, errPayload
	}
	if out.BaseBranch, errPayload = extract[string](args, "base_branch"); errPayload != nil {
		return out, errPayload
	}
	if out.Title, errPayload = extractOptional(args, "title", ""); errPayload != nil {
		return out, errPayload
	}
	if out.Body, errPayload = extractOptional(args, "body", ""); errPayload != nil {
		return out, errPayload
	}
	if out.RelatedIssue, errPayload = extractOptional(args, "related_issue", 0); errPayload != nil {
		return out, errPayload
	}

	if out.RelatedIssue == 0 && out.Title == "" {
		return out, errorPayloadf("either related_issue or title is required")
	}
	return out, nil
}

// openPullRequest creates a pull request. When a related issue is supplied
// the PR is attached to it and explicit title/body are ignored; the issue is
// fetched first so a bad reference fails before the mutation.
func (t *Toolset) openPullRequest(ctx context.Context, args OpenPullRequestArgs) (map[string]any, error) {
	newPR := &github.NewPullRequest{
		Head: github.Ptr(args.HeadBranch),
		Base: github.Ptr(args.BaseBranch),
	}

	if args.RelatedIssue > 0 {
		if _, _, err := t.gh.Issues.Get(ctx, args.Owner, args.Repo, args.RelatedIssue); err != nil {
			return nil, fmt.Errorf("fetching related issue %s/%s#%d: %w", args.Owner, args.Repo, args.RelatedIssue, err)
		}
		newPR.Issue = github.Ptr(args.RelatedIssue)
	} else {
		newPR.Title = github.Ptr(args.Title)
		if args.Body != "" {
			newPR.Body = github.Ptr(args.Body)
		}
	}

	pr, _, err := t.gh.PullRequests.Create(ctx, args.Owner, args.Repo, newPR)
	if err != nil {
		return nil, fmt.Errorf("creating pull request %s/%s %s -> %s: %w",
			args.Owner, args.Repo, args.HeadBranch, args.BaseBranch, err)
	}

	return map[string]any{
		"url":        pr.GetHTMLURL(),
		"title":      pr.GetTitle(),
		"state":      pr.GetState(),
		"created_at": pr.GetCreatedAt().Format(time.RFC3339),
		"head_ref":   pr.GetHead().GetRef(),
		"base_ref":   pr.GetBase().GetRef(),
	}, nil
}
