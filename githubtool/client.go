/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

package githubtool

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v84/github"
	"golang.org/x/oauth2"

	"github.com/octoagent/octoagent/config"
)

// ErrBadRepoURL reports a repository URL whose path does not contain an
// owner and a repository name.
var ErrBadRepoURL = errors.New("not a valid GitHub repository URL")

// NewClient builds an authenticated GitHub client from the configured token.
// The token is re-checked here so the factory is safe to call independently
// of config validation.
func NewClient(ctx context.Context, env *config.Environment) (*github.Client, error) {
	if env == nil || env.GitHubToken == "" {
		return nil, errors.New("GITHUB_TOKEN must be set")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: env.GitHubToken})
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	if env.GitHubHost != "" && env.GitHubHost != config.DefaultGitHubHost {
		base := fmt.Sprintf("https://%s/api/v3/", env.GitHubHost)
		upload := fmt.Sprintf("https://%s/api/uploads/", env.GitHubHost)
		enterprise, err := client.WithEnterpriseURLs(base, upload)
		if err != nil {
			return nil, fmt.Errorf("configuring enterprise host %q: %w", env.GitHubHost, err)
		}
		client = enterprise
	}

	return client, nil
}

// ParseRepoURL splits a repository URL's path into (owner, name).
func ParseRepoURL(raw string) (owner, name string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrBadRepoURL, raw)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrBadRepoURL, raw)
	}
	return parts[0], parts[1], nil
}
