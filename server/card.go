/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

package server

import "fmt"

// AgentCard is the discovery document served under /.well-known. Clients
// read it to learn the agent's skills and transport capabilities before
// sending any messages.
type AgentCard struct {
	Name               string                `json:"name"`
	Description        string                `json:"description"`
	URL                string                `json:"url"`
	Version            string                `json:"version"`
	Capabilities       AgentCapabilities     `json:"capabilities"`
	Skills             []AgentSkill          `json:"skills"`
	DefaultInputModes  []string              `json:"defaultInputModes"`
	DefaultOutputModes []string              `json:"defaultOutputModes"`
	Security           []map[string][]string `json:"security,omitempty"`
}

// AgentCapabilities advertises optional protocol features.
type AgentCapabilities struct {
	Streaming bool `json:"streaming"`
}

// AgentSkill describes one advertised capability with machine-readable
// invocation examples.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples"`
}

// DefaultCard returns the card for the GitHub agent bound to the given port.
func DefaultCard(port int) AgentCard {
	modes := []string{"application/json", "application/text", "text/event-stream"}
	return AgentCard{
		Name:        "GitHub A2A Agent",
		Description: "An A2A agent exposing GitHub issue and PR skills",
		URL:         fmt.Sprintf("http://localhost:%d/", port),
		Version:     "1.0.0",
		Capabilities: AgentCapabilities{
			Streaming: true,
		},
		Skills: []AgentSkill{
			{
				ID:          "read_issue",
				Name:        "Read GitHub Issue",
				Description: "Read a GitHub issue given its URL",
				Tags:        []string{"github", "issue"},
				Examples: []string{
					`{"skill_id": "read_issue", "issue_url": "https://github.com/org/repo/issues/1"}`,
				},
			},
			{
				ID:          "open_pr",
				Name:        "Open Pull Request",
				Description: "Open a pull request on a GitHub repository",
				Tags:        []string{"github", "pull-request"},
				Examples: []string{
					`{"skill_id": "open_pr", "repo_url": "https://github.com/org/repo", "branch": "feature", "title": "Title", "body": "Description"}`,
				},
			},
		},
		DefaultInputModes:  modes,
		DefaultOutputModes: modes,
		Security:           []map[string][]string{{"bearerAuth": {}}},
	}
}
