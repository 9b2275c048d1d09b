/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

package agent

// Event is one streamed observation from a conversation turn. Progress
// events have both flags false; the last event on a turn's channel is always
// the status event derived from the structured response.
type Event struct {
	TaskComplete     bool   `json:"is_task_complete"`
	RequireUserInput bool   `json:"require_user_input"`
	Content          string `json:"content"`
}

// Progress messages emitted while tools run, and the fallback when the model
// ends a turn without a structured answer. The wording is part of the
// streaming contract observed by callers.
const (
	progressInvoking   = "Invoking GitHub API..."
	progressProcessing = "Processing GitHub API response..."

	fallbackMessage = "We are unable to process your request at the moment. Please try again."
)
