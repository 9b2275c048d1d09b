/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

package agent

// Status is the model's verdict on a turn. Exactly one holds per turn:
// completed is terminal, input_required and error both hand control back to
// the user.
type Status string

const (
	StatusInputRequired Status = "input_required"
	StatusCompleted     Status = "completed"
	StatusError         Status = "error"
)

// Response is the model's final, schema-constrained answer for a turn.
type Response struct {
	Status  Status `json:"status" jsonschema:"required,enum=input_required,enum=completed,enum=error,description=input_required when the user must provide more information; error when processing failed; completed when the request is done"`
	Message string `json:"message" jsonschema:"required,description=The text shown to the user"`
}

// Terminal reports whether the response ends the task.
func (r Response) Terminal() bool {
	return r.Status == StatusCompleted
}
