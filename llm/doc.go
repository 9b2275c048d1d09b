/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package llm defines a provider-independent conversation model: messages,
// tool calls, tool schemas, and the ChatModel interface implemented by the
// googlemodel, openaimodel, and anthropicmodel subpackages.
//
// Keeping the thread history in neutral form lets the agent persist one
// history per context id and replay it against any provider.
package llm
