/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

/*
Package agent implements the conversational turn loop: it hands the thread
history, the system instruction, and the two GitHub tool schemas to a chat
model, executes any tool calls the model issues, feeds the observations back,
and streams progress plus a final structured status to the caller.

# Turn state machine

A turn moves awaiting-model -> (tool calls) -> executing-tools ->
awaiting-model until the model answers in plain text, which is parsed as the
structured Response. Tool results are appended to the thread immediately
after their triggering call, keeping the history append-only within a turn.

# Streaming contract

Each tool call is bracketed by one "Invoking GitHub API..." and one
"Processing GitHub API response..." progress event. Exactly one status event
ends the stream: completed is terminal; input_required and error both come
back as require-user-input; a turn that produces no parseable structured
answer falls back to require-user-input with a generic retry message.

# Concurrency

Threads are keyed by context id in an injected Store. A turn holds its
thread's lock end to end, so turns on the same context id serialize while
distinct contexts proceed independently.
*/
package agent
