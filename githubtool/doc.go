/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package githubtool implements the agent's two GitHub operations — reading
// an issue and opening a pull request — as a closed, tagged set of tool
// variants with typed arguments, plus the client factory and repository-URL
// parsing they depend on.
//
// Dispatch is an explicit match on ToolName: the model's output selects a
// variant, it never drives reflection. Failures (bad arguments, missing
// resources, API rejections) become {"error": ...} observations for the
// model to report; nothing is retried at this layer because the operations
// mutate live state.
package githubtool
