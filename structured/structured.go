/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package structured parses a model's final text into a typed response and
// reflects Go types into the JSON schema embedded in system instructions.
package structured

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// CutJSON returns the JSON content of a model reply, stripping a surrounding
// markdown code fence when present. Models frequently wrap structured output
// in ```json fences even when told not to.
func CutJSON(text string) string {
	text = strings.TrimSpace(text)

	// Fenced block on its own lines takes precedence.
	if _, rest, ok := strings.Cut(text, "```json\n"); ok {
		if body, _, ok := strings.Cut(rest, "```"); ok {
			return strings.TrimSpace(body)
		}
		return strings.TrimSpace(rest)
	}

	// Bare fences without a language tag.
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// Decode extracts the JSON content of text and unmarshals it into T.
func Decode[T any](text string) (T, error) {
	var out T
	payload := CutJSON(text)
	if payload == "" {
		return out, fmt.Errorf("no JSON content in response")
	}
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return out, fmt.Errorf("decoding structured response: %w", err)
	}
	return out, nil
}

// SchemaJSON reflects T into an indented JSON schema document suitable for
// embedding in a system instruction.
func SchemaJSON[T any]() (string, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		DoNotReference:             true,
	}
	var zero T
	schema := reflector.Reflect(&zero)
	raw, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling schema: %w", err)
	}
	return string(raw), nil
}
