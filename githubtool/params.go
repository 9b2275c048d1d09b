/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

package githubtool

import "fmt"

// extract pulls a required parameter out of a tool call's argument map.
// The second return is a model-visible error payload when the parameter is
// missing or the wrong type.
func extract[T any](args map[string]any, name string) (T, map[string]any) {
	var zero T

	value, ok := args[name]
	if !ok {
		return zero, errorPayloadf("%s parameter is required", name)
	}
	if v, ok := value.(T); ok {
		return v, nil
	}
	if v, ok := coerceNumeric[T](value); ok {
		return v, nil
	}
	return zero, errorPayloadf("%s parameter must be of type %T, got %T", name, zero, value)
}

// extractOptional pulls an optional parameter, returning the default when absent.
func extractOptional[T any](args map[string]any, name string, defaultValue T) (T, map[string]any) {
	value, ok := args[name]
	if !ok {
		return defaultValue, nil
	}
	if v, ok := value.(T); ok {
		return v, nil
	}
	if v, ok := coerceNumeric[T](value); ok {
		return v, nil
	}
	var zero T
	return zero, errorPayloadf("%s parameter must be of type %T, got %T", name, zero, value)
}

// coerceNumeric handles JSON's float64 representation of integers.
func coerceNumeric[T any](value any) (T, bool) {
	var zero T
	f, ok := value.(float64)
	if !ok {
		return zero, false
	}
	switch any(zero).(type) {
	case int:
		return any(int(f)).(T), true
	case int64:
		return any(int64(f)).(T), true
	}
	return zero, false
}

// errorPayload shapes an error as a tool observation the model can act on.
func errorPayload(err error) map[string]any {
	return map[string]any{"error": err.Error()}
}

func errorPayloadf(format string, args ...any) map[string]any {
	return map[string]any{"error": fmt.Sprintf(format, args...)}
}
