package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// safeGet navigates decoded JSON by a path of object keys (string) and array
// indexes (int) without panicking. Returns nil when any step is missing.
func safeGet(data any, path ...any) any {
	current := data
	for _, step := range path {
		switch key := step.(type) {
		case string:
			obj, ok := current.(map[string]any)
			if !ok {
				return nil
			}
			current = obj[key]
		case int:
			slice, ok := current.([]any)
			if !ok || key < 0 || key >= len(slice) {
				return nil
			}
			current = slice[key]
		default:
			return nil
		}
	}
	return current
}

// safeSlice converts any to []any, returns nil if not a slice.
func safeSlice(data any) []any {
	slice, ok := data.([]any)
	if !ok {
		return nil
	}
	return slice
}

// safeString extracts a string from any. Handles string, json.Number and float64.
func safeString(data any) string {
	switch v := data.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// safeFloat extracts a float64 from any. Handles float64, json.Number, and numeric strings.
func safeFloat(data any) float64 {
	switch v := data.(type) {
	case float64:
		return v
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	}
	return 0
}
