// Package jsonpath reads and builds context data with gjson path syntax.
//
// Paths are dot-separated ("access_token.expiry"); see
// https://github.com/tidwall/gjson/blob/master/SYNTAX.md for the full syntax.
package jsonpath

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Query returns the value at path inside data. The second result is false
// if nothing is found. Numbers come back as float64.
func Query(data any, path string) (any, bool, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, false, fmt.Errorf("encode context data: %w", err)
	}

	res := gjson.GetBytes(raw, path)
	if !res.Exists() {
		return nil, false, nil
	}
	return res.Value(), true, nil
}

// BuildPatch turns "path=value" pairs into a mapping. A value that is valid
// JSON is stored as JSON (numbers, booleans, objects, quoted strings);
// anything else is stored as a plain string.
//
//	BuildPatch([]string{"token.value=abc", "token.expiry=3600"})
//	// {"token": {"value": "abc", "expiry": 3600}}
func BuildPatch(pairs []string) (map[string]any, error) {
	doc := "{}"
	for _, pair := range pairs {
		path, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid pair %q: expected path=value", pair)
		}
		if path == "" {
			return nil, fmt.Errorf("invalid pair %q: path cannot be empty", pair)
		}

		var err error
		if value != "" && json.Valid([]byte(value)) {
			doc, err = sjson.SetRaw(doc, path, value)
		} else {
			doc, err = sjson.Set(doc, path, value)
		}
		if err != nil {
			return nil, fmt.Errorf("set %s: %w", path, err)
		}
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(doc), &out); err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	return out, nil
}

// ParseData decodes JSON text into context data. The result is returned as
// decoded; callers decide which shapes they accept.
func ParseData(text string) (any, error) {
	var out any
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("invalid JSON data: %w", err)
	}
	return out, nil
}
