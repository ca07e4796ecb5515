package analyses

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON pulls the analysis object out of raw completion text. Models
// asked for "ONLY valid JSON" still wrap the object in prose or markdown
// fences often enough that this has to be tolerant.
//
// It scans for the first balanced top-level object, tracking brace depth and
// skipping braces inside string literals (escape-aware). A greedy first-to-last
// brace match would glue two objects together or swallow trailing prose. If no
// opening brace exists the whole text is tried as JSON after stripping fences.
func ExtractJSON(text string) (map[string]any, error) {
	if span, ok := balancedObject(text); ok {
		obj, err := decodeObject(span)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCompletion, err)
		}
		return obj, nil
	}

	obj, err := decodeObject(stripFences(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCompletion, err)
	}
	return obj, nil
}

// balancedObject returns the first balanced {...} span in text.
func balancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

func decodeObject(s string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		firstLine := strings.TrimSpace(s[:idx])
		if firstLine == "" || isFenceTag(firstLine) {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func isFenceTag(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
