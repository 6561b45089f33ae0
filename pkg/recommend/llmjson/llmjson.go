// Package llmjson extracts JSON payloads from model replies. Models are
// instructed to answer with JSON only, but in practice wrap it in code fences
// or prose; callers get the first well-balanced object.
package llmjson

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSON = errors.New("llmjson: no JSON object found in reply")

// ExtractObject returns the first top-level {...} block in s, with any
// markdown code fences removed. The block is validated as parseable JSON.
func ExtractObject(s string) ([]byte, error) {
	s = stripFences(s)

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return nil, ErrNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				candidate := []byte(s[start : i+1])
				if !json.Valid(candidate) {
					return nil, ErrNoJSON
				}
				return candidate, nil
			}
		}
	}
	return nil, ErrNoJSON
}

// Unmarshal extracts the first JSON object from s and decodes it into v.
func Unmarshal(s string, v any) error {
	raw, err := ExtractObject(s)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func stripFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
