package model

import (
	"strings"

	"github.com/goccy/go-json"
)

// EncodeOptions produces the canonical storage encoding for answer options:
// a JSON array. All new writes use this form.
func EncodeOptions(options []string) (string, error) {
	b, err := json.Marshal(options)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeOptions converts a stored options string back into an ordered list.
// Two encodings exist in the wild: the canonical JSON array and a legacy
// brace-delimited form written by an older code path. The delimiter decides
// which decoder runs; anything else is treated as a single option.
func DecodeOptions(stored string) []string {
	s := strings.TrimSpace(stored)
	if s == "" {
		return []string{}
	}

	switch {
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		var options []string
		if err := json.Unmarshal([]byte(s), &options); err == nil {
			return options
		}
		return splitQuoted(strings.Trim(s, "[]"))
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
		return splitQuoted(strings.Trim(s, "{}"))
	default:
		return []string{stored}
	}
}

func splitQuoted(inner string) []string {
	parts := strings.Split(inner, ",")
	options := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"`)
		p = strings.Trim(p, `'`)
		options = append(options, p)
	}
	return options
}
