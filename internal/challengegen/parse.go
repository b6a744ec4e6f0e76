package challengegen

import (
	"regexp"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

var (
	// braceBlock matches brace-delimited JSON-like substrings in prose output.
	braceBlock = regexp.MustCompile(`\{[\s\S]*?\}`)

	// missingComma repairs a defect some models produce: no separator
	// between the correct_answer_id value and the "explanation" key.
	missingComma = regexp.MustCompile(`("correct_answer_id"\s*:\s*\d+)\s+("explanation")`)
)

// parsePayload decodes raw model output into a conforming Payload.
// Strategies run in order, first success wins:
//  1. the whole output is the JSON object;
//  2. scan for brace-delimited candidates, repair known defects, and parse
//     each independently.
func parsePayload(raw []byte) (*Payload, error) {
	if p, err := decodeCandidate(raw); err == nil {
		return p, nil
	}
	return recoverPayload(raw)
}

// recoverPayload scans untrusted model output for embedded JSON objects.
func recoverPayload(raw []byte) (*Payload, error) {
	text := string(raw)
	candidates := braceBlock.FindAllString(text, -1)
	if len(candidates) == 0 {
		return nil, errors.New("no JSON object found in model output")
	}

	var lastErr error
	for _, candidate := range candidates {
		repaired := missingComma.ReplaceAllString(candidate, `$1, $2`)
		p, err := decodeCandidate([]byte(repaired))
		if err != nil {
			lastErr = err
			continue
		}
		return p, nil
	}

	return nil, errors.Wrap(lastErr, "no candidate parsed into a valid payload")
}

func decodeCandidate(raw []byte) (*Payload, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, errors.New("empty model output")
	}

	var p Payload
	if err := json.Unmarshal([]byte(trimmed), &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
