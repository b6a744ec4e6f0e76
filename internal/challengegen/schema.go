package challengegen

import "coding_challenge_api/internal/llm"

// ChallengeSchema constrains the model to the exact payload shape.
var ChallengeSchema = &llm.Schema{
	Name: "coding-challenge",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "The question title",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    4,
				"maxItems":    4,
				"description": "Exactly four answer options",
			},
			"correct_answer_id": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     3,
				"description": "Index of the correct option",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Why the correct answer is right",
			},
		},
		"required": []any{"title", "options", "correct_answer_id", "explanation"},
	},
}
