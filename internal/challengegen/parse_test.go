package challengegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const wellFormed = `{
	"title": "What is the output of print(2 ** 3)?",
	"options": ["6", "8", "9", "23"],
	"correct_answer_id": 1,
	"explanation": "** is the exponentiation operator, so 2 ** 3 is 8."
}`

func TestParsePayloadStrict(t *testing.T) {
	p, err := parsePayload([]byte(wellFormed))
	assert.NoError(t, err)
	assert.Equal(t, "What is the output of print(2 ** 3)?", p.Title)
	assert.Equal(t, []string{"6", "8", "9", "23"}, p.Options)
	assert.Equal(t, 1, p.CorrectAnswerID)
}

func TestParsePayloadProseWrapped(t *testing.T) {
	raw := "Sure! Here is your challenge:\n" + wellFormed + "\nGood luck!"
	p, err := parsePayload([]byte(raw))
	assert.NoError(t, err)
	assert.Equal(t, 1, p.CorrectAnswerID)
}

func TestParsePayloadMissingCommaRepair(t *testing.T) {
	raw := `{
		"title": "Which call reverses a list in place?",
		"options": ["lst.reverse()", "reversed(lst)", "lst[::-1]", "lst.sort()"],
		"correct_answer_id": 0
		"explanation": "list.reverse() mutates the list; the others produce new sequences."
	}`
	p, err := parsePayload([]byte(raw))
	assert.NoError(t, err)
	assert.Equal(t, 0, p.CorrectAnswerID)
	assert.NotEmpty(t, p.Explanation)
}

func TestParsePayloadFirstValidCandidateWins(t *testing.T) {
	raw := `{"note": "not a challenge"} ` + wellFormed + ` {"another": true}`
	p, err := parsePayload([]byte(raw))
	assert.NoError(t, err)
	assert.Equal(t, "What is the output of print(2 ** 3)?", p.Title)
}

func TestParsePayloadFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty output", ""},
		{"no braces at all", "I could not generate a challenge."},
		{"broken JSON only", `{"title": "x", "options": [`},
		{"three options", `{"title":"t","options":["a","b","c"],"correct_answer_id":0,"explanation":"e"}`},
		{"five options", `{"title":"t","options":["a","b","c","d","e"],"correct_answer_id":0,"explanation":"e"}`},
		{"answer index out of range", `{"title":"t","options":["a","b","c","d"],"correct_answer_id":4,"explanation":"e"}`},
		{"negative answer index", `{"title":"t","options":["a","b","c","d"],"correct_answer_id":-1,"explanation":"e"}`},
		{"empty title", `{"title":"","options":["a","b","c","d"],"correct_answer_id":0,"explanation":"e"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePayload([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestPayloadValidate(t *testing.T) {
	valid := Payload{
		Title:           "t",
		Options:         []string{"a", "b", "c", "d"},
		CorrectAnswerID: 3,
	}
	assert.NoError(t, valid.Validate())

	missingExplanationOK := valid
	missingExplanationOK.Explanation = ""
	assert.NoError(t, missingExplanationOK.Validate())
}
