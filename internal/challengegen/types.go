package challengegen

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrGenerationFailed covers every way a generation attempt can fail:
// backend errors, truncated or blocked completions, empty output, and
// payloads that violate the contract. Callers treat them all the same:
// the user's quota is never charged for one.
var ErrGenerationFailed = errors.New("challenge generation failed")

// Payload is the structured multiple-choice challenge produced by the
// generator: a title, exactly four options, the index of the correct one
// and an explanation.
type Payload struct {
	Title           string   `json:"title"`
	Options         []string `json:"options"`
	CorrectAnswerID int      `json:"correct_answer_id"`
	Explanation     string   `json:"explanation"`
}

const optionCount = 4

// Validate checks the structural contract. Explanation may be empty.
func (p *Payload) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("title is empty")
	}
	if len(p.Options) != optionCount {
		return fmt.Errorf("expected %d options, got %d", optionCount, len(p.Options))
	}
	if p.CorrectAnswerID < 0 || p.CorrectAnswerID >= optionCount {
		return fmt.Errorf("correct_answer_id %d out of range [0,%d]", p.CorrectAnswerID, optionCount-1)
	}
	return nil
}
