package challengegen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"coding_challenge_api/internal/llm"
	"coding_challenge_api/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestGeneratorSuccess(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(wellFormed),
	})
	g := New(provider, Config{})

	p, err := g.Generate(context.Background(), model.DifficultyEasy)
	assert.NoError(t, err)
	assert.Len(t, p.Options, 4)

	assert.Len(t, provider.Calls, 1)
	req := provider.Calls[0]
	assert.Equal(t, ChallengeSchema, req.Schema)
	assert.Contains(t, req.User, "easy")
	assert.Contains(t, req.System, "expert coding challenge creator")
}

func TestGeneratorProviderError(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	g := New(provider, Config{})

	_, err := g.Generate(context.Background(), model.DifficultyMedium)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGeneratorRecoversFromSchemaInvalidOutput(t *testing.T) {
	// The provider rejects the output against the schema, but a usable
	// object is buried in the prose it carries along.
	raw := "Here you go:\n" + wellFormed
	provider := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{
			Content: json.RawMessage(raw),
			Err:     errors.New("invalid JSON"),
		},
	})
	g := New(provider, Config{})

	p, err := g.Generate(context.Background(), model.DifficultyHard)
	assert.NoError(t, err)
	assert.Equal(t, 1, p.CorrectAnswerID)
}

func TestGeneratorUnrecoverableInvalidOutput(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{
			Content: json.RawMessage("no json here"),
			Err:     errors.New("invalid JSON"),
		},
	})
	g := New(provider, Config{})

	_, err := g.Generate(context.Background(), model.DifficultyEasy)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGeneratorTruncatedCompletion(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{
		Content:    json.RawMessage(`{"title": "cut of`),
		StopReason: llm.StopMaxTokens,
	})
	g := New(provider, Config{})

	_, err := g.Generate(context.Background(), model.DifficultyEasy)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGeneratorEmptyCompletion(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(""),
	})
	g := New(provider, Config{})

	_, err := g.Generate(context.Background(), model.DifficultyEasy)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGeneratorDoesNotRetry(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Content: json.RawMessage(wellFormed)},
	)
	g := New(provider, Config{})

	_, err := g.Generate(context.Background(), model.DifficultyEasy)
	assert.Error(t, err)
	assert.Len(t, provider.Calls, 1)
}
