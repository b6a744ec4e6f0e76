package challengegen

import (
	"context"

	"coding_challenge_api/internal/llm"
	"coding_challenge_api/internal/model"

	"github.com/pkg/errors"
)

// Config tunes the generation request.
type Config struct {
	MaxTokens   int     `yaml:"maxTokens"`
	Temperature float64 `yaml:"temperature"`
}

func (c Config) withDefaults() Config {
	if c.MaxTokens == 0 {
		c.MaxTokens = 1024
	}
	if c.Temperature == 0 {
		c.Temperature = 0.7
	}
	return c
}

// Generator adapts an llm.Provider into the challenge payload contract.
// It does not retry: a failed attempt surfaces immediately so the caller
// can abort without charging quota.
type Generator struct {
	provider llm.Provider
	config   Config
}

func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg.withDefaults()}
}

// Generate produces one multiple-choice challenge at the given difficulty.
// Any failure is wrapped in ErrGenerationFailed.
func (g *Generator) Generate(ctx context.Context, difficulty model.Difficulty) (*Payload, error) {
	req := llm.Request{
		System:      systemPrompt,
		User:        userPrompt(difficulty),
		Schema:      ChallengeSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		// Schema-invalid output still may contain a usable object buried
		// in prose; try the recovery parser before giving up.
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) {
			if p, rerr := recoverPayload(invalid.Content); rerr == nil {
				return p, nil
			}
		}
		return nil, errors.Wrapf(ErrGenerationFailed, "provider error: %v", err)
	}

	if resp.StopReason != llm.StopEnd {
		return nil, errors.Wrapf(ErrGenerationFailed, "completion stopped early: %s", resp.StopReason)
	}

	payload, err := parsePayload(resp.Content)
	if err != nil {
		return nil, errors.Wrapf(ErrGenerationFailed, "unusable model output: %v", err)
	}

	return payload, nil
}
