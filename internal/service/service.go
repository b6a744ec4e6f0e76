package service

import (
	"context"
	"errors"

	"coding_challenge_api/internal/challengegen"
	"coding_challenge_api/internal/model"
	"coding_challenge_api/internal/repository"
)

var (
	ErrInvalidDifficulty = errors.New("difficulty must be easy, medium or hard")
	ErrQuotaExhausted    = errors.New("challenge quota exhausted")
)

type ChallengeServiceI interface {
	GenerateChallenge(ctx context.Context, userID string, difficulty model.Difficulty) (*model.Challenge, error)
	GetHistory(ctx context.Context, userID string) ([]*model.Challenge, error)
	GetQuota(ctx context.Context, userID string) (*model.ChallengeQuota, error)
	ProvisionUser(ctx context.Context, userID string) error
}

type ChallengeRepository interface {
	GetQuota(ctx context.Context, userID string) (*model.ChallengeQuota, error)
	CreateQuota(ctx context.Context, userID string) (*model.ChallengeQuota, error)
	ResetQuotaIfDue(ctx context.Context, userID string) (*model.ChallengeQuota, error)
	WithQuotaLock(ctx context.Context, userID string, fn func(repository.QuotaSession) error) error
	GetUserChallenges(ctx context.Context, userID string) ([]*model.Challenge, error)
}

type Generator interface {
	Generate(ctx context.Context, difficulty model.Difficulty) (*challengegen.Payload, error)
}
