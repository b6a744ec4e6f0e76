package service

import (
	"context"
	"errors"
	"time"

	"coding_challenge_api/internal/model"
	"coding_challenge_api/internal/repository"
)

type ChallengeService struct {
	repo      ChallengeRepository
	generator Generator
}

func NewChallengeService(repo ChallengeRepository, generator Generator) *ChallengeService {
	return &ChallengeService{
		repo:      repo,
		generator: generator,
	}
}

// GenerateChallenge runs the whole generation transaction for one request:
// ensure a quota record exists, then, under the user's quota lock, apply
// the daily reset, check remaining quota, generate and validate the payload,
// persist the challenge and decrement the quota. The insert and the
// decrement commit together; any failure after the quota check rolls back
// and leaves the quota exactly as it was, so a user never pays for a failed
// generation.
func (s *ChallengeService) GenerateChallenge(ctx context.Context, userID string, difficulty model.Difficulty) (*model.Challenge, error) {
	if !difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}

	if err := s.ensureQuotaRecord(ctx, userID); err != nil {
		return nil, err
	}

	var created *model.Challenge
	err := s.repo.WithQuotaLock(ctx, userID, func(qs repository.QuotaSession) error {
		quota, err := qs.ResetIfDue(ctx)
		if err != nil {
			return err
		}

		if quota.QuotaRemaining <= 0 {
			return ErrQuotaExhausted
		}

		// Quota is debited only after a valid payload exists; a generator
		// failure aborts here with nothing to roll forward.
		payload, err := s.generator.Generate(ctx, difficulty)
		if err != nil {
			return err
		}

		encoded, err := model.EncodeOptions(payload.Options)
		if err != nil {
			return err
		}

		created, err = qs.InsertChallenge(ctx, &model.Challenge{
			Difficulty:      difficulty,
			Title:           payload.Title,
			Options:         encoded,
			CorrectAnswerID: payload.CorrectAnswerID,
			Explanation:     payload.Explanation,
			CreatedBy:       userID,
		})
		if err != nil {
			return err
		}

		return qs.DecrementQuota(ctx)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *ChallengeService) GetHistory(ctx context.Context, userID string) ([]*model.Challenge, error) {
	return s.repo.GetUserChallenges(ctx, userID)
}

// GetQuota returns the user's quota after applying any due daily reset.
// A user with no record yet gets a synthetic zeroed one; nothing is
// persisted until provisioning or the first generation attempt.
func (s *ChallengeService) GetQuota(ctx context.Context, userID string) (*model.ChallengeQuota, error) {
	_, err := s.repo.GetQuota(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &model.ChallengeQuota{
				UserID:         userID,
				QuotaRemaining: 0,
				LastResetDate:  time.Now(),
			}, nil
		}
		return nil, err
	}

	return s.repo.ResetQuotaIfDue(ctx, userID)
}

// ProvisionUser seeds the initial quota record when the identity provider
// reports a new account. Webhooks get redelivered, so an existing record
// is not an error.
func (s *ChallengeService) ProvisionUser(ctx context.Context, userID string) error {
	_, err := s.repo.CreateQuota(ctx, userID)
	if errors.Is(err, repository.ErrDuplicateUser) {
		return nil
	}
	return err
}

func (s *ChallengeService) ensureQuotaRecord(ctx context.Context, userID string) error {
	_, err := s.repo.GetQuota(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	_, err = s.repo.CreateQuota(ctx, userID)
	if errors.Is(err, repository.ErrDuplicateUser) {
		// Another request for the same new user won the create race.
		return nil
	}
	return err
}
