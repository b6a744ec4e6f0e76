package mocks

import (
	"context"

	"coding_challenge_api/internal/challengegen"
	"coding_challenge_api/internal/model"
	"coding_challenge_api/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockChallengeRepository struct {
	mock.Mock

	// Session is handed to the WithQuotaLock callback when set.
	Session *MockQuotaSession
}

func (m *MockChallengeRepository) GetQuota(ctx context.Context, userID string) (*model.ChallengeQuota, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChallengeQuota), args.Error(1)
}

func (m *MockChallengeRepository) CreateQuota(ctx context.Context, userID string) (*model.ChallengeQuota, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChallengeQuota), args.Error(1)
}

func (m *MockChallengeRepository) ResetQuotaIfDue(ctx context.Context, userID string) (*model.ChallengeQuota, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChallengeQuota), args.Error(1)
}

// WithQuotaLock mimics the transactional contract: the callback error wins
// (rollback), otherwise the configured return value applies (commit).
func (m *MockChallengeRepository) WithQuotaLock(ctx context.Context, userID string, fn func(repository.QuotaSession) error) error {
	args := m.Called(ctx, userID)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(m.Session)
}

func (m *MockChallengeRepository) GetUserChallenges(ctx context.Context, userID string) ([]*model.Challenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Challenge), args.Error(1)
}

type MockQuotaSession struct {
	mock.Mock
}

func (m *MockQuotaSession) ResetIfDue(ctx context.Context) (*model.ChallengeQuota, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChallengeQuota), args.Error(1)
}

func (m *MockQuotaSession) InsertChallenge(ctx context.Context, ch *model.Challenge) (*model.Challenge, error) {
	args := m.Called(ctx, ch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockQuotaSession) DecrementQuota(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockChallengeService struct {
	mock.Mock
}

func (m *MockChallengeService) GenerateChallenge(ctx context.Context, userID string, difficulty model.Difficulty) (*model.Challenge, error) {
	args := m.Called(ctx, userID, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockChallengeService) GetHistory(ctx context.Context, userID string) ([]*model.Challenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Challenge), args.Error(1)
}

func (m *MockChallengeService) GetQuota(ctx context.Context, userID string) (*model.ChallengeQuota, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChallengeQuota), args.Error(1)
}

func (m *MockChallengeService) ProvisionUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, difficulty model.Difficulty) (*challengegen.Payload, error) {
	args := m.Called(ctx, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*challengegen.Payload), args.Error(1)
}
