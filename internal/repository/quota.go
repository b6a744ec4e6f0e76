package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"coding_challenge_api/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type challengeQuota struct {
	UserID         string    `db:"user_id"`
	QuotaRemaining int       `db:"quota_remaining"`
	LastResetDate  time.Time `db:"last_reset_date"`
}

// QuotaSession exposes the operations that must share one transaction with
// the lock on the user's quota row: the daily reset, the challenge insert
// and the quota decrement commit or roll back as a unit.
type QuotaSession interface {
	ResetIfDue(ctx context.Context) (*model.ChallengeQuota, error)
	InsertChallenge(ctx context.Context, ch *model.Challenge) (*model.Challenge, error)
	DecrementQuota(ctx context.Context) error
}

// WithQuotaLock runs fn while holding a row-level lock on the user's quota
// record. Concurrent requests for the same user serialize here; requests
// for different users do not contend. fn returning an error rolls the
// whole transaction back.
func (r *Repository) WithQuotaLock(ctx context.Context, userID string, fn func(QuotaSession) error) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		quota, err := getQuotaTx(ctx, tx, userID, true)
		if err != nil {
			return err
		}
		return fn(&quotaSession{tx: tx, quota: quota})
	})
}

func (r *Repository) GetQuota(ctx context.Context, userID string) (*model.ChallengeQuota, error) {
	query, args, err := squirrel.
		Select("user_id", "quota_remaining", "last_reset_date").
		From("challenge_quotas").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var quota challengeQuota
	err = r.db.GetContext(ctx, &quota, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return toModelQuota(&quota), nil
}

// CreateQuota inserts the initial quota record for a user. The primary key
// on user_id guarantees at most one record per user; a concurrent or
// repeated create surfaces as ErrDuplicateUser.
func (r *Repository) CreateQuota(ctx context.Context, userID string) (*model.ChallengeQuota, error) {
	now := time.Now()

	query, args, err := squirrel.
		Insert("challenge_quotas").
		SetMap(map[string]interface{}{
			"user_id":         userID,
			"quota_remaining": model.DefaultDailyQuota,
			"last_reset_date": now,
		}).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrDuplicateUser
	}

	return &model.ChallengeQuota{
		UserID:         userID,
		QuotaRemaining: model.DefaultDailyQuota,
		LastResetDate:  now,
	}, nil
}

// ResetQuotaIfDue applies the calendar-day refill outside of a generation
// transaction (the GET /quota read path). It takes its own short lock so a
// concurrent generation cannot interleave with the reset.
func (r *Repository) ResetQuotaIfDue(ctx context.Context, userID string) (*model.ChallengeQuota, error) {
	var out *model.ChallengeQuota
	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		quota, err := getQuotaTx(ctx, tx, userID, true)
		if err != nil {
			return err
		}
		out, err = resetIfDueTx(ctx, tx, quota)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type quotaSession struct {
	tx    *sqlx.Tx
	quota *model.ChallengeQuota
}

func (s *quotaSession) ResetIfDue(ctx context.Context) (*model.ChallengeQuota, error) {
	quota, err := resetIfDueTx(ctx, s.tx, s.quota)
	if err != nil {
		return nil, err
	}
	s.quota = quota
	return quota, nil
}

func (s *quotaSession) InsertChallenge(ctx context.Context, ch *model.Challenge) (*model.Challenge, error) {
	query, args, err := squirrel.
		Insert("challenges").
		SetMap(map[string]interface{}{
			"difficulty":        string(ch.Difficulty),
			"title":             ch.Title,
			"options":           ch.Options,
			"correct_answer_id": ch.CorrectAnswerID,
			"explanation":       ch.Explanation,
			"created_by":        ch.CreatedBy,
		}).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	created := *ch
	err = s.tx.QueryRowxContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (s *quotaSession) DecrementQuota(ctx context.Context) error {
	query, args, err := squirrel.
		Update("challenge_quotas").
		Set("quota_remaining", squirrel.Expr("quota_remaining - 1")).
		Where(squirrel.Eq{"user_id": s.quota.UserID}).
		Where(squirrel.Gt{"quota_remaining": 0}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := s.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// The orchestrator checks remaining > 0 before generating; hitting
		// this means the check was skipped, and the guard keeps the count
		// from going negative.
		return ErrQuotaDepleted
	}

	s.quota.QuotaRemaining--
	return nil
}

func getQuotaTx(ctx context.Context, tx *sqlx.Tx, userID string, forUpdate bool) (*model.ChallengeQuota, error) {
	builder := squirrel.
		Select("user_id", "quota_remaining", "last_reset_date").
		From("challenge_quotas").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var quota challengeQuota
	err = tx.GetContext(ctx, &quota, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return toModelQuota(&quota), nil
}

func resetIfDueTx(ctx context.Context, tx *sqlx.Tx, quota *model.ChallengeQuota) (*model.ChallengeQuota, error) {
	now := time.Now()
	if !quota.ResetDue(now) {
		return quota, nil
	}

	query, args, err := squirrel.
		Update("challenge_quotas").
		SetMap(map[string]interface{}{
			"quota_remaining": model.DefaultDailyQuota,
			"last_reset_date": now,
		}).
		Where(squirrel.Eq{"user_id": quota.UserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}

	return &model.ChallengeQuota{
		UserID:         quota.UserID,
		QuotaRemaining: model.DefaultDailyQuota,
		LastResetDate:  now,
	}, nil
}

func toModelQuota(q *challengeQuota) *model.ChallengeQuota {
	return &model.ChallengeQuota{
		UserID:         q.UserID,
		QuotaRemaining: q.QuotaRemaining,
		LastResetDate:  q.LastResetDate,
	}
}
