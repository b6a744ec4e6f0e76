package repository

import (
	"context"
	"time"

	"coding_challenge_api/internal/model"

	"github.com/Masterminds/squirrel"
)

type challengeRow struct {
	ID              int64     `db:"id"`
	Difficulty      string    `db:"difficulty"`
	Title           string    `db:"title"`
	Options         string    `db:"options"`
	CorrectAnswerID int       `db:"correct_answer_id"`
	Explanation     string    `db:"explanation"`
	CreatedBy       string    `db:"created_by"`
	CreatedAt       time.Time `db:"created_at"`
}

// GetUserChallenges returns the user's generation history, newest first.
// Options stay in their storage encoding; callers decode through
// model.DecodeOptions.
func (r *Repository) GetUserChallenges(ctx context.Context, userID string) ([]*model.Challenge, error) {
	query, args, err := squirrel.
		Select("id", "difficulty", "title", "options", "correct_answer_id",
			"explanation", "created_by", "created_at").
		From("challenges").
		Where(squirrel.Eq{"created_by": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []challengeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	challenges := make([]*model.Challenge, 0, len(rows))
	for _, row := range rows {
		challenges = append(challenges, &model.Challenge{
			ID:              row.ID,
			Difficulty:      model.Difficulty(row.Difficulty),
			Title:           row.Title,
			Options:         row.Options,
			CorrectAnswerID: row.CorrectAnswerID,
			Explanation:     row.Explanation,
			CreatedBy:       row.CreatedBy,
			CreatedAt:       row.CreatedAt,
		})
	}

	return challenges, nil
}
