package model

import "time"

// DefaultDailyQuota is the number of generations a user gets per calendar day.
const DefaultDailyQuota = 15

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Challenge is an immutable generated multiple-choice question.
// Options holds the storage encoding (canonical JSON array for new rows,
// see EncodeOptions/DecodeOptions for the legacy forms accepted on read).
type Challenge struct {
	ID              int64
	Difficulty      Difficulty
	Title           string
	Options         string
	CorrectAnswerID int
	Explanation     string
	CreatedBy       string
	CreatedAt       time.Time
}

// ChallengeQuota tracks how many generations a user has left today.
// QuotaRemaining stays within [0, DefaultDailyQuota].
type ChallengeQuota struct {
	UserID         string
	QuotaRemaining int
	LastResetDate  time.Time
}

// ResetDue reports whether the daily refill applies: the quota is a
// calendar-day bucket, not a rolling 24h window.
func (q *ChallengeQuota) ResetDue(now time.Time) bool {
	ly, lm, ld := q.LastResetDate.Local().Date()
	ny, nm, nd := now.Local().Date()
	return ly != ny || lm != nm || ld != nd
}
