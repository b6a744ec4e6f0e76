package api

import (
	"errors"
	"net/http"
	"time"

	"coding_challenge_api/internal/challengegen"
	"coding_challenge_api/internal/model"
	"coding_challenge_api/internal/service"
	"coding_challenge_api/pkg/auth"
	"coding_challenge_api/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type challengeRoutes struct {
	cs service.ChallengeServiceI
	a  *auth.TokenAuth
}

func NewChallengeRoutes(handler *gin.RouterGroup, cs service.ChallengeServiceI, a *auth.TokenAuth) {
	r := &challengeRoutes{cs: cs, a: a}
	h := handler.Group("/challenges")
	h.Use(a.AuthMiddleware())
	{
		h.POST("/generate", r.GenerateChallenge)
		h.GET("/history", r.GetHistory)
		h.GET("/quota", r.GetQuota)
	}
}

type GenerateChallengeRequest struct {
	Difficulty string `json:"difficulty"`
}

type ChallengeResponse struct {
	ID              int64    `json:"id"`
	Difficulty      string   `json:"difficulty"`
	Title           string   `json:"title"`
	Options         []string `json:"options"`
	CorrectAnswerID int      `json:"correct_answer_id"`
	Explanation     string   `json:"explanation"`
	Timestamp       string   `json:"timestamp"`
}

type QuotaResponse struct {
	UserID         string    `json:"user_id"`
	QuotaRemaining int       `json:"quota_remaining"`
	LastResetDate  time.Time `json:"last_reset_date"`
}

func toChallengeResponse(ch *model.Challenge) ChallengeResponse {
	return ChallengeResponse{
		ID:              ch.ID,
		Difficulty:      string(ch.Difficulty),
		Title:           ch.Title,
		Options:         model.DecodeOptions(ch.Options),
		CorrectAnswerID: ch.CorrectAnswerID,
		Explanation:     ch.Explanation,
		Timestamp:       ch.CreatedAt.Format(time.RFC3339),
	}
}

func (r *challengeRoutes) GenerateChallenge(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req GenerateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	challenge, err := r.cs.GenerateChallenge(c.Request.Context(), userID, model.Difficulty(req.Difficulty))
	if err != nil {
		log.Error("failed to generate challenge",
			zap.String("user_id", userID),
			zap.String("difficulty", req.Difficulty),
			zap.Error(err))
		switch {
		case errors.Is(err, service.ErrInvalidDifficulty):
			c.JSON(http.StatusBadRequest, gin.H{"error": "difficulty must be easy, medium or hard"})
		case errors.Is(err, service.ErrQuotaExhausted):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Quota exhausted. Please try again later."})
		case errors.Is(err, challengegen.ErrGenerationFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate challenge"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create challenge"})
		}
		return
	}

	c.JSON(http.StatusOK, toChallengeResponse(challenge))
}

func (r *challengeRoutes) GetHistory(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	challenges, err := r.cs.GetHistory(c.Request.Context(), userID)
	if err != nil {
		log.Error("failed to get challenge history",
			zap.String("user_id", userID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get challenge history"})
		return
	}

	response := make([]ChallengeResponse, 0, len(challenges))
	for _, ch := range challenges {
		response = append(response, toChallengeResponse(ch))
	}

	c.JSON(http.StatusOK, gin.H{"challenges": response})
}

func (r *challengeRoutes) GetQuota(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	quota, err := r.cs.GetQuota(c.Request.Context(), userID)
	if err != nil {
		log.Error("failed to get quota",
			zap.String("user_id", userID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get quota"})
		return
	}

	c.JSON(http.StatusOK, QuotaResponse{
		UserID:         quota.UserID,
		QuotaRemaining: quota.QuotaRemaining,
		LastResetDate:  quota.LastResetDate,
	})
}
