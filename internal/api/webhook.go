package api

import (
	"net/http"

	"coding_challenge_api/internal/service"
	"coding_challenge_api/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	svix "github.com/svix/svix-webhooks/go"
)

type webhookRoutes struct {
	cs     service.ChallengeServiceI
	secret string
}

// NewWebhookRoutes registers the identity provider's event endpoint.
// The secret is the shared svix signing secret; unset disables the
// endpoint (requests get 400, nothing is mutated).
func NewWebhookRoutes(handler *gin.RouterGroup, cs service.ChallengeServiceI, secret string) {
	r := &webhookRoutes{cs: cs, secret: secret}
	handler.POST("/webhooks/clerk", r.HandleClerkEvent)
}

type clerkEvent struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (r *webhookRoutes) HandleClerkEvent(c *gin.Context) {
	log := logger.Logger()

	if r.secret == "" {
		log.Error("webhook secret not configured")
		c.JSON(http.StatusBadRequest, gin.H{"error": "webhook not configured"})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		log.Error("failed to read webhook body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	wh, err := svix.NewWebhook(r.secret)
	if err != nil {
		log.Error("failed to construct webhook verifier", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "webhook not configured"})
		return
	}

	// Signature covers the raw body; any tampering or replay outside the
	// tolerance window fails here and nothing is mutated.
	if err := wh.Verify(body, c.Request.Header); err != nil {
		log.Error("webhook verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook signature"})
		return
	}

	var event clerkEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Error("failed to parse webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if event.Type != "user.created" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if event.Data.ID == "" {
		log.Error("user.created event without user id")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user id"})
		return
	}

	if err := r.cs.ProvisionUser(c.Request.Context(), event.Data.ID); err != nil {
		log.Error("failed to provision user quota",
			zap.String("user_id", event.Data.ID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to provision user"})
		return
	}

	log.Info("provisioned quota for new user", zap.String("user_id", event.Data.ID))
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
