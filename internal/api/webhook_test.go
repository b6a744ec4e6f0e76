package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"coding_challenge_api/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	svix "github.com/svix/svix-webhooks/go"
)

const testWebhookSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

func newWebhookRouter(cs *mocks.MockChallengeService, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewWebhookRoutes(router.Group("/api/v1"), cs, secret)
	return router
}

func signWebhookHeaders(t *testing.T, req *http.Request, payload []byte) {
	t.Helper()

	wh, err := svix.NewWebhook(testWebhookSecret)
	assert.NoError(t, err)

	msgID := "msg_test"
	ts := time.Now()
	signature, err := wh.Sign(msgID, ts, payload)
	assert.NoError(t, err)

	req.Header.Set("svix-id", msgID)
	req.Header.Set("svix-timestamp", strconv.FormatInt(ts.Unix(), 10))
	req.Header.Set("svix-signature", signature)
}

func TestClerkWebhook_UserCreated(t *testing.T) {
	cs := &mocks.MockChallengeService{}
	cs.On("ProvisionUser", mock.Anything, "user_2new").Return(nil)

	router := newWebhookRouter(cs, testWebhookSecret)

	payload := []byte(`{"type":"user.created","data":{"id":"user_2new"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/clerk", bytes.NewReader(payload))
	signWebhookHeaders(t, req, payload)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success"}`, w.Body.String())
	cs.AssertExpectations(t)
}

func TestClerkWebhook_OtherEventTypesIgnored(t *testing.T) {
	cs := &mocks.MockChallengeService{}
	router := newWebhookRouter(cs, testWebhookSecret)

	payload := []byte(`{"type":"user.updated","data":{"id":"user_2new"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/clerk", bytes.NewReader(payload))
	signWebhookHeaders(t, req, payload)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ignored"}`, w.Body.String())
	cs.AssertNotCalled(t, "ProvisionUser", mock.Anything, mock.Anything)
}

func TestClerkWebhook_TamperedBody(t *testing.T) {
	cs := &mocks.MockChallengeService{}
	router := newWebhookRouter(cs, testWebhookSecret)

	// Sign one body, deliver another: the stale signature must not verify.
	signed := []byte(`{"type":"user.created","data":{"id":"user_2new"}}`)
	tampered := []byte(`{"type":"user.created","data":{"id":"user_attacker"}}`)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/clerk", bytes.NewReader(tampered))
	signWebhookHeaders(t, req, signed)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	cs.AssertNotCalled(t, "ProvisionUser", mock.Anything, mock.Anything)
}

func TestClerkWebhook_MissingSignatureHeaders(t *testing.T) {
	cs := &mocks.MockChallengeService{}
	router := newWebhookRouter(cs, testWebhookSecret)

	payload := []byte(`{"type":"user.created","data":{"id":"user_2new"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/clerk", bytes.NewReader(payload))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	cs.AssertNotCalled(t, "ProvisionUser", mock.Anything, mock.Anything)
}

func TestClerkWebhook_SecretUnconfigured(t *testing.T) {
	cs := &mocks.MockChallengeService{}
	router := newWebhookRouter(cs, "")

	payload := []byte(`{"type":"user.created","data":{"id":"user_2new"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/clerk", bytes.NewReader(payload))
	signWebhookHeaders(t, req, payload)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	cs.AssertNotCalled(t, "ProvisionUser", mock.Anything, mock.Anything)
}

func TestClerkWebhook_MissingUserID(t *testing.T) {
	cs := &mocks.MockChallengeService{}
	router := newWebhookRouter(cs, testWebhookSecret)

	payload := []byte(`{"type":"user.created","data":{}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/clerk", bytes.NewReader(payload))
	signWebhookHeaders(t, req, payload)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	cs.AssertNotCalled(t, "ProvisionUser", mock.Anything, mock.Anything)
}
