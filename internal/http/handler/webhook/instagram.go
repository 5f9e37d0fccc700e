package webhook

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growthgenius/engagebot/internal/model"
)

// EventRouter dispatches a decoded webhook envelope; routing never fails, it
// logs and drops what it cannot process.
type EventRouter interface {
	Route(ctx context.Context, envelope model.Envelope)
}

type InstagramWebhookHandler struct {
	router      EventRouter
	verifyToken string
}

func NewInstagramWebhookHandler(router EventRouter, verifyToken string) *InstagramWebhookHandler {
	return &InstagramWebhookHandler{
		router:      router,
		verifyToken: verifyToken,
	}
}

// Verify implements the subscription handshake: the platform calls with a
// mode, the shared verify token, and a challenge to echo back.
func (h *InstagramWebhookHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "" || token == "" {
		c.String(http.StatusBadRequest, "Missing parameters")
		return
	}

	if mode != "subscribe" || token != h.verifyToken {
		slog.WarnContext(c.Request.Context(), "webhook verification failed: token mismatch")
		c.String(http.StatusForbidden, "Verification token mismatch")
		return
	}

	slog.InfoContext(c.Request.Context(), "webhook verified successfully")
	c.String(http.StatusOK, challenge)
}

// HandleEvent decodes the delivery envelope and hands it to the event router.
// The platform retries non-200 responses, so routing problems are absorbed
// downstream and this endpoint answers 200 for any well-formed payload.
func (h *InstagramWebhookHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()

	var envelope model.Envelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		slog.WarnContext(ctx, "invalid webhook payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	slog.DebugContext(ctx, "received webhook event", "object", envelope.Object, "entries", len(envelope.Entries))

	h.router.Route(ctx, envelope)

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
