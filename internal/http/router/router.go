package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growthgenius/engagebot/internal/http/handler/webhook"
)

func SetupRoutes(router *gin.Engine, webhookHandler *webhook.InstagramWebhookHandler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<p>Instagram AI Bot is Running</p>"))
	})

	// Platform app review requires a reachable privacy policy URL.
	router.GET("/privacy_policy", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", privacyPolicy)
	})

	router.GET("/webhook", webhookHandler.Verify)
	router.POST("/webhook", webhookHandler.HandleEvent)
}

var privacyPolicy = []byte(`<!DOCTYPE html>
<html>
<head><title>Privacy Policy</title></head>
<body>
<h1>Privacy Policy</h1>
<p>This bot processes Instagram messages and comments solely to generate replies.
Message text and generated responses are stored to provide conversational context.
No data is shared with third parties beyond the AI providers used for generation.</p>
</body>
</html>`)
