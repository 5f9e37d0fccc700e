// Package instagram is the outbound Graph API collaborator: username lookup,
// direct messages, and public comment replies.
package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/growthgenius/engagebot/core/config"
)

// API is the outbound messaging boundary.
type API interface {
	// GetUsername resolves a username for logging, falling back to the raw ID.
	GetUsername(ctx context.Context, userID string) string
	SendMessage(ctx context.Context, recipientID, text string) error
	ReplyToComment(ctx context.Context, commentID, text string) error
}

// IdentitySource reports the account ID currently known as "self".
type IdentitySource interface {
	CurrentID() string
}

type client struct {
	cfg        config.InstagramConfig
	self       IdentitySource
	httpClient *http.Client
}

// NewClient returns an API bound to the Graph endpoint in cfg. self is
// consulted on every send so messages to the bot's own account are dropped.
func NewClient(cfg config.InstagramConfig, self IdentitySource) API {
	return &client{
		cfg:  cfg,
		self: self,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *client) GetUsername(ctx context.Context, userID string) string {
	endpoint := fmt.Sprintf("%s/%s?%s", c.cfg.APIBaseURL, userID, url.Values{
		"fields":       {"username"},
		"access_token": {c.cfg.AccessToken},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return userID
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "username lookup failed", "user_id", userID, "error", err)
		return userID
	}
	defer resp.Body.Close()

	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Username == "" {
		return userID
	}
	return body.Username
}

func (c *client) SendMessage(ctx context.Context, recipientID, text string) error {
	if recipientID == c.self.CurrentID() {
		slog.InfoContext(ctx, "ignoring DM to own account id")
		return nil
	}

	payload := map[string]any{
		"recipient": map[string]string{"id": recipientID},
		"message":   map[string]string{"text": text},
	}
	if err := c.post(ctx, c.cfg.APIBaseURL+"/me/messages", payload); err != nil {
		return fmt.Errorf("sending message to %s: %w", recipientID, err)
	}

	slog.InfoContext(ctx, "sent direct message", "recipient_id", recipientID)
	return nil
}

func (c *client) ReplyToComment(ctx context.Context, commentID, text string) error {
	payload := map[string]string{"message": text}
	if err := c.post(ctx, c.cfg.APIBaseURL+"/"+commentID+"/replies", payload); err != nil {
		return fmt.Errorf("replying to comment %s: %w", commentID, err)
	}

	slog.InfoContext(ctx, "replied to comment", "comment_id", commentID)
	return nil
}

// apiError is the Graph error envelope.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (c *client) post(ctx context.Context, endpoint string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		endpoint+"?"+url.Values{"access_token": {c.cfg.AccessToken}}.Encode(),
		bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling graph api: %w", err)
	}
	defer resp.Body.Close()

	var envelope apiError
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
		return fmt.Errorf("graph api error: %s (code %d)", envelope.Error.Message, envelope.Error.Code)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("graph api status %d", resp.StatusCode)
	}
	return nil
}
