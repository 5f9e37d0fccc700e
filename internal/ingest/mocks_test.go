package ingest_test

import (
	"context"
	"sync"

	"github.com/growthgenius/engagebot/internal/model"
)

type generateCall struct {
	UserID string
	Text   string
	Kind   model.ChannelKind
}

type mockResponder struct {
	mu         sync.Mutex
	generateFn func(ctx context.Context, userID, text string, kind model.ChannelKind) string
	calls      []generateCall
}

func (m *mockResponder) Generate(ctx context.Context, userID, text string, kind model.ChannelKind) string {
	m.mu.Lock()
	m.calls = append(m.calls, generateCall{UserID: userID, Text: text, Kind: kind})
	m.mu.Unlock()

	if m.generateFn != nil {
		return m.generateFn(ctx, userID, text, kind)
	}
	return "generated: " + text
}

func (m *mockResponder) Calls() []generateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generateCall(nil), m.calls...)
}

type outboundCall struct {
	Target string
	Text   string
}

type mockInstagramAPI struct {
	mu       sync.Mutex
	sendFn   func(ctx context.Context, recipientID, text string) error
	replyFn  func(ctx context.Context, commentID, text string) error
	messages []outboundCall
	replies  []outboundCall
}

func (m *mockInstagramAPI) GetUsername(_ context.Context, userID string) string {
	return "user_" + userID
}

func (m *mockInstagramAPI) SendMessage(ctx context.Context, recipientID, text string) error {
	m.mu.Lock()
	m.messages = append(m.messages, outboundCall{Target: recipientID, Text: text})
	m.mu.Unlock()

	if m.sendFn != nil {
		return m.sendFn(ctx, recipientID, text)
	}
	return nil
}

func (m *mockInstagramAPI) ReplyToComment(ctx context.Context, commentID, text string) error {
	m.mu.Lock()
	m.replies = append(m.replies, outboundCall{Target: commentID, Text: text})
	m.mu.Unlock()

	if m.replyFn != nil {
		return m.replyFn(ctx, commentID, text)
	}
	return nil
}

func (m *mockInstagramAPI) Messages() []outboundCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]outboundCall(nil), m.messages...)
}

func (m *mockInstagramAPI) Replies() []outboundCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]outboundCall(nil), m.replies...)
}
