package responder_test

import (
	"context"

	"github.com/growthgenius/engagebot/internal/model"
)

type mockClassifier struct {
	analyzeFn func(ctx context.Context, text string) (model.Analysis, error)
}

func (m *mockClassifier) Analyze(ctx context.Context, text string) (model.Analysis, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, text)
	}
	return model.Analysis{
		Intent:         "simple_inquiry",
		Confidence:     0.9,
		Sentiment:      model.SentimentPositive,
		SentimentScore: 0.95,
		Complexity:     model.ComplexitySimple,
	}, nil
}

type mockGenerator struct {
	completeFn func(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

func (m *mockGenerator) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, prompt, maxTokens, temperature)
	}
	return "generated response", nil
}

func (m *mockGenerator) Model() string {
	return "mock"
}

type mockInteractionStore struct {
	createFn     func(ctx context.Context, interaction *model.Interaction) error
	listRecentFn func(ctx context.Context, userID string, limit int32) ([]model.Interaction, error)

	created []model.Interaction
}

func (m *mockInteractionStore) Create(ctx context.Context, interaction *model.Interaction) error {
	if m.createFn != nil {
		return m.createFn(ctx, interaction)
	}
	m.created = append(m.created, *interaction)
	return nil
}

func (m *mockInteractionStore) ListRecent(ctx context.Context, userID string, limit int32) ([]model.Interaction, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, userID, limit)
	}
	return nil, nil
}
