// Package classify derives intent, sentiment, and complexity for an inbound
// message. Classification is best-effort: callers substitute DefaultAnalysis
// when it fails, keeping the reply path available.
package classify

import (
	"context"
	"strings"

	"github.com/growthgenius/engagebot/internal/model"
)

// Classifier is the classification collaborator boundary.
type Classifier interface {
	Analyze(ctx context.Context, text string) (model.Analysis, error)
}

// DefaultAnalysis is the named safe default used when classification fails.
func DefaultAnalysis() model.Analysis {
	return model.Analysis{
		Intent:         "simple_inquiry",
		Confidence:     1.0,
		Sentiment:      model.SentimentPositive,
		SentimentScore: 1.0,
		Complexity:     model.ComplexitySimple,
	}
}

// simpleWordLimit is the word-count threshold between the simple and detailed
// complexity tiers.
const simpleWordLimit = 8

// ComplexityFor buckets text by word count.
func ComplexityFor(text string) model.Complexity {
	if len(strings.Fields(text)) <= simpleWordLimit {
		return model.ComplexitySimple
	}
	return model.ComplexityDetailed
}
