// Package responder orchestrates response generation: classification, context
// assembly, the generation call, output sanitizing, and interaction recording.
package responder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/growthgenius/engagebot/common/id"
	"github.com/growthgenius/engagebot/internal/classify"
	"github.com/growthgenius/engagebot/internal/llm"
	"github.com/growthgenius/engagebot/internal/model"
	"github.com/growthgenius/engagebot/internal/store"
)

// FallbackResponse is returned whenever generation cannot complete. The reply
// path stays available under collaborator failure at the cost of a generic
// answer.
const FallbackResponse = "Let's continue this conversation! How can I assist you further?"

const (
	// historyLimit is the context contract: the last five interactions feed
	// context assembly.
	historyLimit = 5
	// promptExchanges is how many of those appear verbatim in the prompt.
	promptExchanges = 2

	temperatureSimple   = 0.3
	temperatureDetailed = 0.7
)

// Responder generates context-aware responses. Generate is total: every
// internal failure degrades to a default or the fallback text.
type Responder struct {
	classifier   classify.Classifier
	generator    llm.Client
	interactions store.InteractionStore
	logger       *slog.Logger
}

func New(classifier classify.Classifier, generator llm.Client, interactions store.InteractionStore, logger *slog.Logger) *Responder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Responder{
		classifier:   classifier,
		generator:    generator,
		interactions: interactions,
		logger:       logger,
	}
}

// Generate produces a response for one inbound message and records the
// exchange. Classification failures degrade to the default analysis,
// generation failures to FallbackResponse; an interaction record is written on
// every path so history stays complete.
func (r *Responder) Generate(ctx context.Context, userID, text string, kind model.ChannelKind) string {
	analysis, err := r.classifier.Analyze(ctx, text)
	if err != nil {
		r.logger.WarnContext(ctx, "classification failed, using default analysis", "error", err)
		analysis = classify.DefaultAnalysis()
	}

	intentCfg := configFor(analysis.Intent)

	history, err := r.interactions.ListRecent(ctx, userID, historyLimit)
	if err != nil {
		r.logger.WarnContext(ctx, "history fetch failed, continuing without context", "error", err)
		history = nil
	}

	prompt := buildPrompt(text, analysis, history, intentCfg)

	temperature := temperatureSimple
	if analysis.Complexity == model.ComplexityDetailed {
		temperature = temperatureDetailed
	}

	response, err := r.generator.Complete(ctx, prompt, intentCfg.MaxTokens, temperature)
	if err != nil {
		r.logger.ErrorContext(ctx, "generation failed, using fallback response", "error", err)
		response = FallbackResponse
	} else {
		response = stripSelfReferences(response)
	}

	r.record(ctx, userID, kind, text, response)

	return response
}

func (r *Responder) record(ctx context.Context, userID string, kind model.ChannelKind, text, response string) {
	err := r.interactions.Create(ctx, &model.Interaction{
		ID:           id.New(),
		UserID:       userID,
		ChannelKind:  kind,
		MessageText:  text,
		ResponseText: response,
	})
	if err != nil {
		// Losing one history row must not block delivery of the response.
		r.logger.ErrorContext(ctx, "failed to record interaction", "error", err)
	}
}

func buildPrompt(text string, analysis model.Analysis, history []model.Interaction, intentCfg IntentConfig) string {
	length := "Detailed"
	if analysis.Complexity == model.ComplexitySimple {
		length = "Brief (1-2 sentences)"
	}

	tone := "Supportive"
	if analysis.Sentiment == model.SentimentPositive {
		tone = "Encouraging"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You're %s, an AI business advisor. Respond to this %s query:\n\n", PersonaName, analysis.Complexity)
	fmt.Fprintf(&b, "User Message: %s\n\n", text)
	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- Intent: %s (%.0f%% confidence)\n", analysis.Intent, analysis.Confidence*100)
	fmt.Fprintf(&b, "- Sentiment: %s (%.0f%% intensity)\n", analysis.Sentiment, analysis.SentimentScore*100)
	fmt.Fprintf(&b, "- History:\n%s\n", formatHistory(history))
	b.WriteString("\nResponse Guidelines:\n")
	fmt.Fprintf(&b, "- Length: %s\n", length)
	fmt.Fprintf(&b, "- Tone: %s\n", tone)
	fmt.Fprintf(&b, "- Focus: %s\n", intentCfg.CTA)

	return b.String()
}

// formatHistory renders the most recent prior exchanges, newest first as the
// store returns them.
func formatHistory(history []model.Interaction) string {
	if len(history) == 0 {
		return "No previous interaction"
	}

	n := promptExchanges
	if len(history) < n {
		n = len(history)
	}

	var b strings.Builder
	for i, it := range history[:n] {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "User: %s\nAssistant: %s", it.MessageText, it.ResponseText)
	}
	return b.String()
}
