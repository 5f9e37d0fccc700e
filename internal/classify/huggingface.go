package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/growthgenius/engagebot/core/config"
	"github.com/growthgenius/engagebot/internal/model"
)

// hypothesisTemplate steers the zero-shot model toward topic classification.
const hypothesisTemplate = "This message is about {}."

type huggingFaceClassifier struct {
	cfg        config.ClassifyConfig
	intents    []string
	httpClient *http.Client
}

// NewHuggingFaceClassifier returns a Classifier backed by the HuggingFace
// Inference API: a zero-shot model ranks the candidate intents and a sentiment
// model scores polarity. intents must list every label the responder's intent
// table knows.
func NewHuggingFaceClassifier(cfg config.ClassifyConfig, intents []string) Classifier {
	return &huggingFaceClassifier{
		cfg:     cfg,
		intents: intents,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels    []string `json:"candidate_labels"`
	HypothesisTemplate string   `json:"hypothesis_template"`
}

type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

type sentimentRequest struct {
	Inputs string `json:"inputs"`
}

type sentimentScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (c *huggingFaceClassifier) Analyze(ctx context.Context, text string) (model.Analysis, error) {
	var intent zeroShotResponse
	err := c.post(ctx, c.cfg.IntentModel, zeroShotRequest{
		Inputs: text,
		Parameters: zeroShotParameters{
			CandidateLabels:    c.intents,
			HypothesisTemplate: hypothesisTemplate,
		},
	}, &intent)
	if err != nil {
		return model.Analysis{}, fmt.Errorf("intent classification: %w", err)
	}
	if len(intent.Labels) == 0 || len(intent.Scores) == 0 {
		return model.Analysis{}, fmt.Errorf("intent classification returned no labels")
	}

	// The sentiment endpoint wraps its scores in an extra list level.
	var sentiments [][]sentimentScore
	if err := c.post(ctx, c.cfg.SentimentModel, sentimentRequest{Inputs: text}, &sentiments); err != nil {
		return model.Analysis{}, fmt.Errorf("sentiment analysis: %w", err)
	}
	if len(sentiments) == 0 || len(sentiments[0]) == 0 {
		return model.Analysis{}, fmt.Errorf("sentiment analysis returned no scores")
	}

	top := sentiments[0][0]
	for _, s := range sentiments[0][1:] {
		if s.Score > top.Score {
			top = s
		}
	}

	return model.Analysis{
		Intent:         intent.Labels[0],
		Confidence:     intent.Scores[0],
		Sentiment:      top.Label,
		SentimentScore: top.Score,
		Complexity:     ComplexityFor(text),
	}, nil
}

func (c *huggingFaceClassifier) post(ctx context.Context, modelName string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/"+modelName, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", modelName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("calling %s: unexpected status %d", modelName, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", modelName, err)
	}
	return nil
}
