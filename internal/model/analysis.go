package model

// Complexity is a coarse classification of inbound text length, used to size
// the generated response.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityDetailed Complexity = "detailed"
)

// Sentiment labels as emitted by the sentiment model.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
)

// Analysis is the per-message classification result. It is ephemeral: derived
// for one inbound message, used to parameterize the single generation call,
// never persisted.
type Analysis struct {
	Intent         string
	Confidence     float64
	Sentiment      string
	SentimentScore float64
	Complexity     Complexity
}
