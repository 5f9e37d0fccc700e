package responder

// IntentConfig is fixed response policy for one intent: a token budget sizing
// the reply and a closing call-to-action the prompt steers toward.
type IntentConfig struct {
	MaxTokens int
	CTA       string
}

// intentConfigs is policy data, not tuning: the four entries are the product's
// engagement playbook and change only with it.
var intentConfigs = map[string]IntentConfig{
	"simple_inquiry": {
		MaxTokens: 80,
		CTA:       "Feel free to ask more details!",
	},
	"business_advice": {
		MaxTokens: 150,
		CTA:       "Want me to elaborate on any specific strategy?",
	},
	"technical_help": {
		MaxTokens: 120,
		CTA:       "Need more technical details? Just ask!",
	},
	"motivational": {
		MaxTokens: 100,
		CTA:       "Ready to take the next step?",
	},
}

// IntentLabels returns the candidate labels for zero-shot classification, in
// stable order.
func IntentLabels() []string {
	return []string{"simple_inquiry", "business_advice", "technical_help", "motivational"}
}

// configFor resolves policy for an intent, defaulting to simple_inquiry for
// labels the table does not know.
func configFor(intent string) IntentConfig {
	if cfg, ok := intentConfigs[intent]; ok {
		return cfg
	}
	return intentConfigs["simple_inquiry"]
}
