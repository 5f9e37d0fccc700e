package responder

import (
	"regexp"
	"strings"
)

// PersonaName is the assistant's public persona. The prompt introduces the
// model under this name, and models tend to echo it back as a speaker label.
const PersonaName = "GrowthGenius"

// selfRefPattern matches persona name tokens the model may prepend to its own
// output, with or without a trailing colon. Examples: "GrowthGenius:", "Bot: ".
var selfRefPattern = regexp.MustCompile(`\b(` + PersonaName + `|Bot):?`)

// stripSelfReferences removes self-referential name tokens from generated
// text before it is sent to a user.
func stripSelfReferences(text string) string {
	return strings.TrimSpace(selfRefPattern.ReplaceAllString(text, ""))
}
