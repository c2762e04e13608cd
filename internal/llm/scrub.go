package llm

import (
	"regexp"
	"strings"
)

// Some upstream models leak agent-loop artifacts into their replies:
// inline JSON objects like {"action": ...}, {"thought": ...} and
// {"action_input": ...}. The action_input pattern is non-greedy across
// newlines because those blocks span lines.
var scrubPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\{\s*"action":[^}]+\}`),
	regexp.MustCompile(`\{\s*"thought":[^}]+\}`),
	regexp.MustCompile(`(?s)\{\s*"action_input":.*?\}`),
}

// ScrubArtifacts strips agent-loop JSON fragments from an assistant reply
// and trims the surrounding whitespace they leave behind.
func ScrubArtifacts(content string) string {
	for _, re := range scrubPatterns {
		content = re.ReplaceAllString(content, "")
	}
	return strings.TrimSpace(content)
}
