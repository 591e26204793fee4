package studio

import (
	"fmt"
	"strings"
)

// suggestionKeywords are the prompt themes that trigger tailored hints.
var suggestionKeywords = []string{"mumbai", "travel", "food", "startup", "diwali", "kerala"}

// Suggest returns editing hints for a draft prompt. Known theme keywords get
// a tailored lighting hint; anything else gets generic guidance. Prompts too
// short to analyze, or sessions that already have a blueprint, get nothing.
func Suggest(prompt string, hasBlueprint bool) []string {
	if hasBlueprint || len(prompt) <= 5 {
		return nil
	}

	lower := strings.ToLower(prompt)
	var out []string
	for _, kw := range suggestionKeywords {
		if strings.Contains(lower, kw) {
			out = append(out, fmt.Sprintf("Add more %s specific lighting...", kw))
		}
	}
	if len(out) == 0 {
		return []string{"Try adding camera movement...", "Mention a subject..."}
	}
	return out
}
