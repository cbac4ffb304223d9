// Package respond composes answers over retrieved context. The direct
// responder applies category-specific templates; the reflective responder
// produces an elaborative analysis, optionally delegating to a language
// model.
package respond

import (
	"fmt"
	"strings"
	"unicode"

	"ragflow/internal/classify"
	"ragflow/internal/summarizer"
)

// InsufficientContext is the answer both responders give when retrieval
// produced no context. It is an explicit signal, never a fabricated answer.
const InsufficientContext = "Insufficient information: no indexed corpus content is relevant to this question."

// Direct composes answers for the direct branch using deterministic
// category-specific templates.
type Direct struct {
	summarizer *summarizer.Frequency
}

// NewDirect creates the direct responder.
func NewDirect() *Direct {
	return &Direct{summarizer: summarizer.NewFrequency()}
}

// Respond produces an answer for the given category over the retrieved
// context. Empty context always yields the insufficient-information answer.
func (d *Direct) Respond(category classify.Category, contextText string) string {
	if strings.TrimSpace(contextText) == "" {
		return InsufficientContext
	}
	switch category {
	case classify.CategoryCharacter:
		return d.characterAnswer(contextText)
	case classify.CategoryDescription:
		return fmt.Sprintf("Description: %s\n\nThis passage provides the context most directly related to your question.", excerpt(contextText, 300))
	case classify.CategoryLocation:
		return fmt.Sprintf("Setting: the events take place in the world described here:\n\n%s", excerpt(contextText, 250))
	case classify.CategorySummary:
		return fmt.Sprintf("Summary: %s", d.summarizer.Summarize(contextText, 3))
	default:
		return fmt.Sprintf("Based on the corpus, here is what is most relevant to your question:\n\n%s", excerpt(contextText, 300))
	}
}

func (d *Direct) characterAnswer(contextText string) string {
	names := candidateNames(contextText)
	if len(names) == 0 {
		return "Character analysis: the text discusses several characters whose roles and relationships are central to the narrative."
	}
	if len(names) == 1 {
		return fmt.Sprintf("Character analysis: the main character appears to be %s.", names[0])
	}
	return fmt.Sprintf("Character analysis: the main character appears to be %s; also mentioned: %s.",
		names[0], strings.Join(names[1:], ", "))
}

// candidateNames extracts title-case words as candidate character names,
// preserving first-appearance order and capping the list.
func candidateNames(text string) []string {
	skip := map[string]struct{}{
		"The": {}, "A": {}, "An": {}, "And": {}, "But": {}, "He": {}, "She": {},
		"It": {}, "They": {}, "We": {}, "You": {}, "I": {}, "His": {}, "Her": {},
		"This": {}, "That": {}, "Then": {}, "There": {}, "When": {}, "What": {},
	}
	seen := make(map[string]struct{})
	var names []string
	for _, w := range strings.Fields(text) {
		w = strings.Trim(w, ".,!?;:\"'“”‘’()")
		if len(w) < 3 || !isTitleCaseWord(w) {
			continue
		}
		if _, ok := skip[w]; ok {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		names = append(names, w)
		if len(names) == 5 {
			break
		}
	}
	return names
}

func isTitleCaseWord(w string) bool {
	for i, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
		if i == 0 && !unicode.IsUpper(r) {
			return false
		}
		if i > 0 && !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// excerpt truncates text to at most n runes, at a word boundary when close.
func excerpt(text string, n int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	cut := string(runes[:n])
	if i := strings.LastIndexByte(cut, ' '); i > n/2 {
		cut = cut[:i]
	}
	return cut + "…"
}
