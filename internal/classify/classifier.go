// Package classify assigns question-type categories to free-text questions
// and routes each category to a response branch.
package classify

import (
	"regexp"
	"strings"
)

// Category is the question type assigned by the classifier.
type Category int

// Categories in precedence order. The classifier checks them in this declared
// order and the first category whose keyword set intersects the question
// wins, so deep-analysis categories must come before the entity-oriented
// ones: "Why did the character act that way?" is a reasoning question even
// though it mentions a character. CategoryGeneral is the catch-all and always
// matches.
const (
	CategoryReasoning Category = iota
	CategoryThematic
	CategoryCharacter
	CategoryDescription
	CategoryLocation
	CategoryProcess
	CategorySummary
	CategoryGeneral
)

// String returns the category's wire name.
func (c Category) String() string {
	switch c {
	case CategoryReasoning:
		return "REASONING_QUESTION"
	case CategoryThematic:
		return "THEMATIC_ANALYSIS"
	case CategoryCharacter:
		return "CHARACTER_IDENTIFICATION"
	case CategoryDescription:
		return "DESCRIPTION_REQUEST"
	case CategoryLocation:
		return "LOCATION_INQUIRY"
	case CategoryProcess:
		return "PROCESS_QUESTION"
	case CategorySummary:
		return "SUMMARY_REQUEST"
	default:
		return "GENERAL_QUESTION"
	}
}

// Analysis returns a one-line description of what the category asks for,
// used in the aggregated answer.
func (c Category) Analysis() string {
	switch c {
	case CategoryReasoning:
		return "This question needs deep reasoning about causes and motives."
	case CategoryThematic:
		return "This question asks about meaning, themes or significance."
	case CategoryCharacter:
		return "This question asks about people or characters."
	case CategoryDescription:
		return "This question wants a description or explanation of something."
	case CategoryLocation:
		return "This question is about places or settings."
	case CategoryProcess:
		return "This question asks how something happens or works."
	case CategorySummary:
		return "This question wants a summary or overview."
	default:
		return "This is a general question about the corpus."
	}
}

// rule binds a category to its keyword set. Precedence is the slice order;
// keyword sets are data, not branching code.
type rule struct {
	category Category
	keywords []string
}

var rules = []rule{
	{CategoryReasoning, []string{"why", "reason", "because", "purpose"}},
	{CategoryThematic, []string{"analyze", "analyse", "meaning", "significance", "interpret", "theme", "symbolism"}},
	{CategoryCharacter, []string{"who", "character", "person"}},
	{CategoryDescription, []string{"what", "describe", "explain"}},
	{CategoryLocation, []string{"where", "place", "location", "setting"}},
	{CategoryProcess, []string{"how", "method", "way", "process"}},
	{CategorySummary, []string{"summarize", "summarise", "summary", "overview"}},
}

var wordPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// Classify assigns a category to a question by first-match keyword
// intersection over the case-folded question tokens. It is total: a question
// matching no keyword set is CategoryGeneral.
func Classify(question string) Category {
	tokens := make(map[string]struct{})
	for _, t := range wordPattern.FindAllString(strings.ToLower(question), -1) {
		tokens[t] = struct{}{}
	}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if _, ok := tokens[kw]; ok {
				return r.category
			}
		}
	}
	return CategoryGeneral
}
