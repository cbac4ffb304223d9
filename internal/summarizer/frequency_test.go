package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sample = "Holmes examined the case. Watson read the newspaper. " +
	"The case puzzled Holmes greatly. The weather was dull. " +
	"Holmes announced the case was solved."

func TestFrequency_LimitsSentences(t *testing.T) {
	out := NewFrequency().Summarize(sample, 2)
	assert.Equal(t, 2, strings.Count(out, "."))
}

func TestFrequency_KeepsOriginalOrder(t *testing.T) {
	out := NewFrequency().Summarize(sample, 3)
	first := strings.Index(out, "Holmes examined")
	last := strings.Index(out, "solved")
	if first >= 0 && last >= 0 {
		assert.Less(t, first, last)
	}
}

func TestFrequency_NoSentencePunctuation(t *testing.T) {
	assert.Equal(t, "just a fragment", NewFrequency().Summarize("  just a fragment  ", 3))
}

func TestFrequency_MaxLargerThanText(t *testing.T) {
	out := NewFrequency().Summarize("One. Two.", 10)
	assert.Contains(t, out, "One.")
	assert.Contains(t, out, "Two.")
}
