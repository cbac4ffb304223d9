package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		question string
		want     Category
	}{
		{"Who is the main character?", CategoryCharacter},
		{"Why did the character act that way?", CategoryReasoning},
		{"What is the meaning of the deerstalker hat?", CategoryThematic},
		{"Describe the room Holmes sat in.", CategoryDescription},
		{"Where does the story take place?", CategoryLocation},
		{"How does Holmes solve cases?", CategoryProcess},
		{"Give me a summary of the story.", CategorySummary},
		{"Tell me something interesting.", CategoryGeneral},
		{"", CategoryGeneral},
	}
	for _, tc := range cases {
		t.Run(tc.question, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.question))
		})
	}
}

// Precedence is part of the contract: reasoning keywords outrank the entity
// categories even when both match.
func TestClassify_Precedence(t *testing.T) {
	assert.Equal(t, CategoryReasoning, Classify("Why is the person doing this?"))
	assert.Equal(t, CategoryThematic, Classify("Interpret what the character says."))
	assert.Equal(t, CategoryCharacter, Classify("Who can explain where this is?"))
}

func TestClassify_CaseFolding(t *testing.T) {
	assert.Equal(t, CategoryCharacter, Classify("WHO IS WATSON?"))
	assert.Equal(t, CategorySummary, Classify("SUMMARIZE the plot"))
}

// The catch-all makes an unclassifiable question impossible by construction.
func TestClassify_Total(t *testing.T) {
	for _, q := range []string{"xyzzy", "42", "...", "la la la"} {
		assert.Equal(t, CategoryGeneral, Classify(q))
	}
}

func TestRoute(t *testing.T) {
	assert.Equal(t, BranchReflective, Route(CategoryReasoning))
	assert.Equal(t, BranchReflective, Route(CategoryThematic))
	assert.Equal(t, BranchDirect, Route(CategoryCharacter))
	assert.Equal(t, BranchDirect, Route(CategoryDescription))
	assert.Equal(t, BranchDirect, Route(CategoryLocation))
	assert.Equal(t, BranchDirect, Route(CategoryProcess))
	assert.Equal(t, BranchDirect, Route(CategorySummary))
	assert.Equal(t, BranchDirect, Route(CategoryGeneral))
}
