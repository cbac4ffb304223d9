package classify

// Branch selects one of the two mutually exclusive response paths.
type Branch int

const (
	// BranchDirect composes an answer from category-specific templates.
	BranchDirect Branch = iota
	// BranchReflective composes a more elaborative, analytical answer.
	BranchReflective
)

// String returns the branch's wire name.
func (b Branch) String() string {
	if b == BranchReflective {
		return "reflective"
	}
	return "direct"
}

// reflectiveCategories is the deep-analysis set routed to the reflective
// branch. Everything else goes direct.
var reflectiveCategories = map[Category]struct{}{
	CategoryReasoning: {},
	CategoryThematic:  {},
}

// Route maps a category to its branch. Pure and total; evaluated exactly
// once per run, immediately after classification.
func Route(category Category) Branch {
	if _, ok := reflectiveCategories[category]; ok {
		return BranchReflective
	}
	return BranchDirect
}
