// Package workflow owns the query workflow: a small directed graph of
// processing stages sharing one per-run state record, with a single
// conditional transition choosing between the direct and reflective
// response branches.
package workflow

import "ragflow/internal/classify"

// Stage names the processing stages a run can execute. Stage names appear in
// the run trace in execution order.
type Stage string

const (
	StageRetrieve          Stage = "retrieve"
	StageClassify          Stage = "classify"
	StageRespondDirect     Stage = "respond_direct"
	StageRespondReflective Stage = "respond_reflective"
	StageAggregate         Stage = "aggregate"

	// stageEnd is the terminal sentinel; it never appears in a trace.
	stageEnd Stage = ""
)

// QueryState is the single mutable record threaded through one workflow run.
// Fields are populated monotonically: each is written once by its owning
// stage and read-only afterwards. A state is never shared across runs.
type QueryState struct {
	// Question is set at run start and read-only thereafter.
	Question string

	// RetrievedContext and Sources are written by the retrieve stage.
	RetrievedContext string
	Sources          []string

	// Category is written by the classify stage.
	Category classify.Category

	// Branch is written by the router decision, exactly once per run,
	// immediately after classification.
	Branch classify.Branch

	// Exactly one of DirectAnswer/ReflectiveAnswer is populated per run,
	// selected by Branch.
	DirectAnswer     string
	ReflectiveAnswer string

	// Trace records the stages executed, in order.
	Trace []Stage

	// FinalAnswer is written by the aggregate stage; terminal.
	FinalAnswer string
}

// Answer is the result of one completed workflow run.
type Answer struct {
	Answer  string
	Sources []string
	Trace   []Stage
}
