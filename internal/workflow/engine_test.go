package workflow

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragflow/internal/chunker"
	"ragflow/internal/embedding"
	"ragflow/internal/index"
)

// pad right-pads a sentence to exactly n runes so chunk boundaries land
// where the test expects them.
func pad(s string, n int) string {
	for len(s) < n {
		s += " "
	}
	return s[:n]
}

// threeSegmentText yields exactly three segments with chunk size 100 and
// overlap 0.1 (step 90). The name Moriarty sits fully inside segment 1.
func threeSegmentText() string {
	p0 := pad("The city slept under heavy fog while the detective waited for news in the dark streets.", 90)
	p1 := pad("A sinister Moriarty ruled each dark corner of crime in the old city and showed no mercy.", 90)
	p2 := pad("At dawn an answer came and the long chase across the rooftops finally began in earnest.", 90)
	return p0 + p1 + p2
}

func newTestEngine(opts Options) *Engine {
	return New(
		chunker.NewWindowChunker(100, 0.1),
		embedding.NewTFIDF(),
		index.NewMemory(),
		nil,
		opts,
	)
}

func TestEngine_DirectBranchEndToEnd(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	count, err := e.Ingest(ctx, threeSegmentText(), map[string]string{"title": "test"})
	require.NoError(t, err)
	require.Equal(t, 3, count)

	answer, err := e.Ask(ctx, "Who is Moriarty?")
	require.NoError(t, err)

	assert.NotEmpty(t, answer.Answer)
	assert.Contains(t, answer.Answer, "Moriarty")
	require.NotEmpty(t, answer.Sources)
	// the answer lives in the second segment (seq 1), which must rank first
	assert.True(t, strings.HasSuffix(answer.Sources[0], ":1"), "top source should be segment 1, got %v", answer.Sources)
	assert.Equal(t, []Stage{StageRetrieve, StageClassify, StageRespondDirect, StageAggregate}, answer.Trace)
	assert.NotContains(t, answer.Trace, StageRespondReflective)
}

func TestEngine_ReflectiveBranchEndToEnd(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	_, err := e.Ingest(ctx, threeSegmentText(), nil)
	require.NoError(t, err)

	answer, err := e.Ask(ctx, "Why did Moriarty act that way?")
	require.NoError(t, err)

	assert.Equal(t, []Stage{StageRetrieve, StageClassify, StageRespondReflective, StageAggregate}, answer.Trace)
	assert.NotContains(t, answer.Trace, StageRespondDirect)
	assert.Contains(t, answer.Answer, "Why did Moriarty act that way?")
}

func TestEngine_AskBeforeIngest(t *testing.T) {
	e := newTestEngine(Options{})

	answer, err := e.Ask(context.Background(), "Who is Moriarty?")
	require.NoError(t, err)

	assert.Contains(t, answer.Answer, "Insufficient information")
	assert.Empty(t, answer.Sources)
	assert.Equal(t, []Stage{StageRetrieve, StageClassify, StageRespondDirect, StageAggregate}, answer.Trace)
}

func TestEngine_ReingestAppends(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	first, err := e.Ingest(ctx, threeSegmentText(), nil)
	require.NoError(t, err)
	second, err := e.Ingest(ctx, threeSegmentText(), nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first+second, e.index.Len())
}

func TestEngine_EmptyDocument(t *testing.T) {
	e := newTestEngine(Options{})
	count, err := e.Ingest(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEngine_CancelledContext(t *testing.T) {
	e := newTestEngine(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Ask(ctx, "Who is Moriarty?")
	assert.ErrorIs(t, err, context.Canceled)
}

// recordingObserver captures stage events for assertions.
type recordingObserver struct {
	events []StageEvent
}

func (r *recordingObserver) StageCompleted(event StageEvent) {
	r.events = append(r.events, event)
}

func TestEngine_ObserverSeesEveryStage(t *testing.T) {
	obs := &recordingObserver{}
	e := newTestEngine(Options{Observer: obs})
	ctx := context.Background()

	_, err := e.Ingest(ctx, threeSegmentText(), nil)
	require.NoError(t, err)
	_, err = e.Ask(ctx, "Who is Moriarty?")
	require.NoError(t, err)

	require.Len(t, obs.events, 4)
	var stages []Stage
	for _, ev := range obs.events {
		assert.NoError(t, ev.Err)
		stages = append(stages, ev.Stage)
	}
	assert.Equal(t, []Stage{StageRetrieve, StageClassify, StageRespondDirect, StageAggregate}, stages)
}

func TestEngine_CorpusSummary(t *testing.T) {
	e := newTestEngine(Options{})
	assert.Empty(t, e.CorpusSummary(3))

	_, err := e.Ingest(context.Background(), "Holmes solved the case. Watson wrote it down.", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, e.CorpusSummary(3))
}
