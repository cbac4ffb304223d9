package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ragflow/internal/classify"
	"ragflow/internal/domain"
	"ragflow/internal/logger"
	"ragflow/internal/respond"
	"ragflow/internal/retriever"
	"ragflow/internal/summarizer"
)

// stageFunc executes one stage against the run's state.
type stageFunc func(ctx context.Context, state *QueryState) error

// node binds a stage to its successor resolution. Most stages have a fixed
// successor; the classify stage resolves its successor through the router.
type node struct {
	run  stageFunc
	next func(state *QueryState) Stage
}

// Options tunes an Engine.
type Options struct {
	// TopK is the number of segments retrieved per question.
	TopK int
	// Observer receives stage transition events; nil disables observation.
	Observer Observer
}

func (o *Options) applyDefaults() {
	if o.TopK <= 0 {
		o.TopK = 3
	}
}

// Engine owns the stage graph and the ingestion path. One Engine serves many
// concurrent query runs; each run gets its own private QueryState. The only
// shared mutable resource is the vector index, which is read-mostly after
// ingestion.
type Engine struct {
	chunker    domain.Chunker
	embedder   domain.Embedder
	index      domain.VectorIndex
	retriever  *retriever.Retriever
	direct     *respond.Direct
	reflective *respond.Reflective
	summarizer *summarizer.Frequency
	observer   Observer
	graph      map[Stage]node
	topK       int

	ingestMu sync.Mutex
	prepared bool
	corpus   []string

	log *logger.Logger
}

// New assembles an engine over the given components. generator may be nil;
// the reflective branch then falls back to template composition.
func New(chunker domain.Chunker, embedder domain.Embedder, index domain.VectorIndex, generator domain.Generator, opts Options) *Engine {
	opts.applyDefaults()
	e := &Engine{
		chunker:    chunker,
		embedder:   embedder,
		index:      index,
		retriever:  retriever.New(embedder, index),
		direct:     respond.NewDirect(),
		reflective: respond.NewReflective(generator),
		summarizer: summarizer.NewFrequency(),
		observer:   opts.Observer,
		topK:       opts.TopK,
		log:        logger.New("workflow.engine"),
	}
	e.graph = map[Stage]node{
		StageRetrieve: {
			run:  e.retrieveStage,
			next: func(*QueryState) Stage { return StageClassify },
		},
		StageClassify: {
			run: e.classifyStage,
			// the single conditional transition: the router picks the branch
			next: func(state *QueryState) Stage {
				if state.Branch == classify.BranchReflective {
					return StageRespondReflective
				}
				return StageRespondDirect
			},
		},
		StageRespondDirect: {
			run:  e.respondDirectStage,
			next: func(*QueryState) Stage { return StageAggregate },
		},
		StageRespondReflective: {
			run:  e.respondReflectiveStage,
			next: func(*QueryState) Stage { return StageAggregate },
		},
		StageAggregate: {
			run:  e.aggregateStage,
			next: func(*QueryState) Stage { return stageEnd },
		},
	}
	return e
}

// Ask runs one query workflow from start to completion and returns the
// terminal state's answer. A failed stage aborts the run; the index and any
// concurrent runs are unaffected.
func (e *Engine) Ask(ctx context.Context, question string) (*Answer, error) {
	state := &QueryState{Question: question}
	for stage := StageRetrieve; stage != stageEnd; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, ok := e.graph[stage]
		if !ok {
			return nil, fmt.Errorf("unknown workflow stage %q", stage)
		}
		start := time.Now()
		err := n.run(ctx, state)
		if e.observer != nil {
			e.observer.StageCompleted(StageEvent{Stage: stage, Duration: time.Since(start), Err: err})
		}
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage, err)
		}
		state.Trace = append(state.Trace, stage)
		stage = n.next(state)
	}
	return &Answer{Answer: state.FinalAnswer, Sources: state.Sources, Trace: state.Trace}, nil
}

// Ingest chunks a document, embeds its segments and appends them to the
// index. Re-ingesting into a non-empty index strictly appends; there is no
// deduplication. Returns the number of segments indexed. Ingestion is
// serialized; queries should not start until ingestion has completed.
func (e *Engine) Ingest(ctx context.Context, text string, metadata map[string]string) (int, error) {
	e.ingestMu.Lock()
	defer e.ingestMu.Unlock()

	doc := domain.Document{ID: uuid.New().String(), Text: text, Metadata: metadata}
	segments := e.chunker.Split(doc)
	if len(segments) == 0 {
		return 0, nil
	}
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}
	// The embedder is prepared once, over the first ingested document's
	// segments. Later documents embed within the established vocabulary so
	// that previously indexed vectors stay comparable.
	if !e.prepared {
		if err := e.embedder.Prepare(texts); err != nil {
			return 0, fmt.Errorf("prepare embedder: %w", err)
		}
		e.prepared = true
	}
	for _, seg := range segments {
		vec, err := e.embedder.Embed(ctx, seg.Text)
		if err != nil {
			return 0, fmt.Errorf("embed segment %s: %w", seg.ID, err)
		}
		if err := e.index.Insert(seg, vec); err != nil {
			return 0, fmt.Errorf("index segment %s: %w", seg.ID, err)
		}
	}
	e.corpus = append(e.corpus, text)
	e.log.WithFields(map[string]any{"document": doc.ID, "segments": len(segments)}).Info("document ingested")
	return len(segments), nil
}

// CorpusSummary returns a short extractive summary of everything ingested.
func (e *Engine) CorpusSummary(maxSentences int) string {
	e.ingestMu.Lock()
	corpus := strings.Join(e.corpus, "\n")
	e.ingestMu.Unlock()
	if corpus == "" {
		return ""
	}
	return e.summarizer.Summarize(corpus, maxSentences)
}

func (e *Engine) retrieveStage(ctx context.Context, state *QueryState) error {
	result, err := e.retriever.Retrieve(ctx, state.Question, e.topK)
	if err != nil {
		return err
	}
	state.RetrievedContext = result.Context
	state.Sources = result.Sources
	return nil
}

func (e *Engine) classifyStage(_ context.Context, state *QueryState) error {
	state.Category = classify.Classify(state.Question)
	// the router runs exactly once, immediately after classification
	state.Branch = classify.Route(state.Category)
	return nil
}

func (e *Engine) respondDirectStage(_ context.Context, state *QueryState) error {
	state.DirectAnswer = e.direct.Respond(state.Category, state.RetrievedContext)
	return nil
}

func (e *Engine) respondReflectiveStage(ctx context.Context, state *QueryState) error {
	answer, err := e.reflective.Respond(ctx, state.Question, state.RetrievedContext, state.Category)
	if err != nil {
		return err
	}
	state.ReflectiveAnswer = answer
	return nil
}

// aggregateStage merges the stage outputs, in fixed order, into the final
// answer. Only one responder field is ever populated; its absence is normal,
// not an error.
func (e *Engine) aggregateStage(_ context.Context, state *QueryState) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Retrieval: %d relevant segments located.\n", len(state.Sources))
	fmt.Fprintf(&sb, "Classification: %s. %s\n\n", state.Category, state.Category.Analysis())
	switch {
	case state.DirectAnswer != "":
		sb.WriteString(state.DirectAnswer)
	case state.ReflectiveAnswer != "":
		sb.WriteString(state.ReflectiveAnswer)
	default:
		sb.WriteString(respond.InsufficientContext)
	}
	state.FinalAnswer = sb.String()
	return nil
}
