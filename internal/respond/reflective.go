package respond

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"ragflow/internal/classify"
	"ragflow/internal/domain"
	"ragflow/internal/logger"
)

// Reflective composes answers for the reflective branch. When a Generator is
// configured, composition is delegated to it with bounded-backoff retry;
// without one, a deterministic analytical template is used.
type Reflective struct {
	generator domain.Generator
	attempts  uint
	log       *logger.Logger
}

// NewReflective creates the reflective responder. generator may be nil.
func NewReflective(generator domain.Generator) *Reflective {
	return &Reflective{generator: generator, attempts: 3, log: logger.New("respond.reflective")}
}

// Respond produces an elaborative answer for the question over the retrieved
// context. Empty context always yields the insufficient-information answer.
// Generation failures are retried with bounded backoff here, not by the
// orchestrator; exhausted retries surface as a run-level failure.
func (r *Reflective) Respond(ctx context.Context, question, contextText string, category classify.Category) (string, error) {
	if strings.TrimSpace(contextText) == "" {
		return InsufficientContext, nil
	}
	if r.generator == nil {
		return r.templateAnswer(question, contextText, category), nil
	}
	prompt := buildPrompt(question, contextText, category)
	var answer string
	err := retry.Do(
		func() error {
			var genErr error
			answer, genErr = r.generator.Complete(ctx, prompt)
			return genErr
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(func(err error) bool { return errors.Is(err, domain.ErrGenerationUnavailable) }),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			r.log.WithFields(map[string]any{"attempt": n + 1, "error": err.Error()}).Warn("generation retry")
		}),
	)
	if err != nil {
		return "", fmt.Errorf("reflective generation: %w", err)
	}
	return answer, nil
}

func (r *Reflective) templateAnswer(question, contextText string, category classify.Category) string {
	var sb strings.Builder
	sb.WriteString("Deep analysis\n\n")
	fmt.Fprintf(&sb, "Question: %s\n\n", question)
	fmt.Fprintf(&sb, "Angle: %s\n\n", category.Analysis())
	fmt.Fprintf(&sb, "Key passages:\n%s\n\n", excerpt(contextText, 400))
	sb.WriteString("Reflection: the answer involves both the literal events and their significance within the broader narrative; the passages above carry the evidence for that reading.")
	return sb.String()
}

func buildPrompt(question, contextText string, category classify.Category) string {
	var sb strings.Builder
	sb.WriteString("Answer the question using only the context below. ")
	sb.WriteString("Give a thoughtful, analytical answer. ")
	fmt.Fprintf(&sb, "The question type is %s.\n\nContext:\n%s\n\nQuestion: %s", category, contextText, question)
	return sb.String()
}
