package workflow

import (
	"time"

	"ragflow/internal/logger"
)

// StageEvent describes one completed stage transition.
type StageEvent struct {
	Stage    Stage
	Duration time.Duration
	Err      error
}

// Observer consumes stage transition events. Implementations must be cheap;
// they run inline on the workflow path.
type Observer interface {
	StageCompleted(event StageEvent)
}

// LogObserver logs stage transitions as structured events.
type LogObserver struct {
	log *logger.Logger
}

// NewLogObserver creates an observer logging through the workflow logger.
func NewLogObserver() *LogObserver {
	return &LogObserver{log: logger.New("workflow")}
}

// StageCompleted logs the stage name, duration and outcome.
func (o *LogObserver) StageCompleted(event StageEvent) {
	fields := map[string]any{
		"stage":       string(event.Stage),
		"duration_ms": event.Duration.Milliseconds(),
	}
	if event.Err != nil {
		fields["error"] = event.Err.Error()
		o.log.WithFields(fields).Error("stage failed")
		return
	}
	o.log.WithFields(fields).Info("stage completed")
}
