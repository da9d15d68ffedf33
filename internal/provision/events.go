package provision

import (
	"time"

	"github.com/alexisbeaulieu97/keysmith/internal/domain/pipeline"
)

// StatusRunning marks a step that has started but not finished.
const StatusRunning pipeline.ResultStatus = "running"

// Event reports step progress to an observer.
type Event struct {
	StepID   string
	Name     string
	Index    int
	Total    int
	Status   pipeline.ResultStatus
	Duration time.Duration
	Message  string
	Err      error
}

// Observer receives progress events on the goroutine running the steps.
type Observer func(Event)
