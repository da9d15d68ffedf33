package pipeline

import "time"

// ResultStatus represents the status of an executed step.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusFailure ResultStatus = "failure"
	StatusSkipped ResultStatus = "skipped"
	// StatusUnverified marks a verification the operator chose to continue past.
	StatusUnverified ResultStatus = "unverified"
	// StatusCancelled marks the step during which the operator cancelled.
	StatusCancelled ResultStatus = "cancelled"
)

// StepResult captures the outcome of a step execution.
type StepResult struct {
	StepID   string
	Status   ResultStatus
	Duration time.Duration
	Message  string
	Error    error
}

// IsSuccess returns true when the step let the pipeline move on.
func (r StepResult) IsSuccess() bool {
	return r.Status == StatusSuccess || r.Status == StatusSkipped || r.Status == StatusUnverified
}

// IsFailure returns true when the step failed.
func (r StepResult) IsFailure() bool {
	return r.Status == StatusFailure
}

// FormatOutput returns a human-readable summary of the result.
func (r StepResult) FormatOutput() string {
	if r.Error != nil {
		return r.Error.Error()
	}
	return r.Message
}
