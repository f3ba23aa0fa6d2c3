package services

import "fmt"

// ValidationError rejects a batch before any model invocation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ModelInvocationError is a run-level failure of the model capability.
type ModelInvocationError struct {
	Stage string
	Err   error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("model invocation failed during %s: %v", e.Stage, e.Err)
}

func (e *ModelInvocationError) Unwrap() error { return e.Err }

// CandidateEvaluationError is recorded against a single candidate and never aborts a run.
type CandidateEvaluationError struct {
	SourceID string
	Err      error
}

func (e *CandidateEvaluationError) Error() string {
	return fmt.Sprintf("candidate %s: %v", e.SourceID, e.Err)
}

func (e *CandidateEvaluationError) Unwrap() error { return e.Err }

// ExtractionError means the uploaded bytes could not be read as a PDF.
type ExtractionError struct {
	SourceID string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.SourceID, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
