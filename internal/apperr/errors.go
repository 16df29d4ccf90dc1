package apperr

import "fmt"

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// ThresholdError reports a hard-labeling threshold outside [0, 1].
type ThresholdError struct {
	Threshold float64
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("threshold %v is outside [0, 1]", e.Threshold)
}

func NewInvalidThreshold(threshold float64) *ThresholdError {
	return &ThresholdError{Threshold: threshold}
}

// ScoringUnavailableError means the NLI scoring service could not be
// reached or failed internally. Retrying is the caller's call; the core
// never retries on its own.
type ScoringUnavailableError struct {
	Message string
	Err     error
}

func (e *ScoringUnavailableError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ScoringUnavailableError) Unwrap() error {
	return e.Err
}

func NewScoringUnavailable(msg string, err error) *ScoringUnavailableError {
	return &ScoringUnavailableError{Message: msg, Err: err}
}

// InputTooLongError means a (premise, hypothesis) pair exceeds the
// scoring service's maximum input length. The caller decides whether to
// truncate upstream or skip the document.
type InputTooLongError struct {
	InputChars int
	MaxChars   int
}

func (e *InputTooLongError) Error() string {
	if e.MaxChars > 0 {
		return fmt.Sprintf("input of %d chars exceeds the service limit of %d", e.InputChars, e.MaxChars)
	}
	return "input exceeds the service maximum length"
}

func NewInputTooLong(inputChars, maxChars int) *InputTooLongError {
	return &InputTooLongError{InputChars: inputChars, MaxChars: maxChars}
}
