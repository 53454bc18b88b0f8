package booking

import "fmt"

// EngineError is a typed failure from the booking engine.
type EngineError struct {
	Code    string
	Message string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewSessionError reports a missing or expired session.
func NewSessionError(msg string) error {
	return &EngineError{Code: "sessionError", Message: msg}
}

// NewStepError reports an operation attempted from the wrong wizard step.
func NewStepError(msg string) error {
	return &EngineError{Code: "stepError", Message: msg}
}

// NewSelectionError reports an invalid service or payment-method selection.
func NewSelectionError(msg string) error {
	return &EngineError{Code: "selectionError", Message: msg}
}

// SubmissionError carries the upstream booking API's message so the caller
// can show it verbatim. The session is never mutated on submission failure.
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string {
	if e.Message == "" {
		return "booking submission failed, please try again"
	}
	return e.Message
}
