package assessment

import (
	"errors"
	"fmt"
)

// Domain-specific errors for the assessment package.
var (
	ErrEmptyInput             = errors.New("input text is empty")
	ErrNoAssessmentsExtracted = errors.New("no assessments extracted from input")
	ErrNothingToSave          = errors.New("no assessments to save")
)

// Extraction failure stages.
const (
	StageRequest  = "request"  // transport or non-success status
	StageEmpty    = "empty"    // reply carried no textual payload
	StageParse    = "parse"    // payload was not valid JSON after fence stripping
	StageContract = "contract" // parsed JSON lacked the assessments array
)

// ExtractionError means the language model did not produce usable data.
// The orchestrator treats every stage uniformly; Stage exists for logs.
type ExtractionError struct {
	Stage string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed at %s: %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// IsExtractionError reports whether err is (or wraps) an ExtractionError.
func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}
