package nlu

import (
	"fmt"

	"sentiment-analyzer/internal/domain/entity"
)

// AnalysisError describes why a single analysis call failed.
// It never leaves the package: Analyze converts it to a failed entity.SentimentResult.
type AnalysisError struct {
	Category   entity.FailureCategory
	StatusCode int // set for entity.FailureHTTPStatus
	Err        error
}

func (e *AnalysisError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("sentiment analysis failed (%s, status %d): %v", e.Category, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("sentiment analysis failed (%s): %v", e.Category, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

func newError(category entity.FailureCategory, err error) *AnalysisError {
	return &AnalysisError{Category: category, Err: err}
}
