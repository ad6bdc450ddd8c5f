// Package sentiment holds the analyze use case: input validation, the call to
// the upstream analyzer and the display normalization of its answer.
package sentiment

import (
	"context"
	"fmt"
	"strings"

	"sentiment-analyzer/internal/domain/entity"
)

// Analyzer classifies text. Implementations report failures through the
// returned result rather than an error.
type Analyzer interface {
	Analyze(ctx context.Context, text string) entity.SentimentResult
}

// Service provides the sentiment analysis use case.
type Service struct {
	Analyzer Analyzer
}

// Analyze validates text and, if it is not blank, asks the analyzer to classify it.
// The only error returned is a *entity.ValidationError; upstream failures are
// carried by the result. A successful result has its label normalized by FormatLabel.
func (s *Service) Analyze(ctx context.Context, text string) (entity.SentimentResult, error) {
	if err := entity.ValidateText(text); err != nil {
		return entity.SentimentResult{}, fmt.Errorf("validate text: %w", err)
	}

	result := s.Analyzer.Analyze(ctx, text)
	sentiment, ok := result.Sentiment()
	if !ok {
		return result, nil
	}
	return entity.Succeeded(FormatLabel(sentiment.Label), sentiment.Score), nil
}

// FormatLabel lower-cases label and keeps the part after the last underscore,
// so "SENT_NEGATIVE" becomes "negative". Labels without an underscore, or whose
// suffix would be empty, are only lower-cased.
func FormatLabel(label string) string {
	lower := strings.ToLower(strings.TrimSpace(label))
	i := strings.LastIndexByte(lower, '_')
	if i < 0 || i == len(lower)-1 {
		return lower
	}
	return lower[i+1:]
}

// FormatScore renders a percentage score with two decimals.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}
