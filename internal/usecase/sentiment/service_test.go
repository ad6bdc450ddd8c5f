package sentiment_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentiment-analyzer/internal/domain/entity"
	sentimentUC "sentiment-analyzer/internal/usecase/sentiment"
)

// stubAnalyzer returns a fixed result and counts calls.
type stubAnalyzer struct {
	result entity.SentimentResult
	calls  atomic.Int32
	text   string
}

func (s *stubAnalyzer) Analyze(_ context.Context, text string) entity.SentimentResult {
	s.calls.Add(1)
	s.text = text
	return s.result
}

func TestService_Analyze_BlankInput(t *testing.T) {
	for _, text := range []string{"", " ", "\t\n  "} {
		t.Run("blank", func(t *testing.T) {
			stub := &stubAnalyzer{result: entity.Succeeded("positive", 90)}
			svc := &sentimentUC.Service{Analyzer: stub}

			_, err := svc.Analyze(context.Background(), text)

			require.Error(t, err)
			assert.True(t, errors.Is(err, entity.ErrInvalidInput))
			var vErr *entity.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, entity.TextField, vErr.Field)
			assert.Equal(t, int32(0), stub.calls.Load(), "analyzer must not be called for blank input")
		})
	}
}

func TestService_Analyze_Success(t *testing.T) {
	stub := &stubAnalyzer{result: entity.Succeeded("SENT_POSITIVE", 87.5)}
	svc := &sentimentUC.Service{Analyzer: stub}

	result, err := svc.Analyze(context.Background(), "  I am happy  ")

	require.NoError(t, err)
	sentiment, ok := result.Sentiment()
	require.True(t, ok)
	assert.Equal(t, entity.Sentiment{Label: "positive", Score: 87.5}, sentiment)
	assert.Equal(t, "  I am happy  ", stub.text, "text is forwarded unmodified")
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestService_Analyze_FailurePassesThrough(t *testing.T) {
	stub := &stubAnalyzer{result: entity.Failed(entity.FailureTimeout)}
	svc := &sentimentUC.Service{Analyzer: stub}

	result, err := svc.Analyze(context.Background(), "hello")

	require.NoError(t, err)
	category, failed := result.Failure()
	require.True(t, failed)
	assert.Equal(t, entity.FailureTimeout, category)
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SENT_NEGATIVE", "negative"},
		{"sent_positive", "positive"},
		{"A_B_NEUTRAL", "neutral"},
		{"neutral", "neutral"},
		{"POSITIVE", "positive"},
		{"SENT_", "sent_"},
		{"_", "_"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, sentimentUC.FormatLabel(tt.in))
			})
		})
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "50.00", sentimentUC.FormatScore(50))
	assert.Equal(t, "91.24", sentimentUC.FormatScore(91.2363))
	assert.Equal(t, "0.00", sentimentUC.FormatScore(0))
	assert.Equal(t, "100.00", sentimentUC.FormatScore(100))
}
