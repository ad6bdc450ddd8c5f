// Package entity defines the domain values shared by the sentiment analyzer layers.
package entity

// FailureCategory classifies why a sentiment analysis produced no classification.
type FailureCategory string

const (
	// FailureUnknown is the category of a zero SentimentResult.
	FailureUnknown FailureCategory = "unknown"
	// FailureConfiguration means the upstream endpoint or credentials are missing.
	FailureConfiguration FailureCategory = "configuration"
	// FailureConnection covers refused connections, DNS failures and other transport errors.
	FailureConnection FailureCategory = "connection"
	// FailureTimeout means the upstream did not answer within the configured timeout.
	FailureTimeout FailureCategory = "timeout"
	// FailureHTTPStatus means the upstream answered with a non-2xx status.
	FailureHTTPStatus FailureCategory = "http_status"
	// FailureParse means the upstream body lacked the expected sentiment fields.
	FailureParse FailureCategory = "parse"
)

// String returns the category name used in logs and metric labels.
func (c FailureCategory) String() string {
	return string(c)
}

// Sentiment is a document-level classification.
//
// Score is the magnitude of the upstream score expressed as a percentage in [0, 100].
type Sentiment struct {
	Label string
	Score float64
}

// SentimentResult is the outcome of one analysis: either a Sentiment or a FailureCategory,
// never both and never neither.
//
// The zero value is a failure with FailureUnknown.
type SentimentResult struct {
	ok        bool
	sentiment Sentiment
	failure   FailureCategory
}

// Succeeded returns a successful result carrying label and score.
func Succeeded(label string, score float64) SentimentResult {
	return SentimentResult{
		ok:        true,
		sentiment: Sentiment{Label: label, Score: score},
	}
}

// Failed returns a failed result for the given category.
func Failed(category FailureCategory) SentimentResult {
	if category == "" {
		category = FailureUnknown
	}
	return SentimentResult{failure: category}
}

// OK reports whether the result carries a classification.
func (r SentimentResult) OK() bool {
	return r.ok
}

// Sentiment returns the classification and true, or a zero Sentiment and false on failure.
func (r SentimentResult) Sentiment() (Sentiment, bool) {
	if !r.ok {
		return Sentiment{}, false
	}
	return r.sentiment, true
}

// Failure returns the failure category and true, or "" and false on success.
func (r SentimentResult) Failure() (FailureCategory, bool) {
	if r.ok {
		return "", false
	}
	if r.failure == "" {
		return FailureUnknown, true
	}
	return r.failure, true
}

// Outcome is the metric and log label for the result: "success" or the failure category.
func (r SentimentResult) Outcome() string {
	if category, failed := r.Failure(); failed {
		return category.String()
	}
	return "success"
}
