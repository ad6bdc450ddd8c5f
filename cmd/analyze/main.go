// Package main provides a CLI command for analyzing the sentiment of one text.
// Usage: sentiment-analyze [--output text|json] [text...]
//
// Without text arguments the text is read from standard input.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"sentiment-analyzer/internal/config"
	"sentiment-analyzer/internal/domain/entity"
	"sentiment-analyzer/internal/infra/nlu"
	"sentiment-analyzer/internal/observability/logging"
	sentimentUC "sentiment-analyzer/internal/usecase/sentiment"
)

const usage = `Usage: sentiment-analyze [--output text|json] [text...]

Examples:
  sentiment-analyze "I love this new technology."
  echo "This is terrible" | sentiment-analyze --output json`

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitAnalysis = 3
)

// AnalysisOutput represents the JSON output format.
type AnalysisOutput struct {
	Label   string   `json:"label,omitempty"`
	Score   *float64 `json:"score,omitempty"`
	Outcome string   `json:"outcome"`
}

type analyzer interface {
	Analyze(ctx context.Context, text string) (entity.SentimentResult, error)
}

func main() {
	_ = godotenv.Load()

	// Logs go to stderr so stdout carries only the result.
	logger := logging.New(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to load configuration: %v\n", err)
		os.Exit(exitFailure)
	}

	svc := &sentimentUC.Service{Analyzer: nlu.NewClient(cfg.Sentiment, logger)}
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr, svc))
}

// run executes one analysis and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, svc analyzer) int {
	fs := flag.NewFlagSet("sentiment-analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	outputFormat := fs.String("output", "text", "Output format: text or json")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, usage)
			return exitOK
		}
		return exitUsage
	}

	if *outputFormat != "text" && *outputFormat != "json" {
		fmt.Fprintf(stderr, "Error: Invalid output format '%s' (must be 'text' or 'json')\n\n%s\n", *outputFormat, usage)
		return exitUsage
	}

	text := strings.Join(fs.Args(), " ")
	if text == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error: Failed to read standard input: %v\n", err)
			return exitFailure
		}
		text = string(data)
	}

	result, err := svc.Analyze(ctx, text)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n%s\n", err, usage)
		return exitUsage
	}

	if *outputFormat == "json" {
		if err := outputJSON(stdout, result); err != nil {
			fmt.Fprintf(stderr, "Error: Failed to encode JSON: %v\n", err)
			return exitFailure
		}
	} else {
		outputText(stdout, result)
	}

	if !result.OK() {
		return exitAnalysis
	}
	return exitOK
}

// outputText prints the result in human-readable format.
func outputText(w io.Writer, result entity.SentimentResult) {
	sentiment, ok := result.Sentiment()
	if !ok {
		category, _ := result.Failure()
		fmt.Fprintf(w, "Analysis failed (%s)\n", category)
		return
	}
	fmt.Fprintf(w, "Label: %s\nScore: %s / 100\n", sentiment.Label, sentimentUC.FormatScore(sentiment.Score))
}

// outputJSON prints the result in JSON format.
func outputJSON(w io.Writer, result entity.SentimentResult) error {
	output := AnalysisOutput{Outcome: result.Outcome()}
	if sentiment, ok := result.Sentiment(); ok {
		output.Label = sentiment.Label
		output.Score = &sentiment.Score
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
