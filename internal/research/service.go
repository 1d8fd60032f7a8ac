// Package research owns the end-to-end report fetch: it builds the prompt,
// invokes the grounded generation call, inspects the completion signal, and
// delegates to the extractor.
package research

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jonathan/equity-insight/internal/extract"
	"github.com/jonathan/equity-insight/internal/llm"
	"github.com/jonathan/equity-insight/internal/types"
)

// Service orchestrates report generation. One generation attempt per call:
// no retry, no backoff, no timeout beyond what the transport enforces.
type Service struct {
	gen llm.Generator
	log zerolog.Logger
}

// New creates a Service backed by Gemini. The credential pre-flight happens
// here, before any network call can be issued: a missing API key is a
// *ConfigurationError.
func New(ctx context.Context, apiKey string, cfg *llm.Config, logger zerolog.Logger) (*Service, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Message: "GEMINI_API_KEY is not set"}
	}

	client, err := llm.NewGeminiClient(ctx, cfg, apiKey)
	if err != nil {
		return nil, &ConfigurationError{Message: err.Error()}
	}

	return NewWithGenerator(client, logger), nil
}

// NewWithGenerator creates a Service with an explicit generator.
// Used by tests and by callers that supply their own provider.
func NewWithGenerator(gen llm.Generator, logger zerolog.Logger) *Service {
	return &Service{gen: gen, log: logger}
}

// FetchReport produces a validated company report for companyName, or fails
// with one of the classified errors: *ContentBlockedError when the service
// withheld the response, *extract.MalformedResponseError /
// *extract.IncompleteDataError from the extractor, and *UpstreamError for
// anything else below the orchestrator.
func (s *Service) FetchReport(ctx context.Context, companyName string) (*types.Report, error) {
	prompt := BuildPrompt(companyName)

	result, err := s.gen.GenerateGrounded(ctx, prompt)
	if err != nil {
		s.log.Error().Err(err).Str("company", companyName).Msg("generation call failed")
		return nil, &UpstreamError{Message: "generation call failed", Cause: err}
	}

	// Inspect the completion signal before touching the text. A safety block
	// means there is nothing worth extracting.
	if result.FinishReason != "" && result.FinishReason != llm.FinishStop {
		s.log.Warn().
			Str("company", companyName).
			Str("finish_reason", result.FinishReason).
			Msg("generation completed abnormally")

		if llm.IsSafetyFinish(result.FinishReason) {
			return nil, &ContentBlockedError{Reason: result.FinishReason}
		}
		return nil, &UpstreamError{Message: "generation stopped early (" + result.FinishReason + ")"}
	}

	report, err := extract.Extract(result.Text, result.Citations)
	if err != nil {
		s.logExtractionFailure(companyName, err)
		return nil, err
	}

	// The chart consumer expects chronological ascending history; the model
	// frequently returns it newest-first.
	report.Financials.History = report.Financials.ChronologicalHistory()

	s.log.Info().
		Str("company", companyName).
		Int("sources", len(report.Sources)).
		Int("history_points", len(report.Financials.History)).
		Msg("report extracted")

	return report, nil
}

// logExtractionFailure records the full diagnostic, including the offending
// text for malformed responses. The raw text never reaches the user.
func (s *Service) logExtractionFailure(companyName string, err error) {
	event := s.log.Error().Err(err).Str("company", companyName)
	if malformed, ok := err.(*extract.MalformedResponseError); ok {
		event = event.Str("raw_text", malformed.RawText)
	}
	event.Msg("report extraction failed")
}
