// Package llm provides the client for grounded text generation via Gemini.
package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Citation identifies one web source consulted by the generation call.
// Either field may be empty; a citation with neither is useless and is
// dropped during extraction.
type Citation struct {
	Title string
	URI   string
}

// Result is the outcome of a single grounded generation call: the raw
// response text, the completion reason reported by the service, and the
// grounding citations returned alongside the text.
type Result struct {
	Text         string
	FinishReason string
	Citations    []Citation
}

// Completion reasons the orchestrator distinguishes. Values mirror the
// service's finish-reason codes.
const (
	FinishStop              = "STOP"
	FinishSafety            = "SAFETY"
	FinishRecitation        = "RECITATION"
	FinishBlocklist         = "BLOCKLIST"
	FinishProhibitedContent = "PROHIBITED_CONTENT"
	FinishSPII              = "SPII"
	FinishImageSafety       = "IMAGE_SAFETY"
)

// IsSafetyFinish reports whether a finish reason indicates the service
// withheld content for safety/policy reasons (as opposed to a transport or
// length problem).
func IsSafetyFinish(reason string) bool {
	switch reason {
	case FinishSafety, FinishRecitation, FinishBlocklist, FinishProhibitedContent, FinishSPII, FinishImageSafety:
		return true
	}
	return false
}

// Generator is an abstraction over grounded-generation providers
type Generator interface {
	// GenerateGrounded runs a single web-search-grounded generation call.
	// Exactly one attempt: no retry, no backoff.
	GenerateGrounded(ctx context.Context, prompt string) (*Result, error)
}

// GeminiClient implements Generator for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateGrounded runs a single generation call with the Google Search tool
// enabled and safety thresholds at the most permissive non-disabled level.
// Financial text trips safety filters surprisingly often at stricter levels.
func (c *GeminiClient) GenerateGrounded(ctx context.Context, prompt string) (*Result, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](c.config.Temperature),
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
		SafetySettings: permissiveSafetySettings(),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.config.Model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return resultFromResponse(resp)
}

// permissiveSafetySettings returns BLOCK_ONLY_HIGH for every text category.
func permissiveSafetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHateSpeech,
		genai.HarmCategoryDangerousContent,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryHarassment,
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, category := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockOnlyHigh,
		})
	}
	return settings
}

// resultFromResponse flattens the first candidate into a Result
func resultFromResponse(resp *genai.GenerateContentResponse) (*Result, error) {
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	result := &Result{
		FinishReason: string(candidate.FinishReason),
	}

	if candidate.Content != nil {
		var parts []string
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				parts = append(parts, part.Text)
			}
		}
		result.Text = strings.Join(parts, "")
	}

	if candidate.GroundingMetadata != nil {
		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			if chunk.Web == nil {
				continue
			}
			result.Citations = append(result.Citations, Citation{
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			})
		}
	}

	return result, nil
}
