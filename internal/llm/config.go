package llm

// DefaultModel is the generation model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Config holds generation settings for the LLM client
type Config struct {
	Model       string  // Model identifier, e.g. "gemini-2.5-flash"
	Temperature float32 // Sampling temperature; low for consistent JSON output
}

// DefaultConfig returns the default generation configuration
func DefaultConfig() *Config {
	return &Config{
		Model:       DefaultModel,
		Temperature: 0.1,
	}
}
