package research

import (
	"errors"
	"fmt"
)

// ConfigurationError indicates a missing or unusable credential. Fatal;
// retrying without operator action cannot help.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// ContentBlockedError indicates the generation call completed with a
// safety-related reason instead of producing usable text. Retryable by the
// user with a different query.
type ContentBlockedError struct {
	Reason string
}

func (e *ContentBlockedError) Error() string {
	return fmt.Sprintf("content blocked by the generation service (finish reason %s)", e.Reason)
}

// UpstreamError wraps any other failure from the network or service layer
type UpstreamError struct {
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upstream error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("upstream error: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// UserMessage maps any pipeline error to a safe, user-appropriate message.
// Full diagnostics (raw response text, parser errors) only ever go to the
// log, never to the user. Malformed, incomplete and upstream failures all
// read the same to the user: the report could not be produced this time.
func UserMessage(err error) string {
	var (
		configuration *ConfigurationError
		blocked       *ContentBlockedError
	)

	switch {
	case errors.As(err, &configuration):
		return "The service is not configured with an API key. Contact the operator."
	case errors.As(err, &blocked):
		return "The request was blocked by the provider's content filter. Try a different company or rephrase your query."
	default:
		return "Could not generate the report. Please try again."
	}
}
