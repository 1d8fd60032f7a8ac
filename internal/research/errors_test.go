package research

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/equity-insight/internal/extract"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "configuration error names the operator",
			err:  &ConfigurationError{Message: "GEMINI_API_KEY is not set"},
			want: "The service is not configured with an API key. Contact the operator.",
		},
		{
			name: "content blocked suggests rephrasing",
			err:  &ContentBlockedError{Reason: "SAFETY"},
			want: "The request was blocked by the provider's content filter. Try a different company or rephrase your query.",
		},
		{
			name: "malformed response is generic",
			err:  &extract.MalformedResponseError{Message: "no JSON object found", RawText: "secret diagnostic"},
			want: "Could not generate the report. Please try again.",
		},
		{
			name: "incomplete data is generic",
			err:  &extract.IncompleteDataError{Missing: []string{"banner"}},
			want: "Could not generate the report. Please try again.",
		},
		{
			name: "upstream error is generic",
			err:  &UpstreamError{Message: "timeout"},
			want: "Could not generate the report. Please try again.",
		},
		{
			name: "wrapped classified error still recognized",
			err:  fmt.Errorf("handling request: %w", &ContentBlockedError{Reason: "SAFETY"}),
			want: "The request was blocked by the provider's content filter. Try a different company or rephrase your query.",
		},
		{
			name: "unknown error is generic",
			err:  errors.New("boom"),
			want: "Could not generate the report. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestUserMessageNeverLeaksDiagnostics(t *testing.T) {
	err := &extract.MalformedResponseError{
		Message: "response is not valid JSON",
		RawText: `{"banner": broken`,
		Cause:   errors.New("invalid character 'b'"),
	}

	msg := UserMessage(err)
	assert.NotContains(t, msg, "banner")
	assert.NotContains(t, msg, "invalid character")
}

func TestUpstreamErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := &UpstreamError{Message: "generation call failed", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "generation call failed")
}
