package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/equity-insight/internal/llm"
)

func TestCitationStrings(t *testing.T) {
	tests := []struct {
		name      string
		citations []llm.Citation
		want      []string
	}{
		{
			name: "titles preferred",
			citations: []llm.Citation{
				{Title: "Annual Report", URI: "https://example.com/ar"},
				{Title: "Investor Deck"},
			},
			want: []string{"Annual Report", "Investor Deck"},
		},
		{
			name: "uri fallback when title absent",
			citations: []llm.Citation{
				{URI: "https://example.com/filing"},
			},
			want: []string{"https://example.com/filing"},
		},
		{
			name: "empty records dropped",
			citations: []llm.Citation{
				{},
				{Title: "Kept"},
				{},
			},
			want: []string{"Kept"},
		},
		{
			name:      "nil input",
			citations: nil,
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CitationStrings(tt.citations))
		})
	}
}

func TestMergeSources(t *testing.T) {
	tests := []struct {
		name      string
		body      []string
		citations []string
		want      []string
	}{
		{
			name:      "union preserves first-seen order",
			body:      []string{"A", "B"},
			citations: []string{"B", "C"},
			want:      []string{"A", "B", "C"},
		},
		{
			name:      "body empty",
			body:      nil,
			citations: []string{"X"},
			want:      []string{"X"},
		},
		{
			name:      "citations empty",
			body:      []string{"X"},
			citations: nil,
			want:      []string{"X"},
		},
		{
			name:      "duplicates within one list collapsed",
			body:      []string{"A", "A"},
			citations: []string{"A"},
			want:      []string{"A"},
		},
		{
			name:      "whitespace and case variants kept",
			body:      []string{"Source", "source"},
			citations: []string{"Source "},
			want:      []string{"Source", "source", "Source "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeSources(tt.body, tt.citations))
		})
	}
}

func TestMergeSourcesIdempotent(t *testing.T) {
	list := []string{"A", "B", "C"}
	assert.Equal(t, list, MergeSources(list, list), "merging a list with itself must yield the same list")
}
