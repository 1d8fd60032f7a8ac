// Package extract turns an untrusted generation response into a validated
// company report. It is maximally tolerant of formatting noise (markdown
// fences, surrounding narration, trailing commas) and strict about
// structural completeness.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/equity-insight/internal/llm"
	"github.com/jonathan/equity-insight/internal/types"
)

// mandatorySections are the top-level keys the dashboard dereferences
// unconditionally. Deeper per-field validation is intentionally shallow: the
// schema is a contract with the prompt, and over-validating would reject
// partial reports the dashboard can still render defensively.
var mandatorySections = []string{"banner", "financials"}

// Extract parses the raw response text and merges grounding citations into a
// Report. It fails with *MalformedResponseError when no parseable JSON object
// can be recovered, and with *IncompleteDataError when the object lacks a
// mandatory section.
func Extract(raw string, citations []llm.Citation) (*types.Report, error) {
	if strings.TrimSpace(raw) == "" {
		raw = "{}"
	}

	candidate, err := isolateObject(stripFences(raw))
	if err != nil {
		return nil, err
	}

	candidate = applyRepairs(candidate)

	// Parse to a generic tree first so completeness can be checked on the
	// keys the model actually produced, then project into the typed record.
	var tree map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &tree); err != nil {
		return nil, &MalformedResponseError{
			Message: "response is not valid JSON",
			RawText: candidate,
			Cause:   err,
		}
	}

	var missing []string
	for _, section := range mandatorySections {
		if _, ok := tree[section]; !ok {
			missing = append(missing, section)
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteDataError{Missing: missing}
	}

	var report types.Report
	if err := json.Unmarshal([]byte(candidate), &report); err != nil {
		return nil, &MalformedResponseError{
			Message: "response does not match the report schema",
			RawText: candidate,
			Cause:   err,
		}
	}

	// The merged set replaces the body's sources unconditionally, even when
	// the body had none.
	report.Sources = MergeSources(report.Sources, CitationStrings(citations))

	return &report, nil
}

// stripFences removes every markdown code-fence token, with or without a
// language tag. The model emits them despite instructions not to.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	return strings.ReplaceAll(text, "```", "")
}

// isolateObject excises the candidate JSON object: the substring from the
// first '{' to the last '}' inclusive. Leading and trailing narration is
// discarded. This is deliberately not nested-depth-aware; if the model emits
// multiple top-level objects the extraction mis-fires, which is an accepted
// risk in exchange for tolerating commentary around the object.
func isolateObject(text string) (string, error) {
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last == -1 || last < first {
		return "", &MalformedResponseError{
			Message: "no JSON object found",
			RawText: text,
		}
	}
	return text[first : last+1], nil
}
