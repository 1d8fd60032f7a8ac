package extract

import "github.com/jonathan/equity-insight/internal/llm"

// CitationStrings flattens grounding citations into displayable strings.
// The title is preferred; a citation with no title falls back to its URI, and
// one with neither is dropped.
func CitationStrings(citations []llm.Citation) []string {
	sources := make([]string, 0, len(citations))
	for _, c := range citations {
		switch {
		case c.Title != "":
			sources = append(sources, c.Title)
		case c.URI != "":
			sources = append(sources, c.URI)
		}
	}
	return sources
}

// MergeSources returns the set union of both lists, preserving first-seen
// order and eliminating exact-string duplicates. Entries differing only by
// whitespace or case are deliberately not coalesced.
func MergeSources(bodySources, citationSources []string) []string {
	merged := make([]string, 0, len(bodySources)+len(citationSources))
	seen := make(map[string]bool, len(bodySources)+len(citationSources))

	for _, list := range [][]string{bodySources, citationSources} {
		for _, s := range list {
			if seen[s] {
				continue
			}
			seen[s] = true
			merged = append(merged, s)
		}
	}
	return merged
}
