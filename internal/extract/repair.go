package extract

import "regexp"

// The model reliably emits JSON-shaped text but unreliably emits JSON-valid
// text. Repairs are an explicitly ordered list of conservative text passes
// that only remove or insert punctuation, never reinterpret content, followed
// by a strict parse. A permissive parser would hide failure modes instead.
//
// A second pass that inserted missing commas between adjacent quoted strings
// was considered and rejected: it also fires inside multi-line prose values
// that end and restart with a quote-adjacent line break. The prompt instead
// reminds the model about comma correctness in array fields.

var trailingCommaRe = regexp.MustCompile(`,\s*([\]}])`)

// RemoveTrailingCommas deletes any comma immediately followed, ignoring
// whitespace, by a closing bracket or brace. Idempotent.
func RemoveTrailingCommas(text string) string {
	return trailingCommaRe.ReplaceAllString(text, "$1")
}

// repairPasses is the ordered repair pipeline applied to the isolated
// candidate JSON before the strict parse.
var repairPasses = []func(string) string{
	RemoveTrailingCommas,
}

// applyRepairs runs every repair pass in order
func applyRepairs(text string) string {
	for _, pass := range repairPasses {
		text = pass(text)
	}
	return text
}
