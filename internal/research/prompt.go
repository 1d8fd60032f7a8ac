package research

import (
	"strings"

	"github.com/jonathan/equity-insight/internal/prompts"
)

// BuildPrompt constructs the instruction text for a company report. Pure
// function of its input: the trimmed company name is interpolated directly
// into the analyst instruction, which carries the formatting rules and the
// literal schema the response must conform to.
//
// The template must stay in lock-step with types.Report; the schemas package
// tests enforce that every top-level report field appears in the prompt.
func BuildPrompt(companyName string) string {
	template := prompts.MustGet("research.json", "company-report")
	return prompts.Format(template, map[string]string{
		"CompanyName": strings.TrimSpace(companyName),
	})
}
