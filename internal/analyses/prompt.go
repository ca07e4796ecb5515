package analyses

import (
	_ "embed"
	"fmt"
)

// SystemPrompt is the fixed optimizer instruction set sent with every
// analysis. Versioned as a file so prompt changes show up in diffs.
//
//go:embed prompts/optimize_v1.txt
var SystemPrompt string

// BuildUserMessage composes the single user turn for an analysis.
func BuildUserMessage(resumeText, jobDescription string) string {
	return fmt.Sprintf("## RESUME TO OPTIMIZE:\n%s\n\n## TARGET JOB DESCRIPTION:\n%s\n\nAnalyze this resume against the job description. Provide detailed line-by-line changes showing exactly what to modify and why. Return ONLY valid JSON.",
		resumeText, jobDescription)
}
