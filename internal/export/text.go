// Package export turns an optimized resume into portable artifacts: a plain
// text block and a rendered PDF.
package export

import (
	"fmt"
	"strings"

	"resume-optimizer/internal/analyses"
)

// Text renders the resume in the plain clipboard layout: header lines, then
// SUMMARY, EXPERIENCE, SKILLS and EDUCATION sections.
func Text(resume analyses.OptimizedResume) string {
	var b strings.Builder

	b.WriteString(resume.Header.Name)
	b.WriteString("\n")
	b.WriteString(resume.Header.Title)
	b.WriteString("\n")
	b.WriteString(resume.Header.Contact)

	b.WriteString("\n\nSUMMARY\n")
	b.WriteString(resume.Summary)

	b.WriteString("\n\nEXPERIENCE\n")
	entries := make([]string, 0, len(resume.Experience))
	for _, exp := range resume.Experience {
		bullets := make([]string, 0, len(exp.Bullets))
		for _, bullet := range exp.Bullets {
			bullets = append(bullets, "• "+bullet)
		}
		entries = append(entries, fmt.Sprintf("\n%s | %s\n%s\n%s",
			exp.Role, exp.Company, exp.Duration, strings.Join(bullets, "\n")))
	}
	b.WriteString(strings.Join(entries, "\n"))

	b.WriteString("\n\nSKILLS\n")
	b.WriteString(strings.Join(resume.Skills, " • "))

	b.WriteString("\n\nEDUCATION\n")
	eduLines := make([]string, 0, len(resume.Education))
	for _, edu := range resume.Education {
		eduLines = append(eduLines, fmt.Sprintf("%s - %s (%s)", edu.Degree, edu.Institution, edu.Year))
	}
	b.WriteString(strings.Join(eduLines, "\n"))

	return b.String()
}

// FileName derives a download file name from the candidate's name.
func FileName(name, ext string) string {
	base := strings.Join(strings.Fields(strings.TrimSpace(name)), "_")
	if base == "" {
		base = "Optimized"
	}
	return base + "_Resume." + ext
}
