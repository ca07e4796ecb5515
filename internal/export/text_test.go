package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-optimizer/internal/analyses"
)

func sampleResume() analyses.OptimizedResume {
	return analyses.OptimizedResume{
		Header: analyses.ResumeHeader{
			Name:    "Jane Doe",
			Title:   "Senior Product Manager",
			Contact: "jane@example.com | 555-0100 | NYC",
		},
		Summary: "Senior PM with 8 years of experience.",
		Experience: []analyses.ExperienceEntry{
			{
				Company:  "Acme",
				Role:     "Product Manager",
				Duration: "2019 - 2024",
				Bullets:  []string{"Led launches", "Drove growth"},
			},
			{
				Company:  "Globex",
				Role:     "APM",
				Duration: "2016 - 2019",
				Bullets:  []string{"Shipped v1"},
			},
		},
		Skills: []string{"Roadmapping", "SQL", "A/B Testing"},
		Education: []analyses.EducationEntry{
			{Institution: "State U", Degree: "BS Computer Science", Year: "2016"},
		},
	}
}

func TestTextLayout(t *testing.T) {
	got := Text(sampleResume())

	want := "Jane Doe\n" +
		"Senior Product Manager\n" +
		"jane@example.com | 555-0100 | NYC\n" +
		"\n" +
		"SUMMARY\n" +
		"Senior PM with 8 years of experience.\n" +
		"\n" +
		"EXPERIENCE\n" +
		"\n" +
		"Product Manager | Acme\n" +
		"2019 - 2024\n" +
		"• Led launches\n" +
		"• Drove growth\n" +
		"\n" +
		"APM | Globex\n" +
		"2016 - 2019\n" +
		"• Shipped v1\n" +
		"\n" +
		"SKILLS\n" +
		"Roadmapping • SQL • A/B Testing\n" +
		"\n" +
		"EDUCATION\n" +
		"BS Computer Science - State U (2016)"

	assert.Equal(t, want, got)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Jane_Doe_Resume.pdf", FileName("Jane Doe", "pdf"))
	assert.Equal(t, "Jane_Doe_Resume.txt", FileName("  Jane   Doe ", "txt"))
	assert.Equal(t, "Optimized_Resume.pdf", FileName("", "pdf"))
}

func TestRenderHTMLContainsSections(t *testing.T) {
	html, err := RenderHTML(sampleResume())
	assert.NoError(t, err)
	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, "SUMMARY")
	assert.Contains(t, html, "Product Manager | Acme")
	assert.Contains(t, html, "Roadmapping • SQL • A/B Testing")
	assert.Contains(t, html, "BS Computer Science - State U (2016)")
}

func TestRenderHTMLEscapes(t *testing.T) {
	resume := sampleResume()
	resume.Summary = `<script>alert("x")</script>`
	html, err := RenderHTML(resume)
	assert.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")
}
