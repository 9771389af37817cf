package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAnalysisPromptWithoutJobDescription(t *testing.T) {
	prompt := NewPromptBuilder().BuildAnalysisPrompt("resume body text", "")

	assert.Contains(t, prompt, "resume body text")
	assert.NotContains(t, prompt, "JOB DESCRIPTION:")
	assert.Contains(t, prompt, "general ATS best practices")
	assert.Contains(t, prompt, "Return ONLY valid JSON")

	for _, field := range []string{"atsScore", "strengths", "improvements", "missingKeywords", "suggestions"} {
		assert.Contains(t, prompt, field)
	}
}

func TestBuildAnalysisPromptWithJobDescription(t *testing.T) {
	prompt := NewPromptBuilder().BuildAnalysisPrompt("resume body text", "senior go engineer, kubernetes")

	assert.Contains(t, prompt, "JOB DESCRIPTION:")
	assert.Contains(t, prompt, "senior go engineer, kubernetes")
	assert.Contains(t, prompt, "aligns with the job description")
}

func TestBuildAnalysisPromptIsDeterministic(t *testing.T) {
	pb := NewPromptBuilder()
	assert.Equal(t,
		pb.BuildAnalysisPrompt("text", "jd"),
		pb.BuildAnalysisPrompt("text", "jd"),
	)
}
