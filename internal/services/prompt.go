package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt creates the ATS analysis prompt. The job
// description section and the notes referring to it are only included
// when the caller supplied one, so the prompt stays deterministic for
// a given request.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText, jobDescription string) string {
	jobSection := ""
	scoreNote := "based on general ATS best practices"
	keywordNote := "commonly expected resume keywords that are missing"
	if jobDescription != "" {
		jobSection = fmt.Sprintf("\nJOB DESCRIPTION:\n%s\n", jobDescription)
		scoreNote = "reflecting how well the resume aligns with the job description"
		keywordNote = "keywords from the job description that are missing in the resume"
	}

	return fmt.Sprintf(`You are an expert resume analyzer and ATS optimization specialist.

Analyze the following resume and assess how well it would perform in an applicant tracking system.

RESUME:
%s
%s
Return your response in the following JSON format:
{
  "atsScore": <integer 0-100, %s>,
  "strengths": ["<3-5 specific strengths of this resume>"],
  "improvements": ["<3-5 specific weaknesses and how to fix them>"],
  "missingKeywords": ["<%s>"],
  "suggestions": ["<3-5 concrete, actionable suggestions>"]
}

Be objective and specific. Reference actual content from the resume.
Return ONLY valid JSON. No markdown. No explanations.`,
		resumeText, jobSection, scoreNote, keywordNote)
}
