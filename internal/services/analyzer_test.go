package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/models"
)

const validModelResponse = `{"atsScore": 88, "strengths": ["clear structure"], "improvements": ["add metrics"], "missingKeywords": [], "suggestions": ["quantify impact"]}`

type fakeExtractor struct {
	content *models.ExtractedText
	err     error
	calls   int
}

func (f *fakeExtractor) ExtractText(_ []byte) (*models.ExtractedText, error) {
	f.calls++
	return f.content, f.err
}

type fakeInference struct {
	response string
	err      error
	calls    int
	lastReq  *models.AnalysisRequest
}

func (f *fakeInference) Complete(_ context.Context, req *models.AnalysisRequest) (string, error) {
	f.calls++
	f.lastReq = req
	return f.response, f.err
}

func newTestAnalyzer(extractor PDFParserService, inference InferenceService) AnalyzerService {
	return NewAnalyzerService(
		NewUploadGuardService(1<<20, "application/pdf"),
		extractor,
		NewResumeValidatorService(),
		inference,
		NewResultParserService(),
		config.AnalysisConfig{MaxResumeChars: 15000, MaxJobDescChars: 5000},
	)
}

func validArtifact() *models.UploadArtifact {
	return &models.UploadArtifact{
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
		Size:        2048,
		Data:        []byte("%PDF-stub"),
	}
}

func TestAnalyzeHappyPath(t *testing.T) {
	extractor := &fakeExtractor{content: &models.ExtractedText{Text: sampleResume, PageCount: 1}}
	inference := &fakeInference{response: validModelResponse}

	result, err := newTestAnalyzer(extractor, inference).Analyze(context.Background(), validArtifact(), "")
	require.NoError(t, err)

	assert.Equal(t, 88, result.ATSScore)
	assert.Equal(t, []string{"clear structure"}, result.Strengths)
	assert.NotNil(t, result.MissingKeywords)
	assert.Equal(t, 1, inference.calls)
	assert.Equal(t, 1, extractor.calls)
}

func TestAnalyzePassesNormalizedTextsToInference(t *testing.T) {
	extractor := &fakeExtractor{content: &models.ExtractedText{Text: sampleResume, PageCount: 1}}
	inference := &fakeInference{response: validModelResponse}

	_, err := newTestAnalyzer(extractor, inference).Analyze(context.Background(), validArtifact(), "senior\tgo\n\nengineer")
	require.NoError(t, err)

	require.NotNil(t, inference.lastReq)
	assert.NotContains(t, inference.lastReq.ResumeText, "\n", "resume text should be normalized")
	assert.Equal(t, "senior go engineer", inference.lastReq.JobDescription)
}

func TestAnalyzeRejectsOversizeBeforeExtraction(t *testing.T) {
	extractor := &fakeExtractor{}
	inference := &fakeInference{}

	artifact := validArtifact()
	artifact.Size = 2 << 20

	_, err := newTestAnalyzer(extractor, inference).Analyze(context.Background(), artifact, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Zero(t, extractor.calls, "extraction must not run for rejected uploads")
	assert.Zero(t, inference.calls)
}

func TestAnalyzeRejectsWrongContentType(t *testing.T) {
	extractor := &fakeExtractor{}
	inference := &fakeInference{}

	artifact := validArtifact()
	artifact.ContentType = "application/msword"

	_, err := newTestAnalyzer(extractor, inference).Analyze(context.Background(), artifact, "")
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Zero(t, extractor.calls)
}

func TestAnalyzePropagatesExtractionFailure(t *testing.T) {
	extractor := &fakeExtractor{err: pipelineError(opExtract, ErrEmptyDocument, "no text content")}
	inference := &fakeInference{}

	_, err := newTestAnalyzer(extractor, inference).Analyze(context.Background(), validArtifact(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyDocument)
	assert.Zero(t, inference.calls, "inference must not run for empty documents")
}

func TestAnalyzeFailsOnWhitespaceOnlyText(t *testing.T) {
	extractor := &fakeExtractor{content: &models.ExtractedText{Text: " \n\t \x00 ", PageCount: 1}}
	inference := &fakeInference{}

	_, err := newTestAnalyzer(extractor, inference).Analyze(context.Background(), validArtifact(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyDocument)
	assert.Zero(t, inference.calls)
}

func TestAnalyzeRejectsNonResumeWithoutInference(t *testing.T) {
	extractor := &fakeExtractor{content: &models.ExtractedText{Text: groceryList, PageCount: 1}}
	inference := &fakeInference{}

	_, err := newTestAnalyzer(extractor, inference).Analyze(context.Background(), validArtifact(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAResume)
	assert.Zero(t, inference.calls, "non-resume content must never reach the model")
}

func TestAnalyzePropagatesInferenceFailureUnwrapped(t *testing.T) {
	extractor := &fakeExtractor{content: &models.ExtractedText{Text: sampleResume, PageCount: 1}}
	inference := &fakeInference{err: pipelineError(opInference, ErrServiceUnavailable, "after 3 attempts")}

	_, err := newTestAnalyzer(extractor, inference).Analyze(context.Background(), validArtifact(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceUnavailable)

	var pipeErr *PipelineError
	require.ErrorAs(t, err, &pipeErr)
	assert.Equal(t, opInference, pipeErr.Op, "stage errors must keep their original kind and stage")
}

func TestAnalyzeFailsOnUnparsableModelOutput(t *testing.T) {
	extractor := &fakeExtractor{content: &models.ExtractedText{Text: sampleResume, PageCount: 1}}
	inference := &fakeInference{response: "the model rambled with no JSON at all"}

	_, err := newTestAnalyzer(extractor, inference).Analyze(context.Background(), validArtifact(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnparsableResponse)
}

func TestAnalyzeFlagsDegradedResult(t *testing.T) {
	extractor := &fakeExtractor{content: &models.ExtractedText{Text: sampleResume, PageCount: 1}}
	inference := &fakeInference{response: `{"strengths": ["concise"]}`}

	result, err := newTestAnalyzer(extractor, inference).Analyze(context.Background(), validArtifact(), "")
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	assert.Equal(t, 0, result.ATSScore)
}

func TestAnalyzeSurfacesOnlyTypedErrors(t *testing.T) {
	extractor := &fakeExtractor{err: pipelineError(opExtract, ErrCorruptDocument, "parser panic: index out of range")}
	inference := &fakeInference{}

	_, err := newTestAnalyzer(extractor, inference).Analyze(context.Background(), validArtifact(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptDocument)
	assert.False(t, errors.Is(err, ErrEmptyDocument))
}
