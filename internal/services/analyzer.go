package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/models"
)

// analysisState tracks a run through the pipeline. Each transition is
// exactly one component call and the first failure is terminal; there
// is no partial re-entry.
type analysisState string

const (
	stateReceived       analysisState = "received"
	stateValidated      analysisState = "validated"
	stateExtracted      analysisState = "extracted"
	stateContentChecked analysisState = "content_checked"
	stateInferred       analysisState = "inferred"
	stateParsed         analysisState = "parsed"
	stateDone           analysisState = "done"
	stateFailed         analysisState = "failed"
)

// AnalyzerService composes the pipeline: upload guard, text extraction,
// normalization, resume check, inference, result parsing. Stage errors
// pass through with their original kind, never re-wrapped.
type AnalyzerService interface {
	Analyze(ctx context.Context, artifact *models.UploadArtifact, jobDescription string) (*models.AnalysisResult, error)
}

type analyzerService struct {
	guard     UploadGuardService
	extractor PDFParserService
	validator ResumeValidatorService
	inference InferenceService
	results   ResultParserService
	cfg       config.AnalysisConfig
}

func NewAnalyzerService(
	guard UploadGuardService,
	extractor PDFParserService,
	validator ResumeValidatorService,
	inference InferenceService,
	results ResultParserService,
	cfg config.AnalysisConfig,
) AnalyzerService {
	return &analyzerService{
		guard:     guard,
		extractor: extractor,
		validator: validator,
		inference: inference,
		results:   results,
		cfg:       cfg,
	}
}

// analysisRun carries the correlation id and current state of one
// Analyze call through the log lines.
type analysisRun struct {
	id    uuid.UUID
	state analysisState
}

func (r *analysisRun) advance(next analysisState) {
	r.state = next
}

func (r *analysisRun) fail(err error) error {
	log.Printf("❌ [%s] analysis failed after %s: %v", r.id, r.state, err)
	r.state = stateFailed
	return err
}

// Analyze implements AnalyzerService.
func (a *analyzerService) Analyze(ctx context.Context, artifact *models.UploadArtifact, jobDescription string) (*models.AnalysisResult, error) {
	run := &analysisRun{id: uuid.New(), state: stateReceived}
	log.Printf("📄 [%s] analyzing upload %q (%d bytes)", run.id, artifact.Filename, artifact.Size)

	if err := a.guard.Validate(artifact); err != nil {
		return nil, run.fail(err)
	}
	run.advance(stateValidated)

	content, err := a.extractor.ExtractText(artifact.Data)
	if err != nil {
		return nil, run.fail(err)
	}
	run.advance(stateExtracted)
	log.Printf("📄 [%s] extracted text from %d page(s)", run.id, content.PageCount)

	resumeText := NormalizeText(content.Text, a.cfg.MaxResumeChars)
	if resumeText == "" {
		return nil, run.fail(pipelineError(opExtract, ErrEmptyDocument, "nothing left after normalization"))
	}

	verdict := a.validator.Classify(resumeText)
	if !verdict.IsResume {
		return nil, run.fail(pipelineError(opContentCheck, ErrNotAResume,
			fmt.Sprintf("confidence %.2f, signals %v", verdict.Confidence, verdict.MatchedSignals)))
	}
	run.advance(stateContentChecked)
	log.Printf("✅ [%s] resume check passed (confidence %.2f)", run.id, verdict.Confidence)

	req := &models.AnalysisRequest{
		ResumeText:     resumeText,
		JobDescription: NormalizeText(jobDescription, a.cfg.MaxJobDescChars),
	}

	log.Printf("🤖 [%s] requesting analysis from the model...", run.id)
	rawResponse, err := a.inference.Complete(ctx, req)
	if err != nil {
		return nil, run.fail(err)
	}
	run.advance(stateInferred)

	result, err := a.results.Parse(rawResponse)
	if err != nil {
		return nil, run.fail(err)
	}
	run.advance(stateParsed)

	if result.Degraded {
		log.Printf("⚠️  [%s] model response was incomplete, score defaulted to 0", run.id)
	}

	run.advance(stateDone)
	log.Printf("✅ [%s] analysis complete, ATS score %d", run.id, result.ATSScore)

	return result, nil
}
