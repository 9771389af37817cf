package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type AnalyzeHandler struct {
	analyzer services.AnalyzerService
}

func NewAnalyzeHandler(analyzer services.AnalyzerService) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer}
}

// analysisErrorStatus maps each pipeline failure kind to its HTTP status,
// in pipeline order. Kinds are mutually exclusive, so the first match wins.
var analysisErrorStatus = []struct {
	kind   error
	status int
}{
	{services.ErrUnsupportedType, fiber.StatusBadRequest},
	{services.ErrTooLarge, fiber.StatusRequestEntityTooLarge},
	{services.ErrUnsafeFilename, fiber.StatusBadRequest},
	{services.ErrCorruptDocument, fiber.StatusBadRequest},
	{services.ErrEncryptedDocument, fiber.StatusBadRequest},
	{services.ErrEmptyDocument, fiber.StatusBadRequest},
	{services.ErrNotAResume, fiber.StatusUnprocessableEntity},
	{services.ErrInferenceTimeout, fiber.StatusGatewayTimeout},
	{services.ErrServiceUnavailable, fiber.StatusServiceUnavailable},
	{services.ErrServiceRejected, fiber.StatusUnprocessableEntity},
	{services.ErrUnparsableResponse, fiber.StatusBadGateway},
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required. Please upload a PDF file in the 'resume' field.",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	artifact := &models.UploadArtifact{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        data,
	}

	result, err := h.analyzer.Analyze(c.UserContext(), artifact, c.FormValue("job_description"))
	if err != nil {
		status, message := analysisErrorResponse(err)
		return c.Status(status).JSON(fiber.Map{
			"error": message,
		})
	}

	// The analysis still succeeded, but some fields were defaulted; let
	// clients decide whether to warn the user.
	if result.Degraded {
		c.Set("X-Analysis-Degraded", "true")
	}

	return c.JSON(result)
}

// analysisErrorResponse resolves a pipeline error to the status code and
// user-facing message for the HTTP response. Details stay in the server
// logs; the client only sees the failure kind's message.
func analysisErrorResponse(err error) (int, string) {
	for _, m := range analysisErrorStatus {
		if errors.Is(err, m.kind) {
			return m.status, m.kind.Error()
		}
	}
	return fiber.StatusInternalServerError, "unexpected error during analysis"
}
