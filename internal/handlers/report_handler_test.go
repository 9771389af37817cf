package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type fakeReportService struct {
	pdf []byte
	err error

	gotResult *models.AnalysisResult
}

// Render implements services.ReportService.
func (f *fakeReportService) Render(_ context.Context, result *models.AnalysisResult) ([]byte, error) {
	f.gotResult = result
	if f.err != nil {
		return nil, f.err
	}
	return f.pdf, nil
}

func newReportApp(report services.ReportService) *fiber.App {
	app := fiber.New()
	handler := NewReportHandler(report)
	app.Post("/api/v1/report", handler.HandleDownloadReport)
	return app
}

func newReportRequest(t *testing.T, payload interface{}) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/report", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandleDownloadReportSuccess(t *testing.T) {
	report := &fakeReportService{pdf: []byte("%PDF-1.4 rendered report")}
	app := newReportApp(report)

	resp, err := app.Test(newReportRequest(t, models.AnalysisResult{
		ATSScore:  82,
		Strengths: []string{"Clear summary"},
	}))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))

	disposition := resp.Header.Get(fiber.HeaderContentDisposition)
	assert.Contains(t, disposition, "attachment")
	assert.Contains(t, disposition, "resume_analysis_")
	assert.Contains(t, disposition, ".pdf")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 rendered report"), data)

	require.NotNil(t, report.gotResult)
	assert.Equal(t, 82, report.gotResult.ATSScore)
}

func TestHandleDownloadReportInvalidPayload(t *testing.T) {
	report := &fakeReportService{pdf: []byte("%PDF-1.4")}
	app := newReportApp(report)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/report", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, report.gotResult)
}

func TestHandleDownloadReportRenderFailure(t *testing.T) {
	report := &fakeReportService{err: errors.New("chrome exited unexpectedly")}
	app := newReportApp(report)

	resp, err := app.Test(newReportRequest(t, models.AnalysisResult{ATSScore: 50}))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "report")
}
