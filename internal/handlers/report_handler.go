package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// HandleDownloadReport handles POST /report
func (h *ReportHandler) HandleDownloadReport(c *fiber.Ctx) error {
	var result models.AnalysisResult

	if err := c.BodyParser(&result); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload. Send an analysis result as JSON.",
		})
	}

	pdfData, err := h.reportService.Render(c.UserContext(), &result)
	if err != nil {
		log.Printf("❌ Failed to render report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to render PDF report",
		})
	}

	filename := fmt.Sprintf("resume_analysis_%s.pdf", time.Now().Format("20060102_150405"))

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))

	return c.Send(pdfData)
}
