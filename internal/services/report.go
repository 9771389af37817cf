package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// ReportService renders a previously produced AnalysisResult into a
// printable PDF. The result is rendered verbatim; the only adjustment
// is filling nil lists so the template never sees null.
type ReportService interface {
	Render(ctx context.Context, result *models.AnalysisResult) ([]byte, error)
}

type reportService struct {
	tmpl       *template.Template
	chromePath string
}

func NewReportService(chromePath string) (ReportService, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}

	return &reportService{
		tmpl:       tmpl,
		chromePath: chromePath,
	}, nil
}

type reportSection struct {
	Title string
	Items []string
	Empty string
}

type reportData struct {
	Score       int
	ScoreLabel  string
	ScoreColor  string
	GeneratedAt string
	Sections    []reportSection
}

// Render implements ReportService.
func (r *reportService) Render(ctx context.Context, result *models.AnalysisResult) ([]byte, error) {
	result.EnsureDefaults()

	html, err := r.buildHTML(result)
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, 60*time.Second)
	defer cancelRun()

	// Chrome needs a real URL to navigate to, so the HTML goes through
	// a temporary file.
	tmpDir, err := os.MkdirTemp("", "resume-report-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir for report: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "report.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write report HTML: %w", err)
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm in inches.
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render report PDF: %w", err)
	}

	return pdfBuf, nil
}

func (r *reportService) buildHTML(result *models.AnalysisResult) (string, error) {
	data := reportData{
		Score:       result.ATSScore,
		ScoreLabel:  scoreLabel(result.ATSScore),
		ScoreColor:  scoreColor(result.ATSScore),
		GeneratedAt: time.Now().Format("January 2, 2006 15:04"),
		Sections: []reportSection{
			{Title: "Strengths", Items: result.Strengths, Empty: "No specific strengths were identified."},
			{Title: "Areas for Improvement", Items: result.Improvements, Empty: "No improvement areas were identified."},
			{Title: "Missing Keywords", Items: result.MissingKeywords, Empty: "No missing keywords were identified."},
			{Title: "Suggestions", Items: result.Suggestions, Empty: "No suggestions were generated."},
		},
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}

	return buf.String(), nil
}

func scoreLabel(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

func scoreColor(score int) string {
	switch {
	case score >= 80:
		return "#2e7d32"
	case score >= 60:
		return "#558b2f"
	case score >= 40:
		return "#f9a825"
	default:
		return "#c62828"
	}
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #212121; margin: 40px; }
  h1 { font-size: 22px; border-bottom: 2px solid #1a237e; padding-bottom: 8px; }
  .meta { font-size: 12px; color: #757575; }
  .score { font-size: 48px; font-weight: bold; color: {{.ScoreColor}}; }
  .label { font-size: 18px; color: {{.ScoreColor}}; }
  h2 { font-size: 16px; color: #1a237e; margin-top: 28px; }
  li { margin-bottom: 6px; }
  .empty { color: #757575; font-style: italic; }
  .footer { margin-top: 48px; font-size: 11px; color: #757575; border-top: 1px solid #bdbdbd; padding-top: 8px; }
</style>
</head>
<body>
  <h1>Resume Analysis Report</h1>
  <p class="meta">Generated on {{.GeneratedAt}}</p>
  <p><span class="score">{{.Score}}</span> / 100 &mdash; <span class="label">{{.ScoreLabel}}</span></p>
{{range .Sections}}
  <h2>{{.Title}}</h2>
{{if .Items}}  <ul>
{{range .Items}}    <li>{{.}}</li>
{{end}}  </ul>
{{else}}  <p class="empty">{{.Empty}}</p>
{{end}}{{end}}
  <div class="footer">This report was generated automatically. Use it as guidance, not as a hiring decision.</div>
</body>
</html>`
