package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func main() {
	resumePath := flag.String("resume", "", "path to the resume PDF (required)")
	jobDescPath := flag.String("jd", "", "path to a plain-text job description (optional)")
	reportPath := flag.String("report", "", "write a PDF report to this path (optional)")
	flag.Parse()

	if *resumePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.Println("🚀 Starting resume analysis...")

	// Load configuration
	cfg := config.Load()

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	inferenceService := services.NewInferenceService(
		geminiService,
		cfg.Gemini.Temperature,
		cfg.Analysis.Retry,
	)

	analyzer := services.NewAnalyzerService(
		services.NewUploadGuardService(cfg.Upload.MaxFileSize, cfg.Upload.ContentType),
		services.NewPDFParserService(),
		services.NewResumeValidatorService(),
		inferenceService,
		services.NewResultParserService(),
		cfg.Analysis,
	)

	// Read the resume file
	data, err := os.ReadFile(*resumePath)
	if err != nil {
		log.Fatalf("❌ Failed to read resume: %v", err)
	}

	jobDescription := ""
	if *jobDescPath != "" {
		jdData, err := os.ReadFile(*jobDescPath)
		if err != nil {
			log.Fatalf("❌ Failed to read job description: %v", err)
		}
		jobDescription = string(jdData)
	}

	artifact := &models.UploadArtifact{
		Filename:    filepath.Base(*resumePath),
		ContentType: "application/pdf",
		Size:        int64(len(data)),
		Data:        data,
	}

	log.Printf("📄 Analyzing %s (%d bytes)", artifact.Filename, artifact.Size)

	ctx := context.Background()
	result, err := analyzer.Analyze(ctx, artifact, jobDescription)
	if err != nil {
		log.Fatalf("❌ Analysis failed: %v", err)
	}

	if result.Degraded {
		log.Println("⚠️  Model response was incomplete; some fields were defaulted.")
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("❌ Failed to encode result: %v", err)
	}

	fmt.Println(string(out))
	log.Printf("📊 ATS Score: %d/100", result.ATSScore)

	if *reportPath != "" {
		reportService, err := services.NewReportService(cfg.Report.ChromePath)
		if err != nil {
			log.Fatalf("❌ Failed to initialize report renderer: %v", err)
		}

		pdfData, err := reportService.Render(ctx, result)
		if err != nil {
			log.Fatalf("❌ Failed to render report: %v", err)
		}

		if err := os.WriteFile(*reportPath, pdfData, 0644); err != nil {
			log.Fatalf("❌ Failed to write report: %v", err)
		}
		log.Printf("📄 Report written to %s", *reportPath)
	}

	log.Println("✅ Analysis complete!")
}
