package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// PDFParserService extracts plain text from an in-memory PDF payload.
// Every failure is classified into one of the extraction kinds; the
// parser never lets a library panic or an unrecognized error escape.
type PDFParserService interface {
	ExtractText(data []byte) (*models.ExtractedText, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText implements PDFParserService.
func (p *pdfParserService) ExtractText(data []byte) (content *models.ExtractedText, err error) {
	// The pdf library panics on some malformed documents instead of
	// returning an error. Treat those the same as a parse failure.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = pipelineError(opExtract, ErrCorruptDocument, fmt.Sprintf("parser panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, pipelineError(opExtract, classifyOpenError(err), err.Error())
	}

	totalPage := reader.NumPage()
	if totalPage == 0 {
		return nil, pipelineError(opExtract, ErrEmptyDocument, "document has no pages")
	}

	var textBuilder strings.Builder
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, the remaining ones may still
			// carry enough text.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return nil, pipelineError(opExtract, ErrEmptyDocument, "no text content found in document")
	}

	return &models.ExtractedText{
		Text:      text,
		PageCount: totalPage,
	}, nil
}

// classifyOpenError maps a reader-construction failure to an extraction
// kind. The library reports password protection through its error text,
// everything else counts as a corrupt document.
func classifyOpenError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "password") || strings.Contains(msg, "encrypt") {
		return ErrEncryptedDocument
	}
	return ErrCorruptDocument
}
