package services

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// UploadGuardService runs the cheap upload checks before any parsing
// work: declared content type, size ceiling, filename safety. Checks
// run in that order and stop at the first failure.
type UploadGuardService interface {
	Validate(artifact *models.UploadArtifact) error
}

type uploadGuardService struct {
	maxFileSize int64
	contentType string
}

func NewUploadGuardService(maxFileSize int64, contentType string) UploadGuardService {
	return &uploadGuardService{
		maxFileSize: maxFileSize,
		contentType: contentType,
	}
}

// Validate implements UploadGuardService.
func (g *uploadGuardService) Validate(artifact *models.UploadArtifact) error {
	declared := strings.ToLower(strings.TrimSpace(artifact.ContentType))
	// Drop media type parameters such as "; charset=binary".
	if idx := strings.Index(declared, ";"); idx != -1 {
		declared = strings.TrimSpace(declared[:idx])
	}
	if declared != g.contentType {
		return pipelineError(opUpload, ErrUnsupportedType,
			fmt.Sprintf("declared content type %q", artifact.ContentType))
	}

	if artifact.Size > g.maxFileSize {
		return pipelineError(opUpload, ErrTooLarge,
			fmt.Sprintf("%d bytes exceeds ceiling of %d", artifact.Size, g.maxFileSize))
	}

	clean, ok := sanitizeFilename(artifact.Filename)
	if !ok {
		return pipelineError(opUpload, ErrUnsafeFilename,
			fmt.Sprintf("original filename %q", artifact.Filename))
	}
	artifact.Filename = clean

	return nil
}

// sanitizeFilename strips path components and control characters from a
// client-supplied filename. The second return is false when nothing
// usable remains.
func sanitizeFilename(name string) (string, bool) {
	// Windows clients send backslash-separated paths.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	clean := strings.TrimSpace(b.String())

	if clean == "" || clean == "." || clean == ".." || clean == string(filepath.Separator) {
		return "", false
	}
	return clean, true
}
