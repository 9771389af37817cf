package services

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced by the analysis pipeline. Handlers map each
// kind to a stable HTTP status; the sentinel text doubles as the
// user-visible message.
var (
	// Upload guard.
	ErrUnsupportedType = errors.New("unsupported document type, only PDF is accepted")
	ErrTooLarge        = errors.New("document exceeds the maximum allowed size")
	ErrUnsafeFilename  = errors.New("filename could not be sanitized")

	// Text extractor.
	ErrCorruptDocument   = errors.New("document structure could not be parsed")
	ErrEncryptedDocument = errors.New("document is password protected")
	ErrEmptyDocument     = errors.New("document contains no extractable text")

	// Content validator.
	ErrNotAResume = errors.New("document does not look like a resume")

	// Inference client.
	ErrInferenceTimeout   = errors.New("analysis timed out")
	ErrServiceUnavailable = errors.New("analysis service is temporarily unavailable")
	ErrServiceRejected    = errors.New("analysis request was rejected by the model provider")

	// Result parser.
	ErrUnparsableResponse = errors.New("model response did not contain a readable result")
)

// Pipeline stage names recorded on failures.
const (
	opUpload       = "upload"
	opExtract      = "extract"
	opContentCheck = "content_check"
	opInference    = "inference"
	opParse        = "parse"
)

// PipelineError wraps a failure kind with the stage it occurred in and
// an internal detail that is logged but never shown to callers.
type PipelineError struct {
	Op     string
	Err    error
	Detail string
}

func (e *PipelineError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Detail)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func (e *PipelineError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func pipelineError(op string, kind error, detail string) *PipelineError {
	return &PipelineError{Op: op, Err: kind, Detail: detail}
}
