package models

// UploadArtifact is the raw upload as received from the caller. It lives
// for a single request and is discarded once text extraction has run.
type UploadArtifact struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// ExtractedText is the document text pulled out of the artifact, with
// page boundaries preserved as newlines.
type ExtractedText struct {
	Text      string
	PageCount int
}

// ResumeVerdict is the content validator's decision on whether a piece
// of text looks like a resume. Confidence is normalized to [0,1].
type ResumeVerdict struct {
	IsResume       bool
	Confidence     float64
	MatchedSignals []string
}

// AnalysisRequest is the immutable input to the inference client. An
// empty JobDescription means the caller supplied none.
type AnalysisRequest struct {
	ResumeText     string
	JobDescription string
}

// AnalysisResult is the contract returned to callers and accepted back
// by the report renderer. ATSScore is always clamped to [0,100] and the
// list fields are never null on the wire.
type AnalysisResult struct {
	ATSScore        int      `json:"atsScore"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	MissingKeywords []string `json:"missingKeywords"`
	Suggestions     []string `json:"suggestions"`

	// Degraded is set when the model response was parseable but the
	// score had to be defaulted. Internal only, never serialized.
	Degraded bool `json:"-"`
}

// EnsureDefaults replaces nil list fields with empty slices so the
// serialized result always carries arrays.
func (r *AnalysisResult) EnsureDefaults() {
	if r.Strengths == nil {
		r.Strengths = []string{}
	}
	if r.Improvements == nil {
		r.Improvements = []string{}
	}
	if r.MissingKeywords == nil {
		r.MissingKeywords = []string{}
	}
	if r.Suggestions == nil {
		r.Suggestions = []string{}
	}
}
