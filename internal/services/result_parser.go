package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// ResultParserService turns raw model output into an AnalysisResult.
// Model text is untrusted: the JSON object may be wrapped in prose or
// code fences, fields may be missing or mistyped. Everything short of
// total unparsability is absorbed here with documented defaults.
type ResultParserService interface {
	Parse(raw string) (*models.AnalysisResult, error)
}

type resultParserService struct{}

func NewResultParserService() ResultParserService {
	return &resultParserService{}
}

// Parse implements ResultParserService.
func (p *resultParserService) Parse(raw string) (*models.AnalysisResult, error) {
	span := extractJSONObject(raw)
	if span == "" {
		return nil, pipelineError(opParse, ErrUnparsableResponse, "no balanced JSON object in model output")
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, pipelineError(opParse, ErrUnparsableResponse, fmt.Sprintf("decode failed: %v", err))
	}

	score, scoreOK := coerceScore(payload["atsScore"])

	return &models.AnalysisResult{
		ATSScore:        score,
		Strengths:       coerceStringList(payload["strengths"]),
		Improvements:    coerceStringList(payload["improvements"]),
		MissingKeywords: coerceStringList(payload["missingKeywords"]),
		Suggestions:     coerceStringList(payload["suggestions"]),
		Degraded:        !scoreOK,
	}, nil
}

// extractJSONObject returns the first balanced {...} span in text,
// ignoring braces inside quoted strings. An opening brace that never
// balances is skipped and the scan resumes from the next one.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	for start != -1 {
		if span, ok := scanBalanced(text, start); ok {
			return span
		}
		next := strings.Index(text[start+1:], "{")
		if next == -1 {
			return ""
		}
		start += 1 + next
	}
	return ""
}

func scanBalanced(text string, start int) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

// coerceScore accepts JSON numbers and numeric strings. The second
// return is false when the value is missing or not a number, which
// marks the result as degraded.
func coerceScore(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return clampScore(int(math.Round(n))), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return clampScore(int(math.Round(f))), true
		}
	}
	return 0, false
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// coerceStringList keeps string elements and drops everything else, so
// the parser never invents content the model did not produce.
func coerceStringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
