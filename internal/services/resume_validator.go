package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// Detection constants. A document counts as a resume when its weighted
// signal score, normalized by the maximum attainable weight, reaches
// resumeScoreThreshold (boundary inclusive) and the text is at least
// minResumeRunes long. The floor rejects trivially short input no
// matter how strong its signals are.
const (
	resumeScoreThreshold = 0.4
	minResumeRunes       = 500
)

var (
	emailPattern = regexp.MustCompile(`\b[\w.+-]+@[\w-]+(?:\.[\w-]+)+\b`)
	phonePattern = regexp.MustCompile(`\b\d{10}\b|\(?\d{3}\)?[\s.-]\d{3}[\s.-]\d{4}\b`)
	datePattern  = regexp.MustCompile(`\b(?:19|20)\d{2}\s*(?:[-–—]|to)\s*(?:(?:19|20)\d{2}|present|current|now)\b`)
)

// ResumeValidatorService decides whether extracted text actually looks
// like a resume, so garbage uploads never reach the inference service.
// Classification is deterministic and makes no external calls.
type ResumeValidatorService interface {
	Classify(text string) models.ResumeVerdict
}

type resumeSignal struct {
	category string
	weight   float64
	match    func(lower string) bool
}

type resumeValidatorService struct {
	signals   []resumeSignal
	maxWeight float64
}

func NewResumeValidatorService() ResumeValidatorService {
	signals := []resumeSignal{
		{"contact:email", 3, matchRegexp(emailPattern)},
		{"contact:phone", 2, matchRegexp(phonePattern)},
		{"section:experience", 3, matchAnyKeyword("experience", "work history", "employment")},
		{"section:education", 3, matchAnyKeyword("education", "academic")},
		{"section:skills", 2, matchAnyKeyword("skills", "technologies", "competencies")},
		{"section:summary", 1, matchAnyKeyword("summary", "objective", "profile")},
		{"section:projects", 1, matchAnyKeyword("projects", "portfolio")},
		{"daterange", 3, matchRegexp(datePattern)},
		{"bullets", 2, matchBulletDensity},
	}

	maxWeight := 0.0
	for _, s := range signals {
		maxWeight += s.weight
	}

	return &resumeValidatorService{
		signals:   signals,
		maxWeight: maxWeight,
	}
}

// Classify implements ResumeValidatorService.
func (v *resumeValidatorService) Classify(text string) models.ResumeVerdict {
	lower := strings.ToLower(text)

	score := 0.0
	matched := []string{}
	for _, s := range v.signals {
		if s.match(lower) {
			score += s.weight
			matched = append(matched, s.category)
		}
	}

	confidence := score / v.maxWeight
	longEnough := utf8.RuneCountInString(text) >= minResumeRunes

	return models.ResumeVerdict{
		IsResume:       longEnough && confidence >= resumeScoreThreshold,
		Confidence:     confidence,
		MatchedSignals: matched,
	}
}

func matchRegexp(re *regexp.Regexp) func(string) bool {
	return func(lower string) bool {
		return re.MatchString(lower)
	}
}

func matchAnyKeyword(keywords ...string) func(string) bool {
	return func(lower string) bool {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}
}

// matchBulletDensity reports whether the text carries enough bullet
// glyphs to suggest a bulleted layout. Line structure is already gone
// after normalization, so glyph count stands in for line count.
func matchBulletDensity(lower string) bool {
	count := strings.Count(lower, "•") + strings.Count(lower, "●") + strings.Count(lower, "▪")
	return count >= 3
}
