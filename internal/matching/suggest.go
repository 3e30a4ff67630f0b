package matching

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	missingPreviewLimit = 8
	shortResumeTokens   = 120
	longResumeTokens    = 1200
)

// phoneSeparator is the JavaScript \s set (Unicode spaces included) plus '-'.
const phoneSeparator = `[\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}-]`

var (
	emailPattern = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+\d{1,3}` + phoneSeparator + `?)?\(?\d{3}\)?` + phoneSeparator + `?\d{3}` + phoneSeparator + `?\d{4}`)
)

// SuggestionInput carries what the suggestion rules look at.
type SuggestionInput struct {
	ResumeText       string
	ResumeTokenCount int
	MissingKeywords  []string
}

type suggestionRule func(SuggestionInput) (string, bool)

// Order matters: each rule appends at most one line, in this sequence.
var suggestionRules = []suggestionRule{
	keywordGapSuggestion,
	emailSuggestion,
	phoneSuggestion,
	lengthSuggestion,
	layoutSuggestion,
}

// Suggest runs the fixed rule list and returns the resulting advice lines.
func Suggest(in SuggestionInput) []string {
	out := make([]string, 0, len(suggestionRules))
	for _, rule := range suggestionRules {
		if line, ok := rule(in); ok {
			out = append(out, line)
		}
	}
	return out
}

func keywordGapSuggestion(in SuggestionInput) (string, bool) {
	if len(in.MissingKeywords) == 0 {
		return "Great — most high-value JD keywords are present in the resume.", true
	}
	preview := in.MissingKeywords
	if len(preview) > missingPreviewLimit {
		preview = preview[:missingPreviewLimit]
	}
	return fmt.Sprintf(
		"Consider adding or rephrasing bullets to include: %s. Prioritize the first 3 missing keywords in role summary or top 1-2 bullets.",
		strings.Join(preview, ", "),
	), true
}

func emailSuggestion(in SuggestionInput) (string, bool) {
	if emailPattern.MatchString(in.ResumeText) {
		return "", false
	}
	return "Add a professional email address in the resume header.", true
}

func phoneSuggestion(in SuggestionInput) (string, bool) {
	if phonePattern.MatchString(in.ResumeText) {
		return "", false
	}
	return "Add a phone number in the resume header.", true
}

func lengthSuggestion(in SuggestionInput) (string, bool) {
	switch {
	case in.ResumeTokenCount < shortResumeTokens:
		return fmt.Sprintf("Resume is short (<%d tokens). Consider 1 page with more quantified achievements.", shortResumeTokens), true
	case in.ResumeTokenCount > longResumeTokens:
		return fmt.Sprintf("Resume is long (>%d tokens). Trim older or low-value roles.", longResumeTokens), true
	default:
		return "", false
	}
}

func layoutSuggestion(SuggestionInput) (string, bool) {
	return "Use a clean single-column layout and consistent date formatting (MM/YYYY).", true
}
