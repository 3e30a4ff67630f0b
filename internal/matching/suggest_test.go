package matching

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	emailLine  = "Add a professional email address in the resume header."
	phoneLine  = "Add a phone number in the resume header."
	layoutLine = "Use a clean single-column layout and consistent date formatting (MM/YYYY)."
)

func TestSuggestAllRulesFire(t *testing.T) {
	got := Suggest(SuggestionInput{ResumeText: "", ResumeTokenCount: 0})
	require.Len(t, got, 5)
	assert.Equal(t, "Great — most high-value JD keywords are present in the resume.", got[0])
	assert.Equal(t, emailLine, got[1])
	assert.Equal(t, phoneLine, got[2])
	assert.Equal(t, "Resume is short (<120 tokens). Consider 1 page with more quantified achievements.", got[3])
	assert.Equal(t, layoutLine, got[4])
}

func TestSuggestContactDetected(t *testing.T) {
	got := Suggest(SuggestionInput{
		ResumeText:       "Jane Doe | Jane.Doe@Example.COM | (555) 123-4567",
		ResumeTokenCount: 500,
	})
	assert.NotContains(t, got, emailLine)
	assert.NotContains(t, got, phoneLine)
	assert.Equal(t, layoutLine, got[len(got)-1])
	require.Len(t, got, 2)
}

func TestSuggestPhoneFormats(t *testing.T) {
	for _, text := range []string{
		"555-123-4567",
		"+1 555 123 4567",
		"5551234567",
		"(555)123-4567",
		"555\u00a0123\u00a04567",
		"+44\u202f555\u2009123\u30004567",
		"555\v123\v4567",
	} {
		assert.True(t, phonePattern.MatchString(text), "%q", text)
	}
	assert.False(t, phonePattern.MatchString("call 12345"))
	assert.False(t, phonePattern.MatchString("555_123_4567"))
}

func TestSuggestMissingKeywordsPreview(t *testing.T) {
	missing := []string{"k1", "k2", "k3", "k4", "k5", "k6", "k7", "k8", "k9", "k10"}
	got := Suggest(SuggestionInput{MissingKeywords: missing, ResumeTokenCount: 500})
	require.NotEmpty(t, got)
	assert.True(t, strings.HasPrefix(got[0], "Consider adding or rephrasing bullets to include: k1, k2, k3, k4, k5, k6, k7, k8. "))
	assert.NotContains(t, got[0], "k9")
	assert.True(t, strings.HasSuffix(got[0], "Prioritize the first 3 missing keywords in role summary or top 1-2 bullets."))
}

func TestSuggestLengthThresholds(t *testing.T) {
	tests := []struct {
		tokens int
		want   string
	}{
		{tokens: 119, want: "Resume is short"},
		{tokens: 120, want: ""},
		{tokens: 1200, want: ""},
		{tokens: 1201, want: "Resume is long"},
	}
	for _, tc := range tests {
		got := Suggest(SuggestionInput{ResumeText: "a@b.io 555-123-4567", ResumeTokenCount: tc.tokens})
		found := ""
		for _, line := range got {
			if strings.HasPrefix(line, "Resume is") {
				found = line
			}
		}
		if tc.want == "" {
			assert.Empty(t, found, "tokens=%d", tc.tokens)
			continue
		}
		assert.True(t, strings.HasPrefix(found, tc.want), "tokens=%d got %q", tc.tokens, found)
	}
}
