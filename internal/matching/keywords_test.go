package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankFor(jobTokens, resumeTokens []string, k int) []KeywordScore {
	job := BuildTermFreq(jobTokens, nil, 1)
	resume := BuildTermFreq(resumeTokens, nil, 1)
	return RankKeywords(BuildVocabulary(job, resume), job, ComputeIDF(job, resume), k)
}

func TestRankKeywordsOrdersByScore(t *testing.T) {
	ranked := rankFor([]string{"go", "go", "kubernetes"}, []string{"go"}, 10)
	require.Len(t, ranked, 2)
	assert.Equal(t, "go", ranked[0].Term)
	assert.InDelta(t, 2.0, ranked[0].Score, 1e-12)
	assert.Equal(t, "kubernetes", ranked[1].Term)
}

func TestRankKeywordsExcludesResumeOnlyTerms(t *testing.T) {
	ranked := rankFor([]string{"go"}, []string{"python", "django"}, 10)
	assert.Equal(t, []string{"go"}, KeywordTerms(ranked))
}

func TestRankKeywordsTiesKeepVocabularyOrder(t *testing.T) {
	ranked := rankFor([]string{"alpha", "beta", "gamma"}, nil, 10)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, KeywordTerms(ranked))
}

func TestRankKeywordsTruncatesToK(t *testing.T) {
	assert.Len(t, rankFor([]string{"a1", "b2", "c3"}, nil, 2), 2)
	assert.Empty(t, rankFor([]string{"a1"}, nil, 0))
}

func TestCheckCoverage(t *testing.T) {
	resumeTokens := []string{"go", "distributed", "systems"}
	cov := CheckCoverage(
		[]string{"go", "kubernetes", "distributed systems"},
		resumeTokens,
		Bigrams(resumeTokens),
	)
	assert.Equal(t, []string{"go", "distributed systems"}, cov.Matched)
	assert.Equal(t, []string{"kubernetes"}, cov.Missing)
	assert.InDelta(t, 2.0/3.0, cov.Ratio, 1e-12)
}

func TestCheckCoverageEmptyTop(t *testing.T) {
	cov := CheckCoverage(nil, []string{"go"}, nil)
	assert.Equal(t, []string{}, cov.Matched)
	assert.Equal(t, []string{}, cov.Missing)
	assert.Zero(t, cov.Ratio)
}

func TestCheckCoverageRequiresExactTerm(t *testing.T) {
	cov := CheckCoverage([]string{"golang"}, []string{"go"}, nil)
	assert.Equal(t, []string{"golang"}, cov.Missing)
}
