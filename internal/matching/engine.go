// Package matching scores how well a resume matches a job description using
// TF-IDF cosine similarity and coverage of the job's top-ranked keywords.
//
// Every call builds its own term tables, vocabulary and vectors; the package
// holds no mutable state and is safe for concurrent use.
package matching

import "math"

// Scorer produces a match result for a resume and job description pair.
type Scorer interface {
	Score(resumeText, jobDescriptionText string, opts Options) (Result, error)
}

// TFIDFScorer is the TF-IDF + cosine + keyword coverage Scorer.
type TFIDFScorer struct{}

// Score implements Scorer.
func (TFIDFScorer) Score(resumeText, jobDescriptionText string, opts Options) (Result, error) {
	return Analyze(resumeText, jobDescriptionText, opts)
}

var _ Scorer = TFIDFScorer{}

// Analyze runs the full pipeline. Zero option fields take DefaultOptions; an
// out-of-range option returns ErrInvalidOptions. Empty texts are not an error
// and simply score 0.
func Analyze(resumeText, jobDescriptionText string, opts Options) (Result, error) {
	opts = opts.WithDefaults(DefaultOptions())
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	resumeTokens := Tokenize(Normalize(resumeText))
	jobTokens := Tokenize(Normalize(jobDescriptionText))
	resumeBigrams := Bigrams(resumeTokens)
	jobBigrams := Bigrams(jobTokens)

	jobTF := BuildTermFreq(jobTokens, jobBigrams, opts.PhraseBoostWeight)
	resumeTF := BuildTermFreq(resumeTokens, resumeBigrams, opts.ResumeBigramBoost)

	vocab := BuildVocabulary(jobTF, resumeTF)
	idf := ComputeIDF(jobTF, resumeTF)

	cosine := CosineSimilarity(Vectorize(jobTF, vocab, idf), Vectorize(resumeTF, vocab, idf))

	top := KeywordTerms(RankKeywords(vocab, jobTF, idf, opts.TopKKeywords))
	cov := CheckCoverage(top, resumeTokens, resumeBigrams)

	suggestions := Suggest(SuggestionInput{
		ResumeText:       resumeText,
		ResumeTokenCount: len(resumeTokens),
		MissingKeywords:  cov.Missing,
	})

	reported := top
	if len(reported) > ReportedKeywordLimit {
		reported = reported[:ReportedKeywordLimit]
	}

	return Result{
		Score:           Aggregate(cosine, cov.Ratio, opts),
		MatchedKeywords: cov.Matched,
		MissingKeywords: cov.Missing,
		Suggestions:     suggestions,
		Details: Details{
			CosineSimilarity: round4(cosine),
			KeywordCoverage:  round4(cov.Ratio),
			JDTopKeywords:    reported,
		},
	}.normalized(), nil
}

// Aggregate combines similarity and coverage into an integer score in [0,100].
// The weighted sum is clamped to [0,1] before scaling.
func Aggregate(cosine, coverage float64, opts Options) int {
	raw := opts.SimilarityWeight*cosine + opts.CoverageWeight*coverage
	return int(math.Round(clamp01(raw) * 100))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
