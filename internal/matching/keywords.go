package matching

import "sort"

// KeywordScore is a job-description term with its tf × idf weight.
type KeywordScore struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// RankKeywords scores every vocabulary term present in jobTF by tf × idf,
// drops non-positive scores and returns the k highest, ties kept in
// vocabulary order.
func RankKeywords(vocab []string, jobTF *TermFreq, idf map[string]float64, k int) []KeywordScore {
	if k <= 0 {
		return []KeywordScore{}
	}
	ranked := make([]KeywordScore, 0, len(vocab))
	for _, term := range vocab {
		score := float64(jobTF.Count(term)) * idf[term]
		if score > 0 {
			ranked = append(ranked, KeywordScore{Term: term, Score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// KeywordTerms strips the scores from a ranking.
func KeywordTerms(ranked []KeywordScore) []string {
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Term)
	}
	return out
}

// Coverage is the outcome of checking ranked keywords against a resume.
type Coverage struct {
	Matched []string
	Missing []string
	Ratio   float64
}

// CheckCoverage matches each top keyword exactly against the resume's unigrams
// and bigrams. Matched holds each keyword once, in ranked order; Missing keeps
// ranked order so the most important gaps come first.
func CheckCoverage(top, resumeTokens, resumeBigrams []string) Coverage {
	lookup := make(map[string]struct{}, len(resumeTokens)+len(resumeBigrams))
	for _, t := range resumeTokens {
		lookup[t] = struct{}{}
	}
	for _, b := range resumeBigrams {
		lookup[b] = struct{}{}
	}

	cov := Coverage{Matched: []string{}, Missing: []string{}}
	matched := make(map[string]struct{}, len(top))
	for _, kw := range top {
		if _, ok := lookup[kw]; ok {
			if _, dup := matched[kw]; !dup {
				matched[kw] = struct{}{}
				cov.Matched = append(cov.Matched, kw)
			}
			continue
		}
		cov.Missing = append(cov.Missing, kw)
	}
	if len(top) > 0 {
		cov.Ratio = float64(len(matched)) / float64(len(top))
	}
	return cov
}
