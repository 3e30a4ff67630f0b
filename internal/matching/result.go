package matching

// Result is the outcome of one analysis. It is never mutated after Analyze returns.
type Result struct {
	Score           int      `json:"score"`
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
	Suggestions     []string `json:"suggestions"`
	Details         Details  `json:"details"`
}

// Details exposes the components behind Score.
type Details struct {
	CosineSimilarity float64  `json:"cosineSimilarity"`
	KeywordCoverage  float64  `json:"keywordCoverage"`
	JDTopKeywords    []string `json:"jdTopKeywords"`
}

// normalized replaces nil slices so the JSON form always carries arrays.
func (r Result) normalized() Result {
	r.MatchedKeywords = nonNil(r.MatchedKeywords)
	r.MissingKeywords = nonNil(r.MissingKeywords)
	r.Suggestions = nonNil(r.Suggestions)
	r.Details.JDTopKeywords = nonNil(r.Details.JDTopKeywords)
	return r
}

// Normalized is the exported form of normalized, for results decoded from storage.
func (r Result) Normalized() Result {
	return r.normalized()
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
