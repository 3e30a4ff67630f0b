package matching

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidOptions is returned when an option falls outside its allowed range.
var ErrInvalidOptions = errors.New("invalid options")

const (
	DefaultTopKKeywords      = 40
	DefaultPhraseBoostWeight = 1.6
	DefaultCoverageWeight    = 0.25
	DefaultSimilarityWeight  = 0.75

	// ReportedKeywordLimit caps details.jdTopKeywords regardless of TopKKeywords.
	ReportedKeywordLimit = 50
)

// Options tunes the scoring pipeline. Zero-valued fields take the defaults.
// An unset ResumeBigramBoost follows PhraseBoostWeight so both documents weight
// phrases alike; set it to 1 for the unboosted resume side.
type Options struct {
	TopKKeywords      int     `json:"topKKeywords,omitempty"`
	PhraseBoostWeight float64 `json:"phraseBoostWeight,omitempty"`
	ResumeBigramBoost float64 `json:"resumeBigramBoost,omitempty"`
	CoverageWeight    float64 `json:"coverageWeight,omitempty"`
	SimilarityWeight  float64 `json:"similarityWeight,omitempty"`
}

// DefaultOptions returns the options used when a caller supplies none.
func DefaultOptions() Options {
	return Options{
		TopKKeywords:      DefaultTopKKeywords,
		PhraseBoostWeight: DefaultPhraseBoostWeight,
		ResumeBigramBoost: DefaultPhraseBoostWeight,
		CoverageWeight:    DefaultCoverageWeight,
		SimilarityWeight:  DefaultSimilarityWeight,
	}
}

// WithDefaults returns a copy of o where every zero field is taken from fallback.
// When o sets PhraseBoostWeight but not ResumeBigramBoost, the resume side takes
// o's phrase boost instead of fallback's resume boost.
func (o Options) WithDefaults(fallback Options) Options {
	if o.TopKKeywords == 0 {
		o.TopKKeywords = fallback.TopKKeywords
	}
	if o.ResumeBigramBoost == 0 {
		if o.PhraseBoostWeight != 0 {
			o.ResumeBigramBoost = o.PhraseBoostWeight
		} else {
			o.ResumeBigramBoost = fallback.ResumeBigramBoost
		}
	}
	if o.PhraseBoostWeight == 0 {
		o.PhraseBoostWeight = fallback.PhraseBoostWeight
	}
	if o.ResumeBigramBoost == 0 {
		o.ResumeBigramBoost = o.PhraseBoostWeight
	}
	if o.CoverageWeight == 0 {
		o.CoverageWeight = fallback.CoverageWeight
	}
	if o.SimilarityWeight == 0 {
		o.SimilarityWeight = fallback.SimilarityWeight
	}
	return o
}

// Validate reports the first field outside its allowed range.
func (o Options) Validate() error {
	if o.TopKKeywords <= 0 {
		return fmt.Errorf("%w: topKKeywords must be positive, got %d", ErrInvalidOptions, o.TopKKeywords)
	}
	if !positive(o.PhraseBoostWeight) {
		return fmt.Errorf("%w: phraseBoostWeight must be positive, got %v", ErrInvalidOptions, o.PhraseBoostWeight)
	}
	if !positive(o.ResumeBigramBoost) {
		return fmt.Errorf("%w: resumeBigramBoost must be positive, got %v", ErrInvalidOptions, o.ResumeBigramBoost)
	}
	if !unitInterval(o.CoverageWeight) {
		return fmt.Errorf("%w: coverageWeight must be between 0 and 1, got %v", ErrInvalidOptions, o.CoverageWeight)
	}
	if !unitInterval(o.SimilarityWeight) {
		return fmt.Errorf("%w: similarityWeight must be between 0 and 1, got %v", ErrInvalidOptions, o.SimilarityWeight)
	}
	return nil
}

func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func unitInterval(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
