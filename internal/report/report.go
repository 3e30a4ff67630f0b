// Package report renders an analysis result as the downloadable JSON report.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ats-backend/internal/matching"
)

// FileName is the download name of a report.
const FileName = "ats-real-report.json"

// ContentType is the media type reports are stored and served with.
const ContentType = "application/json"

// ErrMalformed is returned by Parse for payloads that are not a report.
var ErrMalformed = errors.New("malformed report")

// Report is an analysis result stamped with its generation time.
type Report struct {
	GeneratedAt     time.Time        `json:"generatedAt"`
	Score           int              `json:"score"`
	MatchedKeywords []string         `json:"matchedKeywords"`
	MissingKeywords []string         `json:"missingKeywords"`
	Suggestions     []string         `json:"suggestions"`
	Details         matching.Details `json:"details"`
}

// New builds a report from result, stamped with now in UTC.
func New(result matching.Result, now time.Time) Report {
	result = result.Normalized()
	return Report{
		GeneratedAt:     now.UTC().Truncate(time.Second),
		Score:           result.Score,
		MatchedKeywords: result.MatchedKeywords,
		MissingKeywords: result.MissingKeywords,
		Suggestions:     result.Suggestions,
		Details:         result.Details,
	}
}

// Result strips the timestamp.
func (r Report) Result() matching.Result {
	return matching.Result{
		Score:           r.Score,
		MatchedKeywords: r.MatchedKeywords,
		MissingKeywords: r.MissingKeywords,
		Suggestions:     r.Suggestions,
		Details:         r.Details,
	}.Normalized()
}

// Marshal renders the report as two-space indented JSON.
func Marshal(r Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// Parse decodes a report produced by Marshal.
func Parse(data []byte) (Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if r.GeneratedAt.IsZero() {
		return Report{}, fmt.Errorf("%w: missing generatedAt", ErrMalformed)
	}
	if r.Score < 0 || r.Score > 100 {
		return Report{}, fmt.Errorf("%w: score %d out of range", ErrMalformed, r.Score)
	}
	res := r.Result()
	r.MatchedKeywords = res.MatchedKeywords
	r.MissingKeywords = res.MissingKeywords
	r.Suggestions = res.Suggestions
	r.Details = res.Details
	return r, nil
}
