package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-backend/internal/matching"
)

func TestRoundTripPreservesResult(t *testing.T) {
	result, err := matching.Analyze(
		"Go engineer with Kubernetes and PostgreSQL. jane@example.com",
		"Senior Go engineer: Kubernetes, PostgreSQL, Terraform.",
		matching.Options{},
	)
	require.NoError(t, err)

	now := time.Date(2026, time.March, 4, 15, 4, 5, 999, time.FixedZone("X", 3600))
	data, err := Marshal(New(result, now))
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, result, parsed.Result())
	assert.Equal(t, "2026-03-04T14:04:05Z", parsed.GeneratedAt.Format(time.RFC3339))
}

func TestMarshalUsesTwoSpaceIndentAndCamelCase(t *testing.T) {
	data, err := Marshal(New(matching.Result{Score: 42}, time.Unix(0, 0)))
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "{\n  \"generatedAt\": \"1970-01-01T00:00:00Z\""))
	assert.Contains(t, out, `"matchedKeywords": []`)
	assert.Contains(t, out, `"jdTopKeywords": []`)
	assert.Contains(t, out, `"cosineSimilarity": 0`)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "not json", `{"score":10}`, `{"generatedAt":"2026-01-01T00:00:00Z","score":101}`} {
		_, err := Parse([]byte(in))
		assert.True(t, errors.Is(err, ErrMalformed), "input %q err %v", in, err)
	}
}
