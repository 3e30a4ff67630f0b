package matching

import "strings"

// stopwords are common English function words excluded from keyword analysis.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "if": {}, "then": {},
	"else": {}, "when": {}, "at": {}, "by": {}, "for": {}, "with": {}, "about": {},
	"against": {}, "between": {}, "into": {}, "through": {}, "during": {}, "before": {},
	"after": {}, "above": {}, "below": {}, "to": {}, "from": {}, "up": {}, "down": {},
	"in": {}, "out": {}, "on": {}, "off": {}, "over": {}, "under": {}, "again": {},
	"further": {}, "than": {}, "once": {}, "here": {}, "there": {}, "all": {}, "any": {},
	"both": {}, "each": {}, "few": {}, "more": {}, "most": {}, "other": {}, "some": {},
	"such": {}, "no": {}, "nor": {}, "not": {}, "only": {}, "own": {}, "same": {}, "so": {},
	"too": {}, "very": {}, "can": {}, "will": {}, "just": {}, "don": {}, "should": {},
	"now": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"of": {}, "that": {}, "this": {}, "it": {}, "as": {}, "your": {}, "you": {}, "we": {},
	"our": {}, "i": {}, "me": {}, "my": {}, "they": {}, "their": {}, "them": {}, "he": {},
	"she": {}, "his": {}, "her": {}, "its": {},
}

// IsStopword reports whether term is in the fixed stopword list.
func IsStopword(term string) bool {
	_, ok := stopwords[term]
	return ok
}

// Normalize collapses whitespace runs to single spaces, trims and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Tokenize splits normalized text into unigram tokens. Characters outside
// [a-z0-9-] act as separators; stopwords and all-digit tokens are dropped.
// Order and duplicates are preserved.
func Tokenize(normalized string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == ' ':
			return r
		default:
			return ' '
		}
	}, normalized)

	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if IsStopword(f) || allDigits(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Bigrams joins each adjacent token pair with a single space.
func Bigrams(tokens []string) []string {
	if len(tokens) < 2 {
		return []string{}
	}
	out := make([]string, 0, len(tokens)-1)
	for i := 0; i < len(tokens)-1; i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
