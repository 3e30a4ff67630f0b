package matching

import "math"

// TermFreq counts term occurrences within one document. It remembers the order
// in which terms were first added so that everything derived from it is
// deterministic.
type TermFreq struct {
	counts map[string]int
	order  []string
}

// NewTermFreq returns an empty table.
func NewTermFreq() *TermFreq {
	return &TermFreq{counts: make(map[string]int)}
}

// BuildTermFreq counts each unigram once and each bigram round(bigramWeight) times.
// A bigram whose rounded weight is zero is still registered in the table.
func BuildTermFreq(tokens, bigrams []string, bigramWeight float64) *TermFreq {
	tf := NewTermFreq()
	for _, t := range tokens {
		tf.Add(t, 1)
	}
	weight := int(math.Round(bigramWeight))
	for _, b := range bigrams {
		tf.Add(b, weight)
	}
	return tf
}

// Add increments term by n, registering it on first sight.
func (t *TermFreq) Add(term string, n int) {
	if _, ok := t.counts[term]; !ok {
		t.order = append(t.order, term)
	}
	t.counts[term] += n
}

// Count returns the occurrences of term, or 0 when absent.
func (t *TermFreq) Count(term string) int {
	if t == nil {
		return 0
	}
	return t.counts[term]
}

// Has reports whether term was ever added.
func (t *TermFreq) Has(term string) bool {
	if t == nil {
		return false
	}
	_, ok := t.counts[term]
	return ok
}

// Terms returns the table's terms in first-seen order.
func (t *TermFreq) Terms() []string {
	if t == nil {
		return []string{}
	}
	return append([]string(nil), t.order...)
}

// Len returns the number of distinct terms.
func (t *TermFreq) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// ComputeIDF returns the smoothed inverse document frequency
// ln((N+1)/(df+1)) + 1 of every term in tables, where N is len(tables).
func ComputeIDF(tables ...*TermFreq) map[string]float64 {
	n := float64(len(tables))
	df := make(map[string]int)
	for _, table := range tables {
		if table == nil {
			continue
		}
		for _, term := range table.order {
			df[term]++
		}
	}
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((n+1)/(float64(count)+1)) + 1
	}
	return idf
}

// BuildVocabulary returns the union of the tables' terms, in table order and
// then first-seen order within each table.
func BuildVocabulary(tables ...*TermFreq) []string {
	seen := make(map[string]struct{})
	var vocab []string
	for _, table := range tables {
		if table == nil {
			continue
		}
		for _, term := range table.order {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			vocab = append(vocab, term)
		}
	}
	if vocab == nil {
		return []string{}
	}
	return vocab
}

// Vectorize projects tf onto vocab using tf × idf weights.
func Vectorize(tf *TermFreq, vocab []string, idf map[string]float64) []float64 {
	vec := make([]float64, len(vocab))
	for i, term := range vocab {
		vec[i] = float64(tf.Count(term)) * idf[term]
	}
	return vec
}

// CosineSimilarity returns dot(a,b) / (|a| |b|), or 0 when either norm is zero.
// Vectors of unequal length are compared over their common prefix.
func CosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
