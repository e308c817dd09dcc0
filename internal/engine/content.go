// internal/engine/content.go
package engine

import (
	"math"
	"sort"
	"strings"

	"recommendation-workers/internal/models"
)

// Score is a component score or a typed indeterminate marker. Indeterminate
// scores map to 0.0 at the ranking boundary; keeping the marker explicit
// makes degraded scoring visible in tests instead of silently folding it in.
type Score struct {
	Value         float64
	Indeterminate bool
}

// OrZero collapses an indeterminate score to 0.0.
func (s Score) OrZero() float64 {
	if s.Indeterminate {
		return 0.0
	}
	return s.Value
}

const maxVocabularyTerms = 1000

// contentStopWords filters common English words that add noise to the
// TF-IDF vocabulary.
var contentStopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "been": true, "but": true, "by": true, "can": true, "do": true,
	"each": true, "for": true, "from": true, "had": true, "has": true,
	"have": true, "he": true, "her": true, "his": true, "how": true, "i": true,
	"if": true, "in": true, "into": true, "is": true, "it": true, "its": true,
	"my": true, "no": true, "not": true, "of": true, "on": true, "or": true,
	"our": true, "she": true, "so": true, "such": true, "than": true,
	"that": true, "the": true, "their": true, "them": true, "then": true,
	"there": true, "these": true, "they": true, "this": true, "to": true,
	"was": true, "we": true, "were": true, "what": true, "when": true,
	"which": true, "who": true, "will": true, "with": true, "would": true,
	"you": true, "your": true,
}

// ContentSimilarities scores every candidate's text content against the user
// profile in one pass. The vectorizer is fitted once over the whole corpus
// (user document plus all candidate documents) so every candidate shares one
// vector space; refitting per candidate would redo the same work n times and
// give each pair its own incomparable space.
func ContentSimilarities(profile *models.UserProfile, jobs []models.Job) []Score {
	scores := make([]Score, len(jobs))

	userDoc := buildUserDocument(profile)
	jobDocs := make([]string, len(jobs))
	for i := range jobs {
		jobDocs[i] = buildJobDocument(&jobs[i])
	}

	if userDoc == "" {
		for i := range scores {
			scores[i] = Score{Indeterminate: true}
		}
		return scores
	}

	corpus := append([]string{userDoc}, jobDocs...)
	vec, ok := fitVectorizer(corpus)
	if !ok {
		// Degenerate corpus: the vocabulary emptied out after stop-word
		// removal. Every candidate degrades, nothing aborts.
		for i := range scores {
			scores[i] = Score{Indeterminate: true}
		}
		return scores
	}

	userVector := vec.vector(userDoc)
	for i, doc := range jobDocs {
		if doc == "" {
			scores[i] = Score{Value: 0.0}
			continue
		}
		scores[i] = Score{Value: cosineSimilarity(userVector, vec.vector(doc))}
	}
	return scores
}

func buildUserDocument(profile *models.UserProfile) string {
	if profile == nil {
		return ""
	}
	parts := []string{
		strings.Join(NormalizeSkills(profile.Skills), " "),
		profile.Education,
		profile.ExperienceLevel,
	}
	return joinDocument(parts)
}

func buildJobDocument(job *models.Job) string {
	parts := []string{job.Role, job.Description, job.CompanyName, job.Category}
	return joinDocument(parts)
}

func joinDocument(parts []string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.ToLower(strings.Join(kept, " "))
}

// vectorizer holds a fitted TF-IDF vocabulary. Always scoped to a single
// ranking batch, never shared across requests.
type vectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// fitVectorizer builds the vocabulary and inverse document frequencies over
// the corpus. Returns false when no terms survive tokenization.
func fitVectorizer(corpus []string) (*vectorizer, bool) {
	docFreq := make(map[string]int)
	termFreq := make(map[string]int)
	for _, doc := range corpus {
		tokens := tokenize(doc)
		inDoc := make(map[string]bool, len(tokens))
		for _, t := range tokens {
			termFreq[t]++
			inDoc[t] = true
		}
		for t := range inDoc {
			docFreq[t]++
		}
	}
	if len(docFreq) == 0 {
		return nil, false
	}

	terms := make([]string, 0, len(termFreq))
	for t := range termFreq {
		terms = append(terms, t)
	}
	// Cap the vocabulary to the highest-frequency terms; ties break
	// alphabetically so the fit is deterministic.
	sort.Slice(terms, func(i, j int) bool {
		if termFreq[terms[i]] != termFreq[terms[j]] {
			return termFreq[terms[i]] > termFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxVocabularyTerms {
		terms = terms[:maxVocabularyTerms]
	}

	v := &vectorizer{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
	}
	n := float64(len(corpus))
	for i, t := range terms {
		v.vocabulary[t] = i
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}
	return v, true
}

// vector computes the TF-IDF vector of a document in the fitted space.
func (v *vectorizer) vector(doc string) []float64 {
	out := make([]float64, len(v.idf))
	for _, t := range tokenize(doc) {
		if i, ok := v.vocabulary[t]; ok {
			out[i] += v.idf[i]
		}
	}
	return out
}

// tokenize splits lowercased text into terms of two or more characters,
// keeping + # . so terms like "c++" and "node.js" survive intact.
func tokenize(text string) []string {
	var tokens []string
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len([]rune(w)) >= 2 && !contentStopWords[w] {
			tokens = append(tokens, w)
		}
	}
	for _, r := range strings.ToLower(text) {
		if isTermRune(r) {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

func isTermRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '+', r == '#', r == '.':
		return true
	}
	return false
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
