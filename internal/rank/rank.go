// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank scores papers against a query with a TF-IDF vector
// model and cosine similarity.
package rank

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/paper-scout/internal/log"
	"github.com/pdiddy/paper-scout/pkg/types"
)

// fullTextSample caps how much extracted full text contributes to a
// paper's corpus document, so long documents do not drown out the
// title and abstract.
const fullTextSample = 2000

// Ranker computes relevance scores. Pure computation, no I/O.
type Ranker struct {
	cfg types.RankConfig
}

// New returns a Ranker configured per cfg.
func New(cfg types.RankConfig) *Ranker {
	return &Ranker{cfg: cfg}
}

// Rank annotates each paper with its cosine similarity to the query,
// drops papers scoring below the configured floor, and returns the
// rest sorted by descending score. Ties keep their input order.
//
// When the corpus yields no usable terms (stop-word-only query, empty
// abstracts) the input is returned in original order with zero scores
// and no floor filtering: ranking is unavailable, not failed.
func (r *Ranker) Rank(query string, papers []types.PaperRecord) []types.PaperRecord {
	if len(papers) == 0 {
		return papers
	}

	// One document per paper plus the query as the final document.
	docs := make([][]string, 0, len(papers)+1)
	for _, p := range papers {
		docs = append(docs, tokenize(cleanText(corpusText(p))))
	}
	docs = append(docs, tokenize(cleanText(query)))

	vocab := buildVocabulary(docs, r.cfg.MaxVocabulary)
	if len(vocab) == 0 {
		log.Warnf("ranking unavailable: corpus has no usable terms")
		out := make([]types.PaperRecord, len(papers))
		copy(out, papers)
		for i := range out {
			out[i].RelevanceScore = 0
		}
		return out
	}

	vectors := vectorize(docs, vocab)
	queryVec := vectors[len(vectors)-1]

	scored := make([]types.PaperRecord, 0, len(papers))
	for i, p := range papers {
		p.RelevanceScore = dot(queryVec, vectors[i])
		if p.RelevanceScore < r.cfg.MinRelevanceScore {
			continue
		}
		scored = append(scored, p)
	}
	log.Debugf("ranked %d papers, %d cleared the %.3f floor",
		len(papers), len(scored), r.cfg.MinRelevanceScore)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})
	return scored
}

// SelectTop returns the first n papers, or all of them when n exceeds
// the input length.
func SelectTop(papers []types.PaperRecord, n int) []types.PaperRecord {
	if n < 0 {
		n = 0
	}
	if n > len(papers) {
		n = len(papers)
	}
	return papers[:n]
}

// corpusText assembles the text a paper contributes to the corpus:
// title, abstract, categories, and a bounded sample of the full text.
func corpusText(p types.PaperRecord) string {
	parts := []string{p.Title, p.Abstract, strings.Join(p.Categories, " ")}
	if p.FullText != "" {
		sample := p.FullText
		if len(sample) > fullTextSample {
			sample = sample[:fullTextSample]
		}
		parts = append(parts, sample)
	}
	return strings.Join(parts, " ")
}

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s]`)
	bareNumberRe = regexp.MustCompile(`\b\d+\b`)
	tokenRe      = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9]*`)
)

// cleanText normalizes raw text before tokenization: punctuation and
// standalone numbers become spaces, words of length two or less are
// dropped, and whitespace runs collapse.
func cleanText(text string) string {
	text = nonWordRe.ReplaceAllString(text, " ")
	text = bareNumberRe.ReplaceAllString(text, "")

	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if len(w) > 2 {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// tokenize lowercases the text, extracts alphanumeric tokens, removes
// stop words, and appends bigrams formed over the remaining sequence.
func tokenize(text string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)

	unigrams := make([]string, 0, len(raw))
	for _, tok := range raw {
		if stopWords[tok] {
			continue
		}
		unigrams = append(unigrams, tok)
	}

	terms := make([]string, 0, 2*len(unigrams))
	terms = append(terms, unigrams...)
	for i := 0; i+1 < len(unigrams); i++ {
		terms = append(terms, unigrams[i]+" "+unigrams[i+1])
	}
	return terms
}

// buildVocabulary maps the most frequent corpus terms to vector
// indices, capped at maxVocab. Frequency ties break alphabetically.
func buildVocabulary(docs [][]string, maxVocab int) map[string]int {
	freq := make(map[string]int)
	for _, doc := range docs {
		for _, term := range doc {
			freq[term]++
		}
	}

	terms := make([]string, 0, len(freq))
	for term := range freq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if maxVocab > 0 && len(terms) > maxVocab {
		terms = terms[:maxVocab]
	}

	vocab := make(map[string]int, len(terms))
	for i, term := range terms {
		vocab[term] = i
	}
	return vocab
}

// vectorize computes an L2-normalized TF-IDF vector per document.
// TF is the raw in-document count; IDF is the smoothed form
// ln((1+N)/(1+df)) + 1.
func vectorize(docs [][]string, vocab map[string]int) []map[int]float64 {
	n := len(docs)

	df := make(map[int]int, len(vocab))
	counts := make([]map[int]int, n)
	for d, doc := range docs {
		counts[d] = make(map[int]int)
		for _, term := range doc {
			idx, ok := vocab[term]
			if !ok {
				continue
			}
			if counts[d][idx] == 0 {
				df[idx]++
			}
			counts[d][idx]++
		}
	}

	idf := make(map[int]float64, len(vocab))
	for idx, d := range df {
		idf[idx] = math.Log(float64(1+n)/float64(1+d)) + 1
	}

	vectors := make([]map[int]float64, n)
	for d := range docs {
		vec := make(map[int]float64, len(counts[d]))
		var norm float64
		for idx, tf := range counts[d] {
			w := float64(tf) * idf[idx]
			vec[idx] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for idx := range vec {
				vec[idx] /= norm
			}
		}
		vectors[d] = vec
	}
	return vectors
}

// dot returns the dot product of two sparse vectors. Both inputs are
// L2-normalized, so this is their cosine similarity.
func dot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for idx, v := range a {
		sum += v * b[idx]
	}
	return sum
}
