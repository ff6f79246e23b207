// Package ngram provides deterministic keyword and n-gram extraction from
// raw article text. Tokenization is intentionally simple: lower-case, strip
// punctuation to whitespace, split, drop stop words. No stemming or
// lemmatization is applied, so "regulation" and "regulations" are distinct
// terms by design of the frequency model built on top.
package ngram

import (
	"strings"
	"unicode"
)

// DefaultMinLength is the minimum keyword length when none is given.
const DefaultMinLength = 3

// stopWords is the fixed filter set: articles, pronouns, auxiliary verbs and
// common conjunctions. Any token (or any word inside an n-gram window) in
// this set is dropped.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "i": {}, "you": {}, "he": {},
	"she": {}, "it": {}, "we": {}, "they": {}, "me": {}, "him": {},
	"her": {}, "us": {}, "them": {}, "my": {}, "your": {}, "his": {},
	"its": {}, "our": {}, "their": {},
}

// Extractor tokenizes text into keywords and n-grams. It holds only the
// immutable stop-word configuration, so a single value is safe for
// concurrent use.
type Extractor struct {
	minLength int
}

// NewExtractor returns an Extractor with the default minimum keyword length.
func NewExtractor() *Extractor {
	return &Extractor{minLength: DefaultMinLength}
}

// NewExtractorMinLength returns an Extractor that drops keywords shorter
// than minLength runes. Values below 1 fall back to the default.
func NewExtractorMinLength(minLength int) *Extractor {
	if minLength < 1 {
		minLength = DefaultMinLength
	}
	return &Extractor{minLength: minLength}
}

// Keywords extracts single-word keywords: tokens at least minLength runes
// long that are not stop words. Deterministic and side-effect free.
func (e *Extractor) Keywords(text string) []string {
	words := tokenize(text)
	keywords := make([]string, 0, len(words))
	for _, w := range words {
		if len([]rune(w)) < e.minLength {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		keywords = append(keywords, w)
	}
	return keywords
}

// Ngrams extracts space-joined n-word windows. A window is rejected when any
// of its constituent words is a stop word; the keyword length filter does
// not apply here. Returns nil for n < 1 or when the text has fewer than n
// words.
func (e *Extractor) Ngrams(text string, n int) []string {
	if n < 1 {
		return nil
	}
	words := tokenize(text)
	if len(words) < n {
		return nil
	}

	ngrams := make([]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		window := words[i : i+n]
		if windowHasStopWord(window) {
			continue
		}
		ngrams = append(ngrams, strings.Join(window, " "))
	}
	return ngrams
}

func windowHasStopWord(window []string) bool {
	for _, w := range window {
		if _, stop := stopWords[w]; stop {
			return true
		}
	}
	return false
}

// tokenize lower-cases the text, maps every non word character (anything
// that is not a letter, digit or underscore) to a space, and splits on
// whitespace.
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)
	return strings.Fields(cleaned)
}
