// Package keywords derives a deduplicated, stop-word-filtered keyword set
// from free-text job descriptions.
package keywords

import (
	"sort"

	"resume-screener/internal/textutil"
)

// stopWords lists articles, auxiliary verbs, pronouns and common prepositions
// excluded from keyword extraction.
var stopWords = map[string]bool{
	// articles
	"a": true, "an": true, "the": true,
	// auxiliary verbs
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "am": true, "do": true, "does": true,
	"did": true, "have": true, "has": true, "had": true, "will": true,
	"would": true, "shall": true, "should": true, "can": true, "could": true,
	"may": true, "might": true, "must": true,
	// pronouns
	"i": true, "you": true, "he": true, "she": true, "it": true,
	"we": true, "they": true, "me": true, "him": true, "her": true,
	"us": true, "them": true, "my": true, "your": true, "his": true,
	"its": true, "our": true, "their": true, "this": true, "that": true,
	"these": true, "those": true, "who": true, "what": true, "which": true,
	// conjunctions and prepositions
	"and": true, "or": true, "not": true, "but": true, "if": true,
	"in": true, "on": true, "at": true, "to": true, "for": true,
	"of": true, "with": true, "from": true, "by": true, "about": true,
	"as": true, "into": true, "over": true, "under": true, "up": true,
	"out": true, "so": true, "than": true, "then": true,
}

// minTokenLength excludes tokens of length <= 2 from keyword sets.
const minTokenLength = 3

// Set is a deduplicated keyword set with case-insensitive membership.
type Set map[string]struct{}

// Build tokenizes a job description into a keyword set: lower-cased word
// tokens with stop-words removed and short tokens (<= 2 chars) dropped.
// Blank input yields the empty set.
func Build(jdText string) Set {
	set := make(Set)
	for _, tok := range textutil.Tokenize(jdText) {
		if len(tok) < minTokenLength || stopWords[tok] {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// Len returns the number of distinct keywords.
func (s Set) Len() int { return len(s) }

// Contains reports whether the set holds the given keyword.
func (s Set) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

// Sorted returns the keywords in lexical order for deterministic iteration.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// IsStopWord reports whether a token is on the fixed stop-word list.
func IsStopWord(w string) bool { return stopWords[w] }
