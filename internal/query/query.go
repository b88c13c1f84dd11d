// Package query implements the single-operator boolean filter language used
// to narrow candidate lists: "and", "or" and "not", mutually exclusive per
// query, with plain substring matching as the fallback.
package query

import (
	"strings"

	"resume-screener/internal/models"
)

// Operator priority is fixed: "and" before "or" before "not". Mixing
// operators in one query is undefined; only the first recognized operator is
// honored.
const (
	opAnd = " and "
	opOr  = " or "
	opNot = " not "
)

// Evaluate reports whether the concatenated field text satisfies the query.
// The empty query matches unconditionally. Matching is case-insensitive
// substring containment throughout.
//
// The "not" branch keeps only the term after the operator; the term before
// it is discarded. Known limitation, kept so filter results stay stable.
func Evaluate(fieldText, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	text := strings.ToLower(fieldText)

	switch {
	case strings.Contains(q, opAnd):
		for _, term := range splitTerms(q, opAnd) {
			if !strings.Contains(text, term) {
				return false
			}
		}
		return true

	case strings.Contains(q, opOr):
		for _, term := range splitTerms(q, opOr) {
			if strings.Contains(text, term) {
				return true
			}
		}
		return false

	case strings.Contains(q, opNot):
		parts := strings.SplitN(q, opNot, 2)
		return !strings.Contains(text, strings.TrimSpace(parts[1]))

	default:
		return strings.Contains(text, q)
	}
}

// Filter returns the candidates satisfying the query, preserving input
// order. Records are never mutated; the result is always a fresh slice.
func Filter(candidates []models.Candidate, q string) []models.Candidate {
	matched := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if Evaluate(c.SearchText(), q) {
			matched = append(matched, c)
		}
	}
	return matched
}

// splitTerms splits a query on an operator and trims each term, dropping
// blanks so stray operator repetition does not produce empty terms.
func splitTerms(q, op string) []string {
	var terms []string
	for _, part := range strings.Split(q, op) {
		if term := strings.TrimSpace(part); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}
