// Package text implements whitespace tokenization and substring matching
// of a query against a business's searchable text.
package text

import (
	"strings"

	"github.com/kailas-cloud/bizdex/internal/domain/business"
)

// Tokenize lowercases the query and splits it on whitespace, dropping empty tokens.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Haystack is the lowercase searchable text of b: name, category, description and city.
func Haystack(b *business.Business) string {
	return strings.ToLower(strings.Join([]string{b.Name, b.Category, b.Description, b.City}, " "))
}

// MatchFraction returns the share of terms found as substrings of b's haystack.
// An empty term list matches fully.
func MatchFraction(b *business.Business, terms []string) float64 {
	if len(terms) == 0 {
		return 1
	}
	hay := Haystack(b)
	found := 0
	for _, t := range terms {
		if strings.Contains(hay, t) {
			found++
		}
	}
	return float64(found) / float64(len(terms))
}

// AllTermsPresent reports whether every term occurs somewhere in b's haystack.
func AllTermsPresent(b *business.Business, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	hay := Haystack(b)
	for _, t := range terms {
		if !strings.Contains(hay, t) {
			return false
		}
	}
	return true
}
