package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Criteria is what the form collects before a fetch.
type Criteria struct {
	Location string
	Term     string
	PriceMin string
	PriceMax string
}

// Validate requires every field to be non-empty.
func (c Criteria) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Location) == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(c.Term) == "" {
		missing = append(missing, "term")
	}
	if strings.TrimSpace(c.PriceMin) == "" {
		missing = append(missing, "price min")
	}
	if strings.TrimSpace(c.PriceMax) == "" {
		missing = append(missing, "price max")
	}
	if len(missing) > 0 {
		return &IncompleteCriteriaError{Missing: missing}
	}
	return nil
}

// Price is the encoded price filter for these criteria.
func (c Criteria) Price() string {
	return EncodePriceRange(c.PriceMin, c.PriceMax)
}

// NormalizeInput composes text to NFC, drops control characters and collapses
// runs of whitespace. Free-text location and term values go through it.
func NormalizeInput(s string) string {
	t := transform.Chain(norm.NFC, transform.RemoveFunc(func(r rune) bool {
		return unicode.IsControl(r) && !unicode.IsSpace(r)
	}))
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.Join(strings.Fields(result), " ")
}
