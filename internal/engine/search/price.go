package search

import (
	"fmt"
	"strconv"
	"strings"
)

// Tier is a price level code understood by the API's price filter.
type Tier int

const (
	MinTier Tier = 1
	MaxTier Tier = 4
)

// Label renders a tier the way the API reports prices ("$".."$$$$").
func (t Tier) Label() string {
	if t < 1 {
		return ""
	}
	return strings.Repeat("$", int(t))
}

// ParseTier validates a tier string. Callers use it before handing strings
// to EncodePriceRange.
func ParseTier(s string) (Tier, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("price tier %q is not a number", s)
	}
	t := Tier(n)
	if t < MinTier || t > MaxTier {
		return 0, fmt.Errorf("price tier %d out of range %d-%d", n, MinTier, MaxTier)
	}
	return t, nil
}

// FormatTiers joins the tiers in [min, max) with commas.
// max <= min yields the empty string.
func FormatTiers(min, max Tier) string {
	if max <= min {
		return ""
	}
	parts := make([]string, 0, int(max-min))
	for t := min; t < max; t++ {
		parts = append(parts, strconv.Itoa(int(t)))
	}
	return strings.Join(parts, ",")
}

// EncodePriceRange is FormatTiers over the raw form values. The upper bound is
// exclusive. Inputs must already be numeric; anything that does not parse
// produces the empty string.
func EncodePriceRange(priceMin, priceMax string) string {
	lo, err := strconv.Atoi(strings.TrimSpace(priceMin))
	if err != nil {
		return ""
	}
	hi, err := strconv.Atoi(strings.TrimSpace(priceMax))
	if err != nil {
		return ""
	}
	return FormatTiers(Tier(lo), Tier(hi))
}
