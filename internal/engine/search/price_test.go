package search

import (
	"strconv"
	"strings"
	"testing"
)

func TestFormatTiersCoversHalfOpenRange(t *testing.T) {
	for min := Tier(0); min <= 6; min++ {
		for max := Tier(0); max <= 6; max++ {
			got := FormatTiers(min, max)
			if max <= min {
				if got != "" {
					t.Fatalf("FormatTiers(%d, %d) = %q, want empty", min, max, got)
				}
				continue
			}
			var want []string
			for tier := min; tier < max; tier++ {
				want = append(want, strconv.Itoa(int(tier)))
			}
			if got != strings.Join(want, ",") {
				t.Fatalf("FormatTiers(%d, %d) = %q, want %q", min, max, got, strings.Join(want, ","))
			}
		}
	}
}

func TestEncodePriceRange(t *testing.T) {
	cases := []struct {
		min, max string
		want     string
	}{
		{"1", "5", "1,2,3,4"},
		{"2", "4", "2,3"},
		{"3", "4", "3"},
		{"4", "4", ""},
		{"4", "1", ""},
		{" 1 ", "3", "1,2"},
		{"", "3", ""},
		{"abc", "3", ""},
		{"1", "x", ""},
	}
	for _, c := range cases {
		if got := EncodePriceRange(c.min, c.max); got != c.want {
			t.Fatalf("EncodePriceRange(%q, %q) = %q, want %q", c.min, c.max, got, c.want)
		}
	}
}

func TestParseTier(t *testing.T) {
	if tier, err := ParseTier("3"); err != nil || tier != 3 {
		t.Fatalf("ParseTier(3) = %d, %v", tier, err)
	}
	for _, bad := range []string{"", "0", "5", "two"} {
		if _, err := ParseTier(bad); err == nil {
			t.Fatalf("ParseTier(%q) should fail", bad)
		}
	}
	if got := Tier(3).Label(); got != "$$$" {
		t.Fatalf("Label() = %q, want $$$", got)
	}
}

func TestNormalizeInput(t *testing.T) {
	// "e" followed by a combining acute accent composes to a single rune.
	got := NormalizeInput("  Cafe\u0301   con\tleche \x00 ")
	if got != "Caf\u00e9 con leche" {
		t.Fatalf("NormalizeInput = %q", got)
	}
}

func TestCriteriaValidate(t *testing.T) {
	full := Criteria{Location: "Madrid", Term: "tapas", PriceMin: "1", PriceMax: "3"}
	if err := full.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	err := Criteria{Location: "Madrid"}.Validate()
	ice, ok := err.(*IncompleteCriteriaError)
	if !ok {
		t.Fatalf("Validate() = %T, want *IncompleteCriteriaError", err)
	}
	if len(ice.Missing) != 3 {
		t.Fatalf("missing = %v, want 3 fields", ice.Missing)
	}
}
