package model

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"
)

const sampleRecord = `{
	"id": "abc-123",
	"name": "Casa Lucio",
	"rating": 4.5,
	"review_count": 812,
	"price": "$$",
	"display_phone": "+34 913 65 32 52",
	"url": "https://example.com/casa-lucio",
	"categories": [{"alias": "spanish", "title": "Spanish"}, {"alias": "tapas", "title": "Tapas Bars"}],
	"coordinates": {"latitude": 40.4125, "longitude": -3.7089},
	"location": {"display_address": ["Calle Cava Baja, 35", "28005 Madrid"]},
	"extra": {"nested": [1, 2, 3]}
}`

func TestBusinessAccessors(t *testing.T) {
	b := NewBusiness([]byte(sampleRecord))

	if got := b.Name(); got != "Casa Lucio" {
		t.Fatalf("Name() = %q, want %q", got, "Casa Lucio")
	}
	if got := b.Rating(); got != 4.5 {
		t.Fatalf("Rating() = %v, want 4.5", got)
	}
	if got := b.ReviewCount(); got != 812 {
		t.Fatalf("ReviewCount() = %d, want 812", got)
	}
	if got := b.Price(); got != "$$" {
		t.Fatalf("Price() = %q, want $$", got)
	}
	if got := b.Address(); got != "Calle Cava Baja, 35, 28005 Madrid" {
		t.Fatalf("Address() = %q", got)
	}
	cats := b.Categories()
	if len(cats) != 2 || cats[0] != "Spanish" || cats[1] != "Tapas Bars" {
		t.Fatalf("Categories() = %v", cats)
	}
	p, ok := b.Coordinates()
	if !ok || p.Lat() != 40.4125 || p.Lon() != -3.7089 {
		t.Fatalf("Coordinates() = %v, %v", p, ok)
	}
}

func TestBusinessRawIsPassedThrough(t *testing.T) {
	b := NewBusiness([]byte(sampleRecord))

	out, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var want bytes.Buffer
	if err := json.Compact(&want, []byte(sampleRecord)); err != nil {
		t.Fatalf("compact: %v", err)
	}
	if string(out) != want.String() {
		t.Fatalf("marshaled record differs from raw input:\n%s\n%s", out, want.String())
	}
	if string(b.Raw()) != sampleRecord {
		t.Fatalf("Raw() should return the input bytes")
	}

	var list []Business
	if err := json.Unmarshal([]byte(`[1, "x", {"name": "A"}, null]`), &list); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("len = %d, want 4", len(list))
	}
	if string(list[0].Raw()) != "1" || string(list[1].Raw()) != `"x"` {
		t.Fatalf("scalar records not kept verbatim: %s %s", list[0].Raw(), list[1].Raw())
	}
	if list[2].Name() != "A" {
		t.Fatalf("Name() = %q, want A", list[2].Name())
	}
}

func TestBusinessToleratesOddShapes(t *testing.T) {
	b := NewBusiness([]byte(`{"id": "only-id", "rating": "3.5", "categories": ["Diner", 7], "coordinates": {"latitude": 200, "longitude": 10}}`))

	if got := b.Name(); got != "only-id" {
		t.Fatalf("Name() = %q, want ID fallback", got)
	}
	if got := b.Rating(); got != 3.5 {
		t.Fatalf("Rating() = %v, want 3.5", got)
	}
	if cats := b.Categories(); len(cats) != 2 || cats[0] != "Diner" || cats[1] != "7" {
		t.Fatalf("Categories() = %v", cats)
	}
	if _, ok := b.Coordinates(); ok {
		t.Fatalf("out of range latitude should not produce coordinates")
	}

	empty := NewBusiness([]byte(`[]`))
	if empty.Name() != "Unnamed business" || empty.Address() != "" || empty.Price() != "" {
		t.Fatalf("non-object record should have empty display fields")
	}
}

func TestDistanceKm(t *testing.T) {
	a := NewBusiness([]byte(`{"coordinates": {"latitude": 40.4168, "longitude": -3.7038}}`))
	b := NewBusiness([]byte(`{"coordinates": {"latitude": 41.3874, "longitude": 2.1686}}`))

	d, ok := DistanceKm(a, b)
	if !ok {
		t.Fatalf("expected a distance")
	}
	// Madrid to Barcelona is roughly 505 km.
	if math.Abs(d-505) > 15 {
		t.Fatalf("DistanceKm = %.1f, want ~505", d)
	}

	if _, ok := DistanceKm(a, NewBusiness([]byte(`{}`))); ok {
		t.Fatalf("missing coordinates should give ok=false")
	}
}
