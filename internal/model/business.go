package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Business is one record from the search API's "businesses" array.
// The raw JSON is kept untouched and is what gets marshaled back out; the
// accessors below only read it for display and never fail.
type Business struct {
	raw    json.RawMessage
	fields map[string]any
}

// NewBusiness wraps a raw JSON value. Any JSON value is accepted; non-object
// values simply have no display fields.
func NewBusiness(raw []byte) Business {
	b := Business{raw: append(json.RawMessage(nil), raw...)}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err == nil {
		if obj, ok := decoded.(map[string]any); ok {
			b.fields = obj
		}
	}
	return b
}

// Raw returns the record exactly as the API sent it.
func (b Business) Raw() json.RawMessage {
	return b.raw
}

func (b Business) MarshalJSON() ([]byte, error) {
	if len(b.raw) == 0 {
		return []byte("null"), nil
	}
	return b.raw, nil
}

func (b *Business) UnmarshalJSON(data []byte) error {
	*b = NewBusiness(bytes.TrimSpace(data))
	return nil
}

func (b Business) ID() string {
	return safeString(safeGet(b.fields, "id"))
}

// Name falls back to the ID, then to a placeholder, so a card always has a title.
func (b Business) Name() string {
	if name := safeString(safeGet(b.fields, "name")); name != "" {
		return name
	}
	if id := b.ID(); id != "" {
		return id
	}
	return "Unnamed business"
}

func (b Business) Rating() float64 {
	return safeFloat(safeGet(b.fields, "rating"))
}

func (b Business) ReviewCount() int {
	return int(safeFloat(safeGet(b.fields, "review_count")))
}

// Price is the "$".."$$$$" label, empty when the API has none.
func (b Business) Price() string {
	return safeString(safeGet(b.fields, "price"))
}

func (b Business) Phone() string {
	if p := safeString(safeGet(b.fields, "display_phone")); p != "" {
		return p
	}
	return safeString(safeGet(b.fields, "phone"))
}

func (b Business) URL() string {
	return safeString(safeGet(b.fields, "url"))
}

func (b Business) ImageURL() string {
	return safeString(safeGet(b.fields, "image_url"))
}

// Address joins location.display_address, falling back to address1 and city.
func (b Business) Address() string {
	if lines := safeSlice(safeGet(b.fields, "location", "display_address")); len(lines) > 0 {
		var parts []string
		for _, l := range lines {
			if s := safeString(l); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}

	var parts []string
	for _, key := range []string{"address1", "city"} {
		if s := safeString(safeGet(b.fields, "location", key)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// Categories returns category titles. Plain string entries are accepted too.
func (b Business) Categories() []string {
	var titles []string
	for _, c := range safeSlice(safeGet(b.fields, "categories")) {
		if s := safeString(c); s != "" {
			titles = append(titles, s)
			continue
		}
		if s := safeString(safeGet(c, "title")); s != "" {
			titles = append(titles, s)
		}
	}
	return titles
}
