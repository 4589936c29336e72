package flow

import (
	"errors"
	"fmt"

	"github.com/rendis/mealee/internal/engine/search"
)

// Field is one settable form value.
type Field int

const (
	Location Field = iota
	Term
	PriceMin
	PriceMax
	fieldCount
)

func (f Field) String() string {
	switch f {
	case Location:
		return "location"
	case Term:
		return "term"
	case PriceMin:
		return "price min"
	case PriceMax:
		return "price max"
	}
	return fmt.Sprintf("field(%d)", int(f))
}

func (f Field) valid() bool {
	return f >= 0 && f < fieldCount
}

// Assignment sets Field to Value.
type Assignment struct {
	Field Field
	Value string
}

// Set is shorthand for an Assignment.
func Set(f Field, v string) Assignment {
	return Assignment{Field: f, Value: v}
}

var ErrAssignmentCount = errors.New("advance takes one or two assignments")

// Form accumulates search criteria one step at a time.
type Form struct {
	values [fieldCount]string
}

// Advance applies one or two assignments together: either all are applied
// or, on error, none.
func (f *Form) Advance(assignments ...Assignment) error {
	if len(assignments) == 0 || len(assignments) > 2 {
		return ErrAssignmentCount
	}
	for _, a := range assignments {
		if !a.Field.valid() {
			return fmt.Errorf("advance: unknown %s", a.Field)
		}
	}
	for _, a := range assignments {
		f.values[a.Field] = a.Value
	}
	return nil
}

// GoBack clears exactly one field, which returns the flow to that field's step.
func (f *Form) GoBack(field Field) error {
	if !field.valid() {
		return fmt.Errorf("go back: unknown %s", field)
	}
	f.values[field] = ""
	return nil
}

func (f *Form) Reset() {
	f.values = [fieldCount]string{}
}

func (f *Form) Value(field Field) string {
	if !field.valid() {
		return ""
	}
	return f.values[field]
}

func (f *Form) Has(field Field) bool {
	return f.Value(field) != ""
}

func (f *Form) Criteria() search.Criteria {
	return search.Criteria{
		Location: f.values[Location],
		Term:     f.values[Term],
		PriceMin: f.values[PriceMin],
		PriceMax: f.values[PriceMax],
	}
}
