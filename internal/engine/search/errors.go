package search

import (
	"errors"
	"fmt"
	"strings"
)

// NoBusinessesMessage is the single alert shown for every failed fetch.
const NoBusinessesMessage = "No businesses found; try altering the location and/or search term."

// ErrInvalidLimit is returned for a non-positive result limit.
var ErrInvalidLimit = errors.New("limit must be a positive integer")

// IncompleteCriteriaError is returned when a fetch is attempted before every
// form field is filled in.
type IncompleteCriteriaError struct {
	Missing []string
}

func (e *IncompleteCriteriaError) Error() string {
	return "missing search criteria: " + strings.Join(e.Missing, ", ")
}

// TransportError covers network failures, non-200 responses and bodies that
// are not the expected JSON.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NoResultsError means the API answered but with fewer than two businesses,
// which is not enough for a matchup.
type NoResultsError struct {
	Count int
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("only %d businesses found, need at least 2", e.Count)
}

// IsFetchFailure reports whether err is one of the failures that the game
// collapses into NoBusinessesMessage.
func IsFetchFailure(err error) bool {
	var te *TransportError
	var ne *NoResultsError
	return errors.As(err, &te) || errors.As(err, &ne)
}
