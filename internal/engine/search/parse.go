package search

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rendis/mealee/internal/model"
)

type retrieveResponse struct {
	Businesses *[]model.Business `json:"businesses"`
}

// ParseResponse decodes a /retrieve body into its business records. A body
// that is not a JSON object with a "businesses" array is an error; the
// records themselves can be any JSON values.
func ParseResponse(body []byte) ([]model.Business, error) {
	var resp retrieveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if resp.Businesses == nil {
		return nil, errors.New(`decoding response: missing "businesses" array`)
	}
	return *resp.Businesses, nil
}
