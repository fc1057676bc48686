package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// price and rating go over the wire as JSON numbers, as the browser client expects
	decimal.MarshalJSONWithoutQuotes = true
}

// Game is one catalog entry in the games table.
type Game struct {
	ID          int64               `json:"id"` // Primary key
	Title       string              `json:"title"`
	Genre       string              `json:"genre"`
	Platform    string              `json:"platform"`
	Developer   *string             `json:"developer"`
	ReleaseDate *string             `json:"release_date"` // YYYY-MM-DD
	Price       decimal.NullDecimal `json:"price"`
	Description *string             `json:"description"`
	ImageURL    *string             `json:"image_url"`
	Rating      decimal.NullDecimal `json:"rating"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// GameInput is the body of a create or update request. A nil field was absent.
type GameInput struct {
	Title       *string             `json:"title"`
	Genre       *string             `json:"genre"`
	Platform    *string             `json:"platform"`
	Developer   *string             `json:"developer"`
	ReleaseDate *string             `json:"release_date"`
	Price       decimal.NullDecimal `json:"price"`
	Description *string             `json:"description"`
	ImageURL    *string             `json:"image_url"`
	Rating      decimal.NullDecimal `json:"rating"`
}

// UnmarshalJSON reads a create or update body. Blank optional values, as a
// browser form sends for empty inputs, count as absent.
func (in *GameInput) UnmarshalJSON(data []byte) error {
	type plain GameInput
	var body struct {
		plain
		Price  json.RawMessage `json:"price"`
		Rating json.RawMessage `json:"rating"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}

	*in = GameInput(body.plain)

	var err error
	if in.Price, err = optionalDecimal(body.Price); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	if in.Rating, err = optionalDecimal(body.Rating); err != nil {
		return fmt.Errorf("rating: %w", err)
	}

	in.Developer = blankToNil(in.Developer)
	in.ReleaseDate = blankToNil(in.ReleaseDate)
	in.Description = blankToNil(in.Description)
	in.ImageURL = blankToNil(in.ImageURL)
	return nil
}

func optionalDecimal(raw json.RawMessage) (decimal.NullDecimal, error) {
	var d decimal.NullDecimal
	if len(raw) == 0 {
		return d, nil
	}

	var s string
	if raw[0] == '"' && json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) == "" {
		return d, nil
	}

	err := d.UnmarshalJSON(raw)
	return d, err
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// GameFilter narrows and pages a catalog listing.
type GameFilter struct {
	Genre    string
	Platform string
	Limit    int
	Offset   int
}

// GamePage is one page of a catalog listing.
type GamePage struct {
	Games  []*Game `json:"games"`
	Total  int     `json:"total"` // rows in this page
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}
