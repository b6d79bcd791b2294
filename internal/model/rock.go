package model

import "slices"

// RockType is the geological class of a rock
type RockType string

const (
	RockTypeIgneous     RockType = "igneous"
	RockTypeSedimentary RockType = "sedimentary"
	RockTypeMetamorphic RockType = "metamorphic"
)

// RockTypes lists the selectable rock types
var RockTypes = []RockType{RockTypeIgneous, RockTypeSedimentary, RockTypeMetamorphic}

// Rock is an entry in the rock database
type Rock struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        RockType  `json:"type"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	DateAdded   Timestamp `json:"dateAdded"`
}

// RockInput is the writable subset of a Rock
type RockInput struct {
	Name        string   `json:"name"`
	Type        RockType `json:"type"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
}

// Validate checks required fields and the type enum
func (in RockInput) Validate() error {
	v := NewValidationError()
	if in.Name == "" {
		v.Add("name", "Rock name is required")
	}
	if !slices.Contains(RockTypes, in.Type) {
		v.Add("type", "Rock type must be igneous, sedimentary or metamorphic")
	}
	return v.Err()
}
