package dto

// PlaceSuggestion is one autocomplete result shown under the school field.
type PlaceSuggestion struct {
	Name        string `json:"name"`
	FullAddress string `json:"fullAddress"`
}
