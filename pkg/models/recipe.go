package models

type RecipeLine struct {
	ID          int     `json:"id,omitempty"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Measurement string  `json:"measurement"`
}

type Recipe struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Type        string       `json:"type"`
	Ingredients []RecipeLine `json:"ingredients"`
	Supplies    []RecipeLine `json:"supplies"`
}
