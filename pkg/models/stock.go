package models

type Ingredient struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	Measurement    string  `json:"measurement"`
	BestBeforeDate string  `json:"best_before_date"`
	ExpirationDate string  `json:"expiration_date"`
	Status         string  `json:"status"`
}

type Merchandise struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	DateAdded string  `json:"date_added"`
	Status    string  `json:"status"`
}

// Supply is a packaging or consumable material, stored upstream as a "material".
type Supply struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Measurement string  `json:"measurement"`
	DateAdded   string  `json:"date_added"`
	Status      string  `json:"status"`
}
