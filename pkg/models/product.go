package models

type Product struct {
	ID          int     `json:"id"`
	TypeID      int     `json:"type_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

type ProductType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
