package models

type Employee struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	HireDate string `json:"hire_date"`
	Status   string `json:"status"`
	ImageURL string `json:"image_url"`
}
