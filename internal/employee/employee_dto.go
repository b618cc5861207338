package employee

type CreateEmployeeRequest struct {
	EmployeeNumber string `json:"employeeNumber"`
	FullName       string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Department     string `json:"department" binding:"required"`
	Position       string `json:"position"`
	ImageURL       string `json:"image" binding:"omitempty,url"`
}

type UpdateEmployeeRequest struct {
	FullName   string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department" binding:"required"`
	Position   string `json:"position"`
	ImageURL   string `json:"image" binding:"omitempty,url"`
}

type ListFilter struct {
	Department string
	Query      string
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employeeNumber"`
	FullName       string `json:"name"`
	Email          string `json:"email"`
	Department     string `json:"department"`
	Position       string `json:"position,omitempty"`
	ImageURL       string `json:"image,omitempty"`
}
