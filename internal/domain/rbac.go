package domain

// EnforceRequest asks whether an employee, directly or through the role
// carried in its token, may perform action on resource.
type EnforceRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Role       string `json:"role"`
	Resource   string `json:"resource" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
