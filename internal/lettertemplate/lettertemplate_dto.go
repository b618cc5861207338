package lettertemplate

type ListFilter struct {
	Type   Type
	Active *bool
}

type UpsertTemplateRequest struct {
	Type         string   `json:"type" binding:"required"`
	Subject      string   `json:"subject"`
	BodyContent  string   `json:"bodyContent" binding:"required"`
	Variables    []string `json:"variables"`
	IsActive     *bool    `json:"isActive"`
	IsLocked     bool     `json:"isLocked"`
	PDFURL       string   `json:"pdfUrl" binding:"omitempty,url"`
	LocalPath    string   `json:"localPath"`
	PublicID     string   `json:"publicId"`
	ResourceType string   `json:"resourceType"`
	IsFixedPDF   bool     `json:"isFixedPdf"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type RenderRequest struct {
	Values map[string]string `json:"values"`
	Strict bool              `json:"strict"`
}

type TemplateResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Subject      string   `json:"subject"`
	BodyContent  string   `json:"bodyContent"`
	Variables    []string `json:"variables"`
	IsActive     bool     `json:"isActive"`
	IsLocked     bool     `json:"isLocked"`
	PDFURL       string   `json:"pdfUrl,omitempty"`
	LocalPath    string   `json:"localPath,omitempty"`
	PublicID     string   `json:"publicId,omitempty"`
	ResourceType string   `json:"resourceType,omitempty"`
	IsFixedPDF   bool     `json:"isFixedPdf"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

type RenderResponse struct {
	Name             string   `json:"name"`
	Subject          string   `json:"subject"`
	Body             string   `json:"body"`
	MissingVariables []string `json:"missingVariables"`
}
