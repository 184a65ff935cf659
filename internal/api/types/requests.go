package types

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin analyst"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CompanyCreateRequest struct {
	Name    string  `json:"name" validate:"required"`
	TaxID   *string `json:"tax_id"`
	Country string  `json:"country" validate:"omitempty,len=2"`
}

type CompanyUpdateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1"`
	TaxID   *string `json:"tax_id"`
	Country *string `json:"country" validate:"omitempty,len=2"`
}

type RequestCreateRequest struct {
	CompanyID  string         `json:"company_id" validate:"required,uuid4"`
	RiskInputs map[string]any `json:"risk_inputs"`
}

type RequestUpdateRequest struct {
	Status     *string        `json:"status" validate:"omitempty,oneof=pending in_review approved rejected"`
	RiskInputs map[string]any `json:"risk_inputs"`
}
