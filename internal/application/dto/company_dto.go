package dto

import "time"

// UpdateCompanyRequest entrada para actualizar la empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Website *string `json:"website"`
}

// UpdateLogoRequest URL del logo ya alojado.
type UpdateLogoRequest struct {
	LogoURL string `json:"logoUrl"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Website   string    `json:"website,omitempty"`
	Logo      string    `json:"logo,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
