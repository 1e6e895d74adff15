package entity

import "time"

// Customer representa un cliente de la empresa (facturación).
// (CompanyID, Email) es único.
type Customer struct {
	ID          string
	CompanyID   string
	Name        string
	Email       string
	CompanyName string
	Address     string
	City        string
	State       string
	Zip         string
	Country     string
	Phone       string
	TaxID       string
	Currency    string // ISO 4217, 3 letras
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
