package entity

import "time"

// Company representa una organización/tenant del sistema (raíz del aislamiento multi-tenant).
// El ID es inmutable una vez creado.
type Company struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	Website   string
	Logo      string // URL del logo
	CreatedAt time.Time
	UpdatedAt time.Time
}
