package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Límites de paginación.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// Normalize aplica valores por defecto y cotas a Limit/Offset.
func (p PageRequest) Normalize() PageRequest {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo de confirmación sin entidad (ej. borrados).
type MessageResponse struct {
	Message string `json:"message"`
}
