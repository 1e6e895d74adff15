package dto

import "time"

// RegisterRequest alta pública: crea la empresa y su primer usuario (admin).
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
}

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse token JWT más el usuario autenticado.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest alta de un usuario por un admin (password en texto, se hashea en el caso de uso).
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // admin | user; vacío = user
}

// UpdateProfileRequest cambios del propio perfil; campos vacíos no se modifican.
// El cambio de password exige CurrentPassword y NewPassword.
type UpdateProfileRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	CompanyName string    `json:"companyName,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}
