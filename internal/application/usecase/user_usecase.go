package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-api/internal/application/access"
	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios de una empresa.
type UserUseCase struct {
	repo        repository.UserRepository
	companyRepo repository.CompanyRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, companyRepo repository.CompanyRepository) *UserUseCase {
	return &UserUseCase{repo: repo, companyRepo: companyRepo}
}

// List lista los usuarios de la empresa del caller (solo admin).
func (uc *UserUseCase) List(ctx context.Context, caller access.Caller, page dto.PageRequest) ([]dto.UserResponse, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	page = page.Normalize()
	list, err := uc.repo.ListByCompany(ctx, caller.CompanyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// Create da de alta un usuario en la empresa del caller (solo admin).
// El email es único en todo el sistema: ErrEmailAlreadyExists si ya existe.
func (uc *UserUseCase) Create(ctx context.Context, caller access.Caller, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	email, err := entity.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = entity.RoleUser
	}
	if !entity.IsValidRole(role) {
		return nil, domain.Invalid("role debe ser admin o user")
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	if err := entity.CheckLength("name", name, entity.MaxNameLen); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    caller.CompanyID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Me devuelve el perfil del caller con el nombre de su empresa.
func (uc *UserUseCase) Me(ctx context.Context, caller access.Caller) (*dto.UserResponse, error) {
	user, err := uc.me(ctx, caller)
	if err != nil {
		return nil, err
	}
	return uc.profile(ctx, user)
}

// UpdateMe cambia nombre, email o password del propio usuario.
// El cambio de password exige la contraseña actual.
func (uc *UserUseCase) UpdateMe(ctx context.Context, caller access.Caller, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.me(ctx, caller)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		if err := entity.CheckLength("name", name, entity.MaxNameLen); err != nil {
			return nil, err
		}
		user.Name = name
	}
	if strings.TrimSpace(in.Email) != "" {
		email, err := entity.NormalizeEmail(in.Email)
		if err != nil {
			return nil, err
		}
		user.Email = email
	}
	if in.NewPassword != "" {
		if in.CurrentPassword == "" || !auth.CheckPassword(user.PasswordHash, in.CurrentPassword) {
			return nil, domain.Invalid("la contraseña actual no es correcta")
		}
		hash, err := auth.HashPassword(in.NewPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return uc.profile(ctx, user)
}

func (uc *UserUseCase) me(ctx context.Context, caller access.Caller) (*entity.User, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, caller.CompanyID, caller.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *UserUseCase) profile(ctx context.Context, user *entity.User) (*dto.UserResponse, error) {
	resp := auth.ToUserResponse(user)
	company, err := uc.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	if company != nil {
		resp.CompanyName = company.Name
	}
	return resp, nil
}
