package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/pkg/jwt"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	tx       repository.TxRunner
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(tx repository.TxRunner, userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{tx: tx, userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea la empresa y su primer usuario (admin) en una sola transacción
// y devuelve un token listo para usar. ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email, err := entity.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	companyName := strings.TrimSpace(in.CompanyName)
	if companyName == "" {
		return nil, domain.Invalid("companyName es obligatorio")
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	err = entity.CheckLengths(
		entity.Field{Name: "companyName", Value: companyName, Max: entity.MaxNameLen},
		entity.Field{Name: "name", Value: name, Max: entity.MaxNameLen},
	)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      companyName,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Companies.Create(ctx, company); err != nil {
			return err
		}
		return r.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return uc.issue(user, company.Name)
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.Invalid("email y password son obligatorios")
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !CheckPassword(user.PasswordHash, in.Password) {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(user, "")
}

func (uc *AuthUseCase) issue(user *entity.User, companyName string) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	resp.CompanyName = companyName
	return &dto.AuthResponse{Token: token, User: *resp}, nil
}

// HashPassword valida la longitud mínima y devuelve el hash bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", domain.Invalid("password debe tener al menos %d caracteres", MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.Invalid("password demasiado largo")
		}
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compara password con el hash guardado.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ToUserResponse convierte la entidad a la salida pública (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
