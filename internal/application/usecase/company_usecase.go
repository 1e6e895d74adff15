package usecase

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/application/access"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para la empresa del usuario autenticado.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Get devuelve la empresa del caller.
func (uc *CompanyUseCase) Get(ctx context.Context, caller access.Caller) (*dto.CompanyResponse, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	company, err := uc.load(ctx, caller.CompanyID)
	if err != nil {
		return nil, err
	}
	return ToCompanyResponse(company), nil
}

// Update modifica los datos de contacto (solo admin). Los campos nil no cambian.
func (uc *CompanyUseCase) Update(ctx context.Context, caller access.Caller, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	company, err := uc.load(ctx, caller.CompanyID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("name no puede estar vacío")
		}
		company.Name = name
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != "" {
			if email, err = entity.NormalizeEmail(email); err != nil {
				return nil, err
			}
		}
		company.Email = email
	}
	if in.Address != nil {
		company.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		company.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Website != nil {
		company.Website = strings.TrimSpace(*in.Website)
	}
	err = entity.CheckLengths(
		entity.Field{Name: "name", Value: company.Name, Max: entity.MaxNameLen},
		entity.Field{Name: "phone", Value: company.Phone, Max: entity.MaxPhoneLen},
		entity.Field{Name: "website", Value: company.Website, Max: entity.MaxWebsiteLen},
	)
	if err != nil {
		return nil, err
	}
	company.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return ToCompanyResponse(company), nil
}

// UpdateLogo guarda la URL del logo (solo admin). El archivo ya está alojado fuera de la API.
func (uc *CompanyUseCase) UpdateLogo(ctx context.Context, caller access.Caller, in dto.UpdateLogoRequest) (*dto.CompanyResponse, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	logo := strings.TrimSpace(in.LogoURL)
	if logo == "" {
		return nil, domain.Invalid("logoUrl es obligatorio")
	}
	if u, err := url.Parse(logo); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, domain.Invalid("logoUrl debe ser una URL http(s)")
	}
	if err := uc.repo.UpdateLogo(ctx, caller.CompanyID, logo); err != nil {
		return nil, err
	}
	company, err := uc.load(ctx, caller.CompanyID)
	if err != nil {
		return nil, err
	}
	return ToCompanyResponse(company), nil
}

func (uc *CompanyUseCase) load(ctx context.Context, id string) (*entity.Company, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return company, nil
}

// ToCompanyResponse convierte la entidad a DTO.
func ToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Website:   c.Website,
		Logo:      c.Logo,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
