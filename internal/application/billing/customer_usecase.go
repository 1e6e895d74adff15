package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-api/internal/application/access"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/pkg/currency"
)

// CustomerUseCase casos de uso para clientes (facturación).
type CustomerUseCase struct {
	tx   repository.TxRunner
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(tx repository.TxRunner, repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{tx: tx, repo: repo}
}

// List lista clientes de la empresa del caller.
func (uc *CustomerUseCase) List(ctx context.Context, caller access.Caller, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	page = page.Normalize()
	list, err := uc.repo.ListByCompany(ctx, caller.CompanyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *ToCustomerResponse(c))
	}
	return out, nil
}

// Get obtiene un cliente; ErrCustomerNotFound si no existe o es de otra empresa.
func (uc *CustomerUseCase) Get(ctx context.Context, caller access.Caller, id string) (*dto.CustomerResponse, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	c, err := findCustomer(ctx, uc.repo, caller, id)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

// Create crea un cliente. ErrEmailAlreadyExists si el email ya existe en la empresa.
func (uc *CustomerUseCase) Create(ctx context.Context, caller access.Caller, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: caller.CompanyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyCustomer(c, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

// Update reemplaza los datos del cliente. ErrEmailAlreadyExists si otro cliente de la empresa ya usa el email.
func (uc *CustomerUseCase) Update(ctx context.Context, caller access.Caller, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	c, err := findCustomer(ctx, uc.repo, caller, id)
	if err != nil {
		return nil, err
	}
	if err := applyCustomer(c, in); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

// Delete borra el cliente si ninguna factura lo referencia (ErrCustomerHasInvoices en otro caso).
// Conteo y borrado van en la misma transacción; la FK RESTRICT cubre la carrera con una alta concurrente.
func (uc *CustomerUseCase) Delete(ctx context.Context, caller access.Caller, id string) error {
	if err := access.Authenticated(caller); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		if _, err := findCustomer(ctx, r.Customers, caller, id); err != nil {
			return err
		}
		n, err := r.Invoices.CountByCustomer(ctx, caller.CompanyID, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrCustomerHasInvoices
		}
		return r.Customers.Delete(ctx, caller.CompanyID, id)
	})
}

func findCustomer(ctx context.Context, repo repository.CustomerRepository, caller access.Caller, id string) (*entity.Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrCustomerNotFound
	}
	c, err := repo.GetByID(ctx, caller.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	if err := access.Owned(caller, c.CompanyID, domain.ErrCustomerNotFound); err != nil {
		return nil, err
	}
	return c, nil
}

func applyCustomer(c *entity.Customer, in dto.CustomerRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Invalid("name es obligatorio")
	}
	email, err := entity.NormalizeEmail(in.Email)
	if err != nil {
		return err
	}
	cur, err := currency.Normalize(in.Currency, currency.Default)
	if err != nil {
		return domain.Invalid("%v", err)
	}
	next := entity.Customer{
		Name:        name,
		Email:       email,
		CompanyName: strings.TrimSpace(in.CompanyName),
		Address:     strings.TrimSpace(in.Address),
		City:        strings.TrimSpace(in.City),
		State:       strings.TrimSpace(in.State),
		Zip:         strings.TrimSpace(in.Zip),
		Country:     strings.TrimSpace(in.Country),
		Phone:       strings.TrimSpace(in.Phone),
		TaxID:       strings.TrimSpace(in.TaxID),
	}
	err = entity.CheckLengths(
		entity.Field{Name: "name", Value: next.Name, Max: entity.MaxNameLen},
		entity.Field{Name: "companyName", Value: next.CompanyName, Max: entity.MaxNameLen},
		entity.Field{Name: "city", Value: next.City, Max: entity.MaxPlaceLen},
		entity.Field{Name: "state", Value: next.State, Max: entity.MaxPlaceLen},
		entity.Field{Name: "zip", Value: next.Zip, Max: entity.MaxZipLen},
		entity.Field{Name: "country", Value: next.Country, Max: entity.MaxPlaceLen},
		entity.Field{Name: "phone", Value: next.Phone, Max: entity.MaxPhoneLen},
		entity.Field{Name: "taxId", Value: next.TaxID, Max: entity.MaxTaxIDLen},
	)
	if err != nil {
		return err
	}
	c.Name = next.Name
	c.Email = next.Email
	c.CompanyName = next.CompanyName
	c.Address = next.Address
	c.City = next.City
	c.State = next.State
	c.Zip = next.Zip
	c.Country = next.Country
	c.Phone = next.Phone
	c.TaxID = next.TaxID
	c.Currency = cur
	return nil
}

// ToCustomerResponse convierte la entidad a DTO.
func ToCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		Name:        c.Name,
		Email:       c.Email,
		CompanyName: c.CompanyName,
		Address:     c.Address,
		City:        c.City,
		State:       c.State,
		Zip:         c.Zip,
		Country:     c.Country,
		Phone:       c.Phone,
		TaxID:       c.TaxID,
		Currency:    c.Currency,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
