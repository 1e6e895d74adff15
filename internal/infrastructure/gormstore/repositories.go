package gormstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository  = (*CompanyRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.InvoiceRepository  = (*InvoiceRepo)(nil)
	_ repository.StatsRepository    = (*StatsRepo)(nil)
)

// CompanyRepo empresas.
type CompanyRepo struct{ db *gorm.DB }

// NewCompanyRepository construye el adaptador.
func NewCompanyRepository(db *gorm.DB) *CompanyRepo { return &CompanyRepo{db: db} }

func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	if err := r.db.WithContext(ctx).Create(companyFromEntity(c)).Error; err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var m companyModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return m.toEntity(), nil
}

func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	res := r.db.WithContext(ctx).Model(&companyModel{}).Where("id = ?", c.ID).Updates(map[string]any{
		"name": c.Name, "address": c.Address, "phone": c.Phone, "email": c.Email,
		"website": c.Website, "updated_at": c.UpdatedAt,
	})
	if res.Error != nil {
		return fmt.Errorf("update company: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepo) UpdateLogo(ctx context.Context, id, logo string) error {
	res := r.db.WithContext(ctx).Model(&companyModel{}).Where("id = ?", id).Update("logo", logo)
	if res.Error != nil {
		return fmt.Errorf("update company logo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

// UserRepo usuarios.
type UserRepo struct{ db *gorm.DB }

// NewUserRepository construye el adaptador.
func NewUserRepository(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(userFromEntity(u)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, companyID, id string) (*entity.User, error) {
	return r.getOne(ctx, "id = ? AND company_id = ?", id, companyID)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *UserRepo) getOne(ctx context.Context, where string, args ...any) (*entity.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where(where, args...).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return m.toEntity(), nil
}

func (r *UserRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	var ms []userModel
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).
		Order("created_at, id").Limit(limit).Offset(offset).Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]*entity.User, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].toEntity())
	}
	return out, nil
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	res := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ? AND company_id = ?", u.ID, u.CompanyID).
		Updates(map[string]any{
			"name": u.Name, "email": u.Email, "password_hash": u.PasswordHash, "updated_at": u.UpdatedAt,
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// CustomerRepo clientes.
type CustomerRepo struct{ db *gorm.DB }

// NewCustomerRepository construye el adaptador.
func NewCustomerRepository(db *gorm.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(customerFromEntity(c)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Customer, error) {
	var m customerModel
	err := r.db.WithContext(ctx).Where("id = ? AND company_id = ?", id, companyID).First(&m).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return m.toEntity(), nil
}

func (r *CustomerRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	var ms []customerModel
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).
		Order("name, id").Limit(limit).Offset(offset).Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	out := make([]*entity.Customer, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].toEntity())
	}
	return out, nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	m := customerFromEntity(c)
	res := r.db.WithContext(ctx).Model(&customerModel{}).
		Where("id = ? AND company_id = ?", c.ID, c.CompanyID).
		Select("name", "email", "company_name", "address", "city", "state", "zip", "country",
			"phone", "tax_id", "currency", "updated_at").
		Updates(m)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepo) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND company_id = ?", id, companyID).Delete(&customerModel{})
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return domain.ErrCustomerHasInvoices
		}
		return fmt.Errorf("delete customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// InvoiceRepo facturas y líneas.
type InvoiceRepo struct{ db *gorm.DB }

// NewInvoiceRepository construye el adaptador.
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepo { return &InvoiceRepo{db: db} }

func invoiceWriteError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrInvoiceNumberExists
	case isForeignKeyViolation(err):
		return domain.ErrCustomerNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(invoiceFromEntity(inv)).Error
	return invoiceWriteError("insert invoice", err)
}

func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	res := r.db.WithContext(ctx).Model(&invoiceModel{}).
		Where("id = ? AND company_id = ?", inv.ID, inv.CompanyID).
		Select("customer_id", "number", "date", "due_date", "status", "total", "currency",
			"notes", "terms_and_conditions", "updated_at").
		Omit(clause.Associations).
		Updates(invoiceFromEntity(inv))
	if err := invoiceWriteError("update invoice", res.Error); err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *InvoiceRepo) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND company_id = ?", id, companyID).Delete(&invoiceModel{})
	if res.Error != nil {
		return fmt.Errorf("delete invoice: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	var m invoiceModel
	err := r.db.WithContext(ctx).Preload("Customer").
		Where("id = ? AND company_id = ?", id, companyID).First(&m).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return m.toEntity(), nil
}

func (r *InvoiceRepo) List(ctx context.Context, companyID string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	q := r.db.WithContext(ctx).Preload("Customer").Where("company_id = ?", companyID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var ms []invoiceModel
	if err := q.Order("date DESC, created_at DESC, id").Limit(f.Limit).Offset(f.Offset).Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	out := make([]*entity.Invoice, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].toEntity())
	}
	return out, nil
}

func (r *InvoiceRepo) CountByCustomer(ctx context.Context, companyID, customerID string) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&invoiceModel{}).
		Where("company_id = ? AND customer_id = ?", companyID, customerID).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count invoices by customer: %w", err)
	}
	return int(n), nil
}

func (r *InvoiceRepo) CreateItems(ctx context.Context, items []*entity.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	ms := make([]invoiceItemModel, 0, len(items))
	for _, it := range items {
		ms = append(ms, itemFromEntity(it))
	}
	if err := r.db.WithContext(ctx).Create(&ms).Error; err != nil {
		return fmt.Errorf("insert invoice items: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) DeleteItems(ctx context.Context, invoiceID string) error {
	if err := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).Delete(&invoiceItemModel{}).Error; err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	var ms []invoiceItemModel
	if err := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).Order("position, id").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("get invoice items: %w", err)
	}
	out := make([]*entity.InvoiceItem, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].toEntity())
	}
	return out, nil
}

// StatsRepo agregados de facturas. Las sumas se hacen en Go con decimal (sqlite guarda importes como texto).
type StatsRepo struct{ db *gorm.DB }

// NewStatsRepository construye el adaptador.
func NewStatsRepository(db *gorm.DB) *StatsRepo { return &StatsRepo{db: db} }

func (r *StatsRepo) CountByStatus(ctx context.Context, companyID string) (map[string]int, error) {
	var rows []struct {
		Status string
		N      int
	}
	err := r.db.WithContext(ctx).Model(&invoiceModel{}).Select("status, count(*) AS n").
		Where("company_id = ?", companyID).Group("status").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

func (r *StatsRepo) RevenueByCurrency(ctx context.Context, companyID, status string) ([]repository.CurrencyAmount, error) {
	var rows []struct {
		Currency string
		Total    decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&invoiceModel{}).Select("currency, total").
		Where("company_id = ? AND status = ?", companyID, status).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("revenue by currency: %w", err)
	}
	sums := make(map[string]decimal.Decimal)
	for _, row := range rows {
		sums[row.Currency] = sums[row.Currency].Add(row.Total)
	}
	out := make([]repository.CurrencyAmount, 0, len(sums))
	for cur, amount := range sums {
		out = append(out, repository.CurrencyAmount{Currency: cur, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, nil
}

func (r *StatsRepo) MostUsedCurrency(ctx context.Context, companyID string) (string, error) {
	var rows []struct {
		Currency string
		N        int
	}
	err := r.db.WithContext(ctx).Model(&invoiceModel{}).Select("currency, count(*) AS n").
		Where("company_id = ?", companyID).Group("currency").
		Order("n DESC, currency ASC").Limit(1).Scan(&rows).Error
	if err != nil {
		return "", fmt.Errorf("most used currency: %w", err)
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].Currency, nil
}
