package gormstore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// Modelos gorm: espejo de las tablas de las migraciones SQL.
// Los importes se guardan como texto para no perder precisión en sqlite.

type companyModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"not null"`
	Address   string
	Phone     string
	Email     string
	Website   string
	Logo      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (companyModel) TableName() string { return "companies" }

type userModel struct {
	ID           string       `gorm:"primaryKey;size:36"`
	CompanyID    string       `gorm:"not null;size:36;index"`
	Company      companyModel `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Name         string       `gorm:"not null"`
	Email        string       `gorm:"not null;uniqueIndex:users_email_key"`
	PasswordHash string       `gorm:"not null"`
	Role         string       `gorm:"not null;default:user"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

type customerModel struct {
	ID          string       `gorm:"primaryKey;size:36"`
	CompanyID   string       `gorm:"not null;size:36;uniqueIndex:customers_company_email_key,priority:1"`
	Company     companyModel `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Name        string       `gorm:"not null"`
	Email       string       `gorm:"not null;uniqueIndex:customers_company_email_key,priority:2"`
	CompanyName string
	Address     string
	City        string
	State       string
	Zip         string
	Country     string
	Phone       string
	TaxID       string
	Currency    string `gorm:"not null;size:3;default:USD"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (customerModel) TableName() string { return "customers" }

type invoiceModel struct {
	ID                 string          `gorm:"primaryKey;size:36"`
	CompanyID          string          `gorm:"not null;size:36;uniqueIndex:invoices_company_number_key,priority:1;index:idx_invoices_company_status,priority:1"`
	Company            companyModel    `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	CustomerID         string          `gorm:"not null;size:36;index"`
	Customer           customerModel   `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	Number             string          `gorm:"not null;uniqueIndex:invoices_company_number_key,priority:2"`
	Date               time.Time       `gorm:"not null"`
	DueDate            time.Time       `gorm:"not null"`
	Status             string          `gorm:"not null;default:draft;index:idx_invoices_company_status,priority:2"`
	Total              decimal.Decimal `gorm:"type:text;not null"`
	Currency           string          `gorm:"not null;size:3"`
	Notes              string
	TermsAndConditions string
	Items              []invoiceItemModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (invoiceModel) TableName() string { return "invoices" }

type invoiceItemModel struct {
	ID          string          `gorm:"primaryKey;size:36"`
	InvoiceID   string          `gorm:"not null;size:36;index:idx_invoice_items_invoice,priority:1"`
	Position    int             `gorm:"not null;index:idx_invoice_items_invoice,priority:2"`
	Description string          `gorm:"not null"`
	Quantity    decimal.Decimal `gorm:"type:text;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:text;not null"`
	Amount      decimal.Decimal `gorm:"type:text;not null"`
	TaxRate     decimal.Decimal `gorm:"type:text;not null"`
	TaxAmount   decimal.Decimal `gorm:"type:text;not null"`
}

func (invoiceItemModel) TableName() string { return "invoice_items" }

// allModels en orden de dependencia para AutoMigrate.
func allModels() []any {
	return []any{&companyModel{}, &userModel{}, &customerModel{}, &invoiceModel{}, &invoiceItemModel{}}
}

func companyFromEntity(c *entity.Company) *companyModel {
	return &companyModel{
		ID: c.ID, Name: c.Name, Address: c.Address, Phone: c.Phone, Email: c.Email,
		Website: c.Website, Logo: c.Logo, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func (m *companyModel) toEntity() *entity.Company {
	return &entity.Company{
		ID: m.ID, Name: m.Name, Address: m.Address, Phone: m.Phone, Email: m.Email,
		Website: m.Website, Logo: m.Logo, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func userFromEntity(u *entity.User) *userModel {
	return &userModel{
		ID: u.ID, CompanyID: u.CompanyID, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash,
		Role: u.Role, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func (m *userModel) toEntity() *entity.User {
	return &entity.User{
		ID: m.ID, CompanyID: m.CompanyID, Name: m.Name, Email: m.Email, PasswordHash: m.PasswordHash,
		Role: m.Role, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func customerFromEntity(c *entity.Customer) *customerModel {
	return &customerModel{
		ID: c.ID, CompanyID: c.CompanyID, Name: c.Name, Email: c.Email, CompanyName: c.CompanyName,
		Address: c.Address, City: c.City, State: c.State, Zip: c.Zip, Country: c.Country,
		Phone: c.Phone, TaxID: c.TaxID, Currency: c.Currency, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func (m *customerModel) toEntity() *entity.Customer {
	return &entity.Customer{
		ID: m.ID, CompanyID: m.CompanyID, Name: m.Name, Email: m.Email, CompanyName: m.CompanyName,
		Address: m.Address, City: m.City, State: m.State, Zip: m.Zip, Country: m.Country,
		Phone: m.Phone, TaxID: m.TaxID, Currency: m.Currency, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func invoiceFromEntity(inv *entity.Invoice) *invoiceModel {
	return &invoiceModel{
		ID: inv.ID, CompanyID: inv.CompanyID, CustomerID: inv.CustomerID, Number: inv.Number,
		Date: inv.Date, DueDate: inv.DueDate, Status: inv.Status, Total: inv.Total, Currency: inv.Currency,
		Notes: inv.Notes, TermsAndConditions: inv.TermsAndConditions,
		CreatedAt: inv.CreatedAt, UpdatedAt: inv.UpdatedAt,
	}
}

func (m *invoiceModel) toEntity() *entity.Invoice {
	inv := &entity.Invoice{
		ID: m.ID, CompanyID: m.CompanyID, CustomerID: m.CustomerID, Number: m.Number,
		Date: m.Date.UTC(), DueDate: m.DueDate.UTC(), Status: m.Status, Total: m.Total, Currency: m.Currency,
		Notes: m.Notes, TermsAndConditions: m.TermsAndConditions,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
	if m.Customer.ID != "" {
		inv.Customer = m.Customer.toEntity()
	}
	return inv
}

func itemFromEntity(it *entity.InvoiceItem) invoiceItemModel {
	return invoiceItemModel{
		ID: it.ID, InvoiceID: it.InvoiceID, Position: it.Position, Description: it.Description,
		Quantity: it.Quantity, UnitPrice: it.UnitPrice, Amount: it.Amount, TaxRate: it.TaxRate, TaxAmount: it.TaxAmount,
	}
}

func (m *invoiceItemModel) toEntity() *entity.InvoiceItem {
	return &entity.InvoiceItem{
		ID: m.ID, InvoiceID: m.InvoiceID, Position: m.Position, Description: m.Description,
		Quantity: m.Quantity, UnitPrice: m.UnitPrice, Amount: m.Amount, TaxRate: m.TaxRate, TaxAmount: m.TaxAmount,
	}
}
