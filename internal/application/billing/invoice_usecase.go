package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/access"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/invoicing"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/pkg/currency"
)

// DateLayout formato de fecha de factura en la API.
const DateLayout = "2006-01-02"

// InvoiceUseCase casos de uso de facturas: cabecera y líneas se escriben siempre juntas.
type InvoiceUseCase struct {
	tx   repository.TxRunner
	repo repository.InvoiceRepository
	now  func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(tx repository.TxRunner, repo repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{tx: tx, repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// List lista cabeceras (con nombre y email del cliente), opcionalmente filtradas por estado.
func (uc *InvoiceUseCase) List(ctx context.Context, caller access.Caller, in dto.InvoiceListRequest) ([]dto.InvoiceResponse, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status != "" && !entity.IsValidInvoiceStatus(status) {
		return nil, domain.Invalid("status desconocido: %s", in.Status)
	}
	page := in.PageRequest.Normalize()
	list, err := uc.repo.List(ctx, caller.CompanyID, repository.InvoiceFilter{
		Status: status,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *ToInvoiceResponse(inv))
	}
	return out, nil
}

// Get devuelve la factura con su cliente y sus líneas, leídos en la misma foto.
func (uc *InvoiceUseCase) Get(ctx context.Context, caller access.Caller, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.Load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// Load carga la entidad completa (cabecera, cliente y líneas). ErrInvoiceNotFound si no es de la empresa.
func (uc *InvoiceUseCase) Load(ctx context.Context, caller access.Caller, id string) (*entity.Invoice, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	var inv *entity.Invoice
	err := uc.tx.View(ctx, func(r repository.Repos) error {
		var err error
		if inv, err = findInvoice(ctx, r.Invoices, caller, id); err != nil {
			return err
		}
		inv.Items, err = r.Invoices.GetItems(ctx, inv.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Create guarda cabecera y líneas en una sola transacción.
// ErrCustomerNotFound si el cliente no es de la empresa; ErrInvoiceNumberExists si el número ya se usó.
func (uc *InvoiceUseCase) Create(ctx context.Context, caller access.Caller, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	draft, err := parseInvoice(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	inv := draft.header
	if inv.Status == "" {
		inv.Status = entity.InvoiceStatusDraft
	}
	inv.ID = uuid.New().String()
	inv.CompanyID = caller.CompanyID
	inv.CreatedAt = now
	inv.UpdatedAt = now
	inv.Items = draft.items
	for _, it := range inv.Items {
		it.ID = uuid.New().String()
		it.InvoiceID = inv.ID
	}

	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := resolveCustomer(ctx, r.Customers, caller, inv, in.Currency); err != nil {
			return err
		}
		if err := r.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		return r.Invoices.CreateItems(ctx, inv.Items)
	})
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// Update reemplaza la cabecera y el conjunto completo de líneas en una sola transacción.
// Si status o currency vienen vacíos se mantienen los actuales.
// Ante cualquier fallo la factura queda como estaba.
func (uc *InvoiceUseCase) Update(ctx context.Context, caller access.Caller, id string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	draft, err := parseInvoice(in)
	if err != nil {
		return nil, err
	}
	var inv *entity.Invoice
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		current, err := findInvoice(ctx, r.Invoices, caller, id)
		if err != nil {
			return err
		}
		inv = draft.header
		// status y currency omitidos conservan el valor guardado.
		if inv.Status == "" {
			inv.Status = current.Status
		}
		requested := in.Currency
		if strings.TrimSpace(requested) == "" {
			requested = current.Currency
		}
		inv.ID = current.ID
		inv.CompanyID = current.CompanyID
		inv.CreatedAt = current.CreatedAt
		inv.UpdatedAt = uc.now()
		inv.Items = draft.items
		for _, it := range inv.Items {
			it.ID = uuid.New().String()
			it.InvoiceID = inv.ID
		}
		if err := resolveCustomer(ctx, r.Customers, caller, inv, requested); err != nil {
			return err
		}
		// El UPDATE de cabecera bloquea la fila: dos reemplazos concurrentes se serializan aquí.
		if err := r.Invoices.Update(ctx, inv); err != nil {
			return err
		}
		if err := r.Invoices.DeleteItems(ctx, inv.ID); err != nil {
			return err
		}
		return r.Invoices.CreateItems(ctx, inv.Items)
	})
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// Delete borra la factura y sus líneas en la misma transacción.
func (uc *InvoiceUseCase) Delete(ctx context.Context, caller access.Caller, id string) error {
	if err := access.Authenticated(caller); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		inv, err := findInvoice(ctx, r.Invoices, caller, id)
		if err != nil {
			return err
		}
		if err := r.Invoices.DeleteItems(ctx, inv.ID); err != nil {
			return err
		}
		return r.Invoices.Delete(ctx, caller.CompanyID, inv.ID)
	})
}

func findInvoice(ctx context.Context, repo repository.InvoiceRepository, caller access.Caller, id string) (*entity.Invoice, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvoiceNotFound
	}
	inv, err := repo.GetByID(ctx, caller.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	if err := access.Owned(caller, inv.CompanyID, domain.ErrInvoiceNotFound); err != nil {
		return nil, err
	}
	return inv, nil
}

// resolveCustomer valida que el cliente sea de la empresa y resuelve la moneda por defecto.
func resolveCustomer(ctx context.Context, repo repository.CustomerRepository, caller access.Caller, inv *entity.Invoice, requested string) error {
	c, err := findCustomer(ctx, repo, caller, inv.CustomerID)
	if err != nil {
		return err
	}
	cur, err := currency.Normalize(requested, c.Currency)
	if err != nil {
		return domain.Invalid("%v", err)
	}
	inv.Currency = cur
	inv.Customer = c
	return nil
}

type invoiceDraft struct {
	header *entity.Invoice
	items  []*entity.InvoiceItem
}

// parseInvoice valida el payload y calcula importes; no toca la base de datos.
func parseInvoice(in dto.InvoiceRequest) (*invoiceDraft, error) {
	customerID := strings.TrimSpace(in.CustomerID)
	if customerID == "" {
		return nil, domain.Invalid("customerId es obligatorio")
	}
	number := strings.TrimSpace(in.Number)
	if number == "" {
		return nil, domain.Invalid("number es obligatorio")
	}
	if err := entity.CheckLength("number", number, entity.MaxInvoiceNumberLen); err != nil {
		return nil, err
	}
	date, err := ParseDate(in.Date)
	if err != nil {
		return nil, domain.Invalid("date inválida: %q", in.Date)
	}
	due, err := ParseDate(in.DueDate)
	if err != nil {
		return nil, domain.Invalid("dueDate inválida: %q", in.DueDate)
	}
	if due.Before(date) {
		return nil, domain.Invalid("dueDate no puede ser anterior a date")
	}
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status != "" && !entity.IsValidInvoiceStatus(status) {
		return nil, domain.Invalid("status desconocido: %s", in.Status)
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalid("la factura debe tener al menos una línea")
	}
	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	for i, it := range in.Items {
		desc := strings.TrimSpace(it.Description)
		switch {
		case desc == "":
			return nil, domain.Invalid("items[%d].description es obligatorio", i)
		case !it.Quantity.GreaterThan(decimal.Zero):
			return nil, domain.Invalid("items[%d].quantity debe ser mayor que 0", i)
		case it.UnitPrice.IsNegative():
			return nil, domain.Invalid("items[%d].unitPrice no puede ser negativo", i)
		case it.TaxRate.IsNegative():
			return nil, domain.Invalid("items[%d].taxRate no puede ser negativo", i)
		case !invoicing.HasScale(it.Quantity, invoicing.QuantityPlaces):
			return nil, domain.Invalid("items[%d].quantity admite como máximo %d decimales", i, invoicing.QuantityPlaces)
		case !invoicing.HasScale(it.UnitPrice, invoicing.UnitPricePlaces):
			return nil, domain.Invalid("items[%d].unitPrice admite como máximo %d decimales", i, invoicing.UnitPricePlaces)
		case !invoicing.HasScale(it.TaxRate, invoicing.TaxRatePlaces):
			return nil, domain.Invalid("items[%d].taxRate admite como máximo %d decimales", i, invoicing.TaxRatePlaces)
		case !it.Quantity.LessThan(invoicing.MaxQuantity), !it.UnitPrice.LessThan(invoicing.MaxAmount):
			return nil, domain.Invalid("items[%d] tiene valores fuera de rango", i)
		case it.TaxRate.GreaterThan(invoicing.MaxTaxRate):
			return nil, domain.Invalid("items[%d].taxRate no puede superar %s", i, invoicing.MaxTaxRate)
		}
		items = append(items, &entity.InvoiceItem{
			Description: desc,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
		})
	}
	totals := invoicing.Fill(items)
	// Los importes son no negativos: si el total cabe, cada línea también.
	if !totals.Total.LessThan(invoicing.MaxAmount) {
		return nil, domain.Invalid("el total de la factura está fuera de rango")
	}
	return &invoiceDraft{
		header: &entity.Invoice{
			CustomerID:         customerID,
			Number:             number,
			Date:               date,
			DueDate:            due,
			Status:             status,
			Total:              totals.Total,
			Notes:              strings.TrimSpace(in.Notes),
			TermsAndConditions: strings.TrimSpace(in.TermsAndConditions),
		},
		items: items,
	}, nil
}

// ParseDate acepta 2006-01-02 o RFC 3339 y devuelve la fecha a medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, err
		}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// ToInvoiceResponse convierte la entidad a DTO; subtotal e impuestos solo si hay líneas cargadas.
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	resp := &dto.InvoiceResponse{
		ID:                 inv.ID,
		CompanyID:          inv.CompanyID,
		CustomerID:         inv.CustomerID,
		Number:             inv.Number,
		Date:               inv.Date.Format(DateLayout),
		DueDate:            inv.DueDate.Format(DateLayout),
		Status:             inv.Status,
		Currency:           inv.Currency,
		Total:              inv.Total,
		Notes:              inv.Notes,
		TermsAndConditions: inv.TermsAndConditions,
		CreatedAt:          inv.CreatedAt,
		UpdatedAt:          inv.UpdatedAt,
	}
	if inv.Customer != nil {
		resp.CustomerName = inv.Customer.Name
		resp.CustomerEmail = inv.Customer.Email
		if inv.Customer.ID != "" && inv.Items != nil {
			resp.Customer = ToCustomerResponse(inv.Customer)
		}
	}
	if inv.Items != nil {
		t := invoicing.Summarize(inv.Items)
		resp.Subtotal = &t.Subtotal
		resp.TaxTotal = &t.TaxTotal
		resp.Items = make([]dto.InvoiceItemResponse, 0, len(inv.Items))
		for _, it := range inv.Items {
			resp.Items = append(resp.Items, dto.InvoiceItemResponse{
				ID:          it.ID,
				InvoiceID:   it.InvoiceID,
				Description: it.Description,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				Amount:      it.Amount,
				TaxRate:     it.TaxRate,
				TaxAmount:   it.TaxAmount,
			})
		}
	}
	return resp
}
