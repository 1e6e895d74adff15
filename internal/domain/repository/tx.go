package repository

import "context"

// Repos conjunto de repositorios atados a una misma transacción.
type Repos struct {
	Companies CompanyRepository
	Users     UserRepository
	Customers CustomerRepository
	Invoices  InvoiceRepository
	Stats     StatsRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
	// View ejecuta fn en una transacción de solo lectura con una foto consistente
	// (cabecera y líneas de una factura, o los agregados del resumen, se leen juntos).
	View(ctx context.Context, fn func(repos Repos) error) error
}
