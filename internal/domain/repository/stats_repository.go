package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// CurrencyAmount suma de importes en una moneda.
type CurrencyAmount struct {
	Currency string
	Amount   decimal.Decimal
}

// StatsRepository consultas de solo lectura para el resumen de facturación de una empresa.
type StatsRepository interface {
	// CountByStatus devuelve el número de facturas por estado (estados sin facturas no aparecen).
	CountByStatus(ctx context.Context, companyID string) (map[string]int, error)
	// RevenueByCurrency suma el total de las facturas en estado status agrupado por moneda.
	RevenueByCurrency(ctx context.Context, companyID, status string) ([]CurrencyAmount, error)
	// MostUsedCurrency devuelve la moneda con más facturas; "" si la empresa no tiene facturas.
	MostUsedCurrency(ctx context.Context, companyID string) (string, error)
}
