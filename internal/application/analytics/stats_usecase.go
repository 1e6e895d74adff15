// Package analytics contiene el resumen de facturación de una empresa.
package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Facturacion-api/internal/application/access"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/pkg/currency"
)

// StatsUseCase genera el resumen de facturas de la empresa del caller.
//
// Fuente de datos: Repos.Stats dentro de TxRunner.View (consultas read-only, siempre acotadas por empresa).
type StatsUseCase struct {
	tx repository.TxRunner
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(tx repository.TxRunner) *StatsUseCase {
	return &StatsUseCase{tx: tx}
}

// Overview construye el resumen.
//
// Tres consultas sobre la misma foto (una transacción de lectura):
//  1. CountByStatus             → totales por estado
//  2. RevenueByCurrency("paid") → ingresos cobrados por moneda
//  3. MostUsedCurrency          → moneda principal (USD si no hay facturas)
func (uc *StatsUseCase) Overview(ctx context.Context, caller access.Caller) (*dto.InvoiceStatsResponse, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	companyID := caller.CompanyID

	var (
		counts   map[string]int
		revenues []repository.CurrencyAmount
		primary  string
	)
	err := uc.tx.View(ctx, func(r repository.Repos) error {
		var err error
		if counts, err = r.Stats.CountByStatus(ctx, companyID); err != nil {
			return fmt.Errorf("stats: contar por estado: %w", err)
		}
		if revenues, err = r.Stats.RevenueByCurrency(ctx, companyID, entity.InvoiceStatusPaid); err != nil {
			return fmt.Errorf("stats: ingresos por moneda: %w", err)
		}
		if primary, err = r.Stats.MostUsedCurrency(ctx, companyID); err != nil {
			return fmt.Errorf("stats: moneda principal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &dto.InvoiceStatsResponse{
		PaidInvoices:    counts[entity.InvoiceStatusPaid],
		PendingInvoices: counts[entity.InvoiceStatusPending],
		OverdueInvoices: counts[entity.InvoiceStatusOverdue],
		Revenues:        make([]dto.RevenueDTO, 0, len(revenues)),
		Currency:        primary,
	}
	for _, n := range counts {
		out.TotalInvoices += n
	}
	sort.Slice(revenues, func(i, j int) bool { return revenues[i].Currency < revenues[j].Currency })
	for _, r := range revenues {
		out.Revenues = append(out.Revenues, dto.RevenueDTO{Currency: r.Currency, Amount: r.Amount})
	}
	if out.Currency == "" {
		out.Currency = currency.Default
	}
	return out, nil
}
