package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de agregación sobre invoices (solo lectura).
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador sobre el pool o una transacción.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// CountByStatus facturas por estado.
func (r *StatsRepo) CountByStatus(ctx context.Context, companyID string) (map[string]int, error) {
	rows, err := r.q.Query(ctx,
		`SELECT status, count(*) FROM invoices WHERE company_id = $1 GROUP BY status`, companyID)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

// RevenueByCurrency suma total por moneda para las facturas en el estado indicado.
func (r *StatsRepo) RevenueByCurrency(ctx context.Context, companyID, status string) ([]repository.CurrencyAmount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT currency, COALESCE(SUM(total), 0)
		FROM invoices WHERE company_id = $1 AND status = $2
		GROUP BY currency ORDER BY currency`, companyID, status)
	if err != nil {
		return nil, fmt.Errorf("revenue by currency: %w", err)
	}
	defer rows.Close()
	var out []repository.CurrencyAmount
	for rows.Next() {
		var ca repository.CurrencyAmount
		if err := rows.Scan(&ca.Currency, &ca.Amount); err != nil {
			return nil, fmt.Errorf("scan revenue: %w", err)
		}
		out = append(out, ca)
	}
	return out, rows.Err()
}

// MostUsedCurrency moneda con más facturas; empate por orden alfabético.
func (r *StatsRepo) MostUsedCurrency(ctx context.Context, companyID string) (string, error) {
	var cur string
	err := r.q.QueryRow(ctx, `
		SELECT currency FROM invoices WHERE company_id = $1
		GROUP BY currency ORDER BY count(*) DESC, currency ASC LIMIT 1`, companyID).Scan(&cur)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("most used currency: %w", err)
	}
	return cur, nil
}
