package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo reporte semanal sobre PostgreSQL: una fila por semana con el
// desglose por insumo en jsonb. Se escribe una sola vez, al finalizar.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Create persiste el reporte. Una semana con reporte previo es un conflicto:
// el reporte nunca se reescribe.
func (r *ReportRepo) Create(summary *entity.ReportSummary) error {
	lines, err := json.Marshal(summary.Lines)
	if err != nil {
		return fmt.Errorf("marshal report lines: %w", err)
	}
	query := `
		INSERT INTO week_reports (week_id, total_usage_units, total_cost_of_sales, lines, computed_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err = r.q.Exec(context.Background(), query,
		summary.WeekID, summary.TotalUsageUnits, summary.TotalCostOfSales, lines, summary.ComputedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert week report: %w", err)
	}
	return nil
}

// GetByWeek devuelve el reporte de la semana (nil si no existe).
func (r *ReportRepo) GetByWeek(weekID string) (*entity.ReportSummary, error) {
	query := `SELECT week_id, total_usage_units, total_cost_of_sales, lines, computed_at FROM week_reports WHERE week_id = $1`
	var summary entity.ReportSummary
	var lines []byte
	err := r.q.QueryRow(context.Background(), query, weekID).Scan(
		&summary.WeekID, &summary.TotalUsageUnits, &summary.TotalCostOfSales, &lines, &summary.ComputedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get week report: %w", err)
	}
	if err := json.Unmarshal(lines, &summary.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal report lines: %w", err)
	}
	return &summary, nil
}
