package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

var _ repository.WeekSalesRepository = (*WeekSalesRepo)(nil)

// WeekSalesRepo ventas diarias de la semana sobre PostgreSQL.
// Merge-write por día: cada documento (week_id, day) es independiente y no
// requiere atomicidad entre días.
type WeekSalesRepo struct {
	q Querier
}

// NewWeekSalesRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWeekSalesRepository(q Querier) *WeekSalesRepo {
	return &WeekSalesRepo{q: q}
}

// Upsert crea o actualiza la venta de un día. La escritura va condicionada al
// status de la semana en la misma sentencia: si otra petición la finalizó entre
// la verificación del caso de uso y este Exec, no se toca nada y se devuelve
// domain.ErrWeekNotDraft.
func (r *WeekSalesRepo) Upsert(entry *entity.WeeklySalesEntry) error {
	query := `
		INSERT INTO week_sales (week_id, day, amount, updated_at)
		SELECT w.id, $2, $3, $4 FROM weeks w WHERE w.id = $1 AND w.status = $5
		ON CONFLICT (week_id, day) DO UPDATE SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at`
	cmd, err := r.q.Exec(context.Background(), query,
		entry.WeekID, entry.Day, entry.Amount, entry.UpdatedAt, entity.WeekStatusDraft,
	)
	if err != nil {
		return fmt.Errorf("upsert week sales: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrWeekNotDraft
	}
	return nil
}

// ListByWeek ventas de la semana en orden de día (lunes a domingo).
func (r *WeekSalesRepo) ListByWeek(weekID string) ([]*entity.WeeklySalesEntry, error) {
	query := `
		SELECT week_id, day, amount, updated_at FROM week_sales WHERE week_id = $1
		ORDER BY array_position(ARRAY['monday','tuesday','wednesday','thursday','friday','saturday','sunday'], day)`
	rows, err := r.q.Query(context.Background(), query, weekID)
	if err != nil {
		return nil, fmt.Errorf("list week sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.WeeklySalesEntry
	for rows.Next() {
		var e entity.WeeklySalesEntry
		if err := rows.Scan(&e.WeekID, &e.Day, &e.Amount, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan week sales: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
