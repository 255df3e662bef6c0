package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

var _ repository.WeekInventoryRepository = (*WeekInventoryRepo)(nil)

// WeekInventoryRepo conteos semanales de inventario sobre PostgreSQL.
// Merge-write por insumo, sin atomicidad entre filas (a diferencia de la
// finalización, que lee todo el set dentro de una transacción).
type WeekInventoryRepo struct {
	q Querier
}

// NewWeekInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWeekInventoryRepository(q Querier) *WeekInventoryRepo {
	return &WeekInventoryRepo{q: q}
}

// Upsert crea o actualiza el conteo de un insumo. Igual que en las ventas, la
// condición de borrador viaja en la misma sentencia: cero filas afectadas
// significa que la semana ya no acepta escrituras (domain.ErrWeekNotDraft).
func (r *WeekInventoryRepo) Upsert(entry *entity.WeeklyInventoryEntry) error {
	query := `
		INSERT INTO week_inventory (week_id, ingredient_id, begin_qty, received_qty, end_qty, updated_at)
		SELECT w.id, $2, $3, $4, $5, $6 FROM weeks w WHERE w.id = $1 AND w.status = $7
		ON CONFLICT (week_id, ingredient_id) DO UPDATE
		SET begin_qty = EXCLUDED.begin_qty, received_qty = EXCLUDED.received_qty,
			end_qty = EXCLUDED.end_qty, updated_at = EXCLUDED.updated_at`
	cmd, err := r.q.Exec(context.Background(), query,
		entry.WeekID, entry.IngredientID, entry.Begin, entry.Received, entry.End, entry.UpdatedAt,
		entity.WeekStatusDraft,
	)
	if err != nil {
		return fmt.Errorf("upsert week inventory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrWeekNotDraft
	}
	return nil
}

// ListByWeek conteos de la semana ordenados por insumo.
func (r *WeekInventoryRepo) ListByWeek(weekID string) ([]*entity.WeeklyInventoryEntry, error) {
	query := `
		SELECT week_id, ingredient_id, begin_qty, received_qty, end_qty, updated_at
		FROM week_inventory WHERE week_id = $1 ORDER BY ingredient_id`
	rows, err := r.q.Query(context.Background(), query, weekID)
	if err != nil {
		return nil, fmt.Errorf("list week inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.WeeklyInventoryEntry
	for rows.Next() {
		var e entity.WeeklyInventoryEntry
		if err := rows.Scan(&e.WeekID, &e.IngredientID, &e.Begin, &e.Received, &e.End, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan week inventory: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
