package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

var _ repository.CostSnapshotRepository = (*CostSnapshotRepo)(nil)

// CostSnapshotRepo snapshot de costos de finalización sobre PostgreSQL.
// Solo el motor de finalización escribe acá, siempre dentro de su transacción;
// después del commit las filas son historia congelada.
type CostSnapshotRepo struct {
	q Querier
}

// NewCostSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCostSnapshotRepository(q Querier) *CostSnapshotRepo {
	return &CostSnapshotRepo{q: q}
}

// Create inserta (o reescribe dentro de la misma finalización) la captura de un insumo.
func (r *CostSnapshotRepo) Create(entry *entity.WeeklyCostSnapshotEntry) error {
	query := `
		INSERT INTO week_cost_snapshots (week_id, ingredient_id, unit_cost, source_version_id, captured_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (week_id, ingredient_id) DO UPDATE
		SET unit_cost = EXCLUDED.unit_cost, source_version_id = EXCLUDED.source_version_id,
			captured_at = EXCLUDED.captured_at`
	_, err := r.q.Exec(context.Background(), query,
		entry.WeekID, entry.IngredientID, entry.UnitCost, entry.SourceVersionID, entry.CapturedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cost snapshot: %w", err)
	}
	return nil
}

// DeleteNotIn elimina capturas de insumos que ya no están en el cómputo de la
// semana (mantiene el snapshot sincronizado con el inventario vigente).
func (r *CostSnapshotRepo) DeleteNotIn(weekID string, ingredientIDs []string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM week_cost_snapshots WHERE week_id = $1 AND ingredient_id != ALL($2)`,
		weekID, ingredientIDs,
	)
	if err != nil {
		return fmt.Errorf("delete stale cost snapshots: %w", err)
	}
	return nil
}

// ListByWeek capturas de la semana ordenadas por insumo.
func (r *CostSnapshotRepo) ListByWeek(weekID string) ([]*entity.WeeklyCostSnapshotEntry, error) {
	query := `
		SELECT week_id, ingredient_id, unit_cost, source_version_id, captured_at
		FROM week_cost_snapshots WHERE week_id = $1 ORDER BY ingredient_id`
	rows, err := r.q.Query(context.Background(), query, weekID)
	if err != nil {
		return nil, fmt.Errorf("list cost snapshots: %w", err)
	}
	defer rows.Close()
	var list []*entity.WeeklyCostSnapshotEntry
	for rows.Next() {
		var e entity.WeeklyCostSnapshotEntry
		if err := rows.Scan(&e.WeekID, &e.IngredientID, &e.UnitCost, &e.SourceVersionID, &e.CapturedAt); err != nil {
			return nil, fmt.Errorf("scan cost snapshot: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
