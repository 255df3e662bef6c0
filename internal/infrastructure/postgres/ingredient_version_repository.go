package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

var _ repository.IngredientVersionRepository = (*IngredientVersionRepo)(nil)

// IngredientVersionRepo ledger de versiones de precio sobre PostgreSQL.
// El índice único parcial de ingredient_versions (effective_to IS NULL) hace
// imposible que convivan dos versiones abiertas aunque un bug se salte el caso
// de uso.
type IngredientVersionRepo struct {
	q Querier
}

// NewIngredientVersionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientVersionRepository(q Querier) *IngredientVersionRepo {
	return &IngredientVersionRepo{q: q}
}

// Create inserta una versión. La versión abierta lleva effective_to NULL.
func (r *IngredientVersionRepo) Create(v *entity.IngredientVersion) error {
	query := `
		INSERT INTO ingredient_versions (id, ingredient_id, case_price, units_per_case, unit_cost, effective_from, effective_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.IngredientID, v.CasePrice, v.UnitsPerCase, v.UnitCost, v.EffectiveFrom, v.EffectiveTo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert ingredient version: %w", err)
	}
	return nil
}

// CloseOpenVersion cierra la versión abierta del insumo (effective_to = closedAt).
// Una vez cerrada, la fila es inmutable: nadie la vuelve a tocar.
func (r *IngredientVersionRepo) CloseOpenVersion(ingredientID string, closedAt time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE ingredient_versions SET effective_to = $2 WHERE ingredient_id = $1 AND effective_to IS NULL`,
		ingredientID, closedAt,
	)
	if err != nil {
		return fmt.Errorf("close open version: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetOpenVersion devuelve la versión vigente del insumo (nil si no hay).
func (r *IngredientVersionRepo) GetOpenVersion(ingredientID string) (*entity.IngredientVersion, error) {
	query := `
		SELECT id, ingredient_id, case_price, units_per_case, unit_cost, effective_from, effective_to
		FROM ingredient_versions WHERE ingredient_id = $1 AND effective_to IS NULL`
	return r.scanVersion(r.q.QueryRow(context.Background(), query, ingredientID))
}

// ListByIngredient historial completo en orden cronológico de vigencia.
func (r *IngredientVersionRepo) ListByIngredient(ingredientID string) ([]*entity.IngredientVersion, error) {
	query := `
		SELECT id, ingredient_id, case_price, units_per_case, unit_cost, effective_from, effective_to
		FROM ingredient_versions WHERE ingredient_id = $1 ORDER BY effective_from`
	rows, err := r.q.Query(context.Background(), query, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("list ingredient versions: %w", err)
	}
	defer rows.Close()
	var list []*entity.IngredientVersion
	for rows.Next() {
		v, err := r.scanVersion(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r *IngredientVersionRepo) scanVersion(row pgx.Row) (*entity.IngredientVersion, error) {
	var v entity.IngredientVersion
	err := row.Scan(&v.ID, &v.IngredientID, &v.CasePrice, &v.UnitsPerCase, &v.UnitCost, &v.EffectiveFrom, &v.EffectiveTo)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan ingredient version: %w", err)
	}
	return &v, nil
}
