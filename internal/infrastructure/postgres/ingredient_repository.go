package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación del puerto IngredientRepository sobre
// PostgreSQL (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = `id, name, inventory_unit, recipe_unit, conversion_factor, units_per_case,
	case_price, unit_cost, category, active, current_version_id, is_batch, yield_qty, yield_unit,
	created_at, updated_at`

// Create persiste un insumo nuevo. unit_cost llega ya derivado por el caso de uso.
func (r *IngredientRepo) Create(ing *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (` + ingredientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		ing.ID, ing.Name, ing.InventoryUnit, ing.RecipeUnit, ing.ConversionFactor, ing.UnitsPerCase,
		ing.CasePrice, ing.UnitCost, ing.Category, ing.Active, ing.CurrentVersionID, ing.IsBatch,
		ing.YieldQty, ing.YieldUnit, ing.CreatedAt, ing.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por id, con sus líneas de receta si es compuesto.
func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1`
	ing, err := r.scanIngredient(r.q.QueryRow(context.Background(), query, id))
	if err != nil || ing == nil {
		return nil, err
	}
	if ing.IsBatch {
		lines, err := r.GetRecipeLines(id)
		if err != nil {
			return nil, err
		}
		ing.RecipeLines = lines
	}
	return ing, nil
}

// Update actualiza los campos del insumo. unit_cost y current_version_id se
// tocan solo vía UpdateCurrentCost (rotación del ledger).
func (r *IngredientRepo) Update(ing *entity.Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $2, inventory_unit = $3, recipe_unit = $4, conversion_factor = $5,
			units_per_case = $6, case_price = $7, category = $8, is_batch = $9,
			yield_qty = $10, yield_unit = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		ing.ID, ing.Name, ing.InventoryUnit, ing.RecipeUnit, ing.ConversionFactor,
		ing.UnitsPerCase, ing.CasePrice, ing.Category, ing.IsBatch,
		ing.YieldQty, ing.YieldUnit, ing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCurrentCost actualiza solo costo vigente y puntero de versión (lo usa el ledger).
func (r *IngredientRepo) UpdateCurrentCost(id string, unitCost decimal.Decimal, versionID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE ingredients SET unit_cost = $2, current_version_id = $3, updated_at = now() WHERE id = $1`,
		id, unitCost, versionID,
	)
	if err != nil {
		return fmt.Errorf("update ingredient cost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive activa/desactiva el insumo.
func (r *IngredientRepo) SetActive(id string, active bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE ingredients SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set ingredient active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista insumos ordenados por nombre, con paginación.
func (r *IngredientRepo) List(includeInactive bool, limit, offset int) ([]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients`
	if !includeInactive {
		query += ` WHERE active`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		ing, err := r.scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ing)
	}
	return list, rows.Err()
}

// ReplaceRecipeLines reemplaza el set completo de líneas de receta del insumo.
func (r *IngredientRepo) ReplaceRecipeLines(ingredientID string, lines []entity.RecipeLine) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM ingredient_recipe_lines WHERE ingredient_id = $1`, ingredientID); err != nil {
		return fmt.Errorf("delete recipe lines: %w", err)
	}
	for _, line := range lines {
		_, err := r.q.Exec(ctx,
			`INSERT INTO ingredient_recipe_lines (ingredient_id, ref_ingredient_id, quantity, unit) VALUES ($1, $2, $3, $4)`,
			ingredientID, line.IngredientID, line.Quantity, line.Unit,
		)
		if err != nil {
			return fmt.Errorf("insert recipe line: %w", err)
		}
	}
	return nil
}

// GetRecipeLines devuelve las líneas de receta del insumo compuesto.
func (r *IngredientRepo) GetRecipeLines(ingredientID string) ([]entity.RecipeLine, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT ref_ingredient_id, quantity, unit FROM ingredient_recipe_lines WHERE ingredient_id = $1 ORDER BY ref_ingredient_id`,
		ingredientID,
	)
	if err != nil {
		return nil, fmt.Errorf("get recipe lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.RecipeLine
	for rows.Next() {
		var l entity.RecipeLine
		if err := rows.Scan(&l.IngredientID, &l.Quantity, &l.Unit); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *IngredientRepo) scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var ing entity.Ingredient
	err := row.Scan(
		&ing.ID, &ing.Name, &ing.InventoryUnit, &ing.RecipeUnit, &ing.ConversionFactor, &ing.UnitsPerCase,
		&ing.CasePrice, &ing.UnitCost, &ing.Category, &ing.Active, &ing.CurrentVersionID, &ing.IsBatch,
		&ing.YieldQty, &ing.YieldUnit, &ing.CreatedAt, &ing.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan ingredient: %w", err)
	}
	return &ing, nil
}
