package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

var _ repository.MenuItemRepository = (*MenuItemRepo)(nil)

// MenuItemRepo implementación del puerto MenuItemRepository sobre PostgreSQL.
type MenuItemRepo struct {
	q Querier
}

// NewMenuItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMenuItemRepository(q Querier) *MenuItemRepo {
	return &MenuItemRepo{q: q}
}

// Upsert crea o actualiza el artículo de carta (sin tocar sus líneas).
func (r *MenuItemRepo) Upsert(item *entity.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, name, category, sale_price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, category = EXCLUDED.category, sale_price = EXCLUDED.sale_price,
			active = EXCLUDED.active, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.SalePrice, item.Active, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert menu item: %w", err)
	}
	return nil
}

// ReplaceRecipeLines reemplaza el set completo de líneas: borra y reinserta.
// Las líneas ausentes del set nuevo quedan eliminadas.
func (r *MenuItemRepo) ReplaceRecipeLines(menuItemID string, lines []entity.MenuRecipeLine) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM menu_item_recipe_lines WHERE menu_item_id = $1`, menuItemID); err != nil {
		return fmt.Errorf("delete menu recipe lines: %w", err)
	}
	for _, line := range lines {
		_, err := r.q.Exec(ctx,
			`INSERT INTO menu_item_recipe_lines (menu_item_id, ingredient_id, quantity, unit) VALUES ($1, $2, $3, $4)`,
			menuItemID, line.IngredientID, line.Quantity, line.Unit,
		)
		if err != nil {
			return fmt.Errorf("insert menu recipe line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el artículo con sus líneas de receta.
func (r *MenuItemRepo) GetByID(id string) (*entity.MenuItem, error) {
	query := `SELECT id, name, category, sale_price, active, created_at, updated_at FROM menu_items WHERE id = $1`
	var item entity.MenuItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&item.ID, &item.Name, &item.Category, &item.SalePrice, &item.Active, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT ingredient_id, quantity, unit FROM menu_item_recipe_lines WHERE menu_item_id = $1 ORDER BY ingredient_id`, id)
	if err != nil {
		return nil, fmt.Errorf("get menu recipe lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.MenuRecipeLine
		if err := rows.Scan(&l.IngredientID, &l.Quantity, &l.Unit); err != nil {
			return nil, fmt.Errorf("scan menu recipe line: %w", err)
		}
		item.RecipeLines = append(item.RecipeLines, l)
	}
	return &item, rows.Err()
}

// List lista artículos de carta (sin líneas) con paginación.
func (r *MenuItemRepo) List(limit, offset int) ([]*entity.MenuItem, error) {
	query := `SELECT id, name, category, sale_price, active, created_at, updated_at
		FROM menu_items ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()
	var list []*entity.MenuItem
	for rows.Next() {
		var item entity.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.SalePrice, &item.Active, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}
