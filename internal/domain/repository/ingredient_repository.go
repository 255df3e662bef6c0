package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
)

// IngredientRepository define el puerto de persistencia para Ingredient (DIP).
// Las escrituras que tocan costo vigente se hacen siempre dentro de la misma
// transacción que la rotación de versiones (ver catalog.TxRunner).
type IngredientRepository interface {
	Create(ing *entity.Ingredient) error
	GetByID(id string) (*entity.Ingredient, error)
	Update(ing *entity.Ingredient) error
	// UpdateCurrentCost actualiza solo unit_cost y current_version_id (lo usa el ledger).
	UpdateCurrentCost(id string, unitCost decimal.Decimal, versionID string) error
	SetActive(id string, active bool) error
	List(includeInactive bool, limit, offset int) ([]*entity.Ingredient, error)
	// ReplaceRecipeLines reemplaza el conjunto completo de líneas de receta de un
	// insumo compuesto (las ausentes en el set nuevo se eliminan).
	ReplaceRecipeLines(ingredientID string, lines []entity.RecipeLine) error
	GetRecipeLines(ingredientID string) ([]entity.RecipeLine, error)
}

// IngredientVersionRepository puerto del ledger de versiones efectivo-datadas.
type IngredientVersionRepository interface {
	Create(v *entity.IngredientVersion) error
	// CloseOpenVersion cierra la versión abierta del insumo (effective_to = closedAt).
	// Devuelve domain.ErrNotFound si no hay versión abierta.
	CloseOpenVersion(ingredientID string, closedAt time.Time) error
	GetOpenVersion(ingredientID string) (*entity.IngredientVersion, error)
	ListByIngredient(ingredientID string) ([]*entity.IngredientVersion, error)
}
