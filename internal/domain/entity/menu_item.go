package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem artículo vendible de la carta con su receta (líneas de insumos).
// La receta es solo asociación de datos: el costeo semanal usa el consumo de
// inventario crudo, no la composición de recetas.
type MenuItem struct {
	ID          string
	Name        string
	Category    string
	SalePrice   decimal.Decimal
	Active      bool
	RecipeLines []MenuRecipeLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MenuRecipeLine línea de receta de un artículo de carta.
type MenuRecipeLine struct {
	IngredientID string
	Quantity     decimal.Decimal
	Unit         string
}
