package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuRecipeLineDTO línea de receta de un artículo de carta.
type MenuRecipeLineDTO struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

// UpsertMenuItemRequest crea o reemplaza un artículo de carta con su receta
// completa (las líneas ausentes del set nuevo se eliminan).
type UpsertMenuItemRequest struct {
	Name        string              `json:"name"`
	Category    string              `json:"category"`
	SalePrice   decimal.Decimal     `json:"sale_price"`
	Active      *bool               `json:"active"`
	RecipeLines []MenuRecipeLineDTO `json:"recipe_lines"`
}

// MenuItemResponse representación de salida de un artículo de carta.
type MenuItemResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Category    string              `json:"category"`
	SalePrice   decimal.Decimal     `json:"sale_price"`
	Active      bool                `json:"active"`
	RecipeLines []MenuRecipeLineDTO `json:"recipe_lines"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
