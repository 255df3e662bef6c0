package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLineDTO línea de receta de un insumo compuesto.
type RecipeLineDTO struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

// CreateIngredientRequest alta de insumo. unit_cost no se acepta: es derivado.
type CreateIngredientRequest struct {
	ID               string          `json:"id"` // opcional; se genera UUID si viene vacío
	Name             string          `json:"name"`
	InventoryUnit    string          `json:"inventory_unit"`
	RecipeUnit       string          `json:"recipe_unit"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	UnitsPerCase     decimal.Decimal `json:"units_per_case"`
	CasePrice        decimal.Decimal `json:"case_price"`
	Category         string          `json:"category"`
	IsBatch          bool            `json:"is_batch"`
	RecipeLines      []RecipeLineDTO `json:"recipe_lines"`
	YieldQty         decimal.Decimal `json:"yield_qty"`
	YieldUnit        string          `json:"yield_unit"`
}

// UpdateIngredientRequest edición de insumo; rota la versión de precio.
type UpdateIngredientRequest struct {
	Name             string          `json:"name"`
	InventoryUnit    string          `json:"inventory_unit"`
	RecipeUnit       string          `json:"recipe_unit"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	UnitsPerCase     decimal.Decimal `json:"units_per_case"`
	CasePrice        decimal.Decimal `json:"case_price"`
	Category         string          `json:"category"`
	IsBatch          bool            `json:"is_batch"`
	RecipeLines      []RecipeLineDTO `json:"recipe_lines"`
	YieldQty         decimal.Decimal `json:"yield_qty"`
	YieldUnit        string          `json:"yield_unit"`
}

// SetActiveRequest activa/desactiva un insumo.
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// IngredientResponse representación de salida de un insumo.
type IngredientResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	InventoryUnit    string          `json:"inventory_unit"`
	RecipeUnit       string          `json:"recipe_unit,omitempty"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	UnitsPerCase     decimal.Decimal `json:"units_per_case"`
	CasePrice        decimal.Decimal `json:"case_price"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Category         string          `json:"category"`
	Active           bool            `json:"active"`
	CurrentVersionID string          `json:"current_version_id"`
	IsBatch          bool            `json:"is_batch"`
	RecipeLines      []RecipeLineDTO `json:"recipe_lines,omitempty"`
	YieldQty         decimal.Decimal `json:"yield_qty"`
	YieldUnit        string          `json:"yield_unit,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// IngredientListResponse listado paginado de insumos.
type IngredientListResponse struct {
	Items []IngredientResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// IngredientVersionResponse versión histórica de precio de un insumo.
type IngredientVersionResponse struct {
	ID            string          `json:"id"`
	IngredientID  string          `json:"ingredient_id"`
	CasePrice     decimal.Decimal `json:"case_price"`
	UnitsPerCase  decimal.Decimal `json:"units_per_case"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	EffectiveFrom time.Time       `json:"effective_from"`
	EffectiveTo   *time.Time      `json:"effective_to"` // null = versión vigente
}
