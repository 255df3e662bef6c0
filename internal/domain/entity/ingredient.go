package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitCostPrecision decimales del costo unitario (casePrice / unitsPerCase).
const UnitCostPrecision = 4

// Ingredient representa un insumo del catálogo con su costo vigente.
// UnitCost nunca se escribe directamente: solo cambia al abrir una versión nueva
// (rotación en el Version Ledger) o, en insumos compuestos, al recalcular la receta.
type Ingredient struct {
	ID               string
	Name             string
	InventoryUnit    string // unidad en que se cuenta inventario (kg, lb, unidad)
	RecipeUnit       string // opcional: unidad usada en recetas
	ConversionFactor decimal.Decimal // factor inventario -> receta (1 si no aplica)
	UnitsPerCase     decimal.Decimal
	CasePrice        decimal.Decimal
	UnitCost         decimal.Decimal // derivado, 4 decimales; nunca se asigna por fuera del ledger
	Category         string
	Active           bool
	CurrentVersionID string // puntero a la versión abierta (effective_to IS NULL)

	// Campos de insumo compuesto (batch): su costo sale de su propia receta y rendimiento.
	IsBatch     bool
	RecipeLines []RecipeLine
	YieldQty    decimal.Decimal
	YieldUnit   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecipeLine línea de receta de un insumo compuesto: referencia a otro insumo.
// Puede referenciar otro insumo compuesto (rollup recursivo, con detección de ciclos).
type RecipeLine struct {
	IngredientID string
	Quantity     decimal.Decimal
	Unit         string
}

// IngredientVersion versión histórica de precio con vigencia [EffectiveFrom, EffectiveTo).
// EffectiveTo nil = versión abierta (vigente). Una vez cerrada es inmutable.
// Invariante: por insumo existe exactamente una versión abierta y los intervalos
// cerrados no se solapan.
type IngredientVersion struct {
	ID            string
	IngredientID  string
	CasePrice     decimal.Decimal
	UnitsPerCase  decimal.Decimal
	UnitCost      decimal.Decimal
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
}
