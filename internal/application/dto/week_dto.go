package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
)

// CreateWeekRequest alta de semana. IngredientIDs opcional: siembra un conteo
// de inventario en cero por cada insumo indicado.
type CreateWeekRequest struct {
	WeekID        string   `json:"week_id"` // clave de período, ej. "2026-W35"
	IngredientIDs []string `json:"ingredient_ids"`
}

// SaveSalesRequest merge-write de ventas diarias (solo días presentes).
type SaveSalesRequest struct {
	Entries []SalesEntryDTO `json:"entries"`
}

// SalesEntryDTO venta de un día.
type SalesEntryDTO struct {
	Day    string          `json:"day"` // monday..sunday
	Amount decimal.Decimal `json:"amount"`
}

// SaveInventoryRequest merge-write de conteos de inventario (solo insumos presentes).
type SaveInventoryRequest struct {
	Entries []InventoryEntryDTO `json:"entries"`
}

// InventoryEntryDTO conteo semanal de un insumo.
type InventoryEntryDTO struct {
	IngredientID string          `json:"ingredient_id"`
	Begin        decimal.Decimal `json:"begin"`
	Received     decimal.Decimal `json:"received"`
	End          decimal.Decimal `json:"end"`
}

// CostSnapshotDTO costo unitario capturado al finalizar la semana.
type CostSnapshotDTO struct {
	IngredientID    string          `json:"ingredient_id"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	SourceVersionID string          `json:"source_version_id"`
	CapturedAt      time.Time       `json:"captured_at"`
}

// WeekResponse estado completo de una semana. Snapshot y Report solo vienen en
// semanas finalizadas.
type WeekResponse struct {
	ID          string                `json:"id"`
	Status      string                `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
	FinalizedAt *time.Time            `json:"finalized_at,omitempty"`
	FinalizedBy string                `json:"finalized_by,omitempty"`
	Sales       []SalesEntryDTO       `json:"sales"`
	Inventory   []InventoryEntryDTO   `json:"inventory"`
	Snapshot    []CostSnapshotDTO     `json:"cost_snapshot,omitempty"`
	Report      *entity.ReportSummary `json:"report,omitempty"`
}
