package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo semanal. La transición draft -> finalized ocurre una sola
// vez y no tiene reversa.
const (
	WeekStatusDraft     = "draft"
	WeekStatusFinalized = "finalized"
)

// Días de la semana usados como clave en week_sales (siempre los siete).
var WeekDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Week ciclo operativo semanal. ID es la clave de período (ej. "2026-W35").
type Week struct {
	ID          string
	Status      string
	CreatedAt   time.Time
	FinalizedAt *time.Time
	FinalizedBy string
}

// IsDraft indica si la semana todavía acepta escrituras de ventas/inventario.
func (w *Week) IsDraft() bool { return w.Status == WeekStatusDraft }

// WeeklySalesEntry venta de un día de la semana (mutable solo en borrador).
type WeeklySalesEntry struct {
	WeekID    string
	Day       string // monday..sunday
	Amount    decimal.Decimal
	UpdatedAt time.Time
}

// WeeklyInventoryEntry conteo de inventario de un insumo para la semana
// (mutable solo en borrador). Usage = Begin + Received - End.
type WeeklyInventoryEntry struct {
	WeekID       string
	IngredientID string
	Begin        decimal.Decimal
	Received     decimal.Decimal
	End          decimal.Decimal
	UpdatedAt    time.Time
}

// Usage consumo del período: begin + received - end. No se recorta si es
// negativo (end mayor que lo disponible pasa tal cual al reporte).
func (e WeeklyInventoryEntry) Usage() decimal.Decimal {
	return e.Begin.Add(e.Received).Sub(e.End)
}

// WeeklyCostSnapshotEntry costo unitario capturado al finalizar la semana.
// Inmutable: queda desacoplado de cambios de precio posteriores del catálogo.
type WeeklyCostSnapshotEntry struct {
	WeekID          string
	IngredientID    string
	UnitCost        decimal.Decimal
	SourceVersionID string
	CapturedAt      time.Time
}

// ReportLine desglose por insumo dentro del reporte semanal.
type ReportLine struct {
	IngredientID    string          `json:"ingredient_id"`
	IngredientName  string          `json:"ingredient_name"`
	Usage           decimal.Decimal `json:"usage"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	CostOfSales     decimal.Decimal `json:"cost_of_sales"`
	CostShare       decimal.Decimal `json:"cost_share"` // costOfSales / totalCostOfSales (0 si el total es 0)
	SourceVersionID string          `json:"source_version_id"`
}

// ReportSummary reporte de costos de la semana. Se crea una sola vez al
// finalizar y nunca se muta después.
type ReportSummary struct {
	WeekID           string          `json:"week_id"`
	TotalUsageUnits  decimal.Decimal `json:"total_usage_units"`
	TotalCostOfSales decimal.Decimal `json:"total_cost_of_sales"`
	Lines            []ReportLine    `json:"lines"`
	ComputedAt       time.Time       `json:"computed_at"`
}
