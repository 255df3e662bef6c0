// Package costing contiene la aritmética pura del costeo semanal (sin I/O).
package costing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
)

// UnitCost deriva el costo unitario: casePrice / unitsPerCase, redondeado a 4
// decimales. unitsPerCase <= 0 devuelve 0 (la validación vive en el caso de uso).
func UnitCost(casePrice, unitsPerCase decimal.Decimal) decimal.Decimal {
	if unitsPerCase.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return casePrice.DivRound(unitsPerCase, entity.UnitCostPrecision)
}

// ReportInput consumo y costo capturado de un insumo para el cómputo del reporte.
type ReportInput struct {
	IngredientID    string
	IngredientName  string
	Usage           decimal.Decimal
	UnitCost        decimal.Decimal
	SourceVersionID string
}

// ComputeReport calcula el reporte semanal a partir del consumo y el costo
// unitario capturado por insumo. Determinista y sin I/O:
//
//	costOfSales_i  = usage_i * unitCost_i
//	totalCostOfSales = Σ costOfSales_i
//	totalUsageUnits  = Σ usage_i
//	costShare_i      = costOfSales_i / totalCostOfSales (0 si el total es 0)
//
// El consumo negativo (end > begin + received) no se recorta: pasa tal cual.
func ComputeReport(weekID string, inputs []ReportInput, computedAt time.Time) *entity.ReportSummary {
	summary := &entity.ReportSummary{
		WeekID:           weekID,
		TotalUsageUnits:  decimal.Zero,
		TotalCostOfSales: decimal.Zero,
		Lines:            make([]entity.ReportLine, 0, len(inputs)),
		ComputedAt:       computedAt,
	}
	for _, in := range inputs {
		costOfSales := in.Usage.Mul(in.UnitCost)
		summary.TotalUsageUnits = summary.TotalUsageUnits.Add(in.Usage)
		summary.TotalCostOfSales = summary.TotalCostOfSales.Add(costOfSales)
		summary.Lines = append(summary.Lines, entity.ReportLine{
			IngredientID:    in.IngredientID,
			IngredientName:  in.IngredientName,
			Usage:           in.Usage,
			UnitCost:        in.UnitCost,
			CostOfSales:     costOfSales,
			SourceVersionID: in.SourceVersionID,
		})
	}
	// Participación por insumo; evita división por cero cuando el total es 0.
	if !summary.TotalCostOfSales.IsZero() {
		for i := range summary.Lines {
			summary.Lines[i].CostShare = summary.Lines[i].CostOfSales.DivRound(summary.TotalCostOfSales, entity.UnitCostPrecision)
		}
	}
	return summary
}
