package week

import (
	"context"
	"sort"
	"time"

	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/costing"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

// FinalizeUseCase motor de finalización: convierte el borrador mutable de la
// semana en un reporte inmutable. En una sola transacción lee inventario y
// costos vigentes del catálogo, computa el reporte, captura el snapshot de
// costos y marca la semana como finalizada. Si un escritor concurrente invalida
// alguna lectura antes del commit, el runtime aborta y reintenta desde cero:
// nunca queda estado aplicado a medias (ej. snapshot escrito sin cambio de status).
type FinalizeUseCase struct {
	txRunner   TxRunner
	weekRepo   repository.WeekRepository
	reportRepo repository.ReportRepository
}

// NewFinalizeUseCase construye el caso de uso.
func NewFinalizeUseCase(txRunner TxRunner, weekRepo repository.WeekRepository, reportRepo repository.ReportRepository) *FinalizeUseCase {
	return &FinalizeUseCase{txRunner: txRunner, weekRepo: weekRepo, reportRepo: reportRepo}
}

// Finalize cierra la semana y devuelve el reporte computado.
// Transición draft -> finalized: ocurre una sola vez y no tiene reversa; el
// segundo intento observa status = finalized y falla con conflicto.
func (uc *FinalizeUseCase) Finalize(ctx context.Context, weekID, finalizedBy string) (*entity.ReportSummary, error) {
	if weekID == "" || finalizedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	var summary *entity.ReportSummary
	err := uc.txRunner.Run(ctx, func(
		weekRepo repository.WeekRepository,
		_ repository.WeekSalesRepository,
		invRepo repository.WeekInventoryRepository,
		ingRepo repository.IngredientRepository,
		snapRepo repository.CostSnapshotRepository,
		reportRepo repository.ReportRepository,
	) error {
		// 1. Semana: debe existir y seguir en borrador.
		wk, err := weekRepo.GetByID(weekID)
		if err != nil {
			return err
		}
		if wk == nil {
			return domain.ErrNotFound
		}
		if wk.Status == entity.WeekStatusFinalized {
			return domain.ErrAlreadyFinalized
		}

		// 2. Inventario de la semana: sin conteos no hay nada que costear.
		entries, err := invRepo.ListByWeek(weekID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return domain.ErrNoInventoryData
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].IngredientID < entries[j].IngredientID })

		// 3-4. Costo vigente por insumo (misma transacción) y consumo.
		// El consumo negativo (end > begin + received) pasa tal cual, sin recorte.
		now := time.Now()
		inputs := make([]costing.ReportInput, 0, len(entries))
		snapshots := make([]*entity.WeeklyCostSnapshotEntry, 0, len(entries))
		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			ing, err := ingRepo.GetByID(e.IngredientID)
			if err != nil {
				return err
			}
			if ing == nil {
				return domain.ErrNotFound
			}
			inputs = append(inputs, costing.ReportInput{
				IngredientID:    ing.ID,
				IngredientName:  ing.Name,
				Usage:           e.Usage(),
				UnitCost:        ing.UnitCost,
				SourceVersionID: ing.CurrentVersionID,
			})
			snapshots = append(snapshots, &entity.WeeklyCostSnapshotEntry{
				WeekID:          weekID,
				IngredientID:    ing.ID,
				UnitCost:        ing.UnitCost,
				SourceVersionID: ing.CurrentVersionID,
				CapturedAt:      now,
			})
			ids = append(ids, ing.ID)
		}

		// 5. Cómputo puro del reporte.
		summary = costing.ComputeReport(weekID, inputs, now)

		// 6. Snapshot sincronizado con el inventario vigente + reporte + estado,
		// todo dentro de la misma transacción.
		if err := snapRepo.DeleteNotIn(weekID, ids); err != nil {
			return err
		}
		for _, s := range snapshots {
			if err := snapRepo.Create(s); err != nil {
				return err
			}
		}
		if err := reportRepo.Create(summary); err != nil {
			return err
		}
		wk.Status = entity.WeekStatusFinalized
		wk.FinalizedAt = &now
		wk.FinalizedBy = finalizedBy
		return weekRepo.Finalize(wk)
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Report devuelve el reporte persistido de una semana finalizada.
func (uc *FinalizeUseCase) Report(ctx context.Context, weekID string) (*entity.ReportSummary, error) {
	wk, err := uc.weekRepo.GetByID(weekID)
	if err != nil {
		return nil, err
	}
	if wk == nil {
		return nil, domain.ErrNotFound
	}
	report, err := uc.reportRepo.GetByWeek(weekID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrNotFound
	}
	return report, nil
}
