package repository

import "github.com/tu-usuario/costeo-pro/internal/domain/entity"

// WeekRepository puerto de persistencia del ciclo semanal.
type WeekRepository interface {
	Create(week *entity.Week) error
	GetByID(id string) (*entity.Week, error)
	// Finalize marca la semana como finalizada. Solo aplica si status = draft;
	// devuelve domain.ErrAlreadyFinalized si ya estaba cerrada.
	Finalize(week *entity.Week) error
	List(limit, offset int) ([]*entity.Week, error)
}

// WeekSalesRepository ventas diarias de la semana (merge-write por día).
type WeekSalesRepository interface {
	// Upsert escribe solo mientras la semana está en borrador; devuelve
	// domain.ErrWeekNotDraft si ya fue finalizada.
	Upsert(entry *entity.WeeklySalesEntry) error
	ListByWeek(weekID string) ([]*entity.WeeklySalesEntry, error)
}

// WeekInventoryRepository conteos de inventario de la semana (merge-write por insumo).
type WeekInventoryRepository interface {
	// Upsert escribe solo mientras la semana está en borrador; devuelve
	// domain.ErrWeekNotDraft si ya fue finalizada.
	Upsert(entry *entity.WeeklyInventoryEntry) error
	ListByWeek(weekID string) ([]*entity.WeeklyInventoryEntry, error)
}

// CostSnapshotRepository snapshot de costos capturado solo al finalizar.
// Una vez finalizada la semana nadie vuelve a escribir aquí.
type CostSnapshotRepository interface {
	Create(entry *entity.WeeklyCostSnapshotEntry) error
	// DeleteNotIn elimina snapshots de insumos que ya no están en el cómputo
	// (mantiene el set sincronizado con el inventario vigente de la semana).
	DeleteNotIn(weekID string, ingredientIDs []string) error
	ListByWeek(weekID string) ([]*entity.WeeklyCostSnapshotEntry, error)
}

// ReportRepository reporte semanal (un documento por semana, escrito una vez).
type ReportRepository interface {
	Create(summary *entity.ReportSummary) error
	GetByWeek(weekID string) (*entity.ReportSummary, error)
}
