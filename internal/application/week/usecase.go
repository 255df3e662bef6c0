// Package week administra el ciclo operativo semanal: semanas en borrador con
// ventas e inventario mutables, y su finalización irreversible (finalize.go).
package week

import (
	"context"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/costeo-pro/internal/application/dto"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

// weekIDPattern clave de período ISO, ej. "2026-W35".
var weekIDPattern = regexp.MustCompile(`^\d{4}-W(0[1-9]|[1-4]\d|5[0-3])$`)

// UseCase ciclo semanal: alta de semana y merge-writes de borrador.
// Las escrituras de ventas/inventario verifican status = draft acá mismo, no
// solo en la capa de acceso externa: una semana finalizada devuelve conflicto.
type UseCase struct {
	txRunner  TxRunner
	weekRepo  repository.WeekRepository
	salesRepo repository.WeekSalesRepository
	invRepo   repository.WeekInventoryRepository
	ingRepo   repository.IngredientRepository
	snapRepo  repository.CostSnapshotRepository
	repRepo   repository.ReportRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	weekRepo repository.WeekRepository,
	salesRepo repository.WeekSalesRepository,
	invRepo repository.WeekInventoryRepository,
	ingRepo repository.IngredientRepository,
	snapRepo repository.CostSnapshotRepository,
	repRepo repository.ReportRepository,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		weekRepo:  weekRepo,
		salesRepo: salesRepo,
		invRepo:   invRepo,
		ingRepo:   ingRepo,
		snapRepo:  snapRepo,
		repRepo:   repRepo,
	}
}

// Create da de alta la semana en borrador. Siembra las ventas de los siete días
// en cero y, si vienen ids de insumos, un conteo de inventario en cero por cada
// uno. Todo en una transacción.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateWeekRequest) error {
	if !weekIDPattern.MatchString(in.WeekID) {
		return domain.ErrInvalidInput
	}
	existing, err := uc.weekRepo.GetByID(in.WeekID)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicate
	}
	for _, ingID := range in.IngredientIDs {
		ing, err := uc.ingRepo.GetByID(ingID)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.ErrNotFound
		}
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		weekRepo repository.WeekRepository,
		salesRepo repository.WeekSalesRepository,
		invRepo repository.WeekInventoryRepository,
		_ repository.IngredientRepository,
		_ repository.CostSnapshotRepository,
		_ repository.ReportRepository,
	) error {
		if err := weekRepo.Create(&entity.Week{ID: in.WeekID, Status: entity.WeekStatusDraft, CreatedAt: now}); err != nil {
			return err
		}
		for _, day := range entity.WeekDays {
			entry := &entity.WeeklySalesEntry{WeekID: in.WeekID, Day: day, Amount: decimal.Zero, UpdatedAt: now}
			if err := salesRepo.Upsert(entry); err != nil {
				return err
			}
		}
		for _, ingID := range in.IngredientIDs {
			entry := &entity.WeeklyInventoryEntry{
				WeekID:       in.WeekID,
				IngredientID: ingID,
				Begin:        decimal.Zero,
				Received:     decimal.Zero,
				End:          decimal.Zero,
				UpdatedAt:    now,
			}
			if err := invRepo.Upsert(entry); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveSales merge-write de ventas diarias: solo se tocan los días presentes en
// la petición. Rechaza semanas finalizadas con conflicto.
func (uc *UseCase) SaveSales(ctx context.Context, weekID string, in dto.SaveSalesRequest) error {
	wk, err := uc.requireDraft(weekID)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, e := range in.Entries {
		if !validDay(e.Day) || e.Amount.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		entry := &entity.WeeklySalesEntry{WeekID: wk.ID, Day: e.Day, Amount: e.Amount, UpdatedAt: now}
		if err := uc.salesRepo.Upsert(entry); err != nil {
			return err
		}
	}
	return nil
}

// SaveInventory merge-write de conteos de inventario: solo se tocan los insumos
// presentes en la petición. Rechaza semanas finalizadas con conflicto.
func (uc *UseCase) SaveInventory(ctx context.Context, weekID string, in dto.SaveInventoryRequest) error {
	wk, err := uc.requireDraft(weekID)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, e := range in.Entries {
		if e.Begin.LessThan(decimal.Zero) || e.Received.LessThan(decimal.Zero) || e.End.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		ing, err := uc.ingRepo.GetByID(e.IngredientID)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.ErrNotFound
		}
		entry := &entity.WeeklyInventoryEntry{
			WeekID:       wk.ID,
			IngredientID: e.IngredientID,
			Begin:        e.Begin,
			Received:     e.Received,
			End:          e.End,
			UpdatedAt:    now,
		}
		if err := uc.invRepo.Upsert(entry); err != nil {
			return err
		}
	}
	return nil
}

// Get devuelve la semana con ventas e inventario y, si está finalizada, el
// snapshot de costos y el reporte.
func (uc *UseCase) Get(ctx context.Context, weekID string) (*dto.WeekResponse, error) {
	wk, err := uc.weekRepo.GetByID(weekID)
	if err != nil {
		return nil, err
	}
	if wk == nil {
		return nil, domain.ErrNotFound
	}
	sales, err := uc.salesRepo.ListByWeek(weekID)
	if err != nil {
		return nil, err
	}
	inventory, err := uc.invRepo.ListByWeek(weekID)
	if err != nil {
		return nil, err
	}
	resp := &dto.WeekResponse{
		ID:          wk.ID,
		Status:      wk.Status,
		CreatedAt:   wk.CreatedAt,
		FinalizedAt: wk.FinalizedAt,
		FinalizedBy: wk.FinalizedBy,
		Sales:       make([]dto.SalesEntryDTO, 0, len(sales)),
		Inventory:   make([]dto.InventoryEntryDTO, 0, len(inventory)),
	}
	for _, s := range sales {
		resp.Sales = append(resp.Sales, dto.SalesEntryDTO{Day: s.Day, Amount: s.Amount})
	}
	for _, e := range inventory {
		resp.Inventory = append(resp.Inventory, dto.InventoryEntryDTO{
			IngredientID: e.IngredientID, Begin: e.Begin, Received: e.Received, End: e.End,
		})
	}
	if wk.Status == entity.WeekStatusFinalized {
		snaps, err := uc.snapRepo.ListByWeek(weekID)
		if err != nil {
			return nil, err
		}
		resp.Snapshot = make([]dto.CostSnapshotDTO, 0, len(snaps))
		for _, sn := range snaps {
			resp.Snapshot = append(resp.Snapshot, dto.CostSnapshotDTO{
				IngredientID:    sn.IngredientID,
				UnitCost:        sn.UnitCost,
				SourceVersionID: sn.SourceVersionID,
				CapturedAt:      sn.CapturedAt,
			})
		}
		report, err := uc.repRepo.GetByWeek(weekID)
		if err != nil {
			return nil, err
		}
		resp.Report = report
	}
	return resp, nil
}

// List lista semanas (de la más reciente a la más antigua), sin ventas ni
// inventario: solo cabeceras de estado.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]dto.WeekResponse, error) {
	weeks, err := uc.weekRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WeekResponse, 0, len(weeks))
	for _, wk := range weeks {
		out = append(out, dto.WeekResponse{
			ID:          wk.ID,
			Status:      wk.Status,
			CreatedAt:   wk.CreatedAt,
			FinalizedAt: wk.FinalizedAt,
			FinalizedBy: wk.FinalizedBy,
		})
	}
	return out, nil
}

// requireDraft carga la semana y exige status = draft.
func (uc *UseCase) requireDraft(weekID string) (*entity.Week, error) {
	wk, err := uc.weekRepo.GetByID(weekID)
	if err != nil {
		return nil, err
	}
	if wk == nil {
		return nil, domain.ErrNotFound
	}
	if !wk.IsDraft() {
		return nil, domain.ErrWeekNotDraft
	}
	return wk, nil
}

func validDay(day string) bool {
	for _, d := range entity.WeekDays {
		if d == day {
			return true
		}
	}
	return false
}
