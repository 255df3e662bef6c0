package week_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria del ciclo semanal
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu        sync.Mutex
	weeks     map[string]*entity.Week
	sales     map[string]map[string]*entity.WeeklySalesEntry             // weekID -> day
	inventory map[string]map[string]*entity.WeeklyInventoryEntry         // weekID -> ingredientID
	snapshots map[string]map[string]*entity.WeeklyCostSnapshotEntry      // weekID -> ingredientID
	reports   map[string]*entity.ReportSummary                           // weekID
	items     map[string]*entity.Ingredient                              // ingredientID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		weeks:     make(map[string]*entity.Week),
		sales:     make(map[string]map[string]*entity.WeeklySalesEntry),
		inventory: make(map[string]map[string]*entity.WeeklyInventoryEntry),
		snapshots: make(map[string]map[string]*entity.WeeklyCostSnapshotEntry),
		reports:   make(map[string]*entity.ReportSummary),
		items:     make(map[string]*entity.Ingredient),
	}
}

func (s *fakeStore) addIngredient(id, name string, unitCost string) {
	s.items[id] = &entity.Ingredient{
		ID:               id,
		Name:             name,
		UnitCost:         decimal.RequireFromString(unitCost),
		CurrentVersionID: "ver-" + id,
		Active:           true,
	}
}

// --- WeekRepository ---

type fakeWeekRepo struct{ s *fakeStore }

func (r fakeWeekRepo) Create(week *entity.Week) error {
	if _, ok := r.s.weeks[week.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *week
	r.s.weeks[week.ID] = &cp
	return nil
}

func (r fakeWeekRepo) GetByID(id string) (*entity.Week, error) {
	wk, ok := r.s.weeks[id]
	if !ok {
		return nil, nil
	}
	cp := *wk
	return &cp, nil
}

func (r fakeWeekRepo) Finalize(week *entity.Week) error {
	existing, ok := r.s.weeks[week.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if existing.Status != entity.WeekStatusDraft {
		return domain.ErrAlreadyFinalized
	}
	cp := *week
	r.s.weeks[week.ID] = &cp
	return nil
}

func (r fakeWeekRepo) List(limit, offset int) ([]*entity.Week, error) {
	out := make([]*entity.Week, 0, len(r.s.weeks))
	for _, wk := range r.s.weeks {
		cp := *wk
		out = append(out, &cp)
	}
	return out, nil
}

// --- WeekSalesRepository ---

type fakeSalesRepo struct{ s *fakeStore }

// Upsert replica el contrato del adaptador real: la escritura va condicionada
// al status de la semana en la misma operación.
func (r fakeSalesRepo) Upsert(entry *entity.WeeklySalesEntry) error {
	if wk, ok := r.s.weeks[entry.WeekID]; ok && wk.Status != entity.WeekStatusDraft {
		return domain.ErrWeekNotDraft
	}
	m, ok := r.s.sales[entry.WeekID]
	if !ok {
		m = make(map[string]*entity.WeeklySalesEntry)
		r.s.sales[entry.WeekID] = m
	}
	cp := *entry
	m[entry.Day] = &cp
	return nil
}

func (r fakeSalesRepo) ListByWeek(weekID string) ([]*entity.WeeklySalesEntry, error) {
	out := make([]*entity.WeeklySalesEntry, 0)
	for _, day := range entity.WeekDays {
		if e, ok := r.s.sales[weekID][day]; ok {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// --- WeekInventoryRepository ---

type fakeInvRepo struct{ s *fakeStore }

func (r fakeInvRepo) Upsert(entry *entity.WeeklyInventoryEntry) error {
	if wk, ok := r.s.weeks[entry.WeekID]; ok && wk.Status != entity.WeekStatusDraft {
		return domain.ErrWeekNotDraft
	}
	m, ok := r.s.inventory[entry.WeekID]
	if !ok {
		m = make(map[string]*entity.WeeklyInventoryEntry)
		r.s.inventory[entry.WeekID] = m
	}
	cp := *entry
	m[entry.IngredientID] = &cp
	return nil
}

func (r fakeInvRepo) ListByWeek(weekID string) ([]*entity.WeeklyInventoryEntry, error) {
	out := make([]*entity.WeeklyInventoryEntry, 0)
	for _, e := range r.s.inventory[weekID] {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

// --- IngredientRepository (solo lecturas; el ciclo semanal no escribe catálogo) ---

type fakeIngredientRepo struct{ s *fakeStore }

func (r fakeIngredientRepo) Create(ing *entity.Ingredient) error { return nil }

func (r fakeIngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	ing, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *ing
	return &cp, nil
}

func (r fakeIngredientRepo) Update(ing *entity.Ingredient) error { return nil }

func (r fakeIngredientRepo) UpdateCurrentCost(id string, unitCost decimal.Decimal, versionID string) error {
	return nil
}

func (r fakeIngredientRepo) SetActive(id string, active bool) error { return nil }

func (r fakeIngredientRepo) List(includeInactive bool, limit, offset int) ([]*entity.Ingredient, error) {
	return nil, nil
}

func (r fakeIngredientRepo) ReplaceRecipeLines(ingredientID string, lines []entity.RecipeLine) error {
	return nil
}

func (r fakeIngredientRepo) GetRecipeLines(ingredientID string) ([]entity.RecipeLine, error) {
	return nil, nil
}

// --- CostSnapshotRepository ---

type fakeSnapRepo struct{ s *fakeStore }

func (r fakeSnapRepo) Create(entry *entity.WeeklyCostSnapshotEntry) error {
	m, ok := r.s.snapshots[entry.WeekID]
	if !ok {
		m = make(map[string]*entity.WeeklyCostSnapshotEntry)
		r.s.snapshots[entry.WeekID] = m
	}
	cp := *entry
	m[entry.IngredientID] = &cp
	return nil
}

func (r fakeSnapRepo) DeleteNotIn(weekID string, ingredientIDs []string) error {
	keep := make(map[string]bool, len(ingredientIDs))
	for _, id := range ingredientIDs {
		keep[id] = true
	}
	for id := range r.s.snapshots[weekID] {
		if !keep[id] {
			delete(r.s.snapshots[weekID], id)
		}
	}
	return nil
}

func (r fakeSnapRepo) ListByWeek(weekID string) ([]*entity.WeeklyCostSnapshotEntry, error) {
	out := make([]*entity.WeeklyCostSnapshotEntry, 0)
	for _, e := range r.s.snapshots[weekID] {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

// --- ReportRepository ---

type fakeReportRepo struct{ s *fakeStore }

func (r fakeReportRepo) Create(summary *entity.ReportSummary) error {
	if _, ok := r.s.reports[summary.WeekID]; ok {
		return domain.ErrConflict
	}
	cp := *summary
	r.s.reports[summary.WeekID] = &cp
	return nil
}

func (r fakeReportRepo) GetByWeek(weekID string) (*entity.ReportSummary, error) {
	rep, ok := r.s.reports[weekID]
	if !ok {
		return nil, nil
	}
	cp := *rep
	return &cp, nil
}

// --- TxRunner ---

// fakeWeekTxRunner serializa los callbacks con el mutex del store: emula el
// aislamiento serializable (las transacciones concurrentes se ordenan).
type fakeWeekTxRunner struct{ s *fakeStore }

func (r fakeWeekTxRunner) Run(ctx context.Context, fn func(
	weekRepo repository.WeekRepository,
	salesRepo repository.WeekSalesRepository,
	invRepo repository.WeekInventoryRepository,
	ingRepo repository.IngredientRepository,
	snapRepo repository.CostSnapshotRepository,
	reportRepo repository.ReportRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(
		fakeWeekRepo{r.s},
		fakeSalesRepo{r.s},
		fakeInvRepo{r.s},
		fakeIngredientRepo{r.s},
		fakeSnapRepo{r.s},
		fakeReportRepo{r.s},
	)
}
