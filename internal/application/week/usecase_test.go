package week_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/costeo-pro/internal/application/dto"
	"github.com/tu-usuario/costeo-pro/internal/application/week"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
)

func newWeekUC(s *fakeStore) *week.UseCase {
	return week.NewUseCase(
		fakeWeekTxRunner{s},
		fakeWeekRepo{s},
		fakeSalesRepo{s},
		fakeInvRepo{s},
		fakeIngredientRepo{s},
		fakeSnapRepo{s},
		fakeReportRepo{s},
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — siembra del borrador
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateWeek_SiembraSieteDiasEnCero(t *testing.T) {
	s := newFakeStore()
	s.addIngredient("ing-queso", "Queso", "3.0000")
	uc := newWeekUC(s)
	ctx := context.Background()

	err := uc.Create(ctx, dto.CreateWeekRequest{
		WeekID:        "2026-W35",
		IngredientIDs: []string{"ing-queso"},
	})
	require.NoError(t, err)

	resp, err := uc.Get(ctx, "2026-W35")
	require.NoError(t, err)

	assert.Equal(t, entity.WeekStatusDraft, resp.Status, "una semana nueva nace en borrador")
	require.Len(t, resp.Sales, 7, "los siete días deben quedar sembrados")
	for _, e := range resp.Sales {
		assert.True(t, e.Amount.IsZero(), "el día %s debe nacer en cero", e.Day)
	}
	require.Len(t, resp.Inventory, 1)
	assert.True(t, resp.Inventory[0].Begin.IsZero())
	assert.Nil(t, resp.Report, "una semana en borrador no tiene reporte")
}

func TestCreateWeek_IDInvalido(t *testing.T) {
	uc := newWeekUC(newFakeStore())
	ctx := context.Background()

	// Caso 1: formato libre.
	assert.ErrorIs(t, uc.Create(ctx, dto.CreateWeekRequest{WeekID: "semana35"}), domain.ErrInvalidInput)
	// Caso 2: semana fuera de rango (54).
	assert.ErrorIs(t, uc.Create(ctx, dto.CreateWeekRequest{WeekID: "2026-W54"}), domain.ErrInvalidInput)
	// Caso 3: vacío.
	assert.ErrorIs(t, uc.Create(ctx, dto.CreateWeekRequest{WeekID: ""}), domain.ErrInvalidInput)
}

func TestCreateWeek_Duplicada(t *testing.T) {
	uc := newWeekUC(newFakeStore())
	ctx := context.Background()

	require.NoError(t, uc.Create(ctx, dto.CreateWeekRequest{WeekID: "2026-W35"}))
	assert.ErrorIs(t, uc.Create(ctx, dto.CreateWeekRequest{WeekID: "2026-W35"}), domain.ErrDuplicate)
}

func TestCreateWeek_InsumoInexistente(t *testing.T) {
	uc := newWeekUC(newFakeStore())

	err := uc.Create(context.Background(), dto.CreateWeekRequest{
		WeekID:        "2026-W35",
		IngredientIDs: []string{"fantasma"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// SaveSales / SaveInventory — merge-writes del borrador
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveSales_MergePorDia(t *testing.T) {
	s := newFakeStore()
	uc := newWeekUC(s)
	ctx := context.Background()
	require.NoError(t, uc.Create(ctx, dto.CreateWeekRequest{WeekID: "2026-W35"}))

	err := uc.SaveSales(ctx, "2026-W35", dto.SaveSalesRequest{
		Entries: []dto.SalesEntryDTO{
			{Day: "monday", Amount: decimal.NewFromInt(150)},
			{Day: "friday", Amount: decimal.NewFromInt(320)},
		},
	})
	require.NoError(t, err)

	resp, err := uc.Get(ctx, "2026-W35")
	require.NoError(t, err)

	byDay := make(map[string]decimal.Decimal)
	for _, e := range resp.Sales {
		byDay[e.Day] = e.Amount
	}
	assert.Equal(t, "150", byDay["monday"].String())
	assert.Equal(t, "320", byDay["friday"].String())
	assert.True(t, byDay["tuesday"].IsZero(),
		"los días no incluidos en la petición no deben tocarse")
}

func TestSaveSales_Validaciones(t *testing.T) {
	uc := newWeekUC(newFakeStore())
	ctx := context.Background()
	require.NoError(t, uc.Create(ctx, dto.CreateWeekRequest{WeekID: "2026-W35"}))

	// Día inválido.
	err := uc.SaveSales(ctx, "2026-W35", dto.SaveSalesRequest{
		Entries: []dto.SalesEntryDTO{{Day: "someday", Amount: decimal.NewFromInt(10)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Monto negativo.
	err = uc.SaveSales(ctx, "2026-W35", dto.SaveSalesRequest{
		Entries: []dto.SalesEntryDTO{{Day: "monday", Amount: decimal.NewFromInt(-5)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Semana inexistente.
	err = uc.SaveSales(ctx, "2026-W99", dto.SaveSalesRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveInventory_MergePorInsumo(t *testing.T) {
	s := newFakeStore()
	s.addIngredient("ing-queso", "Queso", "3.0000")
	s.addIngredient("ing-tomate", "Tomate", "0.5000")
	uc := newWeekUC(s)
	ctx := context.Background()
	require.NoError(t, uc.Create(ctx, dto.CreateWeekRequest{
		WeekID:        "2026-W35",
		IngredientIDs: []string{"ing-queso", "ing-tomate"},
	}))

	err := uc.SaveInventory(ctx, "2026-W35", dto.SaveInventoryRequest{
		Entries: []dto.InventoryEntryDTO{
			{IngredientID: "ing-queso", Begin: decimal.NewFromInt(10), Received: decimal.NewFromInt(5), End: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	resp, err := uc.Get(ctx, "2026-W35")
	require.NoError(t, err)

	byID := make(map[string]dto.InventoryEntryDTO)
	for _, e := range resp.Inventory {
		byID[e.IngredientID] = e
	}
	assert.Equal(t, "10", byID["ing-queso"].Begin.String())
	assert.True(t, byID["ing-tomate"].Begin.IsZero(),
		"los insumos no incluidos en la petición no deben tocarse")
}

func TestSaveInventory_Validaciones(t *testing.T) {
	s := newFakeStore()
	s.addIngredient("ing-queso", "Queso", "3.0000")
	uc := newWeekUC(s)
	ctx := context.Background()
	require.NoError(t, uc.Create(ctx, dto.CreateWeekRequest{WeekID: "2026-W35"}))

	// Cantidad negativa en un conteo.
	err := uc.SaveInventory(ctx, "2026-W35", dto.SaveInventoryRequest{
		Entries: []dto.InventoryEntryDTO{
			{IngredientID: "ing-queso", Begin: decimal.NewFromInt(-1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Insumo inexistente.
	err = uc.SaveInventory(ctx, "2026-W35", dto.SaveInventoryRequest{
		Entries: []dto.InventoryEntryDTO{{IngredientID: "fantasma"}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Una semana finalizada no acepta más escrituras de borrador.
func TestEscriturasEnSemanaFinalizada_Conflicto(t *testing.T) {
	s := newFakeStore()
	s.addIngredient("ing-queso", "Queso", "3.0000")
	uc := newWeekUC(s)
	finalizeUC := week.NewFinalizeUseCase(fakeWeekTxRunner{s}, fakeWeekRepo{s}, fakeReportRepo{s})
	ctx := context.Background()

	require.NoError(t, uc.Create(ctx, dto.CreateWeekRequest{
		WeekID:        "2026-W35",
		IngredientIDs: []string{"ing-queso"},
	}))
	_, err := finalizeUC.Finalize(ctx, "2026-W35", "user-1")
	require.NoError(t, err)

	err = uc.SaveSales(ctx, "2026-W35", dto.SaveSalesRequest{
		Entries: []dto.SalesEntryDTO{{Day: "monday", Amount: decimal.NewFromInt(100)}},
	})
	assert.ErrorIs(t, err, domain.ErrWeekNotDraft,
		"las ventas de una semana finalizada deben rechazarse")

	err = uc.SaveInventory(ctx, "2026-W35", dto.SaveInventoryRequest{
		Entries: []dto.InventoryEntryDTO{{IngredientID: "ing-queso", Begin: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrWeekNotDraft,
		"el inventario de una semana finalizada debe rechazarse")
}

// staleDraftWeekRepo siempre reporta la semana como borrador: simula la carrera
// en que otra petición finaliza la semana entre la verificación de status y la
// escritura.
type staleDraftWeekRepo struct{ fakeWeekRepo }

func (r staleDraftWeekRepo) GetByID(id string) (*entity.Week, error) {
	wk, err := r.fakeWeekRepo.GetByID(id)
	if wk != nil {
		wk.Status = entity.WeekStatusDraft
	}
	return wk, err
}

// Aunque la verificación de status haya visto borrador, la escritura misma va
// condicionada al estado real: una finalización intercalada no deja datos de
// borrador en una semana cerrada.
func TestEscriturasConStatusObsoleto_Conflicto(t *testing.T) {
	s := newFakeStore()
	s.addIngredient("ing-queso", "Queso", "3.0000")
	setup := newWeekUC(s)
	finalizeUC := week.NewFinalizeUseCase(fakeWeekTxRunner{s}, fakeWeekRepo{s}, fakeReportRepo{s})
	ctx := context.Background()

	require.NoError(t, setup.Create(ctx, dto.CreateWeekRequest{
		WeekID:        "2026-W35",
		IngredientIDs: []string{"ing-queso"},
	}))
	_, err := finalizeUC.Finalize(ctx, "2026-W35", "user-1")
	require.NoError(t, err)

	// Caso de uso con lectura de status desactualizada.
	uc := week.NewUseCase(
		fakeWeekTxRunner{s},
		staleDraftWeekRepo{fakeWeekRepo{s}},
		fakeSalesRepo{s},
		fakeInvRepo{s},
		fakeIngredientRepo{s},
		fakeSnapRepo{s},
		fakeReportRepo{s},
	)

	err = uc.SaveSales(ctx, "2026-W35", dto.SaveSalesRequest{
		Entries: []dto.SalesEntryDTO{{Day: "monday", Amount: decimal.NewFromInt(100)}},
	})
	assert.ErrorIs(t, err, domain.ErrWeekNotDraft)

	err = uc.SaveInventory(ctx, "2026-W35", dto.SaveInventoryRequest{
		Entries: []dto.InventoryEntryDTO{{IngredientID: "ing-queso", Begin: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrWeekNotDraft)

	// La semana finalizada quedó intacta.
	resp, err := setup.Get(ctx, "2026-W35")
	require.NoError(t, err)
	for _, e := range resp.Sales {
		assert.True(t, e.Amount.IsZero(), "la venta del día %s no debe haberse escrito", e.Day)
	}
}
