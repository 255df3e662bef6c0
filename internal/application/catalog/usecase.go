package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/costeo-pro/internal/application/dto"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	domcatalog "github.com/tu-usuario/costeo-pro/internal/domain/catalog"
	"github.com/tu-usuario/costeo-pro/internal/domain/costing"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

// UseCase catálogo de insumos + ledger de versiones de precio.
// Toda escritura que cambia el precio rota la versión: cierra la abierta y abre
// una nueva en la misma transacción, de modo que un lector nunca observe cero o
// dos versiones abiertas.
type UseCase struct {
	txRunner    TxRunner
	ingRepo     repository.IngredientRepository
	versionRepo repository.IngredientVersionRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, ingRepo repository.IngredientRepository, versionRepo repository.IngredientVersionRepository) *UseCase {
	return &UseCase{txRunner: txRunner, ingRepo: ingRepo, versionRepo: versionRepo}
}

// Create da de alta un insumo y abre su primera versión de precio, atómicamente.
// unitsPerCase debe ser > 0; el id no debe existir. El costo unitario es
// derivado: casePrice/unitsPerCase a 4 decimales, o el rollup de la receta en
// insumos compuestos (0 mientras la receta esté vacía).
func (uc *UseCase) Create(ctx context.Context, in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	if err := validateIngredientInput(in.Name, in.UnitsPerCase, in.IsBatch, in.YieldQty); err != nil {
		return nil, err
	}
	id := in.ID
	if id == "" {
		id = uuid.New().String()
	} else {
		existing, err := uc.ingRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	lines := toRecipeLines(in.RecipeLines)
	unitCost := costing.UnitCost(in.CasePrice, in.UnitsPerCase)

	now := time.Now()
	ing := &entity.Ingredient{
		ID:               id,
		Name:             in.Name,
		InventoryUnit:    in.InventoryUnit,
		RecipeUnit:       in.RecipeUnit,
		ConversionFactor: defaultFactor(in.ConversionFactor),
		UnitsPerCase:     in.UnitsPerCase,
		CasePrice:        in.CasePrice,
		UnitCost:         unitCost,
		Category:         in.Category,
		Active:           true,
		IsBatch:          in.IsBatch,
		RecipeLines:      lines,
		YieldQty:         in.YieldQty,
		YieldUnit:        in.YieldUnit,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	version := &entity.IngredientVersion{
		ID:            uuid.New().String(),
		IngredientID:  id,
		CasePrice:     in.CasePrice,
		UnitsPerCase:  in.UnitsPerCase,
		UnitCost:      unitCost,
		EffectiveFrom: now,
		EffectiveTo:   nil,
	}
	ing.CurrentVersionID = version.ID

	// Insumo + primera versión en la misma transacción. El rollup de insumos
	// compuestos lee los costos vigentes con el repo atado a la tx: un cambio
	// de precio concurrente invalida la lectura y fuerza el reintento en vez de
	// persistir un costo obsoleto.
	err := uc.txRunner.Run(ctx, func(ingRepo repository.IngredientRepository, versionRepo repository.IngredientVersionRepository) error {
		if in.IsBatch {
			rolled, err := uc.batchUnitCost(ingRepo, id, lines, in.YieldQty)
			if err != nil {
				return err
			}
			ing.UnitCost = rolled
			version.UnitCost = rolled
		}
		if err := ingRepo.Create(ing); err != nil {
			return err
		}
		if ing.IsBatch && len(ing.RecipeLines) > 0 {
			if err := ingRepo.ReplaceRecipeLines(ing.ID, ing.RecipeLines); err != nil {
				return err
			}
		}
		return versionRepo.Create(version)
	})
	if err != nil {
		return nil, err
	}
	return toIngredientResponse(ing), nil
}

// Update edita un insumo rotando su versión de precio. En una sola transacción:
// (a) cierra la versión abierta (effective_to = now), (b) crea la versión nueva
// abierta, (c) apunta unit_cost y current_version_id a la versión nueva.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	ing, err := uc.ingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	if err := validateIngredientInput(in.Name, in.UnitsPerCase, in.IsBatch, in.YieldQty); err != nil {
		return nil, err
	}

	lines := toRecipeLines(in.RecipeLines)
	unitCost := costing.UnitCost(in.CasePrice, in.UnitsPerCase)

	now := time.Now()
	ing.Name = in.Name
	ing.InventoryUnit = in.InventoryUnit
	ing.RecipeUnit = in.RecipeUnit
	ing.ConversionFactor = defaultFactor(in.ConversionFactor)
	ing.UnitsPerCase = in.UnitsPerCase
	ing.CasePrice = in.CasePrice
	ing.Category = in.Category
	ing.IsBatch = in.IsBatch
	ing.RecipeLines = lines
	ing.YieldQty = in.YieldQty
	ing.YieldUnit = in.YieldUnit
	ing.UpdatedAt = now

	newVersion := &entity.IngredientVersion{
		ID:            uuid.New().String(),
		IngredientID:  id,
		CasePrice:     in.CasePrice,
		UnitsPerCase:  in.UnitsPerCase,
		UnitCost:      unitCost,
		EffectiveFrom: now,
		EffectiveTo:   nil,
	}

	err = uc.txRunner.Run(ctx, func(ingRepo repository.IngredientRepository, versionRepo repository.IngredientVersionRepository) error {
		// Mismo criterio que en Create: el rollup lee dentro de la tx.
		if in.IsBatch {
			rolled, err := uc.batchUnitCost(ingRepo, id, lines, in.YieldQty)
			if err != nil {
				return err
			}
			unitCost = rolled
			newVersion.UnitCost = rolled
		}
		if err := versionRepo.CloseOpenVersion(id, now); err != nil {
			return err
		}
		if err := versionRepo.Create(newVersion); err != nil {
			return err
		}
		if err := ingRepo.Update(ing); err != nil {
			return err
		}
		if err := ingRepo.ReplaceRecipeLines(id, ing.RecipeLines); err != nil {
			return err
		}
		return ingRepo.UpdateCurrentCost(id, unitCost, newVersion.ID)
	})
	if err != nil {
		return nil, err
	}
	ing.UnitCost = unitCost
	ing.CurrentVersionID = newVersion.ID
	return toIngredientResponse(ing), nil
}

// SetActive activa o desactiva un insumo.
func (uc *UseCase) SetActive(ctx context.Context, id string, active bool) error {
	ing, err := uc.ingRepo.GetByID(id)
	if err != nil {
		return err
	}
	if ing == nil {
		return domain.ErrNotFound
	}
	return uc.ingRepo.SetActive(id, active)
}

// GetByID obtiene un insumo por id.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.IngredientResponse, error) {
	ing, err := uc.ingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	return toIngredientResponse(ing), nil
}

// List lista insumos con paginación.
func (uc *UseCase) List(ctx context.Context, includeInactive bool, limit, offset int) (*dto.IngredientListResponse, error) {
	list, err := uc.ingRepo.List(includeInactive, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.IngredientResponse, 0, len(list))
	for _, ing := range list {
		items = append(items, *toIngredientResponse(ing))
	}
	return &dto.IngredientListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ListVersions historial de versiones de precio en orden cronológico.
func (uc *UseCase) ListVersions(ctx context.Context, id string) ([]dto.IngredientVersionResponse, error) {
	ing, err := uc.ingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	versions, err := uc.versionRepo.ListByIngredient(id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredientVersionResponse, 0, len(versions))
	for _, v := range versions {
		out = append(out, dto.IngredientVersionResponse{
			ID:            v.ID,
			IngredientID:  v.IngredientID,
			CasePrice:     v.CasePrice,
			UnitsPerCase:  v.UnitsPerCase,
			UnitCost:      v.UnitCost,
			EffectiveFrom: v.EffectiveFrom,
			EffectiveTo:   v.EffectiveTo,
		})
	}
	return out, nil
}

// batchUnitCost valida las referencias de la receta, detecta ciclos en el grafo
// insumo->insumo (A incluye B, B incluye A sería divergente en el rollup) y
// devuelve el costo recursivo de la receta dividido por el rendimiento.
// Se llama siempre con el repo atado a la transacción en curso, para que las
// lecturas de costo participen del aislamiento serializable.
func (uc *UseCase) batchUnitCost(ingRepo repository.IngredientRepository, candidateID string, lines []entity.RecipeLine, yieldQty decimal.Decimal) (decimal.Decimal, error) {
	graph := domcatalog.NewGraph()
	// Carga el subgrafo alcanzable desde las líneas del candidato. El visited
	// corta la carga ante un ciclo ya persistido; DetectCycle lo reporta.
	visited := map[string]bool{candidateID: true}
	queue := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, domain.ErrInvalidInput
		}
		queue = append(queue, line.IngredientID)
	}
	for len(queue) > 0 {
		refID := queue[0]
		queue = queue[1:]
		if visited[refID] {
			continue
		}
		visited[refID] = true
		ref, err := ingRepo.GetByID(refID)
		if err != nil {
			return decimal.Zero, err
		}
		if ref == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		graph.AddNode(&domcatalog.Node{
			IngredientID: ref.ID,
			IsBatch:      ref.IsBatch,
			UnitCost:     ref.UnitCost,
			RecipeLines:  ref.RecipeLines,
			YieldQty:     ref.YieldQty,
		})
		for _, l := range ref.RecipeLines {
			queue = append(queue, l.IngredientID)
		}
	}
	// El candidato entra al final con las líneas nuevas: se evalúa el estado
	// que quedaría tras el commit.
	graph.AddNode(&domcatalog.Node{
		IngredientID: candidateID,
		IsBatch:      true,
		RecipeLines:  lines,
		YieldQty:     yieldQty,
	})
	if err := graph.DetectCycle(candidateID); err != nil {
		return decimal.Zero, err
	}
	return graph.RollupUnitCost(candidateID), nil
}

func validateIngredientInput(name string, unitsPerCase decimal.Decimal, isBatch bool, yieldQty decimal.Decimal) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	if unitsPerCase.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if isBatch && yieldQty.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

func defaultFactor(f decimal.Decimal) decimal.Decimal {
	if f.LessThanOrEqual(decimal.Zero) {
		return decimal.NewFromInt(1)
	}
	return f
}

func toRecipeLines(in []dto.RecipeLineDTO) []entity.RecipeLine {
	lines := make([]entity.RecipeLine, 0, len(in))
	for _, l := range in {
		lines = append(lines, entity.RecipeLine{IngredientID: l.IngredientID, Quantity: l.Quantity, Unit: l.Unit})
	}
	return lines
}

func toRecipeLineDTOs(in []entity.RecipeLine) []dto.RecipeLineDTO {
	out := make([]dto.RecipeLineDTO, 0, len(in))
	for _, l := range in {
		out = append(out, dto.RecipeLineDTO{IngredientID: l.IngredientID, Quantity: l.Quantity, Unit: l.Unit})
	}
	return out
}

func toIngredientResponse(ing *entity.Ingredient) *dto.IngredientResponse {
	if ing == nil {
		return nil
	}
	return &dto.IngredientResponse{
		ID:               ing.ID,
		Name:             ing.Name,
		InventoryUnit:    ing.InventoryUnit,
		RecipeUnit:       ing.RecipeUnit,
		ConversionFactor: ing.ConversionFactor,
		UnitsPerCase:     ing.UnitsPerCase,
		CasePrice:        ing.CasePrice,
		UnitCost:         ing.UnitCost,
		Category:         ing.Category,
		Active:           ing.Active,
		CurrentVersionID: ing.CurrentVersionID,
		IsBatch:          ing.IsBatch,
		RecipeLines:      toRecipeLineDTOs(ing.RecipeLines),
		YieldQty:         ing.YieldQty,
		YieldUnit:        ing.YieldUnit,
		CreatedAt:        ing.CreatedAt,
		UpdatedAt:        ing.UpdatedAt,
	}
}
