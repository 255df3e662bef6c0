// Package menu compone la carta: asocia artículos vendibles con sus líneas de
// receta. Aquí no se costea nada: el motor de finalización costea consumo de
// inventario crudo, no composición de recetas.
package menu

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/costeo-pro/internal/application/dto"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

// UseCase casos de uso de la carta.
type UseCase struct {
	txRunner TxRunner
	menuRepo repository.MenuItemRepository
	ingRepo  repository.IngredientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, menuRepo repository.MenuItemRepository, ingRepo repository.IngredientRepository) *UseCase {
	return &UseCase{txRunner: txRunner, menuRepo: menuRepo, ingRepo: ingRepo}
}

// Upsert crea o reemplaza el artículo y su set completo de líneas de receta en
// una escritura batcheada: las líneas presentes se crean/actualizan y las que
// ya no están en el set nuevo se eliminan.
func (uc *UseCase) Upsert(ctx context.Context, id string, in dto.UpsertMenuItemRequest) (*dto.MenuItemResponse, error) {
	if id == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.RecipeLines {
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		ref, err := uc.ingRepo.GetByID(line.IngredientID)
		if err != nil {
			return nil, err
		}
		if ref == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	existing, err := uc.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	item := &entity.MenuItem{
		ID:        id,
		Name:      in.Name,
		Category:  in.Category,
		SalePrice: in.SalePrice,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing != nil {
		item.CreatedAt = existing.CreatedAt
	}
	item.RecipeLines = make([]entity.MenuRecipeLine, 0, len(in.RecipeLines))
	for _, l := range in.RecipeLines {
		item.RecipeLines = append(item.RecipeLines, entity.MenuRecipeLine{
			IngredientID: l.IngredientID,
			Quantity:     l.Quantity,
			Unit:         l.Unit,
		})
	}
	// Artículo + set de líneas en la misma transacción: un fallo a mitad del
	// reemplazo no deja la receta vieja borrada y la nueva a medias.
	err = uc.txRunner.Run(ctx, func(menuRepo repository.MenuItemRepository) error {
		if err := menuRepo.Upsert(item); err != nil {
			return err
		}
		return menuRepo.ReplaceRecipeLines(id, item.RecipeLines)
	})
	if err != nil {
		return nil, err
	}
	return toMenuItemResponse(item), nil
}

// GetByID obtiene un artículo de carta con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.MenuItemResponse, error) {
	item, err := uc.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toMenuItemResponse(item), nil
}

// List lista artículos de carta con paginación.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]dto.MenuItemResponse, error) {
	list, err := uc.menuRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MenuItemResponse, 0, len(list))
	for _, item := range list {
		out = append(out, *toMenuItemResponse(item))
	}
	return out, nil
}

func toMenuItemResponse(item *entity.MenuItem) *dto.MenuItemResponse {
	lines := make([]dto.MenuRecipeLineDTO, 0, len(item.RecipeLines))
	for _, l := range item.RecipeLines {
		lines = append(lines, dto.MenuRecipeLineDTO{IngredientID: l.IngredientID, Quantity: l.Quantity, Unit: l.Unit})
	}
	return &dto.MenuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Category:    item.Category,
		SalePrice:   item.SalePrice,
		Active:      item.Active,
		RecipeLines: lines,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
