package repository

import "github.com/tu-usuario/costeo-pro/internal/domain/entity"

// MenuItemRepository puerto de persistencia para MenuItem y sus líneas de receta.
type MenuItemRepository interface {
	Upsert(item *entity.MenuItem) error
	// ReplaceRecipeLines reemplaza el conjunto completo de líneas del artículo:
	// crea/actualiza las presentes y elimina las que ya no están.
	ReplaceRecipeLines(menuItemID string, lines []entity.MenuRecipeLine) error
	GetByID(id string) (*entity.MenuItem, error)
	List(limit, offset int) ([]*entity.MenuItem, error)
}
