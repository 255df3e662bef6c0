package menu

import (
	"context"

	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de carta atado a esa tx. Hace atómico el reemplazo del artículo
// y su set de líneas: o se confirma el set completo o queda el anterior.
type TxRunner interface {
	Run(ctx context.Context, fn func(menuRepo repository.MenuItemRepository) error) error
}
