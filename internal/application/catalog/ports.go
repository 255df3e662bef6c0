package catalog

import (
	"context"

	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El runtime puede invocar fn más de una vez
// (reintentos optimistas): fn debe ser pura respecto a efectos externos hasta
// el commit. Garantiza la atomicidad de la rotación de versiones.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ingRepo repository.IngredientRepository,
		versionRepo repository.IngredientVersionRepository,
	) error) error
}
