package week

import (
	"context"

	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El runtime puede invocar fn más de una vez
// (reintentos optimistas): fn debe ser pura respecto a efectos externos hasta
// el commit. Es la pieza que hace atómica la finalización: snapshot + reporte +
// transición de estado se confirman juntos o no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		weekRepo repository.WeekRepository,
		salesRepo repository.WeekSalesRepository,
		invRepo repository.WeekInventoryRepository,
		ingRepo repository.IngredientRepository,
		snapRepo repository.CostSnapshotRepository,
		reportRepo repository.ReportRepository,
	) error) error
}
