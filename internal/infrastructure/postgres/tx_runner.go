package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/costeo-pro/internal/application/catalog"
	"github.com/tu-usuario/costeo-pro/internal/application/menu"
	"github.com/tu-usuario/costeo-pro/internal/application/week"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

// Ensure: TxRunner cubre el puerto de catálogo; los de semana y carta los
// cubren los adaptadores de NewWeekTxRunner y NewMenuTxRunner.
var _ catalog.TxRunner = (*TxRunner)(nil)
var _ week.TxRunner = (weekTxRunner{})
var _ menu.TxRunner = (menuTxRunner{})

// TxRunner ejecuta callbacks dentro de una transacción SERIALIZABLE con
// concurrencia optimista: si Postgres aborta el commit por un conflicto de
// serialización (otro escritor invalidó una lectura), el callback completo se
// reintenta desde cero con backoff. Por eso los callbacks deben ser puros
// respecto a efectos externos hasta el commit.
type TxRunner struct {
	pool       *pgxpool.Pool
	maxRetries int
}

// NewTxRunner construye el runner. maxRetries <= 0 usa 5.
func NewTxRunner(pool *pgxpool.Pool, maxRetries int) *TxRunner {
	if maxRetries <= 0 {
		maxRetries = 5
	}
	return &TxRunner{pool: pool, maxRetries: maxRetries}
}

// Run implementa catalog.TxRunner: rotación de versiones del ledger.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ingRepo repository.IngredientRepository,
	versionRepo repository.IngredientVersionRepository,
) error) error {
	return r.retryable(ctx, func(tx pgx.Tx) error {
		return fn(NewIngredientRepository(tx), NewIngredientVersionRepository(tx))
	})
}

// runWeek transacción del ciclo semanal: siembra de semanas y finalización.
func (r *TxRunner) runWeek(ctx context.Context, fn func(
	weekRepo repository.WeekRepository,
	salesRepo repository.WeekSalesRepository,
	invRepo repository.WeekInventoryRepository,
	ingRepo repository.IngredientRepository,
	snapRepo repository.CostSnapshotRepository,
	reportRepo repository.ReportRepository,
) error) error {
	return r.retryable(ctx, func(tx pgx.Tx) error {
		return fn(
			NewWeekRepository(tx),
			NewWeekSalesRepository(tx),
			NewWeekInventoryRepository(tx),
			NewIngredientRepository(tx),
			NewCostSnapshotRepository(tx),
			NewReportRepository(tx),
		)
	})
}

// retryable abre la transacción serializable, ejecuta body y confirma.
// Reintenta el ciclo completo ante 40001/40P01 hasta maxRetries; agotados los
// intentos devuelve domain.ErrTxRetryExhausted (fallo transitorio, reintentable
// por el caller). Cualquier otro error corta de inmediato y hace rollback.
func (r *TxRunner) retryable(ctx context.Context, body func(tx pgx.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 10 * time.Millisecond):
			}
		}
		err := r.once(ctx, body)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w: %v", domain.ErrTxRetryExhausted, lastErr)
}

func (r *TxRunner) once(ctx context.Context, body func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := body(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// weekTxRunner adaptador que expone runWeek como week.TxRunner.Run.
type weekTxRunner struct{ r *TxRunner }

// NewWeekTxRunner devuelve el runner transaccional del ciclo semanal.
func NewWeekTxRunner(r *TxRunner) week.TxRunner {
	return weekTxRunner{r: r}
}

func (w weekTxRunner) Run(ctx context.Context, fn func(
	weekRepo repository.WeekRepository,
	salesRepo repository.WeekSalesRepository,
	invRepo repository.WeekInventoryRepository,
	ingRepo repository.IngredientRepository,
	snapRepo repository.CostSnapshotRepository,
	reportRepo repository.ReportRepository,
) error) error {
	return w.r.runWeek(ctx, fn)
}

// menuTxRunner adaptador que expone la transacción de carta como menu.TxRunner.
// El upsert de artículo y el reemplazo de líneas comparten tx: si un insert de
// línea falla, el rollback conserva el set anterior completo.
type menuTxRunner struct{ r *TxRunner }

// NewMenuTxRunner devuelve el runner transaccional de la carta.
func NewMenuTxRunner(r *TxRunner) menu.TxRunner {
	return menuTxRunner{r: r}
}

func (m menuTxRunner) Run(ctx context.Context, fn func(
	menuRepo repository.MenuItemRepository,
) error) error {
	return m.r.retryable(ctx, func(tx pgx.Tx) error {
		return fn(NewMenuItemRepository(tx))
	})
}
