package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/costeo-pro/internal/application/auth"
	"github.com/tu-usuario/costeo-pro/internal/application/catalog"
	"github.com/tu-usuario/costeo-pro/internal/application/menu"
	"github.com/tu-usuario/costeo-pro/internal/application/week"
	"github.com/tu-usuario/costeo-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/costeo-pro/internal/interfaces/http"
	"github.com/tu-usuario/costeo-pro/pkg/config"
	"github.com/tu-usuario/costeo-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (lecturas fuera de transacción).
	ingredientRepo := postgres.NewIngredientRepository(pool)
	versionRepo := postgres.NewIngredientVersionRepository(pool)
	menuRepo := postgres.NewMenuItemRepository(pool)
	weekRepo := postgres.NewWeekRepository(pool)
	salesRepo := postgres.NewWeekSalesRepository(pool)
	invRepo := postgres.NewWeekInventoryRepository(pool)
	snapRepo := postgres.NewCostSnapshotRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// Runner transaccional serializable con reintentos.
	txRunner := postgres.NewTxRunner(pool, cfg.Tx.MaxRetries)
	weekTxRunner := postgres.NewWeekTxRunner(txRunner)
	menuTxRunner := postgres.NewMenuTxRunner(txRunner)

	catalogUC := catalog.NewUseCase(txRunner, ingredientRepo, versionRepo)
	menuUC := menu.NewUseCase(menuTxRunner, menuRepo, ingredientRepo)
	weekUC := week.NewUseCase(weekTxRunner, weekRepo, salesRepo, invRepo, ingredientRepo, snapRepo, reportRepo)
	finalizeUC := week.NewFinalizeUseCase(weekTxRunner, weekRepo, reportRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El spec lo genera
	// `swag init -g cmd/api/main.go` y no va versionado; sin el archivo el
	// middleware no se monta.
	const swaggerSpec = "./docs/swagger.json"
	if _, err := os.Stat(swaggerSpec); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpec,
			Path:     "docs",
			Title:    "Costeo Pro API",
		}))
	} else {
		log.Warn().Str("file", swaggerSpec).Msg("spec de swagger ausente, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:  catalogUC,
		MenuUC:     menuUC,
		WeekUC:     weekUC,
		FinalizeUC: finalizeUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
