package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/costeo-pro/internal/application/auth"
	"github.com/tu-usuario/costeo-pro/internal/application/catalog"
	"github.com/tu-usuario/costeo-pro/internal/application/menu"
	"github.com/tu-usuario/costeo-pro/internal/application/week"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC  *catalog.UseCase
	MenuUC     *menu.UseCase
	WeekUC     *week.UseCase
	FinalizeUC *week.FinalizeUseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ingredients (protegido): catálogo con versionado de precios
	ingredients := protected.Group("/ingredients")
	ingredientHandler := NewIngredientHandler(deps.CatalogUC)
	ingredients.Post("/", ingredientHandler.Create)
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Get("/:id", ingredientHandler.GetByID)
	ingredients.Put("/:id", ingredientHandler.Update)
	ingredients.Patch("/:id/active", ingredientHandler.SetActive)
	ingredients.Get("/:id/versions", ingredientHandler.ListVersions)

	// Menu items (protegido)
	menuItems := protected.Group("/menu-items")
	menuHandler := NewMenuHandler(deps.MenuUC)
	menuItems.Get("/", menuHandler.List)
	menuItems.Get("/:id", menuHandler.GetByID)
	menuItems.Put("/:id", menuHandler.Upsert)

	// Weeks (protegido): borrador mutable y finalización
	weeks := protected.Group("/weeks")
	weekHandler := NewWeekHandler(deps.WeekUC, deps.FinalizeUC)
	weeks.Post("/", weekHandler.Create)
	weeks.Get("/", weekHandler.List)
	weeks.Get("/:id", weekHandler.Get)
	weeks.Put("/:id/sales", weekHandler.SaveSales)
	weeks.Put("/:id/inventory", weekHandler.SaveInventory)
	weeks.Get("/:id/report", weekHandler.Report)
	// Finalizar es irreversible: solo admin y encargado.
	weeks.Post("/:id/finalize", RequireRole(auth.RoleAdmin, auth.RoleEncargado), weekHandler.Finalize)
}
