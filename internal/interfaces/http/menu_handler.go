package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/costeo-pro/internal/application/dto"
	"github.com/tu-usuario/costeo-pro/internal/application/menu"
)

// MenuHandler maneja las peticiones HTTP de la carta (protegido).
type MenuHandler struct {
	uc *menu.UseCase
}

// NewMenuHandler construye el handler.
func NewMenuHandler(uc *menu.UseCase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

// Upsert godoc
// @Summary      Crear o reemplazar artículo de carta
// @Description  Reemplaza el artículo y su set completo de líneas de receta.
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.UpsertMenuItemRequest  true  "name, category, sale_price, recipe_lines"
// @Success      200  {object}  dto.MenuItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu-items/{id} [put]
func (h *MenuHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertMenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Upsert(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetByID obtiene un artículo de carta con sus líneas de receta.
func (h *MenuHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List lista artículos de carta con paginación.
func (h *MenuHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	resp, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
