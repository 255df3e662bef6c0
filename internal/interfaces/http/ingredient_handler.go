package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/costeo-pro/internal/application/catalog"
	"github.com/tu-usuario/costeo-pro/internal/application/dto"
)

// IngredientHandler maneja las peticiones HTTP del catálogo de insumos (protegido).
type IngredientHandler struct {
	uc *catalog.UseCase
}

// NewIngredientHandler construye el handler.
func NewIngredientHandler(uc *catalog.UseCase) *IngredientHandler {
	return &IngredientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear insumo
// @Description  Da de alta un insumo y abre su primera versión de precio.
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIngredientRequest  true  "name, inventory_unit, units_per_case, case_price, category, campos batch opcionales"
// @Success      201  {object}  dto.IngredientResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ingredients [post]
func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update godoc
// @Summary      Actualizar insumo (rota versión de precio)
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del insumo"
// @Param        body  body  dto.UpdateIngredientRequest  true  "campos del insumo"
// @Success      200  {object}  dto.IngredientResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [put]
func (h *IngredientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SetActive activa o desactiva un insumo.
func (h *IngredientHandler) SetActive(c *fiber.Ctx) error {
	var in dto.SetActiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetActive(c.Context(), c.Params("id"), in.Active); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "estado actualizado"})
}

// List lista insumos con paginación.
func (h *IngredientHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	includeInactive := c.QueryBool("include_inactive")
	resp, err := h.uc.List(c.Context(), includeInactive, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetByID obtiene un insumo por id.
func (h *IngredientHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListVersions godoc
// @Summary      Historial de versiones de precio
// @Description  Versiones efectivo-datadas del insumo en orden cronológico; la vigente tiene effective_to null.
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del insumo"
// @Success      200  {array}   dto.IngredientVersionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/versions [get]
func (h *IngredientHandler) ListVersions(c *fiber.Ctx) error {
	resp, err := h.uc.ListVersions(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
