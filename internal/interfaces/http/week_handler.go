package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/costeo-pro/internal/application/dto"
	"github.com/tu-usuario/costeo-pro/internal/application/week"
)

// WeekHandler maneja el ciclo semanal: alta, borrador y finalización (protegido).
type WeekHandler struct {
	uc         *week.UseCase
	finalizeUC *week.FinalizeUseCase
}

// NewWeekHandler construye el handler.
func NewWeekHandler(uc *week.UseCase, finalizeUC *week.FinalizeUseCase) *WeekHandler {
	return &WeekHandler{uc: uc, finalizeUC: finalizeUC}
}

// Create godoc
// @Summary      Crear semana en borrador
// @Description  Siembra las ventas de los siete días en cero y un conteo de inventario en cero por cada insumo indicado.
// @Tags         weeks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWeekRequest  true  "week_id (YYYY-Www) e ingredient_ids opcionales"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/weeks [post]
func (h *WeekHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWeekRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Create(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": in.WeekID})
}

// List lista semanas con paginación (solo cabeceras de estado).
func (h *WeekHandler) List(c *fiber.Ctx) error {
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

// Get devuelve la semana con ventas, inventario y reporte (si está finalizada).
func (h *WeekHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SaveSales godoc
// @Summary      Guardar ventas diarias
// @Description  Merge-write: solo se tocan los días presentes en la petición. Semana finalizada devuelve 409.
// @Tags         weeks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la semana"
// @Param        body  body  dto.SaveSalesRequest  true  "entries por día"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/weeks/{id}/sales [put]
func (h *WeekHandler) SaveSales(c *fiber.Ctx) error {
	var in dto.SaveSalesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SaveSales(c.Context(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ventas guardadas"})
}

// SaveInventory godoc
// @Summary      Guardar conteos de inventario
// @Description  Merge-write: solo se tocan los insumos presentes en la petición. Semana finalizada devuelve 409.
// @Tags         weeks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la semana"
// @Param        body  body  dto.SaveInventoryRequest  true  "entries por insumo (begin, received, end)"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/weeks/{id}/inventory [put]
func (h *WeekHandler) SaveInventory(c *fiber.Ctx) error {
	var in dto.SaveInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SaveInventory(c.Context(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "inventario guardado"})
}

// Finalize godoc
// @Summary      Finalizar semana
// @Description  Transición irreversible draft -> finalized: computa el reporte, captura el snapshot de costos y cierra la semana en una sola transacción. El usuario del token queda registrado como finalized_by.
// @Tags         weeks
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la semana"
// @Success      200  {object}  entity.ReportSummary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/weeks/{id}/finalize [post]
func (h *WeekHandler) Finalize(c *fiber.Ctx) error {
	summary, err := h.finalizeUC.Finalize(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// Report devuelve el reporte persistido de una semana finalizada.
func (h *WeekHandler) Report(c *fiber.Ctx) error {
	summary, err := h.finalizeUC.Report(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
