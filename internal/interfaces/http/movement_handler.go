package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

var validate = validator.New()

// MovementHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type MovementHandler struct {
	processor *inventory.MovementProcessor
}

// NewMovementHandler construye el handler.
func NewMovementHandler(processor *inventory.MovementProcessor) *MovementHandler {
	return &MovementHandler{processor: processor}
}

// Create godoc
// @Summary      Registrar movimientos de inventario
// @Description  Registra una o varias líneas (RECEIPT, ISSUE, RETURN) en una
//               sola petición, con pre-asignaciones opcionales a técnicos.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "type, lines, inventory_id u hq_pool, origin, assignments"
// @Success      201   {object}  dto.CreateMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	movs, report, err := h.processor.CreateMovements(c.Context(), toCreateInput(in, userID))
	if err != nil {
		return movementError(c, err)
	}

	resp := dto.CreateMovementResponse{Movements: dto.FromMovements(movs)}
	if len(movs) > 0 {
		resp.GroupCode = movs[0].GroupCode
	}
	if report != nil {
		for _, res := range report.Results {
			resp.Assignments = append(resp.Assignments, dto.AssignmentResultResponse{
				TechnicianID: res.TechnicianID, OK: res.OK, Reason: res.Reason,
			})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update godoc
// @Summary      Editar un movimiento
// @Description  Edición parcial; si el movimiento está COMPLETED el efecto de
//               stock se revierte y se re-aplica con los valores nuevos.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "campos a modificar"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.processor.UpdateMovement(c.Context(), c.Params("id"), inventory.UpdateMovementInput{
		Observations:   in.Observations,
		InstallationID: in.InstallationID,
		InventoryID:    in.InventoryID,
		UnitPrice:      in.UnitPrice,
		Quantity:       in.Quantity,
		MaterialID:     in.MaterialID,
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(dto.FromMovement(mov))
}

// SetState godoc
// @Summary      Cambiar el estado de un movimiento
// @Description  Entrar a COMPLETED aplica el efecto de stock; salir de
//               COMPLETED lo revierte. Las demás transiciones no tocan stock.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.SetStateRequest  true  "state"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/state [patch]
func (h *MovementHandler) SetState(c *fiber.Ctx) error {
	var in dto.SetStateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	mov, err := h.processor.SetState(c.Context(), c.Params("id"), in.State)
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(dto.FromMovement(mov))
}

// Delete godoc
// @Summary      Eliminar un movimiento
// @Description  Revierte el efecto de stock si estaba COMPLETED, deja registro
//               de auditoría con el snapshot previo y borra la fila.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.processor.RemoveMovement(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return movementError(c, err)
	}
	return c.JSON(fiber.Map{"message": "movimiento eliminado"})
}

// List godoc
// @Summary      Listar movimientos
// @Description  Filtros combinables por material, bodega, sede y código de
//               agrupación. El filtro por técnico devuelve el material que el
//               técnico carga actualmente, sintetizado desde su tier.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        material_id    query  string  false  "Filtrar por variante"
// @Param        warehouse_id   query  string  false  "Filtrar por bodega"
// @Param        site_id        query  string  false  "Filtrar por sede"
// @Param        group_code     query  string  false  "Filtrar por código de agrupación"
// @Param        technician_id  query  string  false  "Listado sintetizado del técnico"
// @Param        limit          query  int     false  "Límite (por defecto 100)"
// @Param        offset         query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	movs, err := h.processor.ListMovements(c.Context(), inventory.ListFilter{
		MaterialID:   c.Query("material_id"),
		WarehouseID:  c.Query("warehouse_id"),
		SiteID:       c.Query("site_id"),
		GroupCode:    c.Query("group_code"),
		TechnicianID: c.Query("technician_id"),
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movs), "movements": dto.FromMovements(movs)})
}

// GetByID godoc
// @Summary      Obtener un movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	mov, err := h.processor.GetMovement(c.Context(), c.Params("id"))
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(dto.FromMovement(mov))
}

func toCreateInput(in dto.CreateMovementRequest, userID string) inventory.CreateMovementInput {
	input := inventory.CreateMovementInput{
		Type:        in.Type,
		State:       in.State,
		InventoryID: in.InventoryID,
		HQPool:      in.HQPool,
		GroupCode:   in.GroupCode,
		ActorID:     userID,
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, inventory.MovementLine{
			MaterialID: l.MaterialID,
			Code:       l.Code,
			SupplierID: l.SupplierID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
		})
	}
	if in.Origin != nil {
		input.Origin = &inventory.OriginDescriptor{Kind: in.Origin.Kind, TechnicianID: in.Origin.TechnicianID}
	}
	for _, a := range in.Assignments {
		assignment := inventory.TechnicianAssignment{TechnicianID: a.TechnicianID}
		for _, item := range a.Items {
			assignment.Items = append(assignment.Items, inventory.AssignmentItem{
				MaterialID: item.MaterialID, Quantity: item.Quantity,
			})
		}
		input.Assignments = append(input.Assignments, assignment)
	}
	return input
}

// movementError mapea errores de dominio a códigos HTTP. Los usecases envuelven
// con contexto, así que la comparación es errors.Is, no igualdad.
func movementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrNoStockAvailable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_STOCK_AVAILABLE", Message: "ninguna variante tiene stock"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "registro duplicado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
