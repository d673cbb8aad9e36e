package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/runnersutah/pipetrack-api/internal/application/dto"
	"github.com/runnersutah/pipetrack-api/internal/application/ledger"
)

// InventoryHandler maneja el ledger: registrar, anular y compensar cambios.
type InventoryHandler struct {
	uc *ledger.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RecordChange godoc
// @Summary      Registrar cambio de inventario
// @Description  Valida la cantidad contra el tipo de conteo de la plantilla y
// @Description  rematerializa balances y estado del cliente en la misma transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordChangeRequest  true  "Cambio de inventario"
// @Success      201   {object}  dto.ChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/changes [post]
func (h *InventoryHandler) RecordChange(c *fiber.Ctx) error {
	var in dto.RecordChangeRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.RecordChange(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteChange godoc
// @Summary      Eliminar un registro del ledger
// @Description  Rematerializa los balances de la pareja afectada tras el borrado.
// @Tags         inventory
// @Security     Bearer
// @Param        id  path  string  true  "ID del registro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/changes/{id} [delete]
func (h *InventoryHandler) DeleteChange(c *fiber.Ctx) error {
	if err := h.uc.DeleteChange(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ZeroOut godoc
// @Summary      Poner a cero el stock de un producto
// @Description  Genera un registro compensatorio por cada rack con saldo no
// @Description  nulo. Idempotente: sin saldo no genera nada.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ZeroOutRequest  true  "Pareja cliente/producto y fecha"
// @Success      201   {array}  dto.ChangeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/zero-out [post]
func (h *InventoryHandler) ZeroOut(c *fiber.Ctx) error {
	var in dto.ZeroOutRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.ZeroOut(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListChanges godoc
// @Summary      Listar el ledger de un cliente
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        customer_id  query  string  true   "ID del cliente"
// @Param        from         query  string  false  "Fecha inicial (RFC 3339 o YYYY-MM-DD)"
// @Param        to           query  string  false  "Fecha final (RFC 3339 o YYYY-MM-DD)"
// @Param        limit        query  int     false  "Límite"  default(50)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ChangeListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/changes [get]
func (h *InventoryHandler) ListChanges(c *fiber.Ctx) error {
	customerID := c.Query("customer_id")
	if customerID == "" {
		customerID = GetCustomerID(c)
	}
	if customerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_id es requerido"})
	}
	if !CanAccessCustomer(c, customerID) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "ledger de otro cliente"})
	}
	from, ok := queryTime(c, "from")
	if !ok {
		return nil
	}
	to, ok := queryTime(c, "to")
	if !ok {
		return nil
	}
	out, err := h.uc.ListChanges(c.UserContext(), customerID, from, to, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// queryTime lee una fecha opcional de la query. Devuelve ok=false si ya
// respondió con un error 400.
func queryTime(c *fiber.Ctx, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: key + " debe ser RFC 3339 o YYYY-MM-DD"})
	return nil, false
}
