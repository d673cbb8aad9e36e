package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/runnersutah/pipetrack-api/internal/application/dto"
	"github.com/runnersutah/pipetrack-api/internal/application/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler maneja balances, historial y descargas xlsx.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Balances godoc
// @Summary      Balances actuales de un cliente
// @Description  Una fila por (producto, rack) con saldo materializado y el
// @Description  estado derivado del cliente.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        customer_id  path   string  true   "ID del cliente"
// @Param        sort         query  string  false  "product | rack | last_updated | size | joints"  default(product)
// @Param        desc         query  bool    false  "Orden descendente"
// @Success      200  {object}  dto.BalancesResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/customers/{customer_id}/balances [get]
func (h *ReportHandler) Balances(c *fiber.Ctx) error {
	customerID := c.Params("customer_id")
	if !CanAccessCustomer(c, customerID) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "reporte de otro cliente"})
	}
	q, ok := balancesQuery(c)
	if !ok {
		return nil
	}
	out, err := h.uc.CurrentBalances(c.UserContext(), customerID, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de un producto con acumulados
// @Description  Acumulados calculados en orden cronológico; sort=joints_in_out
// @Description  agrupa entradas y salidas sin tocar los acumulados.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        customer_id  path   string  true   "ID del cliente"
// @Param        product_id   path   string  true   "ID del producto"
// @Param        from         query  string  false  "Fecha inicial"
// @Param        to           query  string  false  "Fecha final"
// @Param        sort         query  string  false  "date | joints_in_out"  default(date)
// @Param        desc         query  bool    false  "Orden descendente"
// @Success      200  {object}  dto.HistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/customers/{customer_id}/products/{product_id}/history [get]
func (h *ReportHandler) History(c *fiber.Ctx) error {
	customerID := c.Params("customer_id")
	if !CanAccessCustomer(c, customerID) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "reporte de otro cliente"})
	}
	q, ok := historyQuery(c)
	if !ok {
		return nil
	}
	out, err := h.uc.History(c.UserContext(), customerID, c.Params("product_id"), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportBalances godoc
// @Summary      Descargar balances en xlsx
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        customer_id  path   string  true   "ID del cliente"
// @Param        sort         query  string  false  "product | rack | last_updated | size | joints"  default(product)
// @Param        desc         query  bool    false  "Orden descendente"
// @Success      200  {file}  binary
// @Router       /api/reports/customers/{customer_id}/balances.xlsx [get]
func (h *ReportHandler) ExportBalances(c *fiber.Ctx) error {
	customerID := c.Params("customer_id")
	if !CanAccessCustomer(c, customerID) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "reporte de otro cliente"})
	}
	q, ok := balancesQuery(c)
	if !ok {
		return nil
	}
	data, err := h.uc.ExportBalances(c.UserContext(), customerID, q)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="balances.xlsx"`)
	return c.Send(data)
}

// ExportHistory godoc
// @Summary      Descargar historial en xlsx
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        customer_id  path   string  true   "ID del cliente"
// @Param        product_id   path   string  true   "ID del producto"
// @Param        from         query  string  false  "Fecha inicial"
// @Param        to           query  string  false  "Fecha final"
// @Param        sort         query  string  false  "date | joints_in_out"  default(date)
// @Param        desc         query  bool    false  "Orden descendente"
// @Success      200  {file}  binary
// @Router       /api/reports/customers/{customer_id}/products/{product_id}/history.xlsx [get]
func (h *ReportHandler) ExportHistory(c *fiber.Ctx) error {
	customerID := c.Params("customer_id")
	if !CanAccessCustomer(c, customerID) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "reporte de otro cliente"})
	}
	q, ok := historyQuery(c)
	if !ok {
		return nil
	}
	data, err := h.uc.ExportHistory(c.UserContext(), customerID, c.Params("product_id"), q)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="history.xlsx"`)
	return c.Send(data)
}

// ExportCustomers godoc
// @Summary      Descargar directorio de clientes en xlsx
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/reports/customers.xlsx [get]
func (h *ReportHandler) ExportCustomers(c *fiber.Ctx) error {
	data, err := h.uc.ExportCustomers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="customers.xlsx"`)
	return c.Send(data)
}

// ExportProducts godoc
// @Summary      Descargar catálogo de un cliente en xlsx
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        customer_id  path  string  true  "ID del cliente"
// @Success      200  {file}  binary
// @Router       /api/reports/customers/{customer_id}/products.xlsx [get]
func (h *ReportHandler) ExportProducts(c *fiber.Ctx) error {
	customerID := c.Params("customer_id")
	if !CanAccessCustomer(c, customerID) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "reporte de otro cliente"})
	}
	data, err := h.uc.ExportProducts(c.UserContext(), customerID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
	return c.Send(data)
}

// ExportChanges godoc
// @Summary      Descargar el ledger de un cliente en xlsx
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        customer_id  path   string  true   "ID del cliente"
// @Param        from         query  string  false  "Fecha inicial"
// @Param        to           query  string  false  "Fecha final"
// @Success      200  {file}  binary
// @Router       /api/reports/customers/{customer_id}/ledger.xlsx [get]
func (h *ReportHandler) ExportChanges(c *fiber.Ctx) error {
	customerID := c.Params("customer_id")
	if !CanAccessCustomer(c, customerID) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "reporte de otro cliente"})
	}
	from, ok := queryTime(c, "from")
	if !ok {
		return nil
	}
	to, ok := queryTime(c, "to")
	if !ok {
		return nil
	}
	data, err := h.uc.ExportChanges(c.UserContext(), customerID, from, to)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ledger.xlsx"`)
	return c.Send(data)
}

// balancesQuery arma los parámetros de balances desde la query. Devuelve
// ok=false si ya respondió con un error 400.
func balancesQuery(c *fiber.Ctx) (dto.BalancesQuery, bool) {
	q := dto.BalancesQuery{
		Sort: c.Query("sort", report.SortProduct),
		Desc: c.QueryBool("desc", false),
	}
	if err := validate.Struct(&q); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sort debe ser product, rack, last_updated, size o joints"})
		return q, false
	}
	return q, true
}

// historyQuery arma los parámetros del historial desde la query. Devuelve
// ok=false si ya respondió con un error 400.
func historyQuery(c *fiber.Ctx) (dto.HistoryQuery, bool) {
	var q dto.HistoryQuery
	var ok bool
	if q.From, ok = queryTime(c, "from"); !ok {
		return q, false
	}
	if q.To, ok = queryTime(c, "to"); !ok {
		return q, false
	}
	q.Sort = c.Query("sort", report.SortDate)
	q.Desc = c.QueryBool("desc", false)
	if err := validate.Struct(&q); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sort debe ser date o joints_in_out"})
		return q, false
	}
	return q, true
}
