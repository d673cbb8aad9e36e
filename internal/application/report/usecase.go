package report

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/runnersutah/pipetrack-api/internal/application/dto"
	"github.com/runnersutah/pipetrack-api/internal/domain"
	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
	"github.com/runnersutah/pipetrack-api/internal/domain/inventory"
	"github.com/runnersutah/pipetrack-api/internal/domain/repository"
	"github.com/runnersutah/pipetrack-api/pkg/logger"
)

// Criterios de ordenamiento del historial.
const (
	SortDate        = "date"
	SortJointsInOut = "joints_in_out"
)

// Criterios de ordenamiento de balances.
const (
	SortProduct     = "product"
	SortRack        = "rack"
	SortLastUpdated = "last_updated"
	SortSize        = "size"
	SortJoints      = "joints"
)

// UseCase arma los reportes de consulta: balances actuales por cliente e
// historial por producto con totales acumulados, en JSON o xlsx. Solo lee;
// nunca escribe en el ledger ni en los balances.
type UseCase struct {
	balanceRepo  repository.InventoryBalanceRepository
	changeRepo   repository.InventoryChangeRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	templateRepo repository.ProductTemplateRepository
	locationRepo repository.StorageLocationRepository
	workbook     WorkbookWriter
	log          *logger.Logger
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(
	balanceRepo repository.InventoryBalanceRepository,
	changeRepo repository.InventoryChangeRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	templateRepo repository.ProductTemplateRepository,
	locationRepo repository.StorageLocationRepository,
	workbook WorkbookWriter,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		balanceRepo:  balanceRepo,
		changeRepo:   changeRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		templateRepo: templateRepo,
		locationRepo: locationRepo,
		workbook:     workbook,
		log:          log,
	}
}

// CurrentBalances devuelve los balances materializados de un cliente con la
// etiqueta del producto y el nombre del rack resueltos, más el estado
// derivado. Una fila cuyo producto o rack ya no existe se reporta en el log
// y se omite; el reporte nunca aborta por inconsistencia referencial.
func (uc *UseCase) CurrentBalances(ctx context.Context, customerID string, q dto.BalancesQuery) (*dto.BalancesResponse, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	balances, err := uc.balanceRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.BalanceRow, 0, len(balances))
	sizeMM := make(map[string]int64, len(balances))
	for _, b := range balances {
		label, mm, ok := uc.resolveProduct(b.ProductID)
		if !ok {
			uc.log.Warn().
				Str("customer_id", b.CustomerID).
				Str("product_id", b.ProductID).
				Msg("balance con producto inexistente, fila omitida")
			continue
		}
		locationName := ""
		if loc, err := uc.locationRepo.GetByID(b.LocationID); err != nil {
			return nil, err
		} else if loc == nil {
			uc.log.Warn().
				Str("customer_id", b.CustomerID).
				Str("location_id", b.LocationID).
				Msg("balance con rack inexistente, fila omitida")
			continue
		} else {
			locationName = loc.Name
		}
		sizeMM[b.ProductID] = mm
		rows = append(rows, dto.BalanceRow{
			CustomerID:   b.CustomerID,
			ProductID:    b.ProductID,
			ProductLabel: label,
			LocationID:   b.LocationID,
			LocationName: locationName,
			Joints:       b.Joints,
			Footage:      b.Footage,
			LastUpdated:  b.LastUpdated,
		})
	}
	if err := sortBalanceRows(rows, sizeMM, q); err != nil {
		return nil, err
	}

	return &dto.BalancesResponse{
		CustomerID: customerID,
		Status:     customer.Status,
		Rows:       rows,
	}, nil
}

// History devuelve el historial de una pareja (cliente, producto) con los
// totales acumulados de joints y footage. Los acumulados se calculan siempre
// en orden de fecha; el criterio de ordenamiento solo afecta la presentación.
func (uc *UseCase) History(ctx context.Context, customerID, productID string, q dto.HistoryQuery) (*dto.HistoryResponse, error) {
	label, ok := uc.resolveLabel(productID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	changes, err := uc.changeRepo.ListByKey(customerID, productID)
	if err != nil {
		return nil, err
	}
	changes = filterByDate(changes, q.From, q.To)

	totals := inventory.AttachRunningTotals(changes)
	runningByID := make(map[string]inventory.RunningRow, len(totals))
	ordered := make([]*entity.InventoryChange, len(totals))
	for i, row := range totals {
		runningByID[row.Change.ID] = row
		ordered[i] = row.Change
	}

	switch q.Sort {
	case SortJointsInOut:
		inventory.SortJointsInOut(ordered, q.Desc)
	case SortDate, "":
		if q.Desc {
			for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	rows := make([]dto.HistoryRow, 0, len(ordered))
	for _, c := range ordered {
		running := runningByID[c.ID]
		rows = append(rows, dto.HistoryRow{
			ChangeResponse: toChangeResponse(c),
			RunningJoints:  running.RunningJoints,
			RunningFootage: running.RunningFootage,
		})
	}

	totalJoints, totalFootage := inventory.SumChanges(changes)
	return &dto.HistoryResponse{
		CustomerID:   customerID,
		ProductID:    productID,
		ProductLabel: label,
		Rows:         rows,
		TotalJoints:  totalJoints,
		TotalFootage: totalFootage,
	}, nil
}

// sortBalanceRows aplica el criterio de presentación. El desempate es siempre
// la etiqueta del producto y luego el rack, para que el reporte sea estable.
func sortBalanceRows(rows []dto.BalanceRow, sizeMM map[string]int64, q dto.BalancesQuery) error {
	var less func(a, b dto.BalanceRow) bool
	byLabel := func(a, b dto.BalanceRow) bool {
		if a.ProductLabel != b.ProductLabel {
			return a.ProductLabel < b.ProductLabel
		}
		return a.LocationName < b.LocationName
	}
	switch q.Sort {
	case SortProduct, "":
		less = byLabel
	case SortRack:
		less = func(a, b dto.BalanceRow) bool {
			if a.LocationName != b.LocationName {
				return a.LocationName < b.LocationName
			}
			return a.ProductLabel < b.ProductLabel
		}
	case SortLastUpdated:
		less = func(a, b dto.BalanceRow) bool {
			if !a.LastUpdated.Equal(b.LastUpdated) {
				return a.LastUpdated.Before(b.LastUpdated)
			}
			return byLabel(a, b)
		}
	case SortSize:
		less = func(a, b dto.BalanceRow) bool {
			if sizeMM[a.ProductID] != sizeMM[b.ProductID] {
				return sizeMM[a.ProductID] < sizeMM[b.ProductID]
			}
			return byLabel(a, b)
		}
	case SortJoints:
		less = func(a, b dto.BalanceRow) bool {
			if a.Joints != b.Joints {
				return a.Joints < b.Joints
			}
			return byLabel(a, b)
		}
	default:
		return domain.ErrInvalidInput
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if q.Desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
	return nil
}

// ExportBalances genera el xlsx de balances actuales de un cliente.
func (uc *UseCase) ExportBalances(ctx context.Context, customerID string, q dto.BalancesQuery) ([]byte, error) {
	report, err := uc.CurrentBalances(ctx, customerID, q)
	if err != nil {
		return nil, err
	}
	headers := []string{"Product", "Rack", "Joints", "Footage", "Last Updated"}
	rows := make([][]any, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, []any{
			r.ProductLabel, r.LocationName, r.Joints,
			r.Footage.InexactFloat64(), r.LastUpdated.Format("2006-01-02"),
		})
	}
	return uc.workbook.Write("Balances", headers, rows)
}

// ExportHistory genera el xlsx del historial por producto con acumulados.
func (uc *UseCase) ExportHistory(ctx context.Context, customerID, productID string, q dto.HistoryQuery) ([]byte, error) {
	report, err := uc.History(ctx, customerID, productID, q)
	if err != nil {
		return nil, err
	}
	headers := []string{
		"Date", "RR", "PO", "AFE", "Carrier", "Received/Transferred",
		"Manufacturer", "Joints", "Footage", "Running Joints", "Running Footage",
	}
	rows := make([][]any, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, []any{
			r.Date.Format("2006-01-02"), r.RR, r.PO, r.AFE, r.Carrier,
			r.ReceivedTransferred, r.Manufacturer, r.Joints,
			r.Footage.InexactFloat64(),
			r.RunningJoints, r.RunningFootage.InexactFloat64(),
		})
	}
	return uc.workbook.Write("History", headers, rows)
}

// ExportCustomers genera el xlsx del directorio de clientes con su estado.
func (uc *UseCase) ExportCustomers(ctx context.Context) ([]byte, error) {
	headers := []string{"Customer", "Email", "Phone", "Status"}
	var rows [][]any
	for offset := 0; ; offset += exportPageSize {
		customers, err := uc.customerRepo.List(exportPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, c := range customers {
			rows = append(rows, []any{c.DisplayName, c.Email, c.Phone, c.Status})
		}
		if len(customers) < exportPageSize {
			break
		}
	}
	return uc.workbook.Write("Customers", headers, rows)
}

// ExportProducts genera el xlsx del catálogo de un cliente, en el mismo orden
// por tamaño que el listado.
func (uc *UseCase) ExportProducts(ctx context.Context, customerID string) ([]byte, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	headers := []string{"Product", "Created"}
	var rows [][]any
	for offset := 0; ; offset += exportPageSize {
		products, err := uc.productRepo.ListByCustomer(customerID, exportPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			label, ok := uc.resolveLabel(p.ID)
			if !ok {
				uc.log.Warn().
					Str("product_id", p.ID).
					Msg("producto sin plantilla, fila omitida del export")
				continue
			}
			rows = append(rows, []any{label, p.CreatedAt.Format("2006-01-02")})
		}
		if len(products) < exportPageSize {
			break
		}
	}
	return uc.workbook.Write("Products", headers, rows)
}

// ExportChanges genera el xlsx del ledger completo de un cliente (todos sus
// productos), filtrable por rango de fechas.
func (uc *UseCase) ExportChanges(ctx context.Context, customerID string, from, to *time.Time) ([]byte, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	headers := []string{
		"Date", "Product", "Rack", "RR", "PO", "AFE", "Carrier",
		"Received/Transferred", "Manufacturer", "Joints", "Footage",
	}
	labels := map[string]string{}
	racks := map[string]string{}
	var rows [][]any
	for offset := 0; ; offset += exportPageSize {
		changes, err := uc.changeRepo.ListByCustomer(customerID, from, to, exportPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, c := range changes {
			label, seen := labels[c.ProductID]
			if !seen {
				label, _ = uc.resolveLabel(c.ProductID)
				labels[c.ProductID] = label
			}
			rack, seen := racks[c.LocationID]
			if !seen {
				if loc, err := uc.locationRepo.GetByID(c.LocationID); err == nil && loc != nil {
					rack = loc.Name
				}
				racks[c.LocationID] = rack
			}
			rows = append(rows, []any{
				c.Date.Format("2006-01-02"), label, rack, c.RR, c.PO, c.AFE,
				c.Carrier, c.ReceivedTransferred, c.Manufacturer,
				c.Joints, c.Footage.InexactFloat64(),
			})
		}
		if len(changes) < exportPageSize {
			break
		}
	}
	return uc.workbook.Write("Ledger", headers, rows)
}

const exportPageSize = 500

// resolveLabel carga producto y plantilla y renderiza la etiqueta.
func (uc *UseCase) resolveLabel(productID string) (string, bool) {
	label, _, ok := uc.resolveProduct(productID)
	return label, ok
}

// resolveProduct devuelve la etiqueta y la medida menor en milímetros del
// producto. Sin campos measure devuelve math.MaxInt64, de modo que al ordenar
// por tamaño los productos sin medida quedan al final.
func (uc *UseCase) resolveProduct(productID string) (string, int64, bool) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return "", 0, false
	}
	template, err := uc.templateRepo.GetByID(product.TemplateID)
	if err != nil || template == nil {
		return "", 0, false
	}
	mm := int64(math.MaxInt64)
	for i := range product.Values {
		if v := product.Values[i].ValueMeasureMM; v != nil && *v < mm {
			mm = *v
		}
	}
	return template.RenderLabel(product), mm, true
}

func filterByDate(changes []*entity.InventoryChange, from, to *time.Time) []*entity.InventoryChange {
	if from == nil && to == nil {
		return changes
	}
	out := make([]*entity.InventoryChange, 0, len(changes))
	for _, c := range changes {
		if from != nil && c.Date.Before(*from) {
			continue
		}
		if to != nil && c.Date.After(*to) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func toChangeResponse(c *entity.InventoryChange) dto.ChangeResponse {
	return dto.ChangeResponse{
		ID:                  c.ID,
		CustomerID:          c.CustomerID,
		ProductID:           c.ProductID,
		LocationID:          c.LocationID,
		Date:                c.Date,
		Joints:              c.Joints,
		Footage:             c.Footage,
		RR:                  c.RR,
		PO:                  c.PO,
		AFE:                 c.AFE,
		Carrier:             c.Carrier,
		ReceivedTransferred: c.ReceivedTransferred,
		Manufacturer:        c.Manufacturer,
		AttachmentID:        c.AttachmentID,
		CreatedAt:           c.CreatedAt,
		CreatedBy:           c.CreatedBy,
	}
}
