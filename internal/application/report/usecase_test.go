package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnersutah/pipetrack-api/internal/application/dto"
	"github.com/runnersutah/pipetrack-api/internal/application/report"
	"github.com/runnersutah/pipetrack-api/internal/domain"
	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
	"github.com/runnersutah/pipetrack-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (solo los métodos que el caso de uso de reportes lee).
// ──────────────────────────────────────────────────────────────────────────────

type memBalanceRepo struct{ items []*entity.InventoryBalance }

func (r *memBalanceRepo) Upsert(*entity.InventoryBalance) error { return nil }
func (r *memBalanceRepo) Get(string, string, string) (*entity.InventoryBalance, error) {
	return nil, nil
}
func (r *memBalanceRepo) ListByCustomer(customerID string) ([]*entity.InventoryBalance, error) {
	var out []*entity.InventoryBalance
	for _, b := range r.items {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *memBalanceRepo) ListByKey(string, string) ([]*entity.InventoryBalance, error) {
	return nil, nil
}
func (r *memBalanceRepo) DeleteByKey(string, string) error { return nil }

type memChangeRepo struct{ items []*entity.InventoryChange }

func (r *memChangeRepo) Create(*entity.InventoryChange) error { return nil }
func (r *memChangeRepo) GetByID(string) (*entity.InventoryChange, error) {
	return nil, nil
}
func (r *memChangeRepo) ListByKey(customerID, productID string) ([]*entity.InventoryChange, error) {
	var out []*entity.InventoryChange
	for _, c := range r.items {
		if c.CustomerID == customerID && c.ProductID == productID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *memChangeRepo) ListByCustomer(string, *time.Time, *time.Time, int, int) ([]*entity.InventoryChange, error) {
	return nil, nil
}
func (r *memChangeRepo) CountByProduct(string) (int64, error) { return 0, nil }
func (r *memChangeRepo) Delete(string) error                  { return nil }

type memCustomerRepo struct{ items map[string]*entity.Customer }

func (r *memCustomerRepo) Create(*entity.Customer) error { return nil }
func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.items[id], nil
}
func (r *memCustomerRepo) GetByDisplayName(string) (*entity.Customer, error) { return nil, nil }
func (r *memCustomerRepo) List(int, int) ([]*entity.Customer, error)         { return nil, nil }
func (r *memCustomerRepo) Update(*entity.Customer) error                     { return nil }
func (r *memCustomerRepo) UpdateStatus(string, string) error                 { return nil }
func (r *memCustomerRepo) Delete(string) error                               { return nil }

type memProductRepo struct{ items map[string]*entity.Product }

func (r *memProductRepo) Create(*entity.Product) error { return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.items[id], nil
}
func (r *memProductRepo) ListByCustomer(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) ListByTemplate(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Update(*entity.Product) error { return nil }
func (r *memProductRepo) Delete(string) error          { return nil }

type memTemplateRepo struct{ items map[string]*entity.ProductTemplate }

func (r *memTemplateRepo) Create(*entity.ProductTemplate) error { return nil }
func (r *memTemplateRepo) GetByID(id string) (*entity.ProductTemplate, error) {
	return r.items[id], nil
}
func (r *memTemplateRepo) GetByName(string) (*entity.ProductTemplate, error) { return nil, nil }
func (r *memTemplateRepo) List(int, int) ([]*entity.ProductTemplate, error)  { return nil, nil }
func (r *memTemplateRepo) Update(*entity.ProductTemplate) error              { return nil }
func (r *memTemplateRepo) Delete(string) error                               { return nil }

type memLocationRepo struct{ items map[string]*entity.StorageLocation }

func (r *memLocationRepo) Create(*entity.StorageLocation) error { return nil }
func (r *memLocationRepo) GetByID(id string) (*entity.StorageLocation, error) {
	return r.items[id], nil
}
func (r *memLocationRepo) GetByName(string) (*entity.StorageLocation, error) { return nil, nil }
func (r *memLocationRepo) List(int, int) ([]*entity.StorageLocation, error)  { return nil, nil }
func (r *memLocationRepo) Update(*entity.StorageLocation) error              { return nil }
func (r *memLocationRepo) Delete(string) error                               { return nil }

// fakeWorkbook captura lo que el caso de uso manda a exportar.
type fakeWorkbook struct {
	sheet   string
	headers []string
	rows    [][]any
}

func (w *fakeWorkbook) Write(sheet string, headers []string, rows [][]any) ([]byte, error) {
	w.sheet, w.headers, w.rows = sheet, headers, rows
	return []byte("xlsx"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	custID  = "cust-1"
	prodID  = "prod-1"
	rackID  = "rack-1"
	rack2ID = "rack-2"
	tplID   = "tpl-1"
)

type fixture struct {
	uc       *report.UseCase
	balances *memBalanceRepo
	changes  *memChangeRepo
	workbook *fakeWorkbook
}

func newFixture() *fixture {
	grade := "J-55"
	balances := &memBalanceRepo{}
	changes := &memChangeRepo{}
	workbook := &fakeWorkbook{}
	uc := report.NewUseCase(
		balances,
		changes,
		&memCustomerRepo{items: map[string]*entity.Customer{
			custID: {ID: custID, DisplayName: "Acme Oil", Status: entity.StatusActive},
		}},
		&memProductRepo{items: map[string]*entity.Product{
			prodID: {ID: prodID, TemplateID: tplID, CustomerID: custID,
				Values: []entity.FieldValue{{FieldID: "f-grade", ValueText: &grade}}},
		}},
		&memTemplateRepo{items: map[string]*entity.ProductTemplate{
			tplID: {ID: tplID, Name: "Casing", FormatString: "{{grade}} Casing",
				CountingType: entity.CountingDiscrete,
				Fields:       []entity.TemplateField{{ID: "f-grade", Name: "grade", FieldType: entity.FieldText}}},
		}},
		&memLocationRepo{items: map[string]*entity.StorageLocation{
			rackID:  {ID: rackID, Name: "Yard A"},
			rack2ID: {ID: rack2ID, Name: "Yard B"},
		}},
		workbook,
		logger.New(logger.Config{Env: "development", Level: "error"}),
	)
	return &fixture{uc: uc, balances: balances, changes: changes, workbook: workbook}
}

func change(id, d string, joints int64, footage float64) *entity.InventoryChange {
	date, _ := time.Parse("2006-01-02", d)
	return &entity.InventoryChange{
		ID: id, CustomerID: custID, ProductID: prodID, LocationID: rackID,
		Date: date, Joints: joints, Footage: decimal.NewFromFloat(footage),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// CurrentBalances resuelve etiqueta de producto y nombre de rack, y trae el
// estado derivado del cliente.
func TestCurrentBalances_ResuelveEtiquetas(t *testing.T) {
	f := newFixture()
	f.balances.items = []*entity.InventoryBalance{
		{CustomerID: custID, ProductID: prodID, LocationID: rackID,
			Joints: 10, Footage: decimal.NewFromFloat(948.3)},
	}

	resp, err := f.uc.CurrentBalances(context.Background(), custID, dto.BalancesQuery{})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, resp.Status)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "J-55 Casing", resp.Rows[0].ProductLabel)
	assert.Equal(t, "Yard A", resp.Rows[0].LocationName)
}

// Una fila cuyo producto ya no existe se omite con warning; el reporte nunca
// aborta por inconsistencia referencial.
func TestCurrentBalances_OmiteFilasHuerfanas(t *testing.T) {
	f := newFixture()
	f.balances.items = []*entity.InventoryBalance{
		{CustomerID: custID, ProductID: "prod-borrado", LocationID: rackID, Joints: 3},
		{CustomerID: custID, ProductID: prodID, LocationID: rackID, Joints: 10},
	}

	resp, err := f.uc.CurrentBalances(context.Background(), custID, dto.BalancesQuery{})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, prodID, resp.Rows[0].ProductID)
}

// El criterio de ordenamiento solo afecta la presentación de las filas.
func TestCurrentBalances_Ordenamientos(t *testing.T) {
	f := newFixture()
	f.balances.items = []*entity.InventoryBalance{
		{CustomerID: custID, ProductID: prodID, LocationID: rack2ID, Joints: 9},
		{CustomerID: custID, ProductID: prodID, LocationID: rackID, Joints: 4},
	}

	resp, err := f.uc.CurrentBalances(context.Background(), custID, dto.BalancesQuery{Sort: report.SortRack})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "Yard A", resp.Rows[0].LocationName)

	resp, err = f.uc.CurrentBalances(context.Background(), custID, dto.BalancesQuery{Sort: report.SortJoints, Desc: true})
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.Rows[0].Joints)

	_, err = f.uc.CurrentBalances(context.Background(), custID, dto.BalancesQuery{Sort: "tamaño"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Los acumulados se calculan en orden de fecha aunque la presentación use el
// criterio joints in/out: cada fila conserva su acumulado original.
func TestHistory_AcumuladosSobrevivenAlOrdenamiento(t *testing.T) {
	f := newFixture()
	f.changes.items = []*entity.InventoryChange{
		change("a", "2024-04-01", 12, 1248.3),
		change("b", "2024-04-04", 6, 673.4),
		change("c", "2024-04-05", -8, -973.4),
	}

	resp, err := f.uc.History(context.Background(), custID, prodID, dto.HistoryQuery{Sort: report.SortJointsInOut})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 3)

	// Presentación: entradas por magnitud, después salidas.
	assert.Equal(t, []int64{6, 12, -8}, []int64{resp.Rows[0].Joints, resp.Rows[1].Joints, resp.Rows[2].Joints})
	// Acumulados: siguen siendo los del orden cronológico.
	assert.Equal(t, int64(18), resp.Rows[0].RunningJoints) // "b" era la segunda fila por fecha
	assert.Equal(t, int64(12), resp.Rows[1].RunningJoints)
	assert.Equal(t, int64(10), resp.Rows[2].RunningJoints)

	assert.Equal(t, int64(10), resp.TotalJoints)
	assert.True(t, resp.TotalFootage.Equal(decimal.NewFromFloat(948.3)))
}

func TestHistory_FechaDescendente(t *testing.T) {
	f := newFixture()
	f.changes.items = []*entity.InventoryChange{
		change("a", "2024-04-01", 12, 1248.3),
		change("b", "2024-04-04", 6, 673.4),
	}

	resp, err := f.uc.History(context.Background(), custID, prodID, dto.HistoryQuery{Sort: report.SortDate, Desc: true})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "b", resp.Rows[0].ID)
	assert.Equal(t, int64(18), resp.Rows[0].RunningJoints)
}

func TestHistory_FiltroPorRango(t *testing.T) {
	f := newFixture()
	f.changes.items = []*entity.InventoryChange{
		change("a", "2024-03-01", 5, 500),
		change("b", "2024-04-04", 6, 673.4),
	}
	from, _ := time.Parse("2006-01-02", "2024-04-01")

	resp, err := f.uc.History(context.Background(), custID, prodID, dto.HistoryQuery{From: &from})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "b", resp.Rows[0].ID)
	// El filtro también acota los acumulados: la ventana arranca en cero.
	assert.Equal(t, int64(6), resp.Rows[0].RunningJoints)
}

// ExportHistory arma cabeceras y filas y delega el xlsx al WorkbookWriter.
func TestExportHistory_DelegaAlWorkbook(t *testing.T) {
	f := newFixture()
	f.changes.items = []*entity.InventoryChange{
		change("a", "2024-04-01", 12, 1248.3),
	}

	out, err := f.uc.ExportHistory(context.Background(), custID, prodID, dto.HistoryQuery{})
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), out)
	assert.Equal(t, "History", f.workbook.sheet)
	assert.Contains(t, f.workbook.headers, "Running Footage")
	require.Len(t, f.workbook.rows, 1)
	assert.Equal(t, "2024-04-01", f.workbook.rows[0][0])
}
