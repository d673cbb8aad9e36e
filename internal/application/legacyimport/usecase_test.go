package legacyimport_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnersutah/pipetrack-api/internal/application/ledger"
	"github.com/runnersutah/pipetrack-api/internal/application/legacyimport"
	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
	"github.com/runnersutah/pipetrack-api/internal/domain/repository"
	"github.com/runnersutah/pipetrack-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria compartidos por catálogo y ledger: la importación escribe
// por ambos caminos y el test observa el estado final completo.
// ──────────────────────────────────────────────────────────────────────────────

type store struct {
	customers map[string]*entity.Customer
	locations map[string]*entity.StorageLocation
	templates map[string]*entity.ProductTemplate
	products  map[string]*entity.Product
	changes   map[string]*entity.InventoryChange
	balances  map[string]*entity.InventoryBalance
}

func newStore() *store {
	return &store{
		customers: map[string]*entity.Customer{},
		locations: map[string]*entity.StorageLocation{},
		templates: map[string]*entity.ProductTemplate{},
		products:  map[string]*entity.Product{},
		changes:   map[string]*entity.InventoryChange{},
		balances:  map[string]*entity.InventoryBalance{},
	}
}

type customerRepo struct{ s *store }

func (r *customerRepo) Create(c *entity.Customer) error           { r.s.customers[c.ID] = c; return nil }
func (r *customerRepo) GetByID(id string) (*entity.Customer, error) { return r.s.customers[id], nil }
func (r *customerRepo) GetByDisplayName(name string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.DisplayName == name {
			return c, nil
		}
	}
	return nil, nil
}
func (r *customerRepo) List(int, int) ([]*entity.Customer, error) { return nil, nil }
func (r *customerRepo) Update(c *entity.Customer) error           { r.s.customers[c.ID] = c; return nil }
func (r *customerRepo) UpdateStatus(id, status string) error {
	if c, ok := r.s.customers[id]; ok {
		c.Status = status
	}
	return nil
}
func (r *customerRepo) Delete(id string) error { delete(r.s.customers, id); return nil }

type locationRepo struct{ s *store }

func (r *locationRepo) Create(l *entity.StorageLocation) error { r.s.locations[l.ID] = l; return nil }
func (r *locationRepo) GetByID(id string) (*entity.StorageLocation, error) {
	return r.s.locations[id], nil
}
func (r *locationRepo) GetByName(name string) (*entity.StorageLocation, error) {
	for _, l := range r.s.locations {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, nil
}
func (r *locationRepo) List(int, int) ([]*entity.StorageLocation, error) { return nil, nil }
func (r *locationRepo) Update(*entity.StorageLocation) error             { return nil }
func (r *locationRepo) Delete(string) error                              { return nil }

type templateRepo struct{ s *store }

func (r *templateRepo) Create(t *entity.ProductTemplate) error { r.s.templates[t.ID] = t; return nil }
func (r *templateRepo) GetByID(id string) (*entity.ProductTemplate, error) {
	return r.s.templates[id], nil
}
func (r *templateRepo) GetByName(name string) (*entity.ProductTemplate, error) {
	for _, t := range r.s.templates {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, nil
}
func (r *templateRepo) List(int, int) ([]*entity.ProductTemplate, error) { return nil, nil }
func (r *templateRepo) Update(*entity.ProductTemplate) error             { return nil }
func (r *templateRepo) Delete(string) error                              { return nil }

type productRepo struct{ s *store }

func (r *productRepo) Create(p *entity.Product) error           { r.s.products[p.ID] = p; return nil }
func (r *productRepo) GetByID(id string) (*entity.Product, error) { return r.s.products[id], nil }
func (r *productRepo) ListByCustomer(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *productRepo) ListByTemplate(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *productRepo) Update(*entity.Product) error { return nil }
func (r *productRepo) Delete(string) error          { return nil }

type changeRepo struct{ s *store }

func (r *changeRepo) Create(c *entity.InventoryChange) error { r.s.changes[c.ID] = c; return nil }
func (r *changeRepo) GetByID(id string) (*entity.InventoryChange, error) {
	return r.s.changes[id], nil
}
func (r *changeRepo) ListByKey(customerID, productID string) ([]*entity.InventoryChange, error) {
	var out []*entity.InventoryChange
	for _, c := range r.s.changes {
		if c.CustomerID == customerID && c.ProductID == productID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *changeRepo) ListByCustomer(string, *time.Time, *time.Time, int, int) ([]*entity.InventoryChange, error) {
	return nil, nil
}
func (r *changeRepo) CountByProduct(string) (int64, error) { return 0, nil }
func (r *changeRepo) Delete(string) error                  { return nil }

type balanceRepo struct{ s *store }

func (r *balanceRepo) Upsert(b *entity.InventoryBalance) error {
	r.s.balances[b.CustomerID+"|"+b.ProductID+"|"+b.LocationID] = b
	return nil
}
func (r *balanceRepo) Get(string, string, string) (*entity.InventoryBalance, error) {
	return nil, nil
}
func (r *balanceRepo) ListByCustomer(customerID string) ([]*entity.InventoryBalance, error) {
	var out []*entity.InventoryBalance
	for _, b := range r.s.balances {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *balanceRepo) ListByKey(customerID, productID string) ([]*entity.InventoryBalance, error) {
	var out []*entity.InventoryBalance
	for _, b := range r.s.balances {
		if b.CustomerID == customerID && b.ProductID == productID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *balanceRepo) DeleteByKey(customerID, productID string) error {
	for k, b := range r.s.balances {
		if b.CustomerID == customerID && b.ProductID == productID {
			delete(r.s.balances, k)
		}
	}
	return nil
}

type txRunner struct{ s *store }

func (tx *txRunner) Run(_ context.Context, fn func(
	repository.InventoryChangeRepository,
	repository.InventoryBalanceRepository,
	repository.CustomerRepository,
) error) error {
	return fn(&changeRepo{tx.s}, &balanceRepo{tx.s}, &customerRepo{tx.s})
}

type sliceSource struct{ rows []legacyimport.LegacyRow }

func (s *sliceSource) Rows(context.Context) ([]legacyimport.LegacyRow, error) {
	return s.rows, nil
}

func newImporter(rows []legacyimport.LegacyRow) (*legacyimport.UseCase, *store) {
	s := newStore()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	ledgerUC := ledger.NewUseCase(
		&txRunner{s}, &productRepo{s}, &templateRepo{s}, &customerRepo{s},
		&locationRepo{s}, &changeRepo{s}, log,
	)
	uc := legacyimport.NewUseCase(
		&sliceSource{rows}, &customerRepo{s}, &locationRepo{s},
		&templateRepo{s}, &productRepo{s}, ledgerUC, log,
	)
	return uc, s
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Dos filas del mismo tubo alimentan un solo producto; la entrada y la salida
// se netean en el balance y el cliente queda Active.
func TestRun_DeduplicaYNetea(t *testing.T) {
	rows := []legacyimport.LegacyRow{
		{
			Kind: "Casing", Customer: "Acme Oil", Rack: "Yard A",
			Date: "2021-05-04", JointsIn: "12", Footage: "1248.3",
			Grade: "J-55, STC, R-3, New", OutsideDiameter: `5 1/2\"`, Weight: "17#",
			RR: "RR-100", Carrier: "Smith Trucking",
		},
		{
			Kind: "Casing", Customer: "Acme Oil", Rack: "Yard A",
			Date: "0000-00-00", JointsOut: "8", Footage: "973.4",
			Grade: "J-55, STC, R-3, New", OutsideDiameter: `5 1/2\"`, Weight: "17#",
		},
	}
	uc, s := newImporter(rows)

	sum, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.RowsRead)
	assert.Equal(t, 0, sum.RowsSkipped)
	assert.Equal(t, 2, sum.ChangesCreated)
	assert.Equal(t, 1, sum.CustomersCreated)
	assert.Equal(t, 1, sum.ProductsCreated, "misma tupla de atributos = mismo producto")

	require.Len(t, s.balances, 1)
	for _, b := range s.balances {
		assert.Equal(t, int64(4), b.Joints)
		assert.True(t, b.Footage.Equal(decimal.NewFromFloat(274.9)), "footage neto = %s", b.Footage)
	}
	for _, c := range s.customers {
		assert.Equal(t, entity.StatusActive, c.Status)
	}
}

// Los valores del producto salen del campo grade partido y del diámetro con
// su columna oculta en milímetros.
func TestRun_ValoresDeProducto(t *testing.T) {
	rows := []legacyimport.LegacyRow{{
		Kind: "Casing", Customer: "Acme Oil", Rack: "Yard A",
		Date: "2021-05-04", JointsIn: "1", Footage: "40",
		Grade: "J-55, STC", OutsideDiameter: `5 1/2\"`,
	}}
	uc, s := newImporter(rows)

	_, err := uc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, s.products, 1)

	var product *entity.Product
	for _, p := range s.products {
		product = p
	}
	var template *entity.ProductTemplate
	for _, tpl := range s.templates {
		template = tpl
	}
	require.NotNil(t, template)

	got := map[string]any{}
	for i := range template.Fields {
		field := template.Fields[i]
		if v := product.ValueFor(field.ID); v != nil {
			got[field.Name] = v.Value(field)
			if field.FieldType == entity.FieldMeasure {
				require.NotNil(t, v.ValueMeasureMM)
				assert.Equal(t, int64(140), *v.ValueMeasureMM)
			}
		}
	}
	assert.Equal(t, "J-55", got["grade"])
	assert.Equal(t, "STC", got["coupling"])
	assert.Equal(t, `5 1/2"`, got["outside_diameter"], "las comillas escapadas se reparan")
}

// Una fila sin cliente se omite y cuenta como salteada; la corrida sigue.
func TestRun_FilaIlegibleNoAborta(t *testing.T) {
	rows := []legacyimport.LegacyRow{
		{Kind: "Tubing", Customer: "", JointsIn: "5"},
		{Kind: "Tubing", Customer: "Beta Energy", Rack: "Yard B",
			Date: "2022-01-10", JointsIn: "5", Footage: "160"},
	}
	uc, _ := newImporter(rows)

	sum, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.RowsRead)
	assert.Equal(t, 1, sum.RowsSkipped)
	assert.Equal(t, 1, sum.ChangesCreated)
}

// El texto de grade que no coincide con ningún vocabulario termina en el
// campo remarks del producto y marca la corrida para revisión.
func TestRun_SobranteDeGradeARemarks(t *testing.T) {
	rows := []legacyimport.LegacyRow{{
		Kind: "Casing", Customer: "Acme Oil", Rack: "Yard A",
		Date: "2021-05-04", JointsIn: "2", Footage: "80",
		Grade: "J-55, 20ft marker joints", Remarks: "mixed lot",
	}}
	uc, s := newImporter(rows)

	sum, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.NeedsReview)

	var product *entity.Product
	for _, p := range s.products {
		product = p
	}
	var template *entity.ProductTemplate
	for _, tpl := range s.templates {
		template = tpl
	}
	for i := range template.Fields {
		if template.Fields[i].Name == "remarks" {
			v := product.ValueFor(template.Fields[i].ID)
			require.NotNil(t, v)
			assert.Equal(t, "mixed lot; 20ft marker joints", v.Value(template.Fields[i]))
		}
	}
}

// El snapshot mezcla mayúsculas en el tipo de producto; todas las variantes
// deben compartir una sola plantilla.
func TestRun_NormalizaTipoDeProducto(t *testing.T) {
	rows := []legacyimport.LegacyRow{
		{Kind: "CASING", Customer: "Acme Oil", Rack: "Yard A",
			Date: "2021-05-04", JointsIn: "2", Footage: "80"},
		{Kind: "casing", Customer: "Acme Oil", Rack: "Yard A",
			Date: "2021-05-05", JointsIn: "3", Footage: "120"},
	}
	uc, s := newImporter(rows)

	sum, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.RowsSkipped)

	require.Len(t, s.templates, 1)
	for _, tpl := range s.templates {
		assert.Equal(t, "Casing", tpl.Name)
	}
}
