package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnersutah/pipetrack-api/internal/application/dto"
	"github.com/runnersutah/pipetrack-api/internal/application/ledger"
	"github.com/runnersutah/pipetrack-api/internal/domain"
	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
	"github.com/runnersutah/pipetrack-api/internal/domain/repository"
	"github.com/runnersutah/pipetrack-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: implementan los puertos de persistencia sin BD. El
// TxRunner fake pasa los mismos fakes a la función, así los tests observan
// exactamente lo que quedaría confirmado en la transacción.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	customers map[string]*entity.Customer
	locations map[string]*entity.StorageLocation
	templates map[string]*entity.ProductTemplate
	products  map[string]*entity.Product
	changes   map[string]*entity.InventoryChange
	balances  map[string]*entity.InventoryBalance // clave customer|product|location
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: map[string]*entity.Customer{},
		locations: map[string]*entity.StorageLocation{},
		templates: map[string]*entity.ProductTemplate{},
		products:  map[string]*entity.Product{},
		changes:   map[string]*entity.InventoryChange{},
		balances:  map[string]*entity.InventoryBalance{},
	}
}

func balanceKey(customerID, productID, locationID string) string {
	return customerID + "|" + productID + "|" + locationID
}

type fakeCustomerRepo struct{ s *fakeStore }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.s.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.s.customers[id], nil
}
func (r *fakeCustomerRepo) GetByDisplayName(string) (*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) List(int, int) ([]*entity.Customer, error)         { return nil, nil }
func (r *fakeCustomerRepo) Update(c *entity.Customer) error                   { r.s.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) UpdateStatus(id, status string) error {
	if c, ok := r.s.customers[id]; ok {
		c.Status = status
	}
	return nil
}
func (r *fakeCustomerRepo) Delete(id string) error { delete(r.s.customers, id); return nil }

type fakeLocationRepo struct{ s *fakeStore }

func (r *fakeLocationRepo) Create(l *entity.StorageLocation) error { r.s.locations[l.ID] = l; return nil }
func (r *fakeLocationRepo) GetByID(id string) (*entity.StorageLocation, error) {
	return r.s.locations[id], nil
}
func (r *fakeLocationRepo) GetByName(string) (*entity.StorageLocation, error) { return nil, nil }
func (r *fakeLocationRepo) List(int, int) ([]*entity.StorageLocation, error)  { return nil, nil }
func (r *fakeLocationRepo) Update(l *entity.StorageLocation) error            { return nil }
func (r *fakeLocationRepo) Delete(id string) error                            { return nil }

type fakeTemplateRepo struct{ s *fakeStore }

func (r *fakeTemplateRepo) Create(t *entity.ProductTemplate) error { r.s.templates[t.ID] = t; return nil }
func (r *fakeTemplateRepo) GetByID(id string) (*entity.ProductTemplate, error) {
	return r.s.templates[id], nil
}
func (r *fakeTemplateRepo) GetByName(string) (*entity.ProductTemplate, error) { return nil, nil }
func (r *fakeTemplateRepo) List(int, int) ([]*entity.ProductTemplate, error)  { return nil, nil }
func (r *fakeTemplateRepo) Update(*entity.ProductTemplate) error              { return nil }
func (r *fakeTemplateRepo) Delete(string) error                               { return nil }

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *fakeProductRepo) ListByCustomer(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) ListByTemplate(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(*entity.Product) error { return nil }
func (r *fakeProductRepo) Delete(string) error          { return nil }

type fakeChangeRepo struct{ s *fakeStore }

func (r *fakeChangeRepo) Create(c *entity.InventoryChange) error { r.s.changes[c.ID] = c; return nil }
func (r *fakeChangeRepo) GetByID(id string) (*entity.InventoryChange, error) {
	return r.s.changes[id], nil
}
func (r *fakeChangeRepo) ListByKey(customerID, productID string) ([]*entity.InventoryChange, error) {
	var out []*entity.InventoryChange
	for _, c := range r.s.changes {
		if c.CustomerID == customerID && c.ProductID == productID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *fakeChangeRepo) ListByCustomer(customerID string, _, _ *time.Time, _, _ int) ([]*entity.InventoryChange, error) {
	var out []*entity.InventoryChange
	for _, c := range r.s.changes {
		if c.CustomerID == customerID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *fakeChangeRepo) CountByProduct(productID string) (int64, error) {
	var n int64
	for _, c := range r.s.changes {
		if c.ProductID == productID {
			n++
		}
	}
	return n, nil
}
func (r *fakeChangeRepo) Delete(id string) error { delete(r.s.changes, id); return nil }

type fakeBalanceRepo struct{ s *fakeStore }

func (r *fakeBalanceRepo) Upsert(b *entity.InventoryBalance) error {
	r.s.balances[balanceKey(b.CustomerID, b.ProductID, b.LocationID)] = b
	return nil
}
func (r *fakeBalanceRepo) Get(customerID, productID, locationID string) (*entity.InventoryBalance, error) {
	return r.s.balances[balanceKey(customerID, productID, locationID)], nil
}
func (r *fakeBalanceRepo) ListByCustomer(customerID string) ([]*entity.InventoryBalance, error) {
	var out []*entity.InventoryBalance
	for _, b := range r.s.balances {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *fakeBalanceRepo) ListByKey(customerID, productID string) ([]*entity.InventoryBalance, error) {
	var out []*entity.InventoryBalance
	for _, b := range r.s.balances {
		if b.CustomerID == customerID && b.ProductID == productID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *fakeBalanceRepo) DeleteByKey(customerID, productID string) error {
	for k, b := range r.s.balances {
		if b.CustomerID == customerID && b.ProductID == productID {
			delete(r.s.balances, k)
		}
	}
	return nil
}

type fakeTxRunner struct{ s *fakeStore }

func (tx *fakeTxRunner) Run(_ context.Context, fn func(
	repository.InventoryChangeRepository,
	repository.InventoryBalanceRepository,
	repository.CustomerRepository,
) error) error {
	return fn(&fakeChangeRepo{tx.s}, &fakeBalanceRepo{tx.s}, &fakeCustomerRepo{tx.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCustomerID = "cust-1"
	testLocationID = "rack-1"
	testTemplateID = "tpl-casing"
	testProductID  = "prod-1"
	testUserID     = "user-1"
)

func newFixture(countingType string) (*ledger.UseCase, *fakeStore) {
	s := newFakeStore()
	s.customers[testCustomerID] = &entity.Customer{ID: testCustomerID, DisplayName: "Acme Oil", Status: entity.StatusInactive}
	s.locations[testLocationID] = &entity.StorageLocation{ID: testLocationID, Name: "Yard A"}
	s.templates[testTemplateID] = &entity.ProductTemplate{ID: testTemplateID, Name: "Casing", CountingType: countingType}
	s.products[testProductID] = &entity.Product{ID: testProductID, TemplateID: testTemplateID, CustomerID: testCustomerID}

	uc := ledger.NewUseCase(
		&fakeTxRunner{s},
		&fakeProductRepo{s},
		&fakeTemplateRepo{s},
		&fakeCustomerRepo{s},
		&fakeLocationRepo{s},
		&fakeChangeRepo{s},
		logger.New(logger.Config{Env: "development", Level: "error"}),
	)
	return uc, s
}

func intPtr(n int64) *int64 { return &n }

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func discreteRequest(joints int64, footage float64) dto.RecordChangeRequest {
	return dto.RecordChangeRequest{
		CustomerID:  testCustomerID,
		ProductID:   testProductID,
		LocationID:  testLocationID,
		Date:        time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		QuantityInt: intPtr(joints),
		Footage:     decPtr(footage),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RecordChange
// ──────────────────────────────────────────────────────────────────────────────

// Caso feliz discreto: el registro entra al ledger, el balance se materializa
// y el cliente pasa a Active en la misma operación.
func TestRecordChange_DiscretoMaterializaYActiva(t *testing.T) {
	uc, s := newFixture(entity.CountingDiscrete)

	resp, err := uc.RecordChange(context.Background(), testUserID, discreteRequest(12, 1248.3))
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, int64(12), resp.Joints)

	b := s.balances[balanceKey(testCustomerID, testProductID, testLocationID)]
	require.NotNil(t, b, "el balance debe materializarse en la misma transacción")
	assert.Equal(t, int64(12), b.Joints)
	assert.True(t, b.Footage.Equal(decimal.NewFromFloat(1248.3)))

	assert.Equal(t, entity.StatusActive, s.customers[testCustomerID].Status)
}

// La cantidad decimal en una plantilla discreta se rechaza antes de escribir;
// nunca se coacciona en silencio.
func TestRecordChange_CantidadDecimalEnPlantillaDiscreta(t *testing.T) {
	uc, s := newFixture(entity.CountingDiscrete)

	in := discreteRequest(0, 0)
	in.QuantityInt = nil
	in.QuantityDecimal = decPtr(120.5)
	in.Footage = nil

	_, err := uc.RecordChange(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrMixedQuantityType)
	assert.Empty(t, s.changes, "nada debe llegar al ledger")
}

func TestRecordChange_AmbasCantidades(t *testing.T) {
	uc, _ := newFixture(entity.CountingDiscrete)

	in := discreteRequest(5, 0)
	in.QuantityDecimal = decPtr(10)

	_, err := uc.RecordChange(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrMixedQuantityType)
}

// En plantillas continuas la cantidad decimal YA es el footage: un
// acompañante explícito es ambiguo y se rechaza.
func TestRecordChange_ContinuoConAcompananteFootage(t *testing.T) {
	uc, _ := newFixture(entity.CountingContinuous)

	in := dto.RecordChangeRequest{
		CustomerID:      testCustomerID,
		ProductID:       testProductID,
		LocationID:      testLocationID,
		Date:            time.Now(),
		QuantityDecimal: decPtr(500.25),
		Footage:         decPtr(500.25),
	}
	_, err := uc.RecordChange(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordChange_ContinuoCasoFeliz(t *testing.T) {
	uc, s := newFixture(entity.CountingContinuous)

	in := dto.RecordChangeRequest{
		CustomerID:      testCustomerID,
		ProductID:       testProductID,
		LocationID:      testLocationID,
		Date:            time.Now(),
		QuantityDecimal: decPtr(500.25),
	}
	resp, err := uc.RecordChange(context.Background(), testUserID, in)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Joints)
	assert.True(t, resp.Footage.Equal(decimal.NewFromFloat(500.25)))

	// Footage positivo pero joints en cero: no alcanza para Active.
	assert.Equal(t, entity.StatusInactive, s.customers[testCustomerID].Status)
}

// Un balance que queda negativo marca al cliente Invalid aunque otro rack
// tenga stock positivo.
func TestRecordChange_BalanceNegativoInvalida(t *testing.T) {
	uc, s := newFixture(entity.CountingDiscrete)
	s.locations["rack-2"] = &entity.StorageLocation{ID: "rack-2", Name: "Yard B"}

	_, err := uc.RecordChange(context.Background(), testUserID, discreteRequest(10, 1000))
	require.NoError(t, err)

	in := discreteRequest(-3, -300)
	in.LocationID = "rack-2"
	_, err = uc.RecordChange(context.Background(), testUserID, in)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusInvalid, s.customers[testCustomerID].Status,
		"Invalid tiene precedencia sobre Active")
}

func TestRecordChange_ProductoDeOtroCliente(t *testing.T) {
	uc, s := newFixture(entity.CountingDiscrete)
	s.customers["cust-2"] = &entity.Customer{ID: "cust-2", DisplayName: "Otro"}

	in := discreteRequest(5, 100)
	in.CustomerID = "cust-2"
	_, err := uc.RecordChange(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRecordChange_RackInexistente(t *testing.T) {
	uc, _ := newFixture(entity.CountingDiscrete)

	in := discreteRequest(5, 100)
	in.LocationID = "no-existe"
	_, err := uc.RecordChange(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests DeleteChange / ZeroOut
// ──────────────────────────────────────────────────────────────────────────────

// Borrar un registro rematerializa desde el ledger restante: el balance
// refleja exactamente la suma de lo que queda.
func TestDeleteChange_Rematerializa(t *testing.T) {
	uc, s := newFixture(entity.CountingDiscrete)

	first, err := uc.RecordChange(context.Background(), testUserID, discreteRequest(12, 1248.3))
	require.NoError(t, err)
	_, err = uc.RecordChange(context.Background(), testUserID, discreteRequest(6, 673.4))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteChange(context.Background(), first.ID))

	b := s.balances[balanceKey(testCustomerID, testProductID, testLocationID)]
	require.NotNil(t, b)
	assert.Equal(t, int64(6), b.Joints)
	assert.True(t, b.Footage.Equal(decimal.NewFromFloat(673.4)))
}

func TestDeleteChange_NoExiste(t *testing.T) {
	uc, _ := newFixture(entity.CountingDiscrete)
	err := uc.DeleteChange(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ZeroOut genera un compensatorio por rack con balance no nulo y deja al
// cliente Inactive: conservación exacta, el ledger sigue sumando cero.
func TestZeroOut_CompensaYDesactiva(t *testing.T) {
	uc, s := newFixture(entity.CountingDiscrete)
	s.locations["rack-2"] = &entity.StorageLocation{ID: "rack-2", Name: "Yard B"}

	_, err := uc.RecordChange(context.Background(), testUserID, discreteRequest(10, 1000))
	require.NoError(t, err)
	in := discreteRequest(4, 400)
	in.LocationID = "rack-2"
	_, err = uc.RecordChange(context.Background(), testUserID, in)
	require.NoError(t, err)

	created, err := uc.ZeroOut(context.Background(), testUserID, dto.ZeroOutRequest{
		CustomerID: testCustomerID,
		ProductID:  testProductID,
		Date:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, created, 2, "un compensatorio por rack con balance")

	for _, b := range s.balances {
		assert.Equal(t, int64(0), b.Joints)
		assert.True(t, b.Footage.IsZero())
	}
	assert.Equal(t, entity.StatusInactive, s.customers[testCustomerID].Status)
}

// ZeroOut sobre una pareja ya en cero es un no-op idempotente.
func TestZeroOut_Idempotente(t *testing.T) {
	uc, _ := newFixture(entity.CountingDiscrete)

	created, err := uc.ZeroOut(context.Background(), testUserID, dto.ZeroOutRequest{
		CustomerID: testCustomerID,
		ProductID:  testProductID,
		Date:       time.Now(),
	})
	require.NoError(t, err)
	assert.Empty(t, created)
}
