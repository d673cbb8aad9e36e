package legacyimport

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/runnersutah/pipetrack-api/internal/application/dto"
	"github.com/runnersutah/pipetrack-api/internal/application/ledger"
	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
	"github.com/runnersutah/pipetrack-api/internal/domain/legacy"
	"github.com/runnersutah/pipetrack-api/internal/domain/measure"
	"github.com/runnersutah/pipetrack-api/internal/domain/repository"
	"github.com/runnersutah/pipetrack-api/pkg/logger"
)

// Nombres de los campos de plantilla que crea la importación.
const (
	fieldGrade     = "grade"
	fieldCoupling  = "coupling"
	fieldRange     = "range"
	fieldCondition = "condition"
	fieldWeight    = "weight"
	fieldDiameter  = "outside_diameter"
	fieldRemarks   = "remarks"
	fieldKind      = "kind"
)

const importUser = "legacy-import"

// Summary resultado de una corrida de importación.
type Summary struct {
	RowsRead         int
	RowsSkipped      int
	ChangesCreated   int
	CustomersCreated int
	ProductsCreated  int
	NeedsReview      int // filas con texto de grade sin clasificar
}

// UseCase importa el snapshot heredado: crea clientes, racks, plantillas y
// productos a partir de las filas crudas y registra cada movimiento vía el
// ledger (que materializa balances y estados de paso). Es mejor esfuerzo por
// fila: una fila ilegible se reporta y se omite, nunca aborta la corrida.
type UseCase struct {
	source       LegacySource
	customerRepo repository.CustomerRepository
	locationRepo repository.StorageLocationRepository
	templateRepo repository.ProductTemplateRepository
	productRepo  repository.ProductRepository
	ledgerUC     *ledger.UseCase
	log          *logger.Logger

	customers map[string]string // display name -> id
	locations map[string]string // nombre -> id
	templates map[string]*entity.ProductTemplate
	products  map[string]string // clave de deduplicación -> id
}

// NewUseCase construye el caso de uso de importación.
func NewUseCase(
	source LegacySource,
	customerRepo repository.CustomerRepository,
	locationRepo repository.StorageLocationRepository,
	templateRepo repository.ProductTemplateRepository,
	productRepo repository.ProductRepository,
	ledgerUC *ledger.UseCase,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		source:       source,
		customerRepo: customerRepo,
		locationRepo: locationRepo,
		templateRepo: templateRepo,
		productRepo:  productRepo,
		ledgerUC:     ledgerUC,
		log:          log,
		customers:    map[string]string{},
		locations:    map[string]string{},
		templates:    map[string]*entity.ProductTemplate{},
		products:     map[string]string{},
	}
}

// Run ejecuta la importación completa.
func (uc *UseCase) Run(ctx context.Context) (*Summary, error) {
	rows, err := uc.source.Rows(ctx)
	if err != nil {
		return nil, err
	}

	sum := &Summary{}
	for i, row := range rows {
		sum.RowsRead++
		if err := uc.importRow(ctx, row, sum); err != nil {
			sum.RowsSkipped++
			uc.log.Warn().Err(err).Int("row", i).
				Str("customer", row.Customer).
				Msg("fila heredada omitida")
		}
	}

	uc.log.Info().
		Int("rows_read", sum.RowsRead).
		Int("rows_skipped", sum.RowsSkipped).
		Int("changes_created", sum.ChangesCreated).
		Int("customers_created", sum.CustomersCreated).
		Int("products_created", sum.ProductsCreated).
		Int("needs_review", sum.NeedsReview).
		Msg("importación heredada completada")
	return sum, nil
}

func (uc *UseCase) importRow(ctx context.Context, row LegacyRow, sum *Summary) error {
	customerName := strings.TrimSpace(legacy.Unescape(row.Customer))
	if customerName == "" {
		return errEmptyCustomer
	}
	customerID, err := uc.ensureCustomer(customerName, sum)
	if err != nil {
		return err
	}

	rackName := strings.TrimSpace(legacy.Unescape(row.Rack))
	if rackName == "" {
		rackName = "Unassigned"
	}
	locationID, err := uc.ensureLocation(rackName)
	if err != nil {
		return err
	}

	// El snapshot mezcla mayúsculas ("CASING", "casing"): se normaliza a
	// Title Case para que todas las variantes compartan plantilla.
	kind := kindTitle.String(strings.ToLower(strings.TrimSpace(row.Kind)))
	if kind == "" {
		kind = "Pipe"
	}
	template, err := uc.ensureTemplate(kind)
	if err != nil {
		return err
	}

	parts := legacy.ParseGradeField(legacy.Unescape(row.Grade))
	if parts.NeedsReview() {
		sum.NeedsReview++
	}
	remarks := joinRemarks(legacy.Unescape(row.Remarks), parts.Remarks)

	productID, err := uc.ensureProduct(customerID, template, row, parts, remarks, sum)
	if err != nil {
		return err
	}

	joints, footage := legacy.SignedQuantities(row.JointsIn, row.JointsOut, row.Footage)
	in := dto.RecordChangeRequest{
		CustomerID:          customerID,
		ProductID:           productID,
		LocationID:          locationID,
		Date:                legacy.NormalizeDate(row.Date),
		QuantityInt:         &joints,
		RR:                  legacy.Unescape(row.RR),
		PO:                  legacy.Unescape(row.PO),
		AFE:                 legacy.Unescape(row.AFE),
		Carrier:             legacy.Unescape(row.Carrier),
		ReceivedTransferred: legacy.Unescape(row.ReceivedTransferred),
		Manufacturer:        legacy.Unescape(row.Manufacturer),
	}
	if !footage.IsZero() {
		in.Footage = &footage
	}
	if _, err := uc.ledgerUC.RecordChange(ctx, importUser, in); err != nil {
		return err
	}
	sum.ChangesCreated++
	return nil
}

func (uc *UseCase) ensureCustomer(name string, sum *Summary) (string, error) {
	if id, ok := uc.customers[name]; ok {
		return id, nil
	}
	if existing, err := uc.customerRepo.GetByDisplayName(name); err != nil {
		return "", err
	} else if existing != nil {
		uc.customers[name] = existing.ID
		return existing.ID, nil
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:          uuid.New().String(),
		DisplayName: name,
		Status:      entity.StatusInactive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return "", err
	}
	uc.customers[name] = customer.ID
	sum.CustomersCreated++
	return customer.ID, nil
}

func (uc *UseCase) ensureLocation(name string) (string, error) {
	if id, ok := uc.locations[name]; ok {
		return id, nil
	}
	if existing, err := uc.locationRepo.GetByName(name); err != nil {
		return "", err
	} else if existing != nil {
		uc.locations[name] = existing.ID
		return existing.ID, nil
	}
	now := time.Now()
	location := &entity.StorageLocation{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locationRepo.Create(location); err != nil {
		return "", err
	}
	uc.locations[name] = location.ID
	return location.ID, nil
}

// ensureTemplate crea (una vez por tipo) la plantilla discreta con los campos
// que la importación sabe poblar.
func (uc *UseCase) ensureTemplate(kind string) (*entity.ProductTemplate, error) {
	if t, ok := uc.templates[kind]; ok {
		return t, nil
	}
	if existing, err := uc.templateRepo.GetByName(kind); err != nil {
		return nil, err
	} else if existing != nil {
		uc.templates[kind] = existing
		return existing, nil
	}
	now := time.Now()
	template := &entity.ProductTemplate{
		ID:           uuid.New().String(),
		Name:         kind,
		FormatString: "{{outside_diameter}} {{weight}} {{grade}} {{coupling}} {{kind}}",
		CountingType: entity.CountingDiscrete,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	names := []struct {
		name      string
		fieldType string
		static    string
	}{
		{fieldDiameter, entity.FieldMeasure, ""},
		{fieldWeight, entity.FieldText, ""},
		{fieldGrade, entity.FieldText, ""},
		{fieldCoupling, entity.FieldText, ""},
		{fieldRange, entity.FieldText, ""},
		{fieldCondition, entity.FieldText, ""},
		{fieldRemarks, entity.FieldText, ""},
		{fieldKind, entity.FieldStatic, kind},
	}
	for i, n := range names {
		template.Fields = append(template.Fields, entity.TemplateField{
			ID:         uuid.New().String(),
			TemplateID: template.ID,
			Name:       n.name,
			FieldType:  n.fieldType,
			Position:   i,
			StaticText: n.static,
		})
	}
	if err := uc.templateRepo.Create(template); err != nil {
		return nil, err
	}
	uc.templates[kind] = template
	return template, nil
}

// ensureProduct deduplica por la tupla de atributos físicos dentro del
// cliente: dos filas con el mismo tubo alimentan el mismo producto.
func (uc *UseCase) ensureProduct(
	customerID string,
	template *entity.ProductTemplate,
	row LegacyRow,
	parts legacy.GradeParts,
	remarks string,
	sum *Summary,
) (string, error) {
	diameter := strings.TrimSpace(legacy.Unescape(row.OutsideDiameter))
	weight := strings.TrimSpace(legacy.Unescape(row.Weight))

	key := strings.Join([]string{
		customerID, template.ID, diameter, weight,
		parts.Grade, parts.Coupling, parts.Range, parts.Condition, remarks,
	}, "|")
	if id, ok := uc.products[key]; ok {
		return id, nil
	}

	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		TemplateID: template.ID,
		CustomerID: customerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	byName := map[string]string{
		fieldWeight:    weight,
		fieldGrade:     parts.Grade,
		fieldCoupling:  parts.Coupling,
		fieldRange:     parts.Range,
		fieldCondition: parts.Condition,
		fieldRemarks:   remarks,
	}
	for i := range template.Fields {
		field := &template.Fields[i]
		switch field.FieldType {
		case entity.FieldMeasure:
			if diameter == "" {
				continue
			}
			d := diameter
			mm := measure.ToMillimeters(d)
			product.Values = append(product.Values, entity.FieldValue{
				ProductID:      product.ID,
				FieldID:        field.ID,
				ValueMeasure:   &d,
				ValueMeasureMM: &mm,
			})
		case entity.FieldText:
			text, ok := byName[field.Name]
			if !ok || text == "" {
				continue
			}
			t := text
			product.Values = append(product.Values, entity.FieldValue{
				ProductID: product.ID,
				FieldID:   field.ID,
				ValueText: &t,
			})
		}
	}
	if err := uc.productRepo.Create(product); err != nil {
		return "", err
	}
	uc.products[key] = product.ID
	sum.ProductsCreated++
	return product.ID, nil
}

func joinRemarks(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "; ")
}

// errEmptyCustomer fila sin cliente: no hay a quién imputar el movimiento.
var errEmptyCustomer = errors.New("fila sin cliente")

var kindTitle = cases.Title(language.AmericanEnglish)
