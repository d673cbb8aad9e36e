package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/runnersutah/pipetrack-api/internal/application/dto"
	"github.com/runnersutah/pipetrack-api/internal/domain"
	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
	"github.com/runnersutah/pipetrack-api/internal/domain/measure"
	"github.com/runnersutah/pipetrack-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Los valores se validan
// contra las definiciones de campo de la plantilla antes de persistir.
type ProductUseCase struct {
	repo         repository.ProductRepository
	templateRepo repository.ProductTemplateRepository
	customerRepo repository.CustomerRepository
	changeRepo   repository.InventoryChangeRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	templateRepo repository.ProductTemplateRepository,
	customerRepo repository.CustomerRepository,
	changeRepo repository.InventoryChangeRepository,
) *ProductUseCase {
	return &ProductUseCase{
		repo:         repo,
		templateRepo: templateRepo,
		customerRepo: customerRepo,
		changeRepo:   changeRepo,
	}
}

// Create crea un producto de un cliente validando sus valores contra la
// plantilla.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	template, err := uc.templateRepo.GetByID(in.TemplateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		TemplateID: in.TemplateID,
		CustomerID: in.CustomerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	values, err := buildValues(template, product.ID, in.Values)
	if err != nil {
		return nil, err
	}
	product.Values = values
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(template, product), nil
}

// GetByID obtiene un producto con sus valores resueltos.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	template, err := uc.templateRepo.GetByID(product.TemplateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(template, product), nil
}

// Update reemplaza los valores de un producto. Plantilla y dueño no cambian.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	template, err := uc.templateRepo.GetByID(product.TemplateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrNotFound
	}
	values, err := buildValues(template, product.ID, in.Values)
	if err != nil {
		return nil, err
	}
	product.Values = values
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(template, product), nil
}

// ListByCustomer lista los productos de un cliente con paginación.
func (uc *ProductUseCase) ListByCustomer(customerID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCustomer(customerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		template, err := uc.templateRepo.GetByID(p.TemplateID)
		if err != nil {
			return nil, err
		}
		if template == nil {
			continue
		}
		items = append(items, *toProductResponse(template, p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto sin registros en el ledger. Un producto
// referenciado no se borra: se rechaza para no dejar el historial huérfano.
func (uc *ProductUseCase) Delete(id string) error {
	count, err := uc.changeRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrProductReferenced
	}
	return uc.repo.Delete(id)
}

// buildValues valida cada valor contra su definición de campo y construye la
// unión discriminada. Para campos measure calcula además la columna oculta en
// milímetros que permite ordenar por tamaño real.
func buildValues(template *entity.ProductTemplate, productID string, in []dto.FieldValueRequest) ([]entity.FieldValue, error) {
	values := make([]entity.FieldValue, 0, len(in))
	provided := make(map[string]bool, len(in))

	for _, v := range in {
		field := template.FieldByID(v.FieldID)
		if field == nil {
			return nil, domain.ErrInvalidInput
		}
		fv := entity.FieldValue{ProductID: productID, FieldID: v.FieldID}
		var has bool
		switch field.FieldType {
		case entity.FieldText:
			fv.ValueText, has = v.Text, v.Text != nil
		case entity.FieldInt:
			fv.ValueInt, has = v.Int, v.Int != nil
		case entity.FieldDecimal:
			fv.ValueDecimal, has = v.Decimal, v.Decimal != nil
		case entity.FieldChoice:
			if v.Choice != nil {
				if !validChoice(field.Choices, *v.Choice) {
					return nil, domain.ErrInvalidInput
				}
				fv.ValueChoice, has = v.Choice, true
			}
		case entity.FieldMeasure:
			if v.Measure != nil {
				mm := measure.ToMillimeters(*v.Measure)
				fv.ValueMeasure, fv.ValueMeasureMM, has = v.Measure, &mm, true
			}
		case entity.FieldFile:
			fv.ValueFile, has = v.File, v.File != nil
		case entity.FieldStatic:
			// Los campos static no llevan valor por producto.
			return nil, domain.ErrInvalidInput
		default:
			return nil, domain.ErrInvalidInput
		}
		if !has {
			return nil, domain.ErrInvalidInput
		}
		provided[v.FieldID] = true
		values = append(values, fv)
	}

	for i := range template.Fields {
		f := &template.Fields[i]
		if f.Required && f.FieldType != entity.FieldStatic && !provided[f.ID] {
			return nil, domain.ErrMissingRequiredField
		}
	}
	return values, nil
}

func validChoice(choices json.RawMessage, value string) bool {
	var opts []string
	if err := json.Unmarshal(choices, &opts); err != nil {
		return false
	}
	for _, o := range opts {
		if o == value {
			return true
		}
	}
	return false
}

func toProductResponse(template *entity.ProductTemplate, p *entity.Product) *dto.ProductResponse {
	values := make([]dto.FieldValueResponse, 0, len(template.Fields))
	for i := range template.Fields {
		field := template.Fields[i]
		var resolved any
		if field.FieldType == entity.FieldStatic {
			resolved = field.StaticText
		} else if v := p.ValueFor(field.ID); v != nil {
			resolved = v.Value(field)
		}
		values = append(values, dto.FieldValueResponse{
			FieldID:   field.ID,
			FieldName: field.Name,
			FieldType: field.FieldType,
			Value:     resolved,
		})
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		TemplateID: p.TemplateID,
		CustomerID: p.CustomerID,
		Label:      template.RenderLabel(p),
		Values:     values,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
