package usecase

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/runnersutah/pipetrack-api/internal/application/dto"
	"github.com/runnersutah/pipetrack-api/internal/domain"
	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
	"github.com/runnersutah/pipetrack-api/internal/domain/repository"
)

// TemplateUseCase casos de uso CRUD para plantillas de producto. El tipo de
// conteo no es editable después de creada: cambiarlo invalidaría el ledger
// de los productos existentes.
type TemplateUseCase struct {
	repo        repository.ProductTemplateRepository
	productRepo repository.ProductRepository
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(repo repository.ProductTemplateRepository, productRepo repository.ProductRepository) *TemplateUseCase {
	return &TemplateUseCase{repo: repo, productRepo: productRepo}
}

// Create crea una plantilla con sus definiciones de campo.
func (uc *TemplateUseCase) Create(in dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	existing, _ := uc.repo.GetByName(in.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	template := &entity.ProductTemplate{
		ID:           uuid.New().String(),
		Name:         in.Name,
		FormatString: in.FormatString,
		CountingType: in.CountingType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	fields, err := buildFields(template.ID, in.Fields)
	if err != nil {
		return nil, err
	}
	template.Fields = fields
	if err := uc.repo.Create(template); err != nil {
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// GetByID obtiene una plantilla con sus campos.
func (uc *TemplateUseCase) GetByID(id string) (*dto.TemplateResponse, error) {
	template, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}
	return toTemplateResponse(template), nil
}

// Update actualiza nombre, format string y campos de una plantilla.
// Reemplazar los campos de una plantilla con productos existentes dejaría
// valores huérfanos, así que se rechaza.
func (uc *TemplateUseCase) Update(id string, in dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	template, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}
	if in.Name != nil {
		template.Name = *in.Name
	}
	if in.FormatString != nil {
		template.FormatString = *in.FormatString
	}
	if in.Fields != nil {
		products, err := uc.productRepo.ListByTemplate(id, 1, 0)
		if err != nil {
			return nil, err
		}
		if len(products) > 0 {
			return nil, domain.ErrProductReferenced
		}
		fields, err := buildFields(template.ID, in.Fields)
		if err != nil {
			return nil, err
		}
		template.Fields = fields
	}
	template.UpdatedAt = time.Now()
	if err := uc.repo.Update(template); err != nil {
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// List lista plantillas con paginación.
func (uc *TemplateUseCase) List(page dto.PageRequest) (*dto.TemplateListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TemplateResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTemplateResponse(t))
	}
	return &dto.TemplateListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una plantilla sin productos asociados.
func (uc *TemplateUseCase) Delete(id string) error {
	products, err := uc.productRepo.ListByTemplate(id, 1, 0)
	if err != nil {
		return err
	}
	if len(products) > 0 {
		return domain.ErrProductReferenced
	}
	return uc.repo.Delete(id)
}

// buildFields materializa las definiciones de campo, ordenadas por Position.
// Los campos static requieren su texto; los choice, su lista de opciones.
func buildFields(templateID string, in []dto.TemplateFieldRequest) ([]entity.TemplateField, error) {
	fields := make([]entity.TemplateField, 0, len(in))
	for _, f := range in {
		if f.FieldType == entity.FieldStatic && f.StaticText == "" {
			return nil, domain.ErrInvalidInput
		}
		if f.FieldType == entity.FieldChoice && len(f.Choices) == 0 {
			return nil, domain.ErrInvalidInput
		}
		fields = append(fields, entity.TemplateField{
			ID:         uuid.New().String(),
			TemplateID: templateID,
			Name:       f.Name,
			FieldType:  f.FieldType,
			Required:   f.Required,
			Position:   f.Position,
			StaticText: f.StaticText,
			Choices:    f.Choices,
		})
	}
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Position < fields[j].Position })
	return fields, nil
}

func toTemplateResponse(t *entity.ProductTemplate) *dto.TemplateResponse {
	fields := make([]dto.TemplateFieldResponse, 0, len(t.Fields))
	for _, f := range t.Fields {
		fields = append(fields, dto.TemplateFieldResponse{
			ID:         f.ID,
			Name:       f.Name,
			FieldType:  f.FieldType,
			Required:   f.Required,
			Position:   f.Position,
			StaticText: f.StaticText,
			Choices:    f.Choices,
		})
	}
	return &dto.TemplateResponse{
		ID:           t.ID,
		Name:         t.Name,
		FormatString: t.FormatString,
		CountingType: t.CountingType,
		Fields:       fields,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
