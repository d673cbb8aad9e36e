package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/runnersutah/pipetrack-api/internal/domain"
	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
	"github.com/runnersutah/pipetrack-api/internal/domain/repository"
)

var _ repository.ProductTemplateRepository = (*ProductTemplateRepo)(nil)

// ProductTemplateRepo implementación de ProductTemplateRepository sobre
// PostgreSQL. Las plantillas se guardan en dos tablas (product_templates y
// template_fields) y se cargan siempre completas, campos en orden de Position.
type ProductTemplateRepo struct {
	q Querier
}

// NewProductTemplateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductTemplateRepository(q Querier) *ProductTemplateRepo {
	return &ProductTemplateRepo{q: q}
}

// Create persiste una plantilla con sus campos.
func (r *ProductTemplateRepo) Create(template *entity.ProductTemplate) error {
	query := `
		INSERT INTO product_templates (id, name, format_string, counting_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		template.ID, template.Name, template.FormatString, template.CountingType,
		template.CreatedAt, template.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product template: %w", err)
	}
	return r.insertFields(template.Fields)
}

func (r *ProductTemplateRepo) insertFields(fields []entity.TemplateField) error {
	query := `
		INSERT INTO template_fields (id, template_id, name, field_type, required, position, static_text, choices)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, f := range fields {
		_, err := r.q.Exec(context.Background(), query,
			f.ID, f.TemplateID, f.Name, f.FieldType, f.Required, f.Position, f.StaticText, f.Choices,
		)
		if err != nil {
			return fmt.Errorf("insert template field: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una plantilla por ID, con sus campos.
func (r *ProductTemplateRepo) GetByID(id string) (*entity.ProductTemplate, error) {
	return r.getBy("id = $1", id)
}

// GetByName obtiene una plantilla por nombre, con sus campos.
func (r *ProductTemplateRepo) GetByName(name string) (*entity.ProductTemplate, error) {
	return r.getBy("name = $1", name)
}

func (r *ProductTemplateRepo) getBy(where, arg string) (*entity.ProductTemplate, error) {
	query := `
		SELECT id, name, format_string, counting_type, created_at, updated_at
		FROM product_templates WHERE ` + where
	var t entity.ProductTemplate
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&t.ID, &t.Name, &t.FormatString, &t.CountingType, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product template: %w", err)
	}
	fields, err := r.loadFields(t.ID)
	if err != nil {
		return nil, err
	}
	t.Fields = fields
	return &t, nil
}

func (r *ProductTemplateRepo) loadFields(templateID string) ([]entity.TemplateField, error) {
	query := `
		SELECT id, template_id, name, field_type, required, position, static_text, choices
		FROM template_fields WHERE template_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, templateID)
	if err != nil {
		return nil, fmt.Errorf("list template fields: %w", err)
	}
	defer rows.Close()
	var fields []entity.TemplateField
	for rows.Next() {
		var f entity.TemplateField
		if err := rows.Scan(&f.ID, &f.TemplateID, &f.Name, &f.FieldType, &f.Required, &f.Position, &f.StaticText, &f.Choices); err != nil {
			return nil, fmt.Errorf("scan template field: %w", err)
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// List lista plantillas ordenadas por nombre, cada una con sus campos.
func (r *ProductTemplateRepo) List(limit, offset int) ([]*entity.ProductTemplate, error) {
	query := `
		SELECT id, name, format_string, counting_type, created_at, updated_at
		FROM product_templates ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list product templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductTemplate
	for rows.Next() {
		var t entity.ProductTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.FormatString, &t.CountingType, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product template: %w", err)
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range list {
		fields, err := r.loadFields(t.ID)
		if err != nil {
			return nil, err
		}
		t.Fields = fields
	}
	return list, nil
}

// Update actualiza la plantilla y reemplaza sus campos. CountingType no cambia.
func (r *ProductTemplateRepo) Update(template *entity.ProductTemplate) error {
	query := `
		UPDATE product_templates SET name = $2, format_string = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		template.ID, template.Name, template.FormatString, template.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product template: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM template_fields WHERE template_id = $1`, template.ID); err != nil {
		return fmt.Errorf("clear template fields: %w", err)
	}
	return r.insertFields(template.Fields)
}

// Delete elimina una plantilla y sus campos (ON DELETE CASCADE).
func (r *ProductTemplateRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM product_templates WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductReferenced
		}
		return fmt.Errorf("delete product template: %w", err)
	}
	return nil
}
