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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL. Los
// productos se guardan en dos tablas (products y product_values) y se cargan
// siempre con sus valores.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto con sus valores de campo.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, template_id, customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.TemplateID, product.CustomerID, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return r.insertValues(product.Values)
}

func (r *ProductRepo) insertValues(values []entity.FieldValue) error {
	query := `
		INSERT INTO product_values
			(product_id, field_id, value_text, value_int, value_decimal, value_choice, value_measure, value_file, value_measure_mm)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, v := range values {
		_, err := r.q.Exec(context.Background(), query,
			v.ProductID, v.FieldID, v.ValueText, v.ValueInt, v.ValueDecimal,
			v.ValueChoice, v.ValueMeasure, v.ValueFile, v.ValueMeasureMM,
		)
		if err != nil {
			return fmt.Errorf("insert product value: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un producto por ID, con sus valores.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, template_id, customer_id, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.TemplateID, &p.CustomerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	values, err := r.loadValues(p.ID)
	if err != nil {
		return nil, err
	}
	p.Values = values
	return &p, nil
}

func (r *ProductRepo) loadValues(productID string) ([]entity.FieldValue, error) {
	query := `
		SELECT product_id, field_id, value_text, value_int, value_decimal, value_choice, value_measure, value_file, value_measure_mm
		FROM product_values WHERE product_id = $1`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product values: %w", err)
	}
	defer rows.Close()
	var values []entity.FieldValue
	for rows.Next() {
		var v entity.FieldValue
		if err := rows.Scan(&v.ProductID, &v.FieldID, &v.ValueText, &v.ValueInt, &v.ValueDecimal,
			&v.ValueChoice, &v.ValueMeasure, &v.ValueFile, &v.ValueMeasureMM); err != nil {
			return nil, fmt.Errorf("scan product value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// ListByCustomer lista los productos de un cliente con paginación, ordenados
// por la columna oculta en milímetros del primer campo measure (tamaño real,
// no orden lexicográfico) y después por fecha de creación.
func (r *ProductRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.template_id, p.customer_id, p.created_at, p.updated_at
		FROM products p
		LEFT JOIN product_values pv
			ON pv.product_id = p.id AND pv.value_measure_mm IS NOT NULL
		WHERE p.customer_id = $1
		GROUP BY p.id
		ORDER BY min(pv.value_measure_mm) NULLS LAST, p.created_at
		LIMIT $2 OFFSET $3`
	return r.list(query, customerID, limit, offset)
}

// ListByTemplate lista los productos de una plantilla con paginación.
func (r *ProductRepo) ListByTemplate(templateID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, template_id, customer_id, created_at, updated_at
		FROM products WHERE template_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`
	return r.list(query, templateID, limit, offset)
}

func (r *ProductRepo) list(query, arg string, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, arg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.TemplateID, &p.CustomerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range list {
		values, err := r.loadValues(p.ID)
		if err != nil {
			return nil, err
		}
		p.Values = values
	}
	return list, nil
}

// Update reemplaza los valores de un producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `UPDATE products SET updated_at = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, product.ID, product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM product_values WHERE product_id = $1`, product.ID); err != nil {
		return fmt.Errorf("clear product values: %w", err)
	}
	return r.insertValues(product.Values)
}

// Delete elimina un producto y sus valores (ON DELETE CASCADE). La FK del
// ledger es RESTRICT: un producto con historial no se puede borrar.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductReferenced
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
