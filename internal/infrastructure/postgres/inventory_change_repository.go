package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
	"github.com/runnersutah/pipetrack-api/internal/domain/repository"
)

var _ repository.InventoryChangeRepository = (*InventoryChangeRepo)(nil)

const changeColumns = `id, customer_id, product_id, location_id, date, joints, footage,
	rr, po, afe, carrier, received_transferred, manufacturer, attachment_id, created_at, created_by`

// InventoryChangeRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
type InventoryChangeRepo struct {
	q Querier
}

// NewInventoryChangeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryChangeRepository(q Querier) *InventoryChangeRepo {
	return &InventoryChangeRepo{q: q}
}

// Create persiste un registro del ledger.
func (r *InventoryChangeRepo) Create(change *entity.InventoryChange) error {
	query := `
		INSERT INTO inventory_changes (` + changeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		change.ID, change.CustomerID, change.ProductID, change.LocationID,
		change.Date, change.Joints, change.Footage,
		change.RR, change.PO, change.AFE, change.Carrier,
		change.ReceivedTransferred, change.Manufacturer, nullable(change.AttachmentID),
		change.CreatedAt, change.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert inventory change: %w", err)
	}
	return nil
}

// GetByID obtiene un registro del ledger por ID.
func (r *InventoryChangeRepo) GetByID(id string) (*entity.InventoryChange, error) {
	query := `SELECT ` + changeColumns + ` FROM inventory_changes WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	change, err := scanChange(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory change: %w", err)
	}
	return change, nil
}

// ListByKey devuelve TODOS los registros de una pareja (cliente, producto) en
// orden cronológico: es la entrada del recálculo y de los acumulados.
func (r *InventoryChangeRepo) ListByKey(customerID, productID string) ([]*entity.InventoryChange, error) {
	query := `
		SELECT ` + changeColumns + `
		FROM inventory_changes
		WHERE customer_id = $1 AND product_id = $2
		ORDER BY date, id`
	rows, err := r.q.Query(context.Background(), query, customerID, productID)
	if err != nil {
		return nil, fmt.Errorf("list inventory changes by key: %w", err)
	}
	return collectChanges(rows)
}

// ListByCustomer lista el ledger de un cliente, filtrable por rango de fechas.
func (r *InventoryChangeRepo) ListByCustomer(customerID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryChange, error) {
	query := `
		SELECT ` + changeColumns + `
		FROM inventory_changes
		WHERE customer_id = $1
			AND ($2::timestamptz IS NULL OR date >= $2)
			AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC, id
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, customerID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory changes: %w", err)
	}
	return collectChanges(rows)
}

// CountByProduct cuenta los registros del ledger que referencian un producto.
func (r *InventoryChangeRepo) CountByProduct(productID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM inventory_changes WHERE product_id = $1`, productID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count inventory changes: %w", err)
	}
	return n, nil
}

// Delete elimina un registro del ledger (corrección administrativa).
func (r *InventoryChangeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_changes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory change: %w", err)
	}
	return nil
}

func scanChange(row pgx.Row) (*entity.InventoryChange, error) {
	var c entity.InventoryChange
	var attachmentID *string
	err := row.Scan(
		&c.ID, &c.CustomerID, &c.ProductID, &c.LocationID,
		&c.Date, &c.Joints, &c.Footage,
		&c.RR, &c.PO, &c.AFE, &c.Carrier,
		&c.ReceivedTransferred, &c.Manufacturer, &attachmentID,
		&c.CreatedAt, &c.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if attachmentID != nil {
		c.AttachmentID = *attachmentID
	}
	return &c, nil
}

func collectChanges(rows pgx.Rows) ([]*entity.InventoryChange, error) {
	defer rows.Close()
	var list []*entity.InventoryChange
	for rows.Next() {
		c, err := scanChange(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory change: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// nullable convierte cadena vacía en NULL (para FKs opcionales).
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
