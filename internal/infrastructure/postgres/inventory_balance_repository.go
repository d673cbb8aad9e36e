package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
	"github.com/runnersutah/pipetrack-api/internal/domain/repository"
)

var _ repository.InventoryBalanceRepository = (*InventoryBalanceRepo)(nil)

// InventoryBalanceRepo implementación de los balances materializados sobre
// PostgreSQL. Las filas son derivadas del ledger; se reescriben completas en
// cada recálculo.
type InventoryBalanceRepo struct {
	q Querier
}

// NewInventoryBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryBalanceRepository(q Querier) *InventoryBalanceRepo {
	return &InventoryBalanceRepo{q: q}
}

// Upsert inserta o reemplaza el balance de una terna (cliente, producto, rack).
func (r *InventoryBalanceRepo) Upsert(balance *entity.InventoryBalance) error {
	query := `
		INSERT INTO inventory_balances (customer_id, product_id, location_id, joints, footage, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (customer_id, product_id, location_id)
		DO UPDATE SET joints = EXCLUDED.joints, footage = EXCLUDED.footage, last_updated = EXCLUDED.last_updated`
	_, err := r.q.Exec(context.Background(), query,
		balance.CustomerID, balance.ProductID, balance.LocationID,
		balance.Joints, balance.Footage, balance.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory balance: %w", err)
	}
	return nil
}

// Get obtiene el balance de una terna.
func (r *InventoryBalanceRepo) Get(customerID, productID, locationID string) (*entity.InventoryBalance, error) {
	query := `
		SELECT customer_id, product_id, location_id, joints, footage, last_updated
		FROM inventory_balances
		WHERE customer_id = $1 AND product_id = $2 AND location_id = $3`
	var b entity.InventoryBalance
	err := r.q.QueryRow(context.Background(), query, customerID, productID, locationID).Scan(
		&b.CustomerID, &b.ProductID, &b.LocationID, &b.Joints, &b.Footage, &b.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory balance: %w", err)
	}
	return &b, nil
}

// ListByCustomer lista todos los balances de un cliente.
func (r *InventoryBalanceRepo) ListByCustomer(customerID string) ([]*entity.InventoryBalance, error) {
	query := `
		SELECT customer_id, product_id, location_id, joints, footage, last_updated
		FROM inventory_balances WHERE customer_id = $1`
	return r.list(query, customerID)
}

// ListByKey lista los balances de una pareja (cliente, producto), uno por rack.
func (r *InventoryBalanceRepo) ListByKey(customerID, productID string) ([]*entity.InventoryBalance, error) {
	query := `
		SELECT customer_id, product_id, location_id, joints, footage, last_updated
		FROM inventory_balances WHERE customer_id = $1 AND product_id = $2`
	return r.list(query, customerID, productID)
}

func (r *InventoryBalanceRepo) list(query string, args ...any) ([]*entity.InventoryBalance, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryBalance
	for rows.Next() {
		var b entity.InventoryBalance
		if err := rows.Scan(&b.CustomerID, &b.ProductID, &b.LocationID, &b.Joints, &b.Footage, &b.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan inventory balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// DeleteByKey elimina las filas derivadas de una pareja antes de rematerializarlas.
func (r *InventoryBalanceRepo) DeleteByKey(customerID, productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM inventory_balances WHERE customer_id = $1 AND product_id = $2`,
		customerID, productID,
	)
	if err != nil {
		return fmt.Errorf("delete inventory balances: %w", err)
	}
	return nil
}
