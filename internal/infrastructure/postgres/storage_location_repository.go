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

var _ repository.StorageLocationRepository = (*StorageLocationRepo)(nil)

// StorageLocationRepo implementación de StorageLocationRepository sobre PostgreSQL.
type StorageLocationRepo struct {
	q Querier
}

// NewStorageLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStorageLocationRepository(q Querier) *StorageLocationRepo {
	return &StorageLocationRepo{q: q}
}

// Create persiste un nuevo rack.
func (r *StorageLocationRepo) Create(location *entity.StorageLocation) error {
	query := `
		INSERT INTO storage_locations (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Name, location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert storage location: %w", err)
	}
	return nil
}

// GetByID obtiene un rack por ID.
func (r *StorageLocationRepo) GetByID(id string) (*entity.StorageLocation, error) {
	return r.getBy("id = $1", id)
}

// GetByName obtiene un rack por nombre.
func (r *StorageLocationRepo) GetByName(name string) (*entity.StorageLocation, error) {
	return r.getBy("name = $1", name)
}

func (r *StorageLocationRepo) getBy(where, arg string) (*entity.StorageLocation, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM storage_locations WHERE ` + where
	var l entity.StorageLocation
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage location: %w", err)
	}
	return &l, nil
}

// List lista racks ordenados por nombre con paginación.
func (r *StorageLocationRepo) List(limit, offset int) ([]*entity.StorageLocation, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM storage_locations ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list storage locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorageLocation
	for rows.Next() {
		var l entity.StorageLocation
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan storage location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update renombra un rack.
func (r *StorageLocationRepo) Update(location *entity.StorageLocation) error {
	query := `UPDATE storage_locations SET name = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, location.ID, location.Name, location.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update storage location: %w", err)
	}
	return nil
}

// Delete elimina un rack por ID.
func (r *StorageLocationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM storage_locations WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductReferenced
		}
		return fmt.Errorf("delete storage location: %w", err)
	}
	return nil
}
