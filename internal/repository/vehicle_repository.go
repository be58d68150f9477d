package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/vehicle-marketplace/internal/domain"
)

// VehicleRepository defines persistence access for owner vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Vehicle, error)
}

type vehicleRepository struct {
	pool *pgxpool.Pool
}

// NewVehicleRepository returns a Postgres-backed implementation.
func NewVehicleRepository(pool *pgxpool.Pool) VehicleRepository {
	return &vehicleRepository{pool: pool}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
        INSERT INTO vehicles (id, owner_id, make, model, year, plate)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		vehicle.ID,
		vehicle.OwnerID,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.Plate,
	).Scan(&vehicle.CreatedAt, &vehicle.UpdatedAt)
}

func (r *vehicleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM vehicles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	const query = `
        SELECT id, owner_id, make, model, year, plate, created_at, updated_at
        FROM vehicles WHERE id=$1`

	var vehicle domain.Vehicle
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&vehicle.ID,
		&vehicle.OwnerID,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.Plate,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Vehicle, error) {
	const query = `
        SELECT id, owner_id, make, model, year, plate, created_at, updated_at
        FROM vehicles WHERE owner_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var vehicle domain.Vehicle
		if err := rows.Scan(
			&vehicle.ID,
			&vehicle.OwnerID,
			&vehicle.Make,
			&vehicle.Model,
			&vehicle.Year,
			&vehicle.Plate,
			&vehicle.CreatedAt,
			&vehicle.UpdatedAt,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, rows.Err()
}
