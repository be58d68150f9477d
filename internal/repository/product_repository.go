package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/vehicle-marketplace/internal/domain"
)

// ProductRepository defines persistence access for seller listings.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, limit, offset int) ([]domain.Product, error)
	GetOwner(ctx context.Context, id string) (*domain.OwnershipFact, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (id, seller_id, name, description, price_cents, stock)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		product.ID,
		product.SellerID,
		product.Name,
		product.Description,
		product.PriceCents,
		product.Stock,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET name=$1, description=$2, price_cents=$3, stock=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		product.Name,
		product.Description,
		product.PriceCents,
		product.Stock,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
        SELECT id, seller_id, name, description, price_cents, stock, created_at, updated_at
        FROM products WHERE id=$1`

	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.SellerID,
		&product.Name,
		&product.Description,
		&product.PriceCents,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	const query = `
        SELECT id, seller_id, name, description, price_cents, stock, created_at, updated_at
        FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.SellerID,
			&product.Name,
			&product.Description,
			&product.PriceCents,
			&product.Stock,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// GetOwner resolves the ownership fact for a listing. Products are always
// seller-owned.
func (r *productRepository) GetOwner(ctx context.Context, id string) (*domain.OwnershipFact, error) {
	const query = `SELECT id, seller_id FROM products WHERE id=$1`

	fact := domain.OwnershipFact{RequiredRole: domain.RoleSeller}
	if err := r.pool.QueryRow(ctx, query, id).Scan(&fact.ResourceID, &fact.OwnerID); err != nil {
		return nil, err
	}
	return &fact, nil
}
