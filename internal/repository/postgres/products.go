package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/printhaus/storefront/internal/domain"
	"github.com/printhaus/storefront/pkg/errors"
)

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

const productColumns = `id, name, slug, description, price, image, sizes, frames, is_active, created_at, updated_at`

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id.String())
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE slug = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, slug), slug)
}

func (r *productRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = true
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		var description, image sql.NullString

		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Slug,
			&description,
			&product.Price,
			&image,
			pq.Array(&product.Sizes),
			pq.Array(&product.Frames),
			&product.IsActive,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan product row", zap.Error(err))
			return nil, err
		}

		product.Description = description.String
		product.Image = image.String
		products = append(products, &product)
	}

	return products, rows.Err()
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, slug, description, price, image, sizes, frames, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	now := time.Now()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		product.Image,
		pq.Array(product.Sizes),
		pq.Array(product.Frames),
		product.IsActive,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &errors.ErrConflict{Resource: "product", Message: "slug already exists"}
		}
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}

	return nil
}

func (r *productRepository) scanOne(row *sql.Row, key string) (*domain.Product, error) {
	var product domain.Product
	var description, image sql.NullString

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&description,
		&product.Price,
		&image,
		pq.Array(&product.Sizes),
		pq.Array(&product.Frames),
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: key}
	}
	if err != nil {
		r.logger.Error("Failed to get product", zap.Error(err))
		return nil, err
	}

	product.Description = description.String
	product.Image = image.String
	return &product, nil
}
