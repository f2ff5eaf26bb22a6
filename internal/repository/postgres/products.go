package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patramstore/storefront-api/internal/domain"
	"github.com/patramstore/storefront-api/pkg/errors"
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

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, price, mrp, category, description, photo_url, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product domain.Product
	var mrp sql.NullFloat64
	var category, description, photoURL sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&mrp,
		&category,
		&description,
		&photoURL,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get product", zap.Error(err))
		return nil, &errors.ErrUpstream{Service: "database", Err: err}
	}

	if mrp.Valid {
		product.MRP = &mrp.Float64
	}
	if category.Valid {
		product.Category = &category.String
	}
	if description.Valid {
		product.Description = &description.String
	}
	if photoURL.Valid {
		product.PhotoURL = &photoURL.String
	}

	return &product, nil
}

func (r *productRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	query := `
		SELECT id, name, price, mrp, category, description, photo_url, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, &errors.ErrUpstream{Service: "database", Err: err}
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var product domain.Product
		var mrp sql.NullFloat64
		var category, description, photoURL sql.NullString

		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&mrp,
			&category,
			&description,
			&photoURL,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			continue
		}

		if mrp.Valid {
			product.MRP = &mrp.Float64
		}
		if category.Valid {
			product.Category = &category.String
		}
		if description.Valid {
			product.Description = &description.String
		}
		if photoURL.Valid {
			product.PhotoURL = &photoURL.String
		}

		products = append(products, &product)
	}

	return products, rows.Err()
}
