package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patramstore/storefront-api/internal/domain"
	"github.com/patramstore/storefront-api/pkg/errors"
)

type customerRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *sql.DB, logger *zap.Logger) *customerRepository {
	return &customerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now()
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	if customer.UpdatedAt.IsZero() {
		customer.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.PasswordHash,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create customer", zap.Error(err))
		return &errors.ErrUpstream{Service: "database", Err: err}
	}

	return nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, password_hash, created_at, updated_at
		FROM customers
		WHERE lower(email) = lower($1)
	`
	return r.scanCustomer(r.db.QueryRowContext(ctx, query, email), email)
}

func (r *customerRepository) SearchByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	// Stored phone formats vary; compare on the last 10 digits.
	query := `
		SELECT id, name, email, phone, password_hash, created_at, updated_at
		FROM customers
		WHERE right(regexp_replace(phone, '[^0-9]', '', 'g'), 10) = right($1, 10)
		LIMIT 1
	`
	return r.scanCustomer(r.db.QueryRowContext(ctx, query, phone), phone)
}

func (r *customerRepository) scanCustomer(row *sql.Row, token string) (*domain.Customer, error) {
	var customer domain.Customer

	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.PasswordHash,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "customer", ID: token}
	}
	if err != nil {
		r.logger.Error("Failed to get customer", zap.Error(err))
		return nil, &errors.ErrUpstream{Service: "database", Err: err}
	}

	return &customer, nil
}
