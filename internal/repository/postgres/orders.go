package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patramstore/storefront-api/internal/domain"
	"github.com/patramstore/storefront-api/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

const orderColumns = `id, order_number, client, customer_email, status, total, discount,
		shipping_address, payment_method, payment_id, razorpay_order_id, created_at, updated_at`

// Create inserts the order row and its item snapshots in one
// transaction. An item-insert failure rolls back the order too, so a
// retried checkout never finds a half-created order in the store.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error {
	orderQuery := `
		INSERT INTO orders (id, order_number, client, customer_email, status, total, discount,
			shipping_address, payment_method, payment_id, razorpay_order_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, product_name, product_image, quantity, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}

	addressJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &errors.ErrUpstream{Service: "database", Err: err}
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, orderQuery,
		order.ID,
		order.OrderNumber,
		order.Client,
		order.CustomerEmail,
		order.Status,
		order.Total,
		order.Discount,
		addressJSON,
		order.PaymentMethod,
		order.PaymentID,
		order.GatewayOrderID,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return &errors.ErrUpstream{Service: "database", Err: err}
	}

	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}

		_, err := tx.ExecContext(ctx, itemQuery,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Name,
			item.PhotoRef,
			item.Quantity,
			item.UnitPrice,
			item.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to create order item", zap.Error(err))
			return &errors.ErrUpstream{Service: "database", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &errors.ErrUpstream{Service: "database", Err: err}
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOrder(r.db.QueryRowContext(ctx, query, id), id.String())
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`
	return r.scanOrder(r.db.QueryRowContext(ctx, query, orderNumber), orderNumber)
}

func (r *orderRepository) scanOrder(row *sql.Row, token string) (*domain.Order, error) {
	var order domain.Order
	var orderNumber, paymentID, gatewayOrderID sql.NullString
	var addressJSON []byte

	err := row.Scan(
		&order.ID,
		&orderNumber,
		&order.Client,
		&order.CustomerEmail,
		&order.Status,
		&order.Total,
		&order.Discount,
		&addressJSON,
		&order.PaymentMethod,
		&paymentID,
		&gatewayOrderID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: token}
	}
	if err != nil {
		r.logger.Error("Failed to get order", zap.Error(err))
		return nil, &errors.ErrUpstream{Service: "database", Err: err}
	}

	if orderNumber.Valid {
		order.OrderNumber = &orderNumber.String
	}
	if paymentID.Valid {
		order.PaymentID = &paymentID.String
	}
	if gatewayOrderID.Valid {
		order.GatewayOrderID = &gatewayOrderID.String
	}
	if len(addressJSON) > 0 {
		// Schema drift in legacy rows is tolerated: unknown fields are
		// dropped, missing fields stay empty.
		_ = json.Unmarshal(addressJSON, &order.ShippingAddress)
	}

	return &order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	query := `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err))
		return &errors.ErrUpstream{Service: "database", Err: err}
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}

	return nil
}

func (r *orderRepository) UpdatePaymentInfo(ctx context.Context, id uuid.UUID, paymentID, gatewayOrderID string, status domain.OrderStatus) error {
	query := `
		UPDATE orders
		SET payment_id = $2, razorpay_order_id = $3, status = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, paymentID, gatewayOrderID, status, time.Now())
	if err != nil {
		r.logger.Error("Failed to update order payment info", zap.Error(err))
		return &errors.ErrUpstream{Service: "database", Err: err}
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}

	return nil
}

func (r *orderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, &errors.ErrUpstream{Service: "database", Err: err}
	}
	defer rows.Close()

	return r.collectOrders(rows)
}

func (r *orderRepository) ListMissingOrderNumbers(ctx context.Context, limit int) ([]*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE order_number IS NULL OR order_number = ''
		ORDER BY created_at ASC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list orders missing numbers", zap.Error(err))
		return nil, &errors.ErrUpstream{Service: "database", Err: err}
	}
	defer rows.Close()

	return r.collectOrders(rows)
}

func (r *orderRepository) collectOrders(rows *sql.Rows) ([]*domain.Order, error) {
	var orders []*domain.Order
	for rows.Next() {
		var order domain.Order
		var orderNumber, paymentID, gatewayOrderID sql.NullString
		var addressJSON []byte

		err := rows.Scan(
			&order.ID,
			&orderNumber,
			&order.Client,
			&order.CustomerEmail,
			&order.Status,
			&order.Total,
			&order.Discount,
			&addressJSON,
			&order.PaymentMethod,
			&paymentID,
			&gatewayOrderID,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			continue
		}

		if orderNumber.Valid {
			order.OrderNumber = &orderNumber.String
		}
		if paymentID.Valid {
			order.PaymentID = &paymentID.String
		}
		if gatewayOrderID.Valid {
			order.GatewayOrderID = &gatewayOrderID.String
		}
		if len(addressJSON) > 0 {
			_ = json.Unmarshal(addressJSON, &order.ShippingAddress)
		}

		orders = append(orders, &order)
	}

	return orders, rows.Err()
}

func (r *orderRepository) SetOrderNumber(ctx context.Context, id uuid.UUID, orderNumber string) error {
	query := `UPDATE orders SET order_number = $2, updated_at = $3 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, orderNumber, time.Now())
	if err != nil {
		r.logger.Error("Failed to set order number", zap.Error(err))
		return &errors.ErrUpstream{Service: "database", Err: err}
	}

	return nil
}
