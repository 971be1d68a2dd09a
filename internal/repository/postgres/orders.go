package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/printhaus/storefront/internal/domain"
	"github.com/printhaus/storefront/pkg/errors"
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

// Create writes the order and its items in one transaction
func (r *orderRepository) Create(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error {
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

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (id, user_id, payment_intent_id, status, currency, amount_minor, total, customer_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.ExecContext(ctx, orderQuery,
		order.ID,
		order.UserID,
		order.PaymentIntentID,
		order.Status,
		order.Currency,
		order.AmountMinor,
		order.Total,
		order.CustomerEmail,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, name, price, quantity, size, frame, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}

		_, err = tx.ExecContext(ctx, itemQuery,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Name,
			item.Price,
			item.Quantity,
			item.Size,
			item.Frame,
			item.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to create order item", zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

const orderColumns = `id, user_id, payment_intent_id, status, currency, amount_minor, total, customer_email, created_at, updated_at`

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id.String())
}

func (r *orderRepository) GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE payment_intent_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, intentID), intentID)
}

func (r *orderRepository) GetItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, name, price, quantity, size, frame, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.Error("Failed to get order items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		var size, frame sql.NullString

		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.Price,
			&item.Quantity,
			&size,
			&frame,
			&item.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan order item", zap.Error(err))
			return nil, err
		}

		item.Size = size.String
		item.Frame = frame.String
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// Stats computes the admin dashboard aggregates. Revenue sums paid orders
// with decimal arithmetic so cents do not drift through float accumulation.
func (r *orderRepository) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PAID'),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COALESCE(SUM(amount_minor) FILTER (WHERE status = 'PAID'), 0)
		FROM orders
	`

	var revenueMinor int64
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.OrderCount,
		&stats.PaidCount,
		&stats.PendingCount,
		&revenueMinor,
	)
	if err != nil {
		r.logger.Error("Failed to compute order stats", zap.Error(err))
		return nil, err
	}
	stats.Revenue, _ = decimal.NewFromInt(revenueMinor).Div(decimal.NewFromInt(100)).Float64()

	itemsQuery := `
		SELECT COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = 'PAID'
	`
	if err := r.db.QueryRowContext(ctx, itemsQuery).Scan(&stats.ItemsSold); err != nil {
		r.logger.Error("Failed to compute items sold", zap.Error(err))
		return nil, err
	}

	return stats, nil
}

func (r *orderRepository) scanOne(row *sql.Row, key string) (*domain.Order, error) {
	var order domain.Order
	var userID uuid.NullUUID
	var email sql.NullString

	err := row.Scan(
		&order.ID,
		&userID,
		&order.PaymentIntentID,
		&order.Status,
		&order.Currency,
		&order.AmountMinor,
		&order.Total,
		&email,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: key}
	}
	if err != nil {
		r.logger.Error("Failed to get order", zap.Error(err))
		return nil, err
	}

	if userID.Valid {
		order.UserID = &userID.UUID
	}
	order.CustomerEmail = email.String
	return &order, nil
}

func (r *orderRepository) scanRow(rows *sql.Rows) (*domain.Order, error) {
	var order domain.Order
	var userID uuid.NullUUID
	var email sql.NullString

	err := rows.Scan(
		&order.ID,
		&userID,
		&order.PaymentIntentID,
		&order.Status,
		&order.Currency,
		&order.AmountMinor,
		&order.Total,
		&email,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to scan order row", zap.Error(err))
		return nil, err
	}

	if userID.Valid {
		order.UserID = &userID.UUID
	}
	order.CustomerEmail = email.String
	return &order, nil
}
