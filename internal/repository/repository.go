package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/printhaus/storefront/internal/domain"
)

// ProductRepository reads the catalog
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
}

// UserRepository is the single persistent identity store
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

// AuthSessionRepository stores server-side login sessions
type AuthSessionRepository interface {
	Create(ctx context.Context, session *domain.AuthSession) error
	GetByToken(ctx context.Context, token string) (*domain.AuthSession, error)
	Delete(ctx context.Context, token string) error
}

// OrderRepository persists settled checkouts and serves the dashboard
// aggregates
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Order, error)
	GetItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Order, error)
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}

// Repositories aggregates all repository implementations. Initialized once
// at process start and handed to handlers and services; nothing module-level.
type Repositories struct {
	Product     ProductRepository
	User        UserRepository
	AuthSession AuthSessionRepository
	Order       OrderRepository
}
