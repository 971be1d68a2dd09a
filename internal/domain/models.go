package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog entry (an art print with optional variants)
type Product struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description string
	Price       float64
	Image       string
	Sizes       []string
	Frames      []string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// User represents a registered customer account
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthSession is a server-side login session issued at sign-in
type AuthSession struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Order represents a settled checkout
type Order struct {
	ID              uuid.UUID
	UserID          *uuid.UUID
	PaymentIntentID string
	Status          OrderStatus
	Currency        string
	AmountMinor     int64
	Total           float64
	CustomerEmail   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem is one cart line frozen into an order at checkout
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID string
	Name      string
	Price     float64
	Quantity  int
	Size      string
	Frame     string
	CreatedAt time.Time
}

// DashboardStats carries the admin dashboard aggregates
type DashboardStats struct {
	OrderCount   int
	PaidCount    int
	PendingCount int
	Revenue      float64
	ItemsSold    int
}
