package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/printhaus/storefront/internal/domain"
	"github.com/printhaus/storefront/pkg/errors"
)

type authSessionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAuthSessionRepository creates a new auth session repository
func NewAuthSessionRepository(db *sql.DB, logger *zap.Logger) *authSessionRepository {
	return &authSessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *authSessionRepository) Create(ctx context.Context, session *domain.AuthSession) error {
	query := `
		INSERT INTO auth_sessions (token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		session.Token,
		session.UserID,
		session.ExpiresAt,
		session.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create auth session", zap.Error(err))
		return err
	}

	return nil
}

func (r *authSessionRepository) GetByToken(ctx context.Context, token string) (*domain.AuthSession, error) {
	query := `
		SELECT token, user_id, expires_at, created_at
		FROM auth_sessions
		WHERE token = $1 AND expires_at > now()
	`

	var session domain.AuthSession
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&session.Token,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrUnauthorized{Message: "invalid or expired session"}
	}
	if err != nil {
		r.logger.Error("Failed to get auth session", zap.Error(err))
		return nil, err
	}

	return &session, nil
}

func (r *authSessionRepository) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM auth_sessions WHERE token = $1`

	_, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		r.logger.Error("Failed to delete auth session", zap.Error(err))
		return err
	}

	return nil
}
