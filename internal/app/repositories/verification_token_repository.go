package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/db"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
)

// VerificationTokenRepository handles database operations for email verification tokens
type VerificationTokenRepository struct {
	db *db.DB
}

// NewVerificationTokenRepository creates a new VerificationTokenRepository
func NewVerificationTokenRepository(database *db.DB) *VerificationTokenRepository {
	return &VerificationTokenRepository{db: database}
}

// CreateTx stores a token; earlier tokens of the same user are removed first
func (r *VerificationTokenRepository) CreateTx(ctx context.Context, q db.Querier, token *models.EmailVerificationToken) error {
	if err := r.DeleteByUserTx(ctx, q, token.UserID); err != nil {
		return err
	}

	token.CreatedAt = time.Now().UTC()
	query, args, err := r.db.Builder().
		Insert("email_verification_tokens").
		Columns("user_id", "token", "expires_at", "created_at").
		Values(token.UserID, token.Token, token.ExpiresAt.UTC(), token.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := q.QueryRowContext(ctx, query, args...).Scan(&token.ID); err != nil {
		return fmt.Errorf("error creating verification token: %w", err)
	}
	return nil
}

// Create stores a token outside of any caller transaction
func (r *VerificationTokenRepository) Create(ctx context.Context, token *models.EmailVerificationToken) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx db.Querier) error {
		return r.CreateTx(ctx, tx, token)
	})
}

// GetByToken retrieves token information by token value
func (r *VerificationTokenRepository) GetByToken(ctx context.Context, token string) (*models.EmailVerificationToken, error) {
	query, args, err := r.db.Builder().
		Select("id", "user_id", "token", "expires_at", "created_at").
		From("email_verification_tokens").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var t models.EmailVerificationToken
	err = r.db.SQL.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error getting token info: %w", err)
	}
	return &t, nil
}

// DeleteByUserTx removes every token of a user
func (r *VerificationTokenRepository) DeleteByUserTx(ctx context.Context, q db.Querier, userID int64) error {
	query, args, err := r.db.Builder().
		Delete("email_verification_tokens").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error deleting verification tokens: %w", err)
	}
	return nil
}

// DeleteExpired purges tokens that expired before now and returns how many were removed
func (r *VerificationTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := r.db.Builder().
		Delete("email_verification_tokens").
		Where(sq.Lt{"expires_at": now.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	res, err := r.db.SQL.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("error purging verification tokens: %w", err)
	}
	return res.RowsAffected()
}
