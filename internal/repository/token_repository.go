package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/auroramotors/rental-billing/internal/domain"
)

type tokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Save(ctx context.Context, token *domain.XeroToken) error {
	query := `
		INSERT INTO xero_tokens (id, access_token, refresh_token, token_type, expires_at, tenant_id, tenant_name, tenant_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		token.ID,
		token.AccessToken,
		token.RefreshToken,
		token.TokenType,
		token.ExpiresAt,
		token.TenantID,
		token.TenantName,
		token.TenantType,
		token.CreatedAt,
		token.UpdatedAt,
	)

	return err
}

func (r *tokenRepository) GetLatest(ctx context.Context) (*domain.XeroToken, error) {
	query := `
		SELECT id, access_token, refresh_token, token_type, expires_at, tenant_id, tenant_name, tenant_type, created_at, updated_at
		FROM xero_tokens
		ORDER BY created_at DESC
		LIMIT 1
	`

	var token domain.XeroToken
	err := r.db.GetContext(ctx, &token, query)
	if err != nil {
		return nil, err
	}

	return &token, nil
}

func (r *tokenRepository) Update(ctx context.Context, token *domain.XeroToken) error {
	query := `
		UPDATE xero_tokens
		SET access_token = $2, refresh_token = $3, token_type = $4, expires_at = $5, updated_at = $6
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		token.ID,
		token.AccessToken,
		token.RefreshToken,
		token.TokenType,
		token.ExpiresAt,
		time.Now().UTC(),
	)

	return err
}

func (r *tokenRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM xero_tokens`)
	return err
}
