package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/auroramotors/rental-billing/internal/config"
	"github.com/auroramotors/rental-billing/internal/domain"
	"github.com/auroramotors/rental-billing/internal/repository"
	"github.com/auroramotors/rental-billing/internal/xero"
	customError "github.com/auroramotors/rental-billing/pkg/errors"
)

// AccountingClient is the part of the Xero client the services depend on.
type AccountingClient interface {
	AuthorizationURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*xero.TokenResponse, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*xero.TokenResponse, error)
	Connections(ctx context.Context, accessToken string) ([]xero.Connection, error)
	UpsertContact(ctx context.Context, accessToken, tenantID, name, email string) (string, error)
	CreateInvoice(ctx context.Context, accessToken, tenantID string, invoice *xero.Invoice) (*xero.Invoice, error)
	EmailInvoice(ctx context.Context, accessToken, tenantID, invoiceID string) error
}

// CoordinationStore is the short-lived state the services keep in Redis.
type CoordinationStore interface {
	SaveOAuthState(ctx context.Context, state string) error
	ConsumeOAuthState(ctx context.Context, state string) (bool, error)
	MarkIssued(ctx context.Context, scheduleID string, dueDate time.Time) (bool, error)
}

// XeroService owns the Xero connection: the OAuth consent flow and the
// stored token set, refreshed ahead of expiry.
type XeroService struct {
	tokens repository.TokenRepository
	state  CoordinationStore
	client AccountingClient
	config *config.Config
}

func NewXeroService(
	tokens repository.TokenRepository,
	state CoordinationStore,
	client AccountingClient,
	config *config.Config,
) *XeroService {
	return &XeroService{
		tokens: tokens,
		state:  state,
		client: client,
		config: config,
	}
}

// BeginConsent starts the OAuth flow: stores a state nonce and returns the
// consent URL to redirect the user to.
func (s *XeroService) BeginConsent(ctx context.Context) (string, error) {
	if err := s.config.Xero.ValidateCredentials(); err != nil {
		return "", err
	}

	state := uuid.NewString()
	if err := s.state.SaveOAuthState(ctx, state); err != nil {
		return "", customError.WrapCacheError(err)
	}

	return s.client.AuthorizationURL(state), nil
}

// CompleteConsent finishes the OAuth flow: verifies the state nonce,
// exchanges the code, discovers the first tenant, and persists the token set.
func (s *XeroService) CompleteConsent(ctx context.Context, code, state string) (*domain.XeroToken, error) {
	if err := s.config.Xero.ValidateCredentials(); err != nil {
		return nil, err
	}

	ok, err := s.state.ConsumeOAuthState(ctx, state)
	if err != nil {
		return nil, customError.WrapCacheError(err)
	}
	if !ok {
		return nil, customError.WrapInvalidOAuthState()
	}

	tokenResp, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return nil, customError.WrapXeroAPIError("token exchange", err)
	}

	connections, err := s.client.Connections(ctx, tokenResp.AccessToken)
	if err != nil {
		return nil, customError.WrapXeroAPIError("connections", err)
	}

	token := newToken(tokenResp)
	if len(connections) > 0 {
		token.TenantID = connections[0].TenantID
		token.TenantName = connections[0].TenantName
		token.TenantType = connections[0].TenantType
	}

	if err := s.tokens.Save(ctx, token); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return token, nil
}

// ValidToken returns a token set that is safe to use for API calls,
// refreshing and persisting it when it is close to expiry. With no stored
// token it bootstraps from the configured refresh token, which is how the
// serverless deployment operates.
func (s *XeroService) ValidToken(ctx context.Context) (*domain.XeroToken, error) {
	token, err := s.tokens.GetLatest(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapDatabaseError(err)
		}
		return s.bootstrapFromConfig(ctx)
	}

	if !token.NeedsRefresh() {
		return token, nil
	}

	tokenResp, err := s.client.RefreshAccessToken(ctx, token.RefreshToken)
	if err != nil {
		return nil, customError.WrapXeroAPIError("token refresh", err)
	}

	applyRefresh(token, tokenResp)
	if err := s.tokens.Update(ctx, token); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	log.Println("xero: token refreshed")
	return token, nil
}

// Status reports the connection state for the status endpoint.
func (s *XeroService) Status(ctx context.Context) (*domain.ConnectionStatus, error) {
	token, err := s.tokens.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.ConnectionStatus{Connected: false}, nil
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.ConnectionStatus{
		Connected:    true,
		TenantID:     token.TenantID,
		TenantName:   token.TenantName,
		ExpiresAt:    token.ExpiresAt,
		Expired:      token.IsExpired(),
		NeedsRefresh: token.NeedsRefresh(),
	}, nil
}

// Disconnect removes all stored token sets.
func (s *XeroService) Disconnect(ctx context.Context) error {
	if err := s.tokens.DeleteAll(ctx); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

func (s *XeroService) bootstrapFromConfig(ctx context.Context) (*domain.XeroToken, error) {
	if s.config.Xero.RefreshToken == "" {
		return nil, customError.WrapXeroNotConnected()
	}

	tokenResp, err := s.client.RefreshAccessToken(ctx, s.config.Xero.RefreshToken)
	if err != nil {
		return nil, customError.WrapXeroAPIError("token refresh", err)
	}

	token := newToken(tokenResp)
	token.TenantID = s.config.Xero.TenantID

	if err := s.tokens.Save(ctx, token); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return token, nil
}

func newToken(resp *xero.TokenResponse) *domain.XeroToken {
	now := time.Now().UTC()
	return &domain.XeroToken{
		ID:           uuid.New(),
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		ExpiresAt:    now.Add(time.Duration(resp.ExpiresIn) * time.Second),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func applyRefresh(token *domain.XeroToken, resp *xero.TokenResponse) {
	token.AccessToken = resp.AccessToken
	if resp.RefreshToken != "" {
		token.RefreshToken = resp.RefreshToken
	}
	if resp.TokenType != "" {
		token.TokenType = resp.TokenType
	}
	token.ExpiresAt = time.Now().UTC().Add(time.Duration(resp.ExpiresIn) * time.Second)
}
