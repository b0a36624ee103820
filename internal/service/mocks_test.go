package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/auroramotors/rental-billing/internal/domain"
	"github.com/auroramotors/rental-billing/internal/xero"
)

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Save(ctx context.Context, token *domain.XeroToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) GetLatest(ctx context.Context) (*domain.XeroToken, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.XeroToken), args.Error(1)
}

func (m *MockTokenRepository) Update(ctx context.Context, token *domain.XeroToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) Create(ctx context.Context, schedule *domain.RecurringSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RecurringSchedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringSchedule), args.Error(1)
}

func (m *MockScheduleRepository) List(ctx context.Context) ([]*domain.RecurringSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RecurringSchedule), args.Error(1)
}

func (m *MockScheduleRepository) ListActive(ctx context.Context) ([]*domain.RecurringSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RecurringSchedule), args.Error(1)
}

func (m *MockScheduleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockCoordinationStore struct {
	mock.Mock
}

func (m *MockCoordinationStore) SaveOAuthState(ctx context.Context, state string) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockCoordinationStore) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	args := m.Called(ctx, state)
	return args.Bool(0), args.Error(1)
}

func (m *MockCoordinationStore) MarkIssued(ctx context.Context, scheduleID string, dueDate time.Time) (bool, error) {
	args := m.Called(ctx, scheduleID, dueDate)
	return args.Bool(0), args.Error(1)
}

type MockAccountingClient struct {
	mock.Mock
}

func (m *MockAccountingClient) AuthorizationURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockAccountingClient) ExchangeCode(ctx context.Context, code string) (*xero.TokenResponse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*xero.TokenResponse), args.Error(1)
}

func (m *MockAccountingClient) RefreshAccessToken(ctx context.Context, refreshToken string) (*xero.TokenResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*xero.TokenResponse), args.Error(1)
}

func (m *MockAccountingClient) Connections(ctx context.Context, accessToken string) ([]xero.Connection, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]xero.Connection), args.Error(1)
}

func (m *MockAccountingClient) UpsertContact(ctx context.Context, accessToken, tenantID, name, email string) (string, error) {
	args := m.Called(ctx, accessToken, tenantID, name, email)
	return args.String(0), args.Error(1)
}

func (m *MockAccountingClient) CreateInvoice(ctx context.Context, accessToken, tenantID string, invoice *xero.Invoice) (*xero.Invoice, error) {
	args := m.Called(ctx, accessToken, tenantID, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*xero.Invoice), args.Error(1)
}

func (m *MockAccountingClient) EmailInvoice(ctx context.Context, accessToken, tenantID, invoiceID string) error {
	args := m.Called(ctx, accessToken, tenantID, invoiceID)
	return args.Error(0)
}
