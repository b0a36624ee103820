package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/auroramotors/rental-billing/internal/domain"
)

// TokenRepository defines the interface for Xero token persistence
type TokenRepository interface {
	// Save stores a new token set
	Save(ctx context.Context, token *domain.XeroToken) error

	// GetLatest retrieves the most recently stored token set
	GetLatest(ctx context.Context) (*domain.XeroToken, error)

	// Update updates an existing token set after a refresh
	Update(ctx context.Context, token *domain.XeroToken) error

	// DeleteAll removes all stored token sets (disconnect)
	DeleteAll(ctx context.Context) error
}

// RecurringScheduleRepository defines the interface for recurring billing schedules
type RecurringScheduleRepository interface {
	// Create creates a new recurring schedule
	Create(ctx context.Context, schedule *domain.RecurringSchedule) error

	// GetByID retrieves a recurring schedule by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RecurringSchedule, error)

	// List retrieves all recurring schedules
	List(ctx context.Context) ([]*domain.RecurringSchedule, error)

	// ListActive retrieves all active recurring schedules
	ListActive(ctx context.Context) ([]*domain.RecurringSchedule, error)

	// UpdateStatus updates the status of a recurring schedule
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
