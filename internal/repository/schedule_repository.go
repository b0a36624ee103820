package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/auroramotors/rental-billing/internal/domain"
)

type recurringScheduleRepository struct {
	db *sqlx.DB
}

func NewRecurringScheduleRepository(db *sqlx.DB) RecurringScheduleRepository {
	return &recurringScheduleRepository{db: db}
}

func (r *recurringScheduleRepository) Create(ctx context.Context, schedule *domain.RecurringSchedule) error {
	query := `
		INSERT INTO recurring_schedules (id, booking_ref, contact_name, contact_email, amount, frequency, start_date, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		schedule.ID,
		schedule.BookingRef,
		schedule.ContactName,
		schedule.ContactEmail,
		schedule.Amount,
		schedule.Frequency,
		schedule.StartDate,
		schedule.Description,
		schedule.Status,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)

	return err
}

func (r *recurringScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RecurringSchedule, error) {
	query := `
		SELECT id, booking_ref, contact_name, contact_email, amount, frequency, start_date, description, status, created_at, updated_at
		FROM recurring_schedules
		WHERE id = $1
	`

	var schedule domain.RecurringSchedule
	err := r.db.GetContext(ctx, &schedule, query, id)
	if err != nil {
		return nil, err
	}

	return &schedule, nil
}

func (r *recurringScheduleRepository) List(ctx context.Context) ([]*domain.RecurringSchedule, error) {
	query := `
		SELECT id, booking_ref, contact_name, contact_email, amount, frequency, start_date, description, status, created_at, updated_at
		FROM recurring_schedules
		ORDER BY created_at DESC
	`

	var schedules []*domain.RecurringSchedule
	err := r.db.SelectContext(ctx, &schedules, query)
	if err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *recurringScheduleRepository) ListActive(ctx context.Context) ([]*domain.RecurringSchedule, error) {
	query := `
		SELECT id, booking_ref, contact_name, contact_email, amount, frequency, start_date, description, status, created_at, updated_at
		FROM recurring_schedules
		WHERE status = $1
		ORDER BY created_at
	`

	var schedules []*domain.RecurringSchedule
	err := r.db.SelectContext(ctx, &schedules, query, domain.RecurringStatusActive)
	if err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *recurringScheduleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE recurring_schedules
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	return err
}
