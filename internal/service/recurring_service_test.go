package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/auroramotors/rental-billing/internal/domain"
	"github.com/auroramotors/rental-billing/internal/xero"
	customError "github.com/auroramotors/rental-billing/pkg/errors"
)

func newRecurringFixture() (*RecurringService, *MockScheduleRepository, *MockCoordinationStore, *MockTokenRepository, *MockAccountingClient) {
	scheduleRepo := &MockScheduleRepository{}
	state := &MockCoordinationStore{}
	tokenRepo := &MockTokenRepository{}
	client := &MockAccountingClient{}
	cfg := testConfig()
	xeroService := NewXeroService(tokenRepo, state, client, cfg)
	svc := NewRecurringService(scheduleRepo, state, xeroService, client, cfg)
	return svc, scheduleRepo, state, tokenRepo, client
}

func weeklySchedule(startDate time.Time) *domain.RecurringSchedule {
	return &domain.RecurringSchedule{
		ID:           uuid.New(),
		BookingRef:   "BK-1001",
		ContactName:  "Jane Driver",
		ContactEmail: "jane@example.com",
		Amount:       decimal.NewFromInt(150),
		Frequency:    domain.RecurringWeekly,
		StartDate:    startDate,
		Status:       domain.RecurringStatusActive,
	}
}

func TestCreateRecurringSchedule(t *testing.T) {
	svc, scheduleRepo, _, _, _ := newRecurringFixture()

	scheduleRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.RecurringSchedule) bool {
		return s.BookingRef == "BK-1001" &&
			s.Status == domain.RecurringStatusActive &&
			s.Amount.Equal(decimal.RequireFromString("150.00"))
	})).Return(nil)

	sched, err := svc.Create(context.Background(), &domain.CreateRecurringScheduleRequest{
		BookingRef:   "BK-1001",
		ContactName:  "Jane Driver",
		ContactEmail: "jane@example.com",
		Amount:       decimal.NewFromInt(150),
		Frequency:    domain.RecurringWeekly,
		StartDate:    "2024-01-01",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RecurringStatusActive, sched.Status)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), sched.StartDate)

	scheduleRepo.AssertExpectations(t)
}

func TestCreateRecurringSchedule_RejectsNonPositiveAmount(t *testing.T) {
	svc, _, _, _, _ := newRecurringFixture()

	sched, err := svc.Create(context.Background(), &domain.CreateRecurringScheduleRequest{
		BookingRef:   "BK-1001",
		ContactName:  "Jane Driver",
		ContactEmail: "jane@example.com",
		Amount:       decimal.Zero,
		Frequency:    domain.RecurringWeekly,
		StartDate:    "2024-01-01",
	})

	assert.Nil(t, sched)
	assert.ErrorIs(t, err, customError.ErrInvalidScheduleInput)
}

func TestCancel(t *testing.T) {
	svc, scheduleRepo, _, _, _ := newRecurringFixture()

	sched := weeklySchedule(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	scheduleRepo.On("GetByID", mock.Anything, sched.ID).Return(sched, nil)
	scheduleRepo.On("UpdateStatus", mock.Anything, sched.ID, domain.RecurringStatusCancelled).Return(nil)

	err := svc.Cancel(context.Background(), sched.ID)
	require.NoError(t, err)

	scheduleRepo.AssertExpectations(t)
}

func TestCancel_NotFound(t *testing.T) {
	svc, scheduleRepo, _, _, _ := newRecurringFixture()

	id := uuid.New()
	scheduleRepo.On("GetByID", mock.Anything, id).Return(nil, sql.ErrNoRows)

	err := svc.Cancel(context.Background(), id)
	assert.ErrorIs(t, err, customError.ErrScheduleNotFound)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	svc, scheduleRepo, _, _, _ := newRecurringFixture()

	sched := weeklySchedule(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	sched.Status = domain.RecurringStatusCancelled
	scheduleRepo.On("GetByID", mock.Anything, sched.ID).Return(sched, nil)

	err := svc.Cancel(context.Background(), sched.ID)
	assert.ErrorIs(t, err, customError.ErrScheduleCancelled)

	scheduleRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestIssueDueInvoices(t *testing.T) {
	svc, scheduleRepo, state, tokenRepo, client := newRecurringFixture()

	now := time.Date(2024, 1, 7, 10, 30, 0, 0, time.UTC)
	tomorrow := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	// Due tomorrow: started exactly one week before tomorrow.
	due := weeklySchedule(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	// Not due: started mid-cycle.
	notDue := weeklySchedule(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))

	scheduleRepo.On("ListActive", mock.Anything).Return([]*domain.RecurringSchedule{due, notDue}, nil)
	state.On("MarkIssued", mock.Anything, due.ID.String(), tomorrow).Return(true, nil)

	tokenRepo.On("GetLatest", mock.Anything).Return(validToken(), nil)
	client.On("UpsertContact", mock.Anything, "access", "tenant-1", "Jane Driver", "jane@example.com").
		Return("contact-42", nil)
	client.On("CreateInvoice", mock.Anything, "access", "tenant-1", mock.MatchedBy(func(inv *xero.Invoice) bool {
		return inv.DueDate == "2024-01-08" &&
			inv.Reference == "BK-1001" &&
			inv.LineItems[0].UnitAmount.Equal(decimal.NewFromInt(150))
	})).Return(&xero.Invoice{InvoiceID: "invoice-9"}, nil).Once()
	client.On("EmailInvoice", mock.Anything, "access", "tenant-1", "invoice-9").Return(nil).Once()

	issued, err := svc.IssueDueInvoices(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, issued)

	client.AssertExpectations(t)
}

func TestIssueDueInvoices_GuardSkipsAlreadyIssued(t *testing.T) {
	svc, scheduleRepo, state, _, client := newRecurringFixture()

	now := time.Date(2024, 1, 7, 10, 30, 0, 0, time.UTC)
	tomorrow := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	due := weeklySchedule(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	scheduleRepo.On("ListActive", mock.Anything).Return([]*domain.RecurringSchedule{due}, nil)
	state.On("MarkIssued", mock.Anything, due.ID.String(), tomorrow).Return(false, nil)

	issued, err := svc.IssueDueInvoices(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, issued)

	client.AssertNotCalled(t, "CreateInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecurringScheduleDueOn(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		frequency string
		checkDate time.Time
		expected  bool
	}{
		{"weekly on start date", domain.RecurringWeekly, start, true},
		{"weekly one week later", domain.RecurringWeekly, start.AddDate(0, 0, 7), true},
		{"weekly mid-cycle", domain.RecurringWeekly, start.AddDate(0, 0, 10), false},
		{"fortnightly two weeks later", domain.RecurringFortnightly, start.AddDate(0, 0, 14), true},
		{"fortnightly one week later", domain.RecurringFortnightly, start.AddDate(0, 0, 7), false},
		{"monthly same day next month", domain.RecurringMonthly, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), true},
		{"monthly different day", domain.RecurringMonthly, time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), false},
		{"before start", domain.RecurringWeekly, start.AddDate(0, 0, -7), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := weeklySchedule(start)
			sched.Frequency = tt.frequency
			assert.Equal(t, tt.expected, sched.DueOn(tt.checkDate))
		})
	}
}
