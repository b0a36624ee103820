package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RecurringStatusActive    = "active"
	RecurringStatusCancelled = "cancelled"
)

// Recurring billing frequencies (direct-debit style, distinct from the
// installment frequencies on BookingCharge).
const (
	RecurringWeekly      = "weekly"
	RecurringFortnightly = "fortnightly"
	RecurringMonthly     = "monthly"
)

// RecurringSchedule is a standing direct-debit billing arrangement for a
// booking: a fixed amount invoiced on a periodic cadence until cancelled.
type RecurringSchedule struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	BookingRef   string          `json:"booking_ref" db:"booking_ref"`
	ContactName  string          `json:"contact_name" db:"contact_name"`
	ContactEmail string          `json:"contact_email" db:"contact_email"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	Frequency    string          `json:"frequency" db:"frequency"`
	StartDate    time.Time       `json:"start_date" db:"start_date"`
	Description  string          `json:"description" db:"description"`
	Status       string          `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// DueOn reports whether an installment of this schedule falls due on the
// given date. Monthly schedules bill on the start date's day of month.
func (s *RecurringSchedule) DueOn(date time.Time) bool {
	if s.StartDate.IsZero() || date.Before(s.StartDate) {
		return false
	}

	days := int(date.Sub(s.StartDate).Hours() / 24)

	switch s.Frequency {
	case RecurringWeekly:
		return days%7 == 0
	case RecurringFortnightly:
		return days%14 == 0
	case RecurringMonthly:
		return date.Day() == s.StartDate.Day()
	}

	return false
}

// DTOs for requests and responses

type CreateRecurringScheduleRequest struct {
	BookingRef   string          `json:"booking_ref" validate:"required"`
	ContactName  string          `json:"contact_name" validate:"required"`
	ContactEmail string          `json:"contact_email" validate:"required,email"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	Frequency    string          `json:"frequency" validate:"required,oneof=weekly fortnightly monthly"`
	StartDate    string          `json:"start_date" validate:"required"`
	Description  string          `json:"description"`
}

type RecurringScheduleListResponse struct {
	Schedules []*RecurringSchedule `json:"schedules"`
}
