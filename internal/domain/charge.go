package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment frequency selections offered during booking. "weekly" is a legacy
// alias some UI surfaces still send for the 7-day interval.
const (
	FrequencyOnce   = "once"
	Frequency3Days  = "3days"
	Frequency7Days  = "7days"
	Frequency10Days = "10days"
	FrequencyWeekly = "weekly"
)

// DefaultBrandName is used in invoice descriptions when no brand is configured.
const DefaultBrandName = "Aurora Motors"

// BookingCharge is the charge detail for one booking, received from the
// booking frontend at invoice-generation time. It is never persisted here;
// the booking itself lives in the rental backend.
type BookingCharge struct {
	CarID            int             `json:"car_id"`
	StartDate        string          `json:"start_date" validate:"required"`
	EndDate          string          `json:"end_date" validate:"required"`
	PickupLocation   string          `json:"pickup_location"`
	ReturnLocation   string          `json:"return_location"`
	DriverEmail      string          `json:"driver_email" validate:"required,email"`
	DriverFullname   string          `json:"driver_fullname"`
	LicenseNumber    string          `json:"license_number"`
	ResidentialArea  string          `json:"residential_area"`
	SpecialRequests  string          `json:"special_requests"`
	TotalCost        decimal.Decimal `json:"total_cost" validate:"required"`
	PaymentFrequency string          `json:"payment_frequency"`
}

// NormalizeFrequency maps UI labels onto the canonical frequency set.
func NormalizeFrequency(freq string) string {
	switch freq {
	case Frequency3Days, Frequency7Days, Frequency10Days:
		return freq
	case FrequencyWeekly:
		return Frequency7Days
	default:
		return FrequencyOnce
	}
}

// CreateInvoicesRequest is the body of the invoicing endpoint.
type CreateInvoicesRequest struct {
	Booking BookingCharge `json:"booking" validate:"required"`
}

// CreateInvoicesResponse summarizes one invoicing run. Schedule is "single"
// or "every N days".
type CreateInvoicesResponse struct {
	Message  string `json:"message"`
	Count    int    `json:"count"`
	Schedule string `json:"schedule"`
}

// ContactName returns the name to file the Xero contact under.
func (b *BookingCharge) ContactName() string {
	if b.DriverFullname != "" {
		return b.DriverFullname
	}
	return b.DriverEmail
}

// ParseDates parses the charge's date strings. Accepts both date-only and
// RFC 3339 timestamps; time-of-day is discarded by the caller.
func (b *BookingCharge) ParseDates() (start, end time.Time, err error) {
	start, err = ParseDate(b.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = ParseDate(b.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// ParseDate parses an ISO 8601 date or timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
