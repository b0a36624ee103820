// Package schedule computes the installment schedule for a booking charge:
// how a rental's total cost is split into dated invoices according to the
// customer's payment-frequency selection.
package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/auroramotors/rental-billing/internal/domain"
	customError "github.com/auroramotors/rental-billing/pkg/errors"
	"github.com/auroramotors/rental-billing/pkg/utils"
)

// Rentals of up to two weeks are always billed as a single invoice, whatever
// frequency the customer picked.
const singleInvoiceMaxDays = 14

// Schedule is the ordered installment plan for one booking charge.
type Schedule struct {
	Items        []domain.InvoiceLineItem
	TotalDays    int
	IntervalDays int // 0 when the whole cost is billed as a single invoice
}

// Label describes the schedule the way the invoicing endpoint reports it.
func (s *Schedule) Label() string {
	if s.IntervalDays == 0 {
		return "single"
	}
	return fmt.Sprintf("every %d days", s.IntervalDays)
}

// Compute splits totalCost over the rental period [start, end] according to
// the payment frequency. The amounts always sum to totalCost exactly at two
// decimal places: every installment but the last carries the rounded even
// split, and the last absorbs the rounding residue.
//
// Unknown frequencies degrade to a single invoice. Negative costs and zero
// dates are rejected. The function holds no state and is safe for concurrent
// use.
func Compute(start, end time.Time, totalCost decimal.Decimal, frequency, brand string) (*Schedule, error) {
	if start.IsZero() || end.IsZero() {
		return nil, customError.WrapInvalidScheduleInput("start and end dates are required")
	}
	if totalCost.IsNegative() {
		return nil, customError.WrapInvalidScheduleInput("total cost must not be negative")
	}

	if brand == "" {
		brand = domain.DefaultBrandName
	}

	start = utils.TruncateToDay(start)
	end = utils.TruncateToDay(end)

	totalDays := utils.RentalDays(start, end)
	intervalDays := intervalFor(frequency)

	if totalDays <= singleInvoiceMaxDays || intervalDays == 0 {
		return &Schedule{
			Items: []domain.InvoiceLineItem{{
				Description: fmt.Sprintf("%s Car Rental: %d days", brand, totalDays),
				Amount:      totalCost.Round(2),
				DueDate:     start,
			}},
			TotalDays: totalDays,
		}, nil
	}

	numIntervals := (totalDays + intervalDays - 1) / intervalDays
	base := totalCost.Div(decimal.NewFromInt(int64(numIntervals))).Round(2)

	items := make([]domain.InvoiceLineItem, 0, numIntervals)
	for i := 0; i < numIntervals; i++ {
		amount := base
		if i == numIntervals-1 {
			// Remainder-to-last: the final installment is the total minus the
			// already-rounded predecessors, which keeps the sum exact.
			amount = totalCost.Sub(base.Mul(decimal.NewFromInt(int64(numIntervals - 1)))).Round(2)
		}

		items = append(items, domain.InvoiceLineItem{
			Description: fmt.Sprintf("%s Car Rental: installment %d/%d", brand, i+1, numIntervals),
			Amount:      amount,
			DueDate:     start.AddDate(0, 0, i*intervalDays),
		})
	}

	return &Schedule{
		Items:        items,
		TotalDays:    totalDays,
		IntervalDays: intervalDays,
	}, nil
}

// intervalFor maps a payment frequency onto its gap in days. Zero means no
// splitting.
func intervalFor(frequency string) int {
	switch domain.NormalizeFrequency(frequency) {
	case domain.Frequency3Days:
		return 3
	case domain.Frequency7Days:
		return 7
	case domain.Frequency10Days:
		return 10
	default:
		return 0
	}
}
