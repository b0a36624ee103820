package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLineItem is one dated installment of a booking's total cost. Each
// line item is turned into exactly one Xero invoice and is not retained after
// the request completes.
type InvoiceLineItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date"`
}

// Xero invoice constants, matching the values the accounting side expects.
const (
	InvoiceTypeAccRec       = "ACCREC"
	InvoiceStatusAuthorised = "AUTHORISED"
	SalesAccountCode        = "200"
)
