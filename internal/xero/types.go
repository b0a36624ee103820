package xero

import (
	"github.com/shopspring/decimal"
)

// TokenResponse is the Xero identity endpoint's token payload, returned by
// both the authorization-code and refresh-token grants.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
}

// Connection is one tenant the authorized user granted access to.
type Connection struct {
	ID         string `json:"id"`
	TenantID   string `json:"tenantId"`
	TenantName string `json:"tenantName"`
	TenantType string `json:"tenantType"`
}

// Contact is a Xero accounting contact.
type Contact struct {
	ContactID    string `json:"ContactID,omitempty"`
	Name         string `json:"Name"`
	EmailAddress string `json:"EmailAddress,omitempty"`
}

type contactsEnvelope struct {
	Contacts []Contact `json:"Contacts"`
}

// LineItem is a single invoice line.
type LineItem struct {
	Description string          `json:"Description"`
	Quantity    int             `json:"Quantity"`
	UnitAmount  decimal.Decimal `json:"UnitAmount"`
	AccountCode string          `json:"AccountCode"`
}

// Invoice is a Xero accounting invoice, both as sent and as returned.
type Invoice struct {
	InvoiceID     string     `json:"InvoiceID,omitempty"`
	InvoiceNumber string     `json:"InvoiceNumber,omitempty"`
	Type          string     `json:"Type"`
	Contact       Contact    `json:"Contact"`
	Date          string     `json:"Date"`
	DueDate       string     `json:"DueDate"`
	Reference     string     `json:"Reference,omitempty"`
	Status        string     `json:"Status"`
	LineItems     []LineItem `json:"LineItems"`
}

type invoicesEnvelope struct {
	Invoices []Invoice `json:"Invoices"`
}

type emailEnvelope struct {
	IncludeOnline bool `json:"IncludeOnline"`
}
