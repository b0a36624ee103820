package domain

import (
	"time"

	"github.com/google/uuid"
)

// XeroToken is the stored OAuth2 token set for the Xero connection.
type XeroToken struct {
	ID           uuid.UUID `json:"id" db:"id"`
	AccessToken  string    `json:"-" db:"access_token"`
	RefreshToken string    `json:"-" db:"refresh_token"`
	TokenType    string    `json:"token_type" db:"token_type"`
	ExpiresAt    time.Time `json:"expires_at" db:"expires_at"`
	TenantID     string    `json:"tenant_id" db:"tenant_id"`
	TenantName   string    `json:"tenant_name" db:"tenant_name"`
	TenantType   string    `json:"tenant_type" db:"tenant_type"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// IsExpired reports whether the access token has expired. A one-minute buffer
// accounts for clock differences with the Xero identity endpoint.
func (t *XeroToken) IsExpired() bool {
	if t.ExpiresAt.IsZero() {
		return true
	}
	return !time.Now().UTC().Before(t.ExpiresAt.Add(-1 * time.Minute))
}

// NeedsRefresh reports whether the token should be refreshed, five minutes
// ahead of expiry so in-flight requests never race the deadline.
func (t *XeroToken) NeedsRefresh() bool {
	if t.ExpiresAt.IsZero() {
		return true
	}
	return !time.Now().UTC().Before(t.ExpiresAt.Add(-5 * time.Minute))
}

// ConnectionStatus is the payload of the Xero status endpoint.
type ConnectionStatus struct {
	Connected    bool      `json:"connected"`
	TenantID     string    `json:"tenant_id,omitempty"`
	TenantName   string    `json:"tenant_name,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
	Expired      bool      `json:"expired,omitempty"`
	NeedsRefresh bool      `json:"needs_refresh,omitempty"`
}
