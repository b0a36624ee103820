// Package xero is a REST client for the Xero identity and accounting APIs:
// the OAuth2 consent/refresh flow, tenant connections, contacts, and ACCREC
// invoices including email delivery.
package xero

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAuthURL        = "https://login.xero.com/identity/connect/authorize"
	defaultTokenURL       = "https://identity.xero.com/connect/token"
	defaultConnectionsURL = "https://api.xero.com/connections"
	defaultAPIURL         = "https://api.xero.com/api.xro/2.0"
)

// ClientConfig represents the configuration for the Xero API client.
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
	Timeout      time.Duration // Default: 30 seconds

	// Endpoint overrides, used by tests. Empty means the public Xero URLs.
	AuthURL        string
	TokenURL       string
	ConnectionsURL string
	APIURL         string
}

// Client is a Xero API client.
type Client struct {
	httpClient     *http.Client
	clientID       string
	clientSecret   string
	redirectURI    string
	scopes         []string
	authURL        string
	tokenURL       string
	connectionsURL string
	apiURL         string
}

// NewClient creates a new Xero API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		httpClient:     &http.Client{Timeout: timeout},
		clientID:       config.ClientID,
		clientSecret:   config.ClientSecret,
		redirectURI:    config.RedirectURI,
		scopes:         config.Scopes,
		authURL:        config.AuthURL,
		tokenURL:       config.TokenURL,
		connectionsURL: config.ConnectionsURL,
		apiURL:         config.APIURL,
	}

	if c.authURL == "" {
		c.authURL = defaultAuthURL
	}
	if c.tokenURL == "" {
		c.tokenURL = defaultTokenURL
	}
	if c.connectionsURL == "" {
		c.connectionsURL = defaultConnectionsURL
	}
	if c.apiURL == "" {
		c.apiURL = defaultAPIURL
	}

	return c
}

// AuthorizationURL builds the OAuth2 consent URL the user is redirected to.
func (c *Client) AuthorizationURL(state string) string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("scope", strings.Join(c.scopes, " "))
	params.Set("state", state)

	return fmt.Sprintf("%s?%s", c.authURL, params.Encode())
}

// ExchangeCode trades an authorization code for a token set.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", c.redirectURI)

	return c.postTokenForm(ctx, data)
}

// RefreshAccessToken exchanges a refresh token for a fresh token set. Xero
// rotates refresh tokens on every use, so callers must persist the returned
// one.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)

	return c.postTokenForm(ctx, data)
}

func (c *Client) postTokenForm(ctx context.Context, data url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, bytes.NewBufferString(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", c.basicAuthHeader())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &tokenResp, nil
}

// Connections lists the tenants the token set can act on.
func (c *Client) Connections(ctx context.Context, accessToken string) ([]Connection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.connectionsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var connections []Connection
	if err := json.NewDecoder(resp.Body).Decode(&connections); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return connections, nil
}

// UpsertContact creates or updates an accounting contact by name and email
// and returns its contact ID.
func (c *Client) UpsertContact(ctx context.Context, accessToken, tenantID, name, email string) (string, error) {
	payload := contactsEnvelope{
		Contacts: []Contact{{Name: name, EmailAddress: email}},
	}

	var result contactsEnvelope
	if err := c.doAPI(ctx, accessToken, tenantID, http.MethodPost, "/Contacts", payload, &result); err != nil {
		return "", err
	}

	if len(result.Contacts) == 0 {
		return "", fmt.Errorf("contact upsert returned no contacts")
	}

	return result.Contacts[0].ContactID, nil
}

// CreateInvoice creates one authorised invoice and returns it as stored.
func (c *Client) CreateInvoice(ctx context.Context, accessToken, tenantID string, invoice *Invoice) (*Invoice, error) {
	payload := invoicesEnvelope{Invoices: []Invoice{*invoice}}

	var result invoicesEnvelope
	if err := c.doAPI(ctx, accessToken, tenantID, http.MethodPost, "/Invoices", payload, &result); err != nil {
		return nil, err
	}

	if len(result.Invoices) == 0 {
		return nil, fmt.Errorf("invoice creation returned no invoices")
	}

	return &result.Invoices[0], nil
}

// EmailInvoice asks Xero to email an invoice to its contact.
func (c *Client) EmailInvoice(ctx context.Context, accessToken, tenantID, invoiceID string) error {
	path := fmt.Sprintf("/Invoices/%s/Email", invoiceID)
	return c.doAPI(ctx, accessToken, tenantID, http.MethodPost, path, emailEnvelope{IncludeOnline: true}, nil)
}

func (c *Client) doAPI(ctx context.Context, accessToken, tenantID, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	req.Header.Set("Xero-tenant-id", tenantID)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.parseError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("xero api error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

func (c *Client) basicAuthHeader() string {
	credentials := fmt.Sprintf("%s:%s", c.clientID, c.clientSecret)
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}
