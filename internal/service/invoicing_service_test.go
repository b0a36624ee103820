package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/auroramotors/rental-billing/internal/config"
	"github.com/auroramotors/rental-billing/internal/domain"
	"github.com/auroramotors/rental-billing/internal/xero"
	customError "github.com/auroramotors/rental-billing/pkg/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Xero: config.XeroConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURI:  "http://localhost:8080/api/v1/xero/callback",
			BrandName:    "Aurora Motors",
			AccountCode:  "200",
		},
	}
}

func validToken() *domain.XeroToken {
	return &domain.XeroToken{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TenantID:     "tenant-1",
		ExpiresAt:    time.Now().UTC().Add(25 * time.Minute),
	}
}

func newInvoicingFixture(cfg *config.Config) (*InvoicingService, *MockTokenRepository, *MockAccountingClient) {
	tokenRepo := &MockTokenRepository{}
	client := &MockAccountingClient{}
	xeroService := NewXeroService(tokenRepo, &MockCoordinationStore{}, client, cfg)
	return NewInvoicingService(xeroService, client, cfg), tokenRepo, client
}

func TestCreateInvoices_SplitSchedule(t *testing.T) {
	svc, tokenRepo, client := newInvoicingFixture(testConfig())

	tokenRepo.On("GetLatest", mock.Anything).Return(validToken(), nil)
	client.On("UpsertContact", mock.Anything, "access", "tenant-1", "Jane Driver", "jane@example.com").
		Return("contact-42", nil)

	expectedAmount := decimal.NewFromInt(620)
	client.On("CreateInvoice", mock.Anything, "access", "tenant-1", mock.MatchedBy(func(inv *xero.Invoice) bool {
		return inv.Type == "ACCREC" &&
			inv.Status == "AUTHORISED" &&
			len(inv.LineItems) == 1 &&
			inv.LineItems[0].Quantity == 1 &&
			inv.LineItems[0].AccountCode == "200" &&
			inv.LineItems[0].UnitAmount.Equal(expectedAmount)
	})).Return(&xero.Invoice{InvoiceID: "invoice-1"}, nil).Times(5)
	client.On("EmailInvoice", mock.Anything, "access", "tenant-1", "invoice-1").Return(nil).Times(5)

	resp, err := svc.CreateInvoices(context.Background(), &domain.CreateInvoicesRequest{
		Booking: domain.BookingCharge{
			StartDate:        "2024-01-01",
			EndDate:          "2024-02-01",
			DriverEmail:      "jane@example.com",
			DriverFullname:   "Jane Driver",
			TotalCost:        decimal.NewFromInt(3100),
			PaymentFrequency: "7days",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.Count)
	assert.Equal(t, "every 7 days", resp.Schedule)
	assert.Equal(t, "Invoices created", resp.Message)

	client.AssertExpectations(t)
}

func TestCreateInvoices_SingleInvoiceShortRental(t *testing.T) {
	svc, tokenRepo, client := newInvoicingFixture(testConfig())

	tokenRepo.On("GetLatest", mock.Anything).Return(validToken(), nil)
	client.On("UpsertContact", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("contact-42", nil)
	client.On("CreateInvoice", mock.Anything, "access", "tenant-1", mock.MatchedBy(func(inv *xero.Invoice) bool {
		return inv.DueDate == "2024-01-01" &&
			inv.LineItems[0].Description == "Aurora Motors Car Rental: 9 days" &&
			inv.LineItems[0].UnitAmount.Equal(decimal.NewFromInt(900))
	})).Return(&xero.Invoice{InvoiceID: "invoice-1"}, nil).Once()
	client.On("EmailInvoice", mock.Anything, "access", "tenant-1", "invoice-1").Return(nil).Once()

	resp, err := svc.CreateInvoices(context.Background(), &domain.CreateInvoicesRequest{
		Booking: domain.BookingCharge{
			StartDate:        "2024-01-01",
			EndDate:          "2024-01-10",
			DriverEmail:      "jane@example.com",
			TotalCost:        decimal.NewFromInt(900),
			PaymentFrequency: "7days",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "single", resp.Schedule)

	client.AssertExpectations(t)
}

func TestCreateInvoices_EmailFailureIsNonFatal(t *testing.T) {
	svc, tokenRepo, client := newInvoicingFixture(testConfig())

	tokenRepo.On("GetLatest", mock.Anything).Return(validToken(), nil)
	client.On("UpsertContact", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("contact-42", nil)
	client.On("CreateInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&xero.Invoice{InvoiceID: "invoice-1"}, nil)
	client.On("EmailInvoice", mock.Anything, mock.Anything, mock.Anything, "invoice-1").
		Return(errors.New("smtp unavailable"))

	resp, err := svc.CreateInvoices(context.Background(), &domain.CreateInvoicesRequest{
		Booking: domain.BookingCharge{
			StartDate:   "2024-01-01",
			EndDate:     "2024-01-05",
			DriverEmail: "jane@example.com",
			TotalCost:   decimal.NewFromInt(400),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
}

func TestCreateInvoices_InvoiceCreationFailureAborts(t *testing.T) {
	svc, tokenRepo, client := newInvoicingFixture(testConfig())

	tokenRepo.On("GetLatest", mock.Anything).Return(validToken(), nil)
	client.On("UpsertContact", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("contact-42", nil)
	client.On("CreateInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("rate limited")).Once()

	resp, err := svc.CreateInvoices(context.Background(), &domain.CreateInvoicesRequest{
		Booking: domain.BookingCharge{
			StartDate:        "2024-01-01",
			EndDate:          "2024-02-01",
			DriverEmail:      "jane@example.com",
			TotalCost:        decimal.NewFromInt(3100),
			PaymentFrequency: "7days",
		},
	})

	assert.Nil(t, resp)
	require.Error(t, err)

	var businessErr *customError.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, customError.ErrCodeXeroAPIError, businessErr.Code)

	client.AssertNotCalled(t, "EmailInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateInvoices_MissingCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.Xero.ClientSecret = ""
	svc, _, client := newInvoicingFixture(cfg)

	resp, err := svc.CreateInvoices(context.Background(), &domain.CreateInvoicesRequest{
		Booking: domain.BookingCharge{
			StartDate:   "2024-01-01",
			EndDate:     "2024-01-05",
			DriverEmail: "jane@example.com",
			TotalCost:   decimal.NewFromInt(400),
		},
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, customError.ErrMissingCredentials)

	client.AssertNotCalled(t, "UpsertContact", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateInvoices_UnparseableDates(t *testing.T) {
	svc, _, _ := newInvoicingFixture(testConfig())

	resp, err := svc.CreateInvoices(context.Background(), &domain.CreateInvoicesRequest{
		Booking: domain.BookingCharge{
			StartDate:   "not-a-date",
			EndDate:     "2024-01-05",
			DriverEmail: "jane@example.com",
			TotalCost:   decimal.NewFromInt(400),
		},
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, customError.ErrInvalidScheduleInput)
}
