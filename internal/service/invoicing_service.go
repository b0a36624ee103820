package service

import (
	"context"
	"log"
	"time"

	"github.com/auroramotors/rental-billing/internal/config"
	"github.com/auroramotors/rental-billing/internal/domain"
	"github.com/auroramotors/rental-billing/internal/schedule"
	"github.com/auroramotors/rental-billing/internal/xero"
	customError "github.com/auroramotors/rental-billing/pkg/errors"
)

const dateLayout = "2006-01-02"

// InvoicingService turns one booking charge into a schedule of Xero invoices:
// compute the installments, upsert the driver as a contact, then create and
// email one invoice per installment. Invoices are created sequentially with
// no retry; earlier invoices are not rolled back if a later one fails.
type InvoicingService struct {
	xero   *XeroService
	client AccountingClient
	config *config.Config
}

func NewInvoicingService(xeroService *XeroService, client AccountingClient, config *config.Config) *InvoicingService {
	return &InvoicingService{
		xero:   xeroService,
		client: client,
		config: config,
	}
}

// CreateInvoices generates and emails the invoice schedule for a booking
// charge and returns the run summary.
func (s *InvoicingService) CreateInvoices(ctx context.Context, request *domain.CreateInvoicesRequest) (*domain.CreateInvoicesResponse, error) {
	if err := s.config.Xero.ValidateCredentials(); err != nil {
		return nil, err
	}

	booking := &request.Booking

	start, end, err := booking.ParseDates()
	if err != nil {
		return nil, customError.WrapInvalidScheduleInput("unparseable booking dates: " + err.Error())
	}

	plan, err := schedule.Compute(start, end, booking.TotalCost, booking.PaymentFrequency, s.config.Xero.BrandName)
	if err != nil {
		return nil, err
	}

	token, err := s.xero.ValidToken(ctx)
	if err != nil {
		return nil, err
	}

	contactID, err := s.client.UpsertContact(ctx, token.AccessToken, token.TenantID, booking.ContactName(), booking.DriverEmail)
	if err != nil {
		return nil, customError.WrapXeroAPIError("contact upsert", err)
	}

	for _, item := range plan.Items {
		invoice := &xero.Invoice{
			Type:    domain.InvoiceTypeAccRec,
			Contact: xero.Contact{ContactID: contactID},
			Date:    time.Now().UTC().Format(dateLayout),
			DueDate: item.DueDate.Format(dateLayout),
			Status:  domain.InvoiceStatusAuthorised,
			LineItems: []xero.LineItem{{
				Description: item.Description,
				Quantity:    1,
				UnitAmount:  item.Amount,
				AccountCode: s.config.Xero.AccountCode,
			}},
		}

		created, err := s.client.CreateInvoice(ctx, token.AccessToken, token.TenantID, invoice)
		if err != nil {
			return nil, customError.WrapXeroAPIError("invoice creation", err)
		}

		if created.InvoiceID != "" {
			// Email delivery is best effort; the invoice already exists in Xero.
			if err := s.client.EmailInvoice(ctx, token.AccessToken, token.TenantID, created.InvoiceID); err != nil {
				log.Printf("invoicing: failed to email invoice %s: %v", created.InvoiceID, err)
			}
		}
	}

	return &domain.CreateInvoicesResponse{
		Message:  "Invoices created",
		Count:    len(plan.Items),
		Schedule: plan.Label(),
	}, nil
}
