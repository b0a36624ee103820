package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/auroramotors/rental-billing/internal/config"
	"github.com/auroramotors/rental-billing/internal/domain"
	"github.com/auroramotors/rental-billing/internal/repository"
	"github.com/auroramotors/rental-billing/internal/xero"
	customError "github.com/auroramotors/rental-billing/pkg/errors"
	"github.com/auroramotors/rental-billing/pkg/utils"
)

// RecurringService manages standing direct-debit billing schedules and the
// daily job that invoices installments due the next day.
type RecurringService struct {
	schedules repository.RecurringScheduleRepository
	state     CoordinationStore
	xero      *XeroService
	client    AccountingClient
	config    *config.Config
}

func NewRecurringService(
	schedules repository.RecurringScheduleRepository,
	state CoordinationStore,
	xeroService *XeroService,
	client AccountingClient,
	config *config.Config,
) *RecurringService {
	return &RecurringService{
		schedules: schedules,
		state:     state,
		xero:      xeroService,
		client:    client,
		config:    config,
	}
}

// Create registers a new recurring schedule.
func (s *RecurringService) Create(ctx context.Context, request *domain.CreateRecurringScheduleRequest) (*domain.RecurringSchedule, error) {
	startDate, err := domain.ParseDate(request.StartDate)
	if err != nil {
		return nil, customError.WrapInvalidScheduleInput("unparseable start date: " + err.Error())
	}
	if request.Amount.IsNegative() || request.Amount.IsZero() {
		return nil, customError.WrapInvalidScheduleInput("amount must be positive")
	}

	now := time.Now().UTC()
	sched := &domain.RecurringSchedule{
		ID:           uuid.New(),
		BookingRef:   request.BookingRef,
		ContactName:  request.ContactName,
		ContactEmail: request.ContactEmail,
		Amount:       request.Amount.Round(2),
		Frequency:    request.Frequency,
		StartDate:    utils.TruncateToDay(startDate),
		Description:  request.Description,
		Status:       domain.RecurringStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.schedules.Create(ctx, sched); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return sched, nil
}

// List returns all recurring schedules.
func (s *RecurringService) List(ctx context.Context) ([]*domain.RecurringSchedule, error) {
	schedules, err := s.schedules.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return schedules, nil
}

// Cancel stops a recurring schedule; no further invoices are issued for it.
func (s *RecurringService) Cancel(ctx context.Context, id uuid.UUID) error {
	sched, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapScheduleNotFound(id.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if sched.Status == domain.RecurringStatusCancelled {
		return customError.WrapScheduleCancelled(id.String())
	}

	if err := s.schedules.UpdateStatus(ctx, id, domain.RecurringStatusCancelled); err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

// IssueDueInvoices creates and emails one invoice for every active schedule
// with an installment due tomorrow. A Redis mark keeps reruns of the daily
// job from billing the same installment twice. Failures on one schedule are
// logged and do not stop the rest of the run.
func (s *RecurringService) IssueDueInvoices(ctx context.Context, now time.Time) (int, error) {
	dueDate := utils.TruncateToDay(now).AddDate(0, 0, 1)

	active, err := s.schedules.ListActive(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	issued := 0
	for _, sched := range active {
		if !sched.DueOn(dueDate) {
			continue
		}

		fresh, err := s.state.MarkIssued(ctx, sched.ID.String(), dueDate)
		if err != nil {
			log.Printf("recurring: issuance guard failed for schedule %s: %v", sched.ID, err)
			continue
		}
		if !fresh {
			continue
		}

		if err := s.issueInvoice(ctx, sched, dueDate); err != nil {
			log.Printf("recurring: failed to invoice schedule %s: %v", sched.ID, err)
			continue
		}
		issued++
	}

	return issued, nil
}

func (s *RecurringService) issueInvoice(ctx context.Context, sched *domain.RecurringSchedule, dueDate time.Time) error {
	token, err := s.xero.ValidToken(ctx)
	if err != nil {
		return err
	}

	contactID, err := s.client.UpsertContact(ctx, token.AccessToken, token.TenantID, sched.ContactName, sched.ContactEmail)
	if err != nil {
		return customError.WrapXeroAPIError("contact upsert", err)
	}

	description := sched.Description
	if description == "" {
		description = fmt.Sprintf("%s Car Rental - Booking %s", s.config.Xero.BrandName, sched.BookingRef)
	}
	description = fmt.Sprintf("%s - Payment due %s", description, dueDate.Format(dateLayout))

	invoice := &xero.Invoice{
		Type:      domain.InvoiceTypeAccRec,
		Contact:   xero.Contact{ContactID: contactID},
		Date:      time.Now().UTC().Format(dateLayout),
		DueDate:   dueDate.Format(dateLayout),
		Reference: sched.BookingRef,
		Status:    domain.InvoiceStatusAuthorised,
		LineItems: []xero.LineItem{{
			Description: description,
			Quantity:    1,
			UnitAmount:  sched.Amount,
			AccountCode: s.config.Xero.AccountCode,
		}},
	}

	created, err := s.client.CreateInvoice(ctx, token.AccessToken, token.TenantID, invoice)
	if err != nil {
		return customError.WrapXeroAPIError("invoice creation", err)
	}

	if created.InvoiceID != "" {
		if err := s.client.EmailInvoice(ctx, token.AccessToken, token.TenantID, created.InvoiceID); err != nil {
			log.Printf("recurring: failed to email invoice %s: %v", created.InvoiceID, err)
		}
	}

	return nil
}
