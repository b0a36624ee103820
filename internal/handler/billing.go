package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/auroramotors/rental-billing/internal/domain"
	"github.com/auroramotors/rental-billing/internal/service"
	"github.com/auroramotors/rental-billing/pkg/response"
)

// BillingHandler serves the booking-charge invoicing endpoint.
type BillingHandler struct {
	invoicing *service.InvoicingService
	validator *validator.Validate
}

func NewBillingHandler(invoicing *service.InvoicingService) *BillingHandler {
	return &BillingHandler{
		invoicing: invoicing,
		validator: validator.New(),
	}
}

// CreateInvoices handles POST /api/v1/invoices: computes the installment
// schedule for a booking charge and creates + emails one Xero invoice per
// installment.
func (h *BillingHandler) CreateInvoices(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateInvoicesRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid JSON body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Invalid booking charge", err)
		return
	}

	result, err := h.invoicing.CreateInvoices(r.Context(), &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, result)
}
