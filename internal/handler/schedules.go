package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/auroramotors/rental-billing/internal/domain"
	"github.com/auroramotors/rental-billing/internal/service"
	"github.com/auroramotors/rental-billing/pkg/response"
)

// ScheduleHandler serves the recurring billing schedule endpoints.
type ScheduleHandler struct {
	recurring *service.RecurringService
	validator *validator.Validate
}

func NewScheduleHandler(recurring *service.RecurringService) *ScheduleHandler {
	return &ScheduleHandler{
		recurring: recurring,
		validator: validator.New(),
	}
}

// Create handles POST /api/v1/schedules.
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateRecurringScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid JSON body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Invalid recurring schedule", err)
		return
	}

	schedule, err := h.recurring.Create(r.Context(), &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, schedule)
}

// List handles GET /api/v1/schedules.
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.recurring.List(r.Context())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, domain.RecurringScheduleListResponse{Schedules: schedules})
}

// Cancel handles POST /api/v1/schedules/{scheduleId}/cancel.
func (h *ScheduleHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := uuid.Parse(vars["scheduleId"])
	if err != nil {
		response.BadRequest(w, "Invalid schedule id", err)
		return
	}

	if err := h.recurring.Cancel(r.Context(), id); err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Schedule cancelled"})
}
