package handler

import (
	"net/http"

	"github.com/auroramotors/rental-billing/internal/service"
	"github.com/auroramotors/rental-billing/pkg/response"
)

// XeroHandler serves the Xero connection endpoints: the OAuth consent flow,
// connection status, and disconnect.
type XeroHandler struct {
	xero *service.XeroService
}

func NewXeroHandler(xero *service.XeroService) *XeroHandler {
	return &XeroHandler{xero: xero}
}

// Connect handles GET /api/v1/xero/connect: redirects the user to the Xero
// consent page.
func (h *XeroHandler) Connect(w http.ResponseWriter, r *http.Request) {
	consentURL, err := h.xero.BeginConsent(r.Context())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Redirect(w, r, consentURL)
}

type callbackResult struct {
	Message    string `json:"message"`
	TenantID   string `json:"tenant_id,omitempty"`
	TenantName string `json:"tenant_name,omitempty"`
}

// Callback handles GET /api/v1/xero/callback: completes the consent flow and
// stores the token set.
func (h *XeroHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		response.BadRequest(w, "Missing authorization code", nil)
		return
	}
	state := r.URL.Query().Get("state")

	token, err := h.xero.CompleteConsent(r.Context(), code, state)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, callbackResult{
		Message:    "Xero connected successfully",
		TenantID:   token.TenantID,
		TenantName: token.TenantName,
	})
}

// Status handles GET /api/v1/xero/status.
func (h *XeroHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.xero.Status(r.Context())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, status)
}

// Disconnect handles POST /api/v1/xero/disconnect: removes stored tokens.
func (h *XeroHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.xero.Disconnect(r.Context()); err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Xero disconnected"})
}
