package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stillwrite/stillwrite-backend/internal/identity"
	"github.com/stillwrite/stillwrite-backend/internal/middleware"
	"github.com/stillwrite/stillwrite-backend/internal/payments"
	"github.com/stillwrite/stillwrite-backend/internal/response"
)

type CreateCheckoutRequest struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
}

type VerifyPaymentRequest struct {
	SessionID string `json:"sessionId"`
}

// PaymentHandler serves the Pro upgrade routes.
type PaymentHandler struct {
	Payments *payments.Service
	Provider identity.Provider
}

// CreateCheckout opens a Stripe checkout session for the Pro upgrade.
func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req CreateCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.UserID == "" {
		response.Error(w, http.StatusBadRequest, "Email and userId are required")
		return
	}

	checkout, err := h.Payments.CreateCheckout(r.Context(), req.Email, req.UserID)
	if err != nil {
		if errors.Is(err, payments.ErrNotConfigured) {
			response.Error(w, http.StatusServiceUnavailable, "Payments are not available")
			return
		}
		response.ErrorDetails(w, http.StatusInternalServerError, "Failed to create checkout session", err.Error())
		return
	}

	response.JSON(w, http.StatusOK, checkout)
}

// Verify confirms a checkout session with Stripe and records the upgrade.
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.SessionID == "" {
		response.Error(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	status, err := h.Payments.VerifySession(r.Context(), req.SessionID)
	if err != nil {
		if errors.Is(err, payments.ErrNotConfigured) {
			response.Error(w, http.StatusServiceUnavailable, "Payments are not available")
			return
		}
		response.ErrorDetails(w, http.StatusInternalServerError, "Failed to verify payment", err.Error())
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"isPro":   status.IsPro,
		"email":   status.Email,
		"userId":  status.UserID,
	})
}

// Status reports whether the caller is a paying user. Auth is optional and
// any lookup failure reads as not-pro; this check must never break the app.
func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	var userID string
	if token := middleware.TokenFromRequest(r); token != "" {
		if user, err := h.Provider.Verify(r.Context(), token); err == nil {
			userID = user.ID
		}
	}

	status := h.Payments.Status(r.Context(), userID)
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"isPro":       status.IsPro,
		"paymentDate": status.PaymentDate,
	})
}
