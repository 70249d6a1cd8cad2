package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stillwrite/stillwrite-backend/internal/identity"
	"github.com/stillwrite/stillwrite-backend/internal/journal"
	"github.com/stillwrite/stillwrite-backend/internal/response"
)

// AdminHandler serves the admin dashboard routes. The allowlist gate runs in
// middleware before any of these handlers.
type AdminHandler struct {
	Provider identity.Provider
	Store    *journal.Store
}

// ListUsers returns all registered accounts.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Provider.ListUsers(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	userList := make([]map[string]interface{}, len(users))
	for i, u := range users {
		userList[i] = map[string]interface{}{
			"id":        u.ID,
			"email":     u.Email,
			"name":      u.Name,
			"createdAt": u.CreatedAt,
		}
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"users": userList})
}

// ListUserEntries returns any user's journal entries for moderation.
func (h *AdminHandler) ListUserEntries(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.Error(w, http.StatusBadRequest, "User ID is required")
		return
	}

	entries, err := h.Store.ListByOwner(r.Context(), userID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to fetch journal entries")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
