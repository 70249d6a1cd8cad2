package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stillwrite/stillwrite-backend/internal/ai"
	"github.com/stillwrite/stillwrite-backend/internal/middleware"
	"github.com/stillwrite/stillwrite-backend/internal/response"
)

type PromptRequest struct {
	CurrentContent string `json:"currentContent"`
}

// AIHandler serves writing-prompt suggestions.
type AIHandler struct {
	Prompts *ai.PromptService
}

// Prompt returns one writing prompt for the caller's current session,
// limited to three per user per day.
func (h *AIHandler) Prompt(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prompt, err := h.Prompts.Suggest(r.Context(), user.ID, req.CurrentContent)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrNotConfigured):
			response.Error(w, http.StatusServiceUnavailable, "Prompt suggestions are not available")
		case errors.Is(err, ai.ErrQuotaExceeded):
			response.Error(w, http.StatusTooManyRequests, "Daily prompt limit reached. Try again tomorrow.")
		default:
			response.Error(w, http.StatusInternalServerError, "Failed to generate prompt")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"prompt": prompt})
}
