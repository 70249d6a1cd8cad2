package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stillwrite/stillwrite-backend/internal/journal"
	"github.com/stillwrite/stillwrite-backend/internal/middleware"
	"github.com/stillwrite/stillwrite-backend/internal/models"
	"github.com/stillwrite/stillwrite-backend/internal/response"
)

type SaveEntryRequest struct {
	Entry struct {
		Date      string `json:"date"`
		Title     string `json:"title"`
		Content   string `json:"content"`
		WordCount int    `json:"wordCount"`
		Duration  int    `json:"duration"`
	} `json:"entry"`
}

type RenameEntryRequest struct {
	Title string `json:"title"`
}

// JournalHandler serves the journal entry routes. The owner ID always comes
// from the authenticated session, never from the request body.
type JournalHandler struct {
	Store *journal.Store
}

// Save stores a writing session, overwriting any entry at the same date.
func (h *JournalHandler) Save(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Entry.Date == "" || req.Entry.Content == "" {
		response.Error(w, http.StatusBadRequest, "Entry date and content are required")
		return
	}

	entry := models.JournalEntry{
		Date:            req.Entry.Date,
		Title:           req.Entry.Title,
		Content:         req.Entry.Content,
		WordCount:       req.Entry.WordCount,
		DurationMinutes: req.Entry.Duration,
	}

	saved, err := h.Store.Save(r.Context(), user.ID, entry)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to save journal entry")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"entryId": saved.Date,
	})
}

// Rename changes the title of an existing entry.
func (h *JournalHandler) Rename(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	date := chi.URLParam(r, "date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Entry date is required")
		return
	}

	var req RenameEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.Store.Rename(r.Context(), user.ID, date, req.Title)
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Journal entry not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to update journal entry")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"entry":   entry,
	})
}

// List returns all of the caller's entries, newest first.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	entries, err := h.Store.ListByOwner(r.Context(), user.ID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to fetch journal entries")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// Delete removes an entry. Deleting a missing entry still reports success.
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	date := chi.URLParam(r, "date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Entry date is required")
		return
	}

	if err := h.Store.Delete(r.Context(), user.ID, date); err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to delete journal entry")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
