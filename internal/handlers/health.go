package handlers

import (
	"net/http"

	"github.com/stillwrite/stillwrite-backend/internal/response"
)

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
