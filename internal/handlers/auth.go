package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stillwrite/stillwrite-backend/internal/identity"
	"github.com/stillwrite/stillwrite-backend/internal/middleware"
	"github.com/stillwrite/stillwrite-backend/internal/response"
)

// Signup Request
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Login Request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	Success       bool   `json:"success"`
	UserID        string `json:"userId"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	EmailVerified bool   `json:"emailVerified"`
}

type LoginResponse struct {
	UserID        string `json:"userId"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	AccessToken   string `json:"accessToken"`
	EmailVerified bool   `json:"emailVerified"`
}

// AuthHandler serves signup, login and logout.
type AuthHandler struct {
	Provider identity.Provider
}

// Signup handles user registration
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validate required fields
	if req.Email == "" || req.Password == "" || req.Name == "" {
		response.Error(w, http.StatusBadRequest, "Name, email, and password are required")
		return
	}

	user, err := h.Provider.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrWeakPassword):
			response.Error(w, http.StatusBadRequest, "Password must be at least 12 characters and contain uppercase, lowercase, digit and special characters")
		case errors.Is(err, identity.ErrEmailTaken):
			response.Error(w, http.StatusConflict, "User with this email already exists")
		case errors.Is(err, identity.ErrInvalidCredentials):
			response.Error(w, http.StatusBadRequest, "Invalid signup details")
		default:
			response.Error(w, http.StatusInternalServerError, "Failed to create user")
		}
		return
	}

	response.JSON(w, http.StatusCreated, SignupResponse{
		Success:       true,
		UserID:        user.ID,
		Email:         user.Email,
		Name:          user.Name,
		EmailVerified: user.EmailVerified,
	})
}

// Login handles user sign-in and issues a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := h.Provider.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	response.JSON(w, http.StatusOK, LoginResponse{
		UserID:        user.ID,
		Email:         user.Email,
		Name:          user.Name,
		AccessToken:   token,
		EmailVerified: user.EmailVerified,
	})
}

// Logout invalidates the presented session token. Always succeeds for a
// well-formed request, even when the token is already gone.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	if err := h.Provider.SignOut(r.Context(), token); err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to sign out")
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
