package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/studysphere/studysphere-go/internal/middleware"
	"github.com/studysphere/studysphere-go/internal/model"
	"github.com/studysphere/studysphere-go/internal/service"
)

// Authenticator is the part of the auth service the HTTP layer calls.
type Authenticator interface {
	Register(ctx context.Context, req model.SignupRequest) (model.UserResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (string, error)
	GetUser(ctx context.Context, userID string) (model.UserResponse, error)
}

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service Authenticator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc Authenticator) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleSignup handles POST /api/signup requests.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !decodeBody(w, r, 1<<20, &req) {
		return
	}

	user, err := h.service.Register(storeContext(r), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired),
			errors.Is(err, service.ErrPasswordRequired),
			errors.Is(err, service.ErrPasswordTooLong):
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		case errors.Is(err, service.ErrEmailTaken):
			writeJSON(w, http.StatusConflict, messageResponse("User already exists"))
		default:
			writeInternal(w, r, "signup", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, model.SignupResponse{
		Message: "User created successfully",
		User:    user,
	})
}

// HandleLogin handles POST /api/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, 1<<20, &req) {
		return
	}

	token, err := h.service.Login(storeContext(r), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, messageResponse("User not found"))
		case errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, messageResponse("Invalid credentials"))
		default:
			writeInternal(w, r, "login", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.LoginResponse{Message: "Login successful", Token: token})
}

// HandleMe handles GET /api/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse(msgUnauthorize))
		return
	}

	user, err := h.service.GetUser(storeContext(r), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, messageResponse("User not found"))
			return
		}
		writeInternal(w, r, "me", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]model.UserResponse{"user": user})
}
