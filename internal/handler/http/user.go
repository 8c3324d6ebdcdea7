package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/auth"
	"github.com/cmlabs-hris/timeoff-portal/internal/domain/user"
	"github.com/cmlabs-hris/timeoff-portal/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListRoles(w http.ResponseWriter, r *http.Request)
	ListManagerCandidates(w http.ResponseWriter, r *http.Request)
	UpdateAssignment(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// Me returns the caller's profile with role and permissions.
func (h *UserHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	session, err := auth.SessionFromContext(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), session.UserID)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Success(w, profile)
}

// List implements UserHandler.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.List(w, users)
}

// ListRoles implements UserHandler.
func (h *UserHandlerImpl) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.userService.ListRoles(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.List(w, roles)
}

// ListManagerCandidates implements UserHandler.
func (h *UserHandlerImpl) ListManagerCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.userService.ListManagerCandidates(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.List(w, candidates)
}

// UpdateAssignment sets the user's role and manager in one call.
func (h *UserHandlerImpl) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateAssignment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = chi.URLParam(r, "id")

	if err := h.userService.UpdateAssignment(r.Context(), req); err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.SuccessWithMessage(w, "Usuario actualizado con éxito.", nil)
}
