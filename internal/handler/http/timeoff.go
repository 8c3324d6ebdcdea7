package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/timeoff-portal/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimeOffHandler interface {
	Draft(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	ListTeam(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type TimeOffHandlerImpl struct {
	timeOffService timeoff.TimeOffService
}

func NewTimeOffHandler(timeOffService timeoff.TimeOffService) TimeOffHandler {
	return &TimeOffHandlerImpl{timeOffService: timeOffService}
}

// Draft advances, rewinds or resets the request composer.
func (h *TimeOffHandlerImpl) Draft(w http.ResponseWriter, r *http.Request) {
	var req timeoff.DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Draft decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.timeOffService.Compose(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, res)
}

// Create implements TimeOffHandler.
func (h *TimeOffHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var draft timeoff.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.timeOffService.Submit(r.Context(), draft)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Created(w, "Solicitud enviada con éxito.", res)
}

// ListMine implements TimeOffHandler.
func (h *TimeOffHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	res, err := h.timeOffService.ListMine(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.List(w, res)
}

// ListAll implements TimeOffHandler.
func (h *TimeOffHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	res, err := h.timeOffService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.List(w, res)
}

// ListTeam implements TimeOffHandler.
func (h *TimeOffHandlerImpl) ListTeam(w http.ResponseWriter, r *http.Request) {
	res, err := h.timeOffService.ListTeam(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.List(w, res)
}

// Approve implements TimeOffHandler.
func (h *TimeOffHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	res, err := h.timeOffService.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.SuccessWithMessage(w, "Solicitud aprobada con éxito.", res)
}

// Reject implements TimeOffHandler.
func (h *TimeOffHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	res, err := h.timeOffService.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.SuccessWithMessage(w, "Solicitud rechazada con éxito.", res)
}
