package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/policy"
	"github.com/cmlabs-hris/timeoff-portal/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PolicyHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Options(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type PolicyHandlerImpl struct {
	policyService policy.PolicyService
}

func NewPolicyHandler(policyService policy.PolicyService) PolicyHandler {
	return &PolicyHandlerImpl{policyService: policyService}
}

// List implements PolicyHandler.
func (h *PolicyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	policies, err := h.policyService.List(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.List(w, policies)
}

// Options lists policies for the composer's first step.
func (h *PolicyHandlerImpl) Options(w http.ResponseWriter, r *http.Request) {
	options, err := h.policyService.Options(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.List(w, options)
}

// Create implements PolicyHandler.
func (h *PolicyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req policy.CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreatePolicy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.policyService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Created(w, "Política creada con éxito.", created)
}

// Update implements PolicyHandler.
func (h *PolicyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req policy.UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdatePolicy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.policyService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.SuccessWithMessage(w, "Política actualizada con éxito.", updated)
}
