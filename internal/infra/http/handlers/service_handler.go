package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/agency-admin/internal/entity"
	"github.com/xavierca1/agency-admin/internal/usecase"
)

type ServiceCatalog interface {
	List(ctx context.Context) ([]entity.Service, error)
	Get(ctx context.Context, id string) (*entity.Service, error)
	Create(ctx context.Context, input usecase.ServiceInput) (*entity.Service, error)
	Update(ctx context.Context, id string, input usecase.ServiceInput) (*entity.Service, error)
	Delete(ctx context.Context, id string) error
}

type ServiceHandler struct {
	Services ServiceCatalog
}

func NewServiceHandler(services ServiceCatalog) *ServiceHandler {
	return &ServiceHandler{Services: services}
}

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.Services.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	svc, err := h.Services.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.ServiceInput
	if !decodeJSON(w, r, &input) {
		return
	}

	svc, err := h.Services.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.ServiceInput
	if !decodeJSON(w, r, &input) {
		return
	}

	svc, err := h.Services.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

// Delete answers 400 while the service still has ACTIVE contracts.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Services.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "service deleted"})
}
