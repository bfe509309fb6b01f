package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/agency-admin/internal/entity"
	"github.com/xavierca1/agency-admin/internal/infra/http/middleware"
	"github.com/xavierca1/agency-admin/internal/usecase"
)

type ClientService interface {
	List(ctx context.Context) ([]entity.Client, error)
	Get(ctx context.Context, id string) (*entity.Client, error)
	Delete(ctx context.Context, id string) error
}

type ClientProvisioner interface {
	Create(ctx context.Context, input usecase.ProvisionClientInput) (*usecase.ProvisionClientOutput, error)
	Edit(ctx context.Context, id string, input usecase.ProvisionClientInput) (*usecase.ProvisionClientOutput, error)
}

type ClientHandler struct {
	Clients   ClientService
	Provision ClientProvisioner
}

func NewClientHandler(clients ClientService, provision ClientProvisioner) *ClientHandler {
	return &ClientHandler{Clients: clients, Provision: provision}
}

// List (GET /api/clients)
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Clients.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// Get (GET /api/clients/{id})
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, err := h.Clients.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// Create (POST /api/clients) provisions a new client with its contracts
// and initial payments.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.ProvisionClientInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.Provision.Create(r.Context(), input)
	middleware.RecordProvisioning(usecase.OperationCreate, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// Edit (PUT /api/clients or PUT /api/clients/{id}). The id comes from the
// path when present, otherwise from the body.
func (h *ClientHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var input usecase.ProvisionClientInput
	if !decodeJSON(w, r, &input) {
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		id = strings.TrimSpace(input.ID)
	}
	if id == "" {
		writeErrorResponse(w, http.StatusBadRequest, "client id is required")
		return
	}

	out, err := h.Provision.Edit(r.Context(), id, input)
	middleware.RecordProvisioning(usecase.OperationEdit, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Delete (DELETE /api/clients/{id})
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Clients.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "client deleted"})
}
