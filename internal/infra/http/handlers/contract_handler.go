package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/agency-admin/internal/entity"
	"github.com/xavierca1/agency-admin/internal/usecase"
)

type ContractService interface {
	List(ctx context.Context) ([]entity.Contract, error)
	Create(ctx context.Context, input usecase.ContractInput) (*entity.Contract, error)
	Update(ctx context.Context, id string, input usecase.ContractInput) (*entity.Contract, error)
}

type ContractHandler struct {
	Contracts ContractService
}

func NewContractHandler(contracts ContractService) *ContractHandler {
	return &ContractHandler{Contracts: contracts}
}

func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Contracts.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contracts)
}

func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.ContractInput
	if !decodeJSON(w, r, &input) {
		return
	}

	contract, err := h.Contracts.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract)
}

func (h *ContractHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.ContractInput
	if !decodeJSON(w, r, &input) {
		return
	}

	contract, err := h.Contracts.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}
