package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/agency-admin/internal/entity"
	"github.com/xavierca1/agency-admin/internal/usecase"
)

type PaymentService interface {
	List(ctx context.Context) ([]entity.PaymentView, error)
	Get(ctx context.Context, id string) (*entity.Payment, error)
	Create(ctx context.Context, input usecase.PaymentInput) (*entity.Payment, error)
	Update(ctx context.Context, id string, input usecase.PaymentInput) (*entity.Payment, error)
	Delete(ctx context.Context, id string) (*usecase.DeletedPayment, error)
}

type PaymentHandler struct {
	Payments PaymentService
}

func NewPaymentHandler(payments PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Payments.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	payment, err := h.Payments.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.PaymentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	payment, err := h.Payments.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.PaymentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	payment, err := h.Payments.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Payments.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "payment deleted",
		"payment": deleted,
	})
}
