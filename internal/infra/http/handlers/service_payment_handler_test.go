package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/agency-admin/internal/entity"
	"github.com/xavierca1/agency-admin/internal/infra/http/handlers"
	"github.com/xavierca1/agency-admin/internal/usecase"
)

func TestServiceHandlerDelete(t *testing.T) {
	catalog := new(MockServiceCatalog)
	catalog.On("Delete", mock.Anything, "web-dev").Return(entity.ErrServiceHasActiveContracts)
	catalog.On("Delete", mock.Anything, "hosting").Return(nil)

	h := handlers.NewServiceHandler(catalog)
	r := chi.NewRouter()
	r.Delete("/api/services/{id}", h.Delete)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/services/web-dev", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"cannot delete a service with active contracts"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/services/hosting", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServiceHandlerCreate(t *testing.T) {
	catalog := new(MockServiceCatalog)
	catalog.On("Create", mock.Anything, mock.MatchedBy(func(in usecase.ServiceInput) bool {
		return in.Type == entity.ServiceTypePaidTraffic && len(in.SubServices) == 1 && in.BasePrice == nil
	})).Return(&entity.Service{ID: "s-1", Name: "Ads", Type: entity.ServiceTypePaidTraffic}, nil)

	h := handlers.NewServiceHandler(catalog)
	body := `{"name":"Ads","description":"Campaigns","type":"PAID_TRAFFIC","subServices":[{"name":"Meta","price":1200}]}`

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/services", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"s-1"`)
	catalog.AssertExpectations(t)
}

func TestPaymentHandlerDelete(t *testing.T) {
	payments := new(MockPaymentService)
	payments.On("Delete", mock.Anything, "p-1").Return(&usecase.DeletedPayment{
		ID:          "p-1",
		Amount:      decimal.RequireFromString("150.00"),
		Description: "Initial payment - Hosting",
		Status:      "PENDING",
	}, nil)
	payments.On("Delete", mock.Anything, "p-2").Return(nil, entity.ErrStillReferenced)
	payments.On("Delete", mock.Anything, "p-3").Return(nil, entity.ErrPaymentNotFound)

	h := handlers.NewPaymentHandler(payments)
	r := chi.NewRouter()
	r.Delete("/api/payments/{id}", h.Delete)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/payments/p-1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"description":"Initial payment - Hosting"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/payments/p-2", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"cannot delete, still referenced"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/payments/p-3", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentHandlerList(t *testing.T) {
	paid := "2024-01-14"
	payments := new(MockPaymentService)
	payments.On("List", mock.Anything).Return([]entity.PaymentView{{
		ID:            "p-1",
		ClientName:    "João Silva",
		ServiceName:   "Desenvolvimento Web",
		Amount:        decimal.NewFromInt(2500),
		DueDate:       "2024-01-15",
		PaymentDate:   &paid,
		Status:        entity.PaymentPaid,
		PaymentMethod: entity.MethodPix,
	}}, nil)

	rec := httptest.NewRecorder()
	handlers.NewPaymentHandler(payments).List(rec, httptest.NewRequest(http.MethodGet, "/api/payments", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dueDate":"2024-01-15"`)
	assert.Contains(t, rec.Body.String(), `"paymentDate":"2024-01-14"`)
	assert.Contains(t, rec.Body.String(), `"clientName":"João Silva"`)
}
