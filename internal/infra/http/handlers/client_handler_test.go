package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/agency-admin/internal/entity"
	"github.com/xavierca1/agency-admin/internal/infra/http/handlers"
	"github.com/xavierca1/agency-admin/internal/usecase"
)

const provisionBody = `{
	"name": "Ana Lima",
	"email": "ana@example.com",
	"phone": "11999998888",
	"company": "Lima Co",
	"serviceStartDate": "2024-03-01",
	"services": [{"serviceId": "paid-traffic", "subServiceIds": ["meta-ads", "google-ads"]}],
	"customDiscount": {"enabled": true, "type": "percentage", "value": 10}
}`

func clientRouter(clients *MockClientService, provision *MockClientProvisioner) http.Handler {
	h := handlers.NewClientHandler(clients, provision)
	r := chi.NewRouter()
	r.Get("/api/clients", h.List)
	r.Get("/api/clients/{id}", h.Get)
	r.Post("/api/clients", h.Create)
	r.Put("/api/clients", h.Edit)
	r.Put("/api/clients/{id}", h.Edit)
	r.Delete("/api/clients/{id}", h.Delete)
	return r
}

func TestClientHandlerCreate(t *testing.T) {
	clients := new(MockClientService)
	provision := new(MockClientProvisioner)

	out := &usecase.ProvisionClientOutput{
		Client:    &entity.Client{ID: "c-1", Name: "Ana Lima", Email: "ana@example.com"},
		Contracts: []entity.Contract{{ID: "ct-1"}, {ID: "ct-2"}},
		Payments:  []entity.Payment{{ID: "p-1"}, {ID: "p-2"}},
	}
	provision.On("Create", mock.Anything, mock.MatchedBy(func(in usecase.ProvisionClientInput) bool {
		return in.Email == "ana@example.com" &&
			len(in.Services) == 1 &&
			len(in.Services[0].SubServiceIDs) == 2 &&
			in.CustomDiscount != nil && in.CustomDiscount.Type == usecase.DiscountPercentage
	})).Return(out, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(provisionBody))
	rec := httptest.NewRecorder()
	clientRouter(clients, provision).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Client    map[string]any   `json:"client"`
		Contracts []map[string]any `json:"contracts"`
		Payments  []map[string]any `json:"payments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "c-1", body.Client["id"])
	assert.Len(t, body.Contracts, 2)
	assert.Len(t, body.Payments, 2)
	provision.AssertExpectations(t)
}

func TestClientHandlerCreateErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		err     error
		status  int
		message string
	}{
		{
			name:    "unknown field",
			body:    `{"name":"Ana","nickname":"an"}`,
			status:  http.StatusBadRequest,
			message: "invalid JSON",
		},
		{
			name:    "malformed json",
			body:    `{"name":`,
			status:  http.StatusBadRequest,
			message: "invalid JSON",
		},
		{
			name:    "trailing data",
			body:    `{"name":"Ana"} {"name":"Bia"}`,
			status:  http.StatusBadRequest,
			message: "unexpected data",
		},
		{
			name:    "duplicate email",
			body:    provisionBody,
			err:     entity.ErrEmailAlreadyExists,
			status:  http.StatusBadRequest,
			message: "client with this email already exists",
		},
		{
			name:    "missing service",
			body:    provisionBody,
			err:     fmt.Errorf("%w: paid-traffic", entity.ErrServiceNotFound),
			status:  http.StatusNotFound,
			message: "service not found: paid-traffic",
		},
		{
			name:    "infrastructure failure is hidden",
			body:    provisionBody,
			err:     &usecase.TechnicalError{Code: usecase.CodeDatabaseError, Message: "create client", Err: errors.New("pq: connection refused")},
			status:  http.StatusInternalServerError,
			message: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provision := new(MockClientProvisioner)
			if tt.err != nil {
				provision.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			clientRouter(new(MockClientService), provision).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body.Error, tt.message)
			assert.NotContains(t, body.Error, "pq:")
			if tt.err == nil {
				provision.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestClientHandlerValidationFields(t *testing.T) {
	provision := new(MockClientProvisioner)
	provision.On("Create", mock.Anything, mock.Anything).Return(nil, &usecase.DomainError{
		Code:    usecase.CodeValidation,
		Message: "validation failed: phone: must have at least 10 digits",
		Fields:  []usecase.ValidationError{{Field: "phone", Message: "must have at least 10 digits"}},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(provisionBody))
	rec := httptest.NewRecorder()
	clientRouter(new(MockClientService), provision).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"error": "validation failed: phone: must have at least 10 digits",
		"fields": [{"field": "phone", "message": "must have at least 10 digits"}]
	}`, rec.Body.String())
}

func TestClientHandlerEditTakesIDFromPathOrBody(t *testing.T) {
	out := &usecase.ProvisionClientOutput{Client: &entity.Client{ID: "c-1"}}

	t.Run("path", func(t *testing.T) {
		provision := new(MockClientProvisioner)
		provision.On("Edit", mock.Anything, "c-1", mock.Anything).Return(out, nil)

		req := httptest.NewRequest(http.MethodPut, "/api/clients/c-1", strings.NewReader(provisionBody))
		rec := httptest.NewRecorder()
		clientRouter(new(MockClientService), provision).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		provision.AssertExpectations(t)
	})

	t.Run("body", func(t *testing.T) {
		provision := new(MockClientProvisioner)
		provision.On("Edit", mock.Anything, "c-9", mock.Anything).Return(out, nil)

		body := strings.Replace(provisionBody, `"name"`, `"id": "c-9", "name"`, 1)
		req := httptest.NewRequest(http.MethodPut, "/api/clients", strings.NewReader(body))
		rec := httptest.NewRecorder()
		clientRouter(new(MockClientService), provision).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		provision.AssertExpectations(t)
	})

	t.Run("missing", func(t *testing.T) {
		provision := new(MockClientProvisioner)

		req := httptest.NewRequest(http.MethodPut, "/api/clients", strings.NewReader(provisionBody))
		rec := httptest.NewRecorder()
		clientRouter(new(MockClientService), provision).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		provision.AssertNotCalled(t, "Edit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown client", func(t *testing.T) {
		provision := new(MockClientProvisioner)
		provision.On("Edit", mock.Anything, "nope", mock.Anything).Return(nil, entity.ErrClientNotFound)

		req := httptest.NewRequest(http.MethodPut, "/api/clients/nope", strings.NewReader(provisionBody))
		rec := httptest.NewRecorder()
		clientRouter(new(MockClientService), provision).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestClientHandlerListAndDelete(t *testing.T) {
	clients := new(MockClientService)
	clients.On("List", mock.Anything).Return([]entity.Client{{ID: "c-1", Name: "Ana"}}, nil)
	clients.On("Delete", mock.Anything, "c-1").Return(nil)
	clients.On("Delete", mock.Anything, "c-2").Return(entity.ErrClientNotFound)
	router := clientRouter(clients, new(MockClientProvisioner))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/clients", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Ana"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/clients/c-1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/clients/c-2", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"client not found"}`, rec.Body.String())
}
