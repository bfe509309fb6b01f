package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireSession(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := RequireSession(ok)

	session := []*http.Cookie{
		{Name: AuthCookieName, Value: AuthCookieValue},
		{Name: UserCookieName, Value: "%7B%22id%22%3A%22u-1%22%7D"},
	}

	tests := []struct {
		name     string
		path     string
		cookies  []*http.Cookie
		status   int
		location string
	}{
		{name: "public login page", path: "/login", status: http.StatusNoContent},
		{name: "public login api", path: "/api/auth/login", status: http.StatusNoContent},
		{name: "public health", path: "/health", status: http.StatusNoContent},
		{name: "public metrics", path: "/metrics", status: http.StatusNoContent},
		{name: "api without session", path: "/api/clients", status: http.StatusUnauthorized},
		{name: "page without session", path: "/dashboard", status: http.StatusFound, location: "/login"},
		{name: "api with session", path: "/api/clients", cookies: session, status: http.StatusNoContent},
		{name: "page with session", path: "/", cookies: session, status: http.StatusNoContent},
		{name: "only auth cookie", path: "/api/clients", cookies: session[:1], status: http.StatusUnauthorized},
		{name: "only user cookie", path: "/", cookies: session[1:], status: http.StatusFound, location: "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for _, c := range tt.cookies {
				req.AddCookie(c)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, rec.Header().Get("Location"))
			}
			if tt.status == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
			}
		})
	}
}
