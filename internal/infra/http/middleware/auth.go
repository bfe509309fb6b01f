package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	AuthCookieName  = "auth-token"
	AuthCookieValue = "authenticated"
	UserCookieName  = "user-data"

	LoginPath = "/login"
)

var publicPaths = map[string]bool{
	LoginPath:         true,
	"/api/auth/login": true,
	"/health":         true,
	"/metrics":        true,
}

// RequireSession lets requests through when both session cookies are set.
// API calls without a session get 401; page requests are redirected to the
// login page.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if publicPaths[r.URL.Path] || hasSession(r) {
			next.ServeHTTP(w, r)
			return
		}

		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		http.Redirect(w, r, LoginPath, http.StatusFound)
	})
}

func hasSession(r *http.Request) bool {
	token, err := r.Cookie(AuthCookieName)
	if err != nil || token.Value == "" {
		return false
	}
	user, err := r.Cookie(UserCookieName)
	return err == nil && user.Value != ""
}
