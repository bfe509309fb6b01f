package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/xavierca1/agency-admin/internal/infra/http/middleware"
	"github.com/xavierca1/agency-admin/internal/usecase"
)

const sessionMaxAge = 7 * 24 * time.Hour

type Authenticator interface {
	Login(ctx context.Context, input usecase.LoginInput) (*usecase.SessionUser, error)
}

type AuthHandler struct {
	Auth         Authenticator
	CookieSecure bool
}

func NewAuthHandler(auth Authenticator, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Auth: auth, CookieSecure: cookieSecure}
}

// Login (POST /api/auth/login) sets the session cookies on success.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if !decodeJSON(w, r, &input) {
		return
	}

	user, err := h.Auth.Login(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	userData, err := json.Marshal(user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, h.cookie(middleware.AuthCookieName, middleware.AuthCookieValue, true, sessionMaxAge))
	http.SetCookie(w, h.cookie(middleware.UserCookieName, url.QueryEscape(string(userData)), false, sessionMaxAge))

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "login successful",
		"user":    user,
	})
}

// Logout (POST /api/auth/logout) expires both cookies.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookie(middleware.AuthCookieName, "", true, -1))
	http.SetCookie(w, h.cookie(middleware.UserCookieName, "", false, -1))
	writeJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

// LoginPage (GET /login)
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(loginPage))
}

func (h *AuthHandler) cookie(name, value string, httpOnly bool, maxAge time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: httpOnly,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
	} else {
		c.MaxAge = int(maxAge.Seconds())
		c.Expires = time.Now().Add(maxAge)
	}
	return c
}

const loginPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Sign in</title>
<style>
body { font-family: sans-serif; display: flex; justify-content: center; margin-top: 10vh; }
form { display: flex; flex-direction: column; gap: .5rem; width: 18rem; }
#error { color: #b00020; min-height: 1.2em; }
</style>
</head>
<body>
<form id="login">
<h1>Agency admin</h1>
<input name="email" type="email" placeholder="Email" required>
<input name="password" type="password" placeholder="Password" required>
<button type="submit">Sign in</button>
<div id="error"></div>
</form>
<script>
document.getElementById("login").addEventListener("submit", async (e) => {
  e.preventDefault();
  const form = new FormData(e.target);
  const res = await fetch("/api/auth/login", {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify({ email: form.get("email"), password: form.get("password") }),
  });
  if (res.ok) { window.location.href = "/"; return; }
  const body = await res.json().catch(() => ({}));
  document.getElementById("error").textContent = body.error || "login failed";
});
</script>
</body>
</html>
`
