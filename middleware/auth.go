package middleware

import (
	"net/http"
	"net/url"

	"github.com/blogem/personal-site/models"
)

// RequireSession ensures the admin is logged in.
// If not, it flashes a warning and redirects to /login, passing the
// requested URL as the next parameter.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAuthenticated(r) {
			AddFlash(r, models.FlashWarning, "Please log in to access this page.")
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
