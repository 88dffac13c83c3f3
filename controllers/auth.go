package controllers

import (
	"net/http"
	"strings"

	"github.com/blogem/personal-site/authenticator"
	"github.com/blogem/personal-site/metrics"
	"github.com/blogem/personal-site/middleware"
	"github.com/blogem/personal-site/models"
)

const defaultLoginRedirect = "/admin/messages"

// AuthController handles admin login and logout
type AuthController struct {
	auth *authenticator.Authenticator
}

// NewAuthController creates a new auth controller
func NewAuthController(auth *authenticator.Authenticator) *AuthController {
	return &AuthController{auth: auth}
}

type loginPageData struct {
	Next     string
	Username string
}

// Login handles GET and POST /login
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	data := loginPageData{Next: r.URL.Query().Get("next")}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}

		username := r.PostFormValue("username")
		password := r.PostFormValue("password")
		if next := r.PostFormValue("next"); next != "" {
			data.Next = next
		}

		if ac.auth.Verify(username, password) {
			metrics.LoginAttempts.WithLabelValues("success").Inc()
			if err := middleware.SetAuthenticated(w, r); err != nil {
				http.Error(w, "Failed to update session", http.StatusInternalServerError)
				return
			}
			middleware.AddFlash(r, models.FlashSuccess, "You have successfully logged in!")
			http.Redirect(w, r, safeRedirect(data.Next), http.StatusSeeOther)
			return
		}

		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		middleware.AddFlash(r, models.FlashDanger, "Invalid credentials. Please try again.")
		data.Username = username
	}

	renderTemplate(w, r, "login.html", &models.PageData{
		Title:       "Login",
		CurrentPage: "login",
		Data:        data,
	})
}

// Logout handles GET /logout
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearAuthenticated(r)
	middleware.AddFlash(r, models.FlashInfo, "You have successfully logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// safeRedirect only allows local paths so next cannot send the admin off-site
func safeRedirect(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return defaultLoginRedirect
	}
	return next
}
