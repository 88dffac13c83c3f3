package middleware

import (
	"fmt"
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/blogem/personal-site/models"
)

// Session keys
const (
	SessionKeyLoggedIn = "logged_in"
	sessionKeyFlashes  = "_flashes"
)

// IsAuthenticated reports whether the request's session carries the logged_in flag
func IsAuthenticated(r *http.Request) bool {
	loggedIn, ok := session.GetSession(r).Get(SessionKeyLoggedIn).(bool)
	return ok && loggedIn
}

// SetAuthenticated moves the request's session to a fresh id and marks it as
// logged in. The previous id stops working.
func SetAuthenticated(w http.ResponseWriter, r *http.Request) error {
	sess, err := session.RegenerateSession(w, r)
	if err != nil {
		return fmt.Errorf("failed to regenerate session: %w", err)
	}
	return sess.Set(SessionKeyLoggedIn, true)
}

// ClearAuthenticated removes the logged_in flag from the request's session
func ClearAuthenticated(r *http.Request) error {
	return session.GetSession(r).Delete(SessionKeyLoggedIn)
}

// AddFlash queues a one-shot message for the next rendered page
func AddFlash(r *http.Request, kind, message string) error {
	sess := session.GetSession(r)
	flashes, _ := sess.Get(sessionKeyFlashes).([]models.FlashMessage)
	flashes = append(flashes, models.FlashMessage{Type: kind, Message: message})
	return sess.Set(sessionKeyFlashes, flashes)
}

// PopFlashes returns the queued messages and removes them from the session
func PopFlashes(r *http.Request) []models.FlashMessage {
	sess := session.GetSession(r)
	flashes, _ := sess.Get(sessionKeyFlashes).([]models.FlashMessage)
	if len(flashes) > 0 {
		sess.Delete(sessionKeyFlashes)
	}
	return flashes
}
